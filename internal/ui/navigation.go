package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"loupe/internal/browse"
	"loupe/internal/doc"
	"loupe/internal/logging/events"
	uistate "loupe/internal/ui/state"
)

// showBackend makes b the current view: rows pass the category filter, get
// the remembered sort for b's path, and the cursor lands on target (or the
// first visible row).
func (m *Model) showBackend(b browse.Backend, target browse.Target) tea.Cmd {
	m.backend = b
	b.SetSort(m.sortFor(b))
	rows := browse.FilterRows(b.List(), m.catFilter)
	b.Sort().Apply(rows)
	l := uistate.NewListing(b.Path(), b.Kind().String(), rows)
	if pos := browse.FindTarget(b, rows, target, m.catFilter); pos >= 0 {
		l.Cursor = pos
	}
	m.listing = l
	m.syncViewport(l)
	if m.watcher != nil {
		dir := ""
		if b.Kind() == browse.KindFilesystem {
			dir = b.Path()
		}
		m.watcher.Watch(dir)
	}
	return m.updatePreview()
}

// sortFor returns the ordering for a backend: unsortable kinds stay in their
// native order, everything else uses the per-path memory.
func (m *Model) sortFor(b browse.Backend) browse.Sort {
	if !b.CanSort() {
		return browse.Unsorted()
	}
	if s, ok := m.sorts[b.Path()]; ok {
		return s
	}
	return browse.DefaultSort()
}

// currentTarget describes the selected row so it can be reselected after the
// listing is rebuilt.
func (m *Model) currentTarget() browse.Target {
	cur, ok := m.listing.Current()
	if !ok {
		return browse.First()
	}
	return browse.MakeReference(m.backend, cur).Target()
}

func (m *Model) enterSelected() tea.Cmd {
	cur, ok := m.listing.Current()
	if !ok {
		return nil
	}
	child, ok := m.backend.Enter(cur)
	if !ok {
		return nil
	}
	child.AdoptParent(m.backend, browse.MakeReference(m.backend, cur).Target())
	events.Browse.Enter(child.Kind().String(), child.Path(), cur.Row.Name)
	m.errMsg = ""
	m.forceClearInfo()
	return m.showBackend(child, browse.First())
}

func (m *Model) leave() tea.Cmd {
	parent, target, ok := m.backend.Leave()
	if !ok {
		return nil
	}
	events.Browse.Leave(m.backend.Kind().String(), m.backend.Path(), target.String())
	browse.Discard(m.backend)
	m.errMsg = ""
	m.forceClearInfo()
	return m.showBackend(parent, target)
}

// hop leaves the current container, steps to the adjacent container row in
// the parent, and enters it with the remembered sort. When there is nothing
// adjacent the view just lands in the parent.
func (m *Model) hop(delta int) tea.Cmd {
	parent, target, ok := m.backend.Leave()
	if !ok {
		return nil
	}
	browse.Discard(m.backend)
	parent.SetSort(m.sortFor(parent))
	rows := browse.FilterRows(parent.List(), browse.FilterContainer)
	parent.Sort().Apply(rows)
	pos := browse.FindTarget(parent, rows, target, browse.FilterContainer)
	next := pos + delta
	if pos < 0 || next < 0 || next >= len(rows) {
		return m.showBackend(parent, target)
	}
	cur := browse.Cursor{Row: rows[next], Position: next}
	child, ok := parent.Enter(cur)
	if !ok {
		return m.showBackend(parent, target)
	}
	child.AdoptParent(parent, browse.MakeReference(parent, cur).Target())
	events.Browse.Enter(child.Kind().String(), child.Path(), cur.Row.Name)
	return m.showBackend(child, browse.First())
}

// toggleBookmarks opens the bookmarks root over the current view, or closes
// it again, restoring exactly the backend and selection it was opened from.
func (m *Model) toggleBookmarks() tea.Cmd {
	if m.backend.Kind() == browse.KindBookmarks {
		return m.leave()
	}
	b := browse.NewBookmarks(m.backend, m.currentTarget(), m.bookmarks)
	events.Browse.Enter(b.Kind().String(), b.Path(), "")
	return m.showBackend(b, browse.First())
}

func (m *Model) toggleSort(column browse.SortColumn) tea.Cmd {
	if !m.backend.CanSort() {
		m.setInfo("this view keeps its fixed order")
		return nil
	}
	target := m.currentTarget()
	s := m.backend.Sort().Toggle(column)
	m.sorts[m.backend.Path()] = s
	events.Browse.Sort(m.backend.Path(), s.String())
	return m.showBackend(m.backend, target)
}

func (m *Model) clearSort() tea.Cmd {
	if !m.backend.CanSort() {
		return nil
	}
	target := m.currentTarget()
	m.sorts[m.backend.Path()] = browse.Unsorted()
	events.Browse.Sort(m.backend.Path(), "u")
	return m.showBackend(m.backend, target)
}

// cycleFilter advances none, image, favorite, container and rebuilds the
// listing. The selected row is kept when it passes the new filter.
func (m *Model) cycleFilter() tea.Cmd {
	target := m.currentTarget()
	m.catFilter = (m.catFilter + 1) % 4
	events.Browse.Filter(m.backend.Path(), m.catFilter.String())
	m.setInfo(fmt.Sprintf("filter: %s", m.catFilter))
	return m.showBackend(m.backend, target)
}

// cyclePageMode advances single, dual even-odd, dual odd-even and refreshes
// the preview for the new unit.
func (m *Model) cyclePageMode() tea.Cmd {
	switch m.pageMode {
	case doc.Single:
		m.pageMode = doc.DualEvenOdd
	case doc.DualEvenOdd:
		m.pageMode = doc.DualOddEven
	default:
		m.pageMode = doc.Single
	}
	m.setInfo(fmt.Sprintf("pages: %s", m.pageMode))
	return m.updatePreview()
}

// reload re-reads the current container from disk, keeping the selection.
func (m *Model) reload() tea.Cmd {
	r, ok := m.backend.(interface{ Reload() browse.Backend })
	if !ok {
		return nil
	}
	target := m.currentTarget()
	events.Browse.Reload(m.backend.Path())
	return m.showBackend(r.Reload(), target)
}

func (m *Model) syncViewport(l *listing) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleRows())
}

func (m *Model) moveCursor(move func(*listing) bool) tea.Cmd {
	if m.listing == nil {
		return nil
	}
	if move(m.listing) {
		cur, _ := m.listing.Current()
		events.Browse.Cursor(m.listing.Path, m.listing.Cursor, cur.Row.Name)
		m.syncViewport(m.listing)
		return m.updatePreview()
	}
	m.syncViewport(m.listing)
	return nil
}

func (m *Model) handleDirChangedMsg(msg tea.Msg) tea.Cmd {
	changed, ok := msg.(dirChangedMsg)
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	if m.backend != nil && m.backend.Path() == changed.path {
		cmd = m.reload()
	}
	if m.watcher != nil {
		wait := waitForDirChange(m.watcher)
		if cmd != nil {
			return tea.Batch(cmd, wait)
		}
		return wait
	}
	return cmd
}

func (m *Model) handleWatchDoneMsg(tea.Msg) tea.Cmd {
	m.watcher = nil
	return nil
}
