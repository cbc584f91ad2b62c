package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"loupe/internal/browse"
	"loupe/internal/logging/events"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(l *listing, before int) {
	if l == nil {
		return
	}
	if before != l.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.filterActive {
		return m.handleFilterKey(keyMsg)
	}
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "enter":
		return m.enterSelected()
	case "esc", "backspace":
		return m.leave()
	case "/":
		m.filterActive = true
		return nil
	case "b":
		return m.toggleBookmarks()
	case "n":
		return m.hop(1)
	case "p":
		return m.hop(-1)
	case "f":
		return m.cycleFilter()
	case "d":
		return m.cyclePageMode()
	case "r":
		return m.reload()
	case "1":
		return m.toggleSort(browse.SortCategory)
	case "2":
		return m.toggleSort(browse.SortName)
	case "3":
		return m.toggleSort(browse.SortSize)
	case "4":
		return m.toggleSort(browse.SortModified)
	case "0":
		return m.clearSort()
	case "up", "k":
		return m.moveCursor((*listing).MoveCursorUp)
	case "down", "j":
		return m.moveCursor((*listing).MoveCursorDown)
	case "pgup":
		return m.moveCursor(func(l *listing) bool { return l.MoveCursorPageUp(m.maxVisibleRows()) })
	case "pgdown":
		return m.moveCursor(func(l *listing) bool { return l.MoveCursorPageDown(m.maxVisibleRows()) })
	case "home", "g":
		return m.moveCursor((*listing).MoveCursorHome)
	case "end", "G":
		return m.moveCursor((*listing).MoveCursorEnd)
	}
	return nil
}

// handleFilterKey edits the incremental name filter. Enter keeps the query
// and returns to command keys; escape drops it.
func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	current := m.listing
	if current == nil {
		m.filterActive = false
		return nil
	}
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "enter":
		m.filterActive = false
		return nil
	case "esc":
		m.filterActive = false
		return m.changeFilter(func() bool {
			current.SetFilter("", 0)
			return true
		})
	case "ctrl+u":
		if current.Filter == "" {
			return nil
		}
		return m.changeFilter(func() bool {
			current.SetFilter("", 0)
			return true
		})
	case "ctrl+w":
		return m.changeFilter(current.DeleteFilterWordBackward)
	case "ctrl+a":
		return m.moveFilterCursor(current.MoveFilterCursorStart)
	case "ctrl+e":
		return m.moveFilterCursor(current.MoveFilterCursorEnd)
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.changeFilter(current.DeleteFilterRuneBackward)
	case tea.KeySpace:
		return m.changeFilter(func() bool { return current.InsertFilterText(" ") })
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return nil
			}
		}
		text := string(msg.Runes)
		return m.changeFilter(func() bool { return current.InsertFilterText(text) })
	case tea.KeyLeft:
		return m.moveFilterCursor(current.MoveFilterCursorRuneBackward)
	case tea.KeyRight:
		return m.moveFilterCursor(current.MoveFilterCursorRuneForward)
	}
	return nil
}

func (m *Model) changeFilter(edit func() bool) tea.Cmd {
	current := m.listing
	before := current.FilterCursorPos()
	if !edit() {
		return nil
	}
	m.noteFilterCursorChange(current, before)
	m.forceClearInfo()
	m.errMsg = ""
	events.Browse.Filter(current.Path, current.Filter)
	m.syncViewport(current)
	return m.updatePreview()
}

func (m *Model) moveFilterCursor(move func() bool) tea.Cmd {
	current := m.listing
	before := current.FilterCursorPos()
	if !move() {
		return nil
	}
	m.noteFilterCursorChange(current, before)
	return nil
}

func (m *Model) filterPrompt() string {
	current := m.listing
	if current == nil {
		return ">"
	}
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	prompt := "/ "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	if !m.filterActive && current.Filter == "" {
		hint := "press / to search"
		return render(styles.FilterPlaceholder, hint)
	}
	text := current.Filter
	if !m.filterActive {
		return prompt + render(styles.Filter, text)
	}
	if text == "" {
		placeholder := "(type to search)"
		runes := []rune(placeholder)
		caret := m.renderFilterCursor(string(runes[0]))
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = *styles.FilterPlaceholder
		}
		return prompt + caret + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(text)
	pos := current.FilterCursorPos()
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	if pos < len(runes) {
		caretRune = string(runes[pos])
	}
	caret := m.renderFilterCursor(caretRune)
	after := ""
	if pos < len(runes) {
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + caret + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Inline(true)
		return base.Inherit(cursorStyle).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
