package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"loupe/internal/browse"
	"loupe/internal/category"
	"loupe/internal/format/table"
)

const (
	previewPanelMinWidth = 24  // minimum cols for the preview panel; below this no split
	previewPanelFraction = 0.5 // fraction of total width given to the preview panel
)

var previewBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping
}

// previewPanelWidth returns the width in columns for the right-hand preview
// panel, or 0 when the terminal is too narrow to split.
func (m *Model) previewPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * previewPanelFraction)
	if w < previewPanelMinWidth {
		return 0
	}
	return w
}

func (m *Model) listColumnWidth() int {
	return m.width - m.previewPanelWidth()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.previewPanelWidth() > 0 {
		return m.viewSideBySide()
	}
	return m.viewVertical()
}

func (m *Model) viewVertical() string {
	lines := m.listingLines(m.width)
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)
	bottom := applyWidth(m.bottomLines(), m.width)
	return renderLines(append(lines, bottom...))
}

func (m *Model) viewSideBySide() string {
	listW := m.listColumnWidth()
	prevW := m.previewPanelWidth()
	const bottomBarRows = 2

	contentLines := m.listingLines(listW)
	panelH := m.height - bottomBarRows
	if panelH < 1 {
		panelH = 1
	}
	if len(contentLines) > panelH {
		contentLines = contentLines[:panelH]
	}
	for len(contentLines) < panelH {
		contentLines = append(contentLines, styledLine{})
	}
	contentLines = applyWidth(contentLines, listW)
	leftStr := renderLines(contentLines)

	// Pad every rendered row to exactly listW visible columns so the join
	// keeps the preview flush to the right edge.
	leftRows := strings.Split(leftStr, "\n")
	for i, row := range leftRows {
		w := lipgloss.Width(row)
		if w > listW {
			leftRows[i] = truncate.StringWithTail(row, uint(listW-1), "…")
		} else if w < listW {
			leftRows[i] = row + strings.Repeat(" ", listW-w)
		}
	}
	leftStr = strings.Join(leftRows, "\n")

	rightStr := m.renderPreviewPanel(prevW, panelH)
	topSection := lipgloss.JoinHorizontal(lipgloss.Top, leftStr, rightStr)

	bottom := applyWidth(m.bottomLines(), m.width)
	return topSection + "\n" + renderLines(bottom)
}

// listingLines builds the header plus one line per visible row.
func (m *Model) listingLines(width int) []styledLine {
	lines := make([]styledLine, 0, 16)
	if header := m.headerLine(); header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	current := m.listing
	if current == nil {
		return lines
	}
	m.syncViewport(current)
	start := 0
	display := current.Rows
	if maxRows := m.maxVisibleRows(); maxRows > 0 && len(display) > maxRows {
		start = current.ViewportOffset
		if start < 0 {
			start = 0
		}
		if start+maxRows > len(display) {
			start = len(display) - maxRows
			if start < 0 {
				start = 0
			}
			current.ViewportOffset = start
		}
		display = display[start : start+maxRows]
	}
	if len(current.Rows) == 0 {
		msg := "(empty)"
		if current.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", current.Filter)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
		return lines
	}
	cells := make([][]string, len(display))
	for i, row := range display {
		cells[i] = rowCells(row)
	}
	formatted := table.Format(cells, []table.Alignment{
		table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignRight,
	})
	for i, text := range formatted {
		idx := start + i
		lines = append(lines, m.buildRowLine(display[i], text, idx, current, width))
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "enter open  esc up  / search  f filter  1-4 sort  b bookmarks  q quit", style: styles.Footer})
	}
	return lines
}

func rowCells(row browse.Row) []string {
	marker := " "
	switch row.Pref {
	case category.Favorite:
		marker = "+"
	case category.Trash:
		marker = "-"
	}
	size := humanize.Bytes(row.Size)
	if row.Category == category.Folder {
		size = ""
	}
	modified := ""
	if !row.Modified.IsZero() {
		modified = row.Modified.Format("2006-01-02 15:04")
	}
	return []string{marker + row.Category.Short(), row.Name, size, modified}
}

func (m *Model) buildRowLine(row browse.Row, text string, idx int, current *listing, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Category(row.Category)
	if lineStyle == nil {
		lineStyle = styles.Row
	}
	switch row.Pref {
	case category.Favorite:
		lineStyle = styles.Favorite
	case category.Trash:
		lineStyle = styles.Trash
	}
	indicatorStyle := styles.RowIndicator
	if idx == current.Cursor {
		indicatorStyle = styles.SelectedRowIndicator
		lineStyle = styles.SelectedRow
	}
	fullText := indicator + " " + text
	if width > 0 {
		if pad := width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

// headerLine is the breadcrumb: container path, kind, and the active sort and
// filter indicators.
func (m *Model) headerLine() string {
	if m.backend == nil {
		return ""
	}
	parts := []string{m.backend.Path()}
	if kind := m.backend.Kind(); kind != browse.KindFilesystem {
		parts = append(parts, "["+kind.String()+"]")
	}
	if m.backend.CanSort() {
		parts = append(parts, "sort:"+m.backend.Sort().String())
	}
	if m.catFilter != browse.FilterNone {
		parts = append(parts, "filter:"+m.catFilter.String())
	}
	return strings.Join(parts, "  ")
}

func (m *Model) bottomLines() []styledLine {
	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	return []styledLine{
		statusLine,
		{text: m.filterPrompt()},
	}
}

// renderPreviewPanel draws the bordered preview box with exactly height rows
// and totalWidth columns.
func (m *Model) renderPreviewPanel(totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)

	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	titleLabel := "preview"
	if m.preview.name != "" {
		titleLabel = m.preview.name
	}
	var contentLines []string
	raw := false
	switch {
	case m.preview.loading:
		contentLines = []string{"rendering…"}
	case m.preview.surface != nil:
		contentLines = surfaceLines(m.preview.surface, innerW, innerH)
		raw = true
	}

	titleSeg := " " + titleLabel + " "
	dashes := totalWidth - 4 - len([]rune(titleSeg))
	if dashes < 0 {
		titleSeg = " … "
		dashes = totalWidth - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		dashes = 0
	}
	topLine := previewBorderStyle.Render(tlc+hz) +
		styles.PreviewTitle.Render(titleSeg) +
		previewBorderStyle.Render(strings.Repeat(hz, dashes)+hz+trc)
	bottomLine := previewBorderStyle.Render(blc + strings.Repeat(hz, innerW) + brc)

	// Center the image block inside the panel.
	padTop := 0
	if raw && len(contentLines) < innerH {
		padTop = (innerH - len(contentLines)) / 2
	}

	rows := make([]string, 0, height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var content string
		if i >= padTop && i-padTop < len(contentLines) {
			content = contentLines[i-padTop]
		}
		w := lipgloss.Width(content)
		if w > innerW {
			content = truncate.StringWithTail(content, uint(innerW-1), "…")
			w = lipgloss.Width(content)
		}
		pad := innerW - w
		left := pad / 2
		if !raw {
			left = 0
		}
		content = strings.Repeat(" ", left) + content + strings.Repeat(" ", pad-left)
		rows = append(rows, previewBorderStyle.Render(vt)+content+previewBorderStyle.Render(vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport(m.listing)
	// The preview pixel budget changed with the panel size.
	return m.updatePreview()
}

func (m *Model) maxVisibleRows() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // bottom bar: error/status + filter prompt
	if m.headerLine() != "" {
		used++
	}
	if m.currentInfo() != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if w := lipgloss.Width(text); w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
