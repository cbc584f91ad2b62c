package ui

import (
	"fmt"
	"image/color"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"loupe/internal/browse"
	"loupe/internal/pix"
	"loupe/internal/render"
)

// preview is the state of the right-hand pane: the reference the content was
// requested under, the surface once available, and a loading flag while a
// render command is in flight.
type preview struct {
	ref     browse.Reference
	name    string
	surface *pix.Surface
	loading bool
}

type renderReplyMsg struct {
	reply render.Reply
}

type renderDoneMsg struct{}

func waitForRenderReply(replies <-chan render.Reply) tea.Cmd {
	return func() tea.Msg {
		reply, ok := <-replies
		if !ok {
			return renderDoneMsg{}
		}
		return renderReplyMsg{reply: reply}
	}
}

type dirChangedMsg struct {
	path string
}

type watchDoneMsg struct{}

func waitForDirChange(w *browse.Watcher) tea.Cmd {
	return func() tea.Msg {
		path, ok := <-w.Events()
		if !ok {
			return watchDoneMsg{}
		}
		return dirChangedMsg{path: path}
	}
}

// updatePreview loads the selected row's content. Surfaces show immediately;
// vector and document content dispatch a render command and show once the
// reply lands.
func (m *Model) updatePreview() tea.Cmd {
	cur, ok := m.listing.Current()
	if !ok {
		m.preview = preview{}
		return nil
	}
	content := m.backend.Image(cur, browse.ImageParams{Mode: m.pageMode})
	m.preview = preview{ref: content.Ref, name: cur.Row.Name}
	switch {
	case content.SVG != nil && m.sender != nil:
		m.preview.loading = true
		size := pix.Size{W: content.SVG.ViewBox.W, H: content.SVG.ViewBox.H}
		zoom, viewport := m.fitZoom(size)
		m.sender.Send(render.SVGCommand{Ref: content.Ref, Icon: content.SVG, Zoom: zoom, Viewport: viewport})
	case content.Doc != nil && m.sender != nil:
		m.preview.loading = true
		zoom, viewport := m.fitZoom(content.Doc.Size)
		m.sender.Send(render.DocCommand{Ref: content.Ref, Mode: content.Doc.Mode, Zoom: zoom, Viewport: viewport})
	default:
		m.preview.surface = content.Surface
	}
	return nil
}

// fitZoom scales a content size to fill the preview pane's pixel grid (one
// column wide, two pixels per row with half blocks).
func (m *Model) fitZoom(size pix.Size) (pix.Zoom, pix.Rect) {
	pw, ph := m.previewPixelSize()
	if size.W <= 0 || size.H <= 0 || pw <= 0 || ph <= 0 {
		zoom := pix.NewZoom(size)
		return zoom, zoom.ImageRect()
	}
	scale := float64(pw) / size.W
	if s := float64(ph) / size.H; s < scale {
		scale = s
	}
	zoom := pix.Zoom{Scale: scale, Image: size}
	return zoom, zoom.ImageRect()
}

func (m *Model) previewPixelSize() (int, int) {
	w := m.previewPanelWidth() - 2
	h := m.height - 4
	if w < 1 || h < 1 {
		return 0, 0
	}
	return w, h * 2
}

func (m *Model) handleRenderReplyMsg(msg tea.Msg) tea.Cmd {
	replyMsg, ok := msg.(renderReplyMsg)
	if !ok {
		return nil
	}
	reply := replyMsg.reply
	if !m.sender.Stale(reply) && reply.Ref == m.preview.ref {
		m.preview.surface = reply.Surface
		m.preview.loading = false
	}
	if m.replies != nil {
		return waitForRenderReply(m.replies)
	}
	return nil
}

func (m *Model) handleRenderDoneMsg(tea.Msg) tea.Cmd {
	m.replies = nil
	return nil
}

// surfaceLines converts a surface to terminal rows of half-block cells, two
// pixels per row, scaled down to fit the given cell budget.
func surfaceLines(s *pix.Surface, maxCols, maxRows int) []string {
	if s == nil || maxCols < 1 || maxRows < 1 {
		return nil
	}
	w, h := s.Width(), s.Height()
	if w < 1 || h < 1 {
		return nil
	}
	maxH := maxRows * 2
	if w > maxCols || h > maxH {
		scale := float64(maxCols) / float64(w)
		if v := float64(maxH) / float64(h); v < scale {
			scale = v
		}
		sw := int(float64(w) * scale)
		sh := int(float64(h) * scale)
		if sw < 1 {
			sw = 1
		}
		if sh < 1 {
			sh = 1
		}
		s = s.Scaled(sw, sh)
		w, h = sw, sh
	}
	lines := make([]string, 0, (h+1)/2)
	var b strings.Builder
	for y := 0; y < h; y += 2 {
		b.Reset()
		for x := 0; x < w; x++ {
			top := cellColor(s.RGBA.At(x, y))
			style := lipgloss.NewStyle().Foreground(top)
			if y+1 < h {
				style = style.Background(cellColor(s.RGBA.At(x, y+1)))
			}
			b.WriteString(style.Render("▀"))
		}
		lines = append(lines, b.String())
	}
	return lines
}

func cellColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8)))
}
