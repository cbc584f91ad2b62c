package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"loupe/internal/browse"
	"loupe/internal/doc"
	"loupe/internal/render"
	"loupe/internal/theme"
	uistate "loupe/internal/ui/state"
)

type listing = uistate.Listing

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options carries the user-facing settings the model starts with.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	PageMode   doc.PageMode
	Bookmarks  []browse.Bookmark
}

// Model is the Bubble Tea model: the current backend and its listing on the
// left, the preview of the selected row on the right. Rasterization runs on
// the render worker; the model only dispatches commands and consumes replies.
type Model struct {
	backend   browse.Backend
	listing   *listing
	catFilter browse.Filter
	sorts     map[string]browse.Sort
	pageMode  doc.PageMode
	bookmarks []browse.Bookmark

	preview preview
	sender  *render.Sender
	replies <-chan render.Reply
	watcher *browse.Watcher

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	filterActive      bool
	filterCursor      cursor.Model
	filterCursorDirty bool

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the UI over a starting backend and a running render
// pipeline.
func NewModel(start browse.Backend, sender *render.Sender, replies <-chan render.Reply, watcher *browse.Watcher, opts Options) *Model {
	m := &Model{
		sorts:      map[string]browse.Sort{},
		pageMode:   opts.PageMode,
		bookmarks:  opts.Bookmarks,
		sender:     sender,
		replies:    replies,
		watcher:    watcher,
		showFooter: opts.ShowFooter,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	m.showBackend(start, browse.First())
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.replies != nil {
		cmds = append(cmds, waitForRenderReply(m.replies))
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForDirChange(m.watcher))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(renderReplyMsg{}):    m.handleRenderReplyMsg,
		reflect.TypeOf(renderDoneMsg{}):     m.handleRenderDoneMsg,
		reflect.TypeOf(dirChangedMsg{}):     m.handleDirChangedMsg,
		reflect.TypeOf(watchDoneMsg{}):      m.handleWatchDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
