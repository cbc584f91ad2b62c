package render

import (
	"sync/atomic"

	"loupe/internal/browse"
	"loupe/internal/logging/events"
	"loupe/internal/pix"
)

// worker drains the request queue on its own goroutine. The backend for the
// most recent reference is reconstructed and kept open, so consecutive pages
// of one document reuse the handle; moving to another container discards it.
type worker struct {
	counter   *atomic.Uint32
	requests  <-chan request
	replies   chan<- Reply
	cachedRef browse.BackendRef
	cached    browse.Backend
}

// Start spins up the render worker and returns the sender the UI dispatches
// through plus the channel its replies arrive on.
func Start() (*Sender, <-chan Reply) {
	counter := &atomic.Uint32{}
	requests := make(chan request, 32)
	replies := make(chan Reply, 4)
	w := &worker{
		counter:  counter,
		requests: requests,
		replies:  replies,
	}
	go w.run()
	return &Sender{counter: counter, requests: requests}, replies
}

func (w *worker) run() {
	defer close(w.replies)
	defer func() {
		if w.cached != nil {
			browse.Discard(w.cached)
		}
	}()
	for req := range w.requests {
		if latest := w.counter.Load(); req.id != latest {
			events.Render.Skip(req.id, latest)
			continue
		}
		reply, ok := w.render(req)
		if !ok {
			continue
		}
		if latest := w.counter.Load(); req.id != latest {
			events.Render.Discard(req.id, latest)
			continue
		}
		events.Render.Done(req.id, reply.Surface.Width(), reply.Surface.Height())
		w.replies <- reply
	}
}

func (w *worker) render(req request) (Reply, bool) {
	switch cmd := req.cmd.(type) {
	case DocCommand:
		surface, ok := w.backend(cmd.Ref.Backend).Render(cmd.Ref.Item, cmd.Mode, cmd.Zoom, cmd.Viewport)
		if !ok {
			events.Render.Failed(req.id, nil)
			return Reply{}, false
		}
		return Reply{ID: req.id, Ref: cmd.Ref, Zoom: cmd.Zoom, Surface: surface}, true
	case SVGCommand:
		surface, ok := pix.RenderSVG(cmd.Zoom, cmd.Viewport, cmd.Icon)
		if !ok {
			events.Render.Failed(req.id, nil)
			return Reply{}, false
		}
		return Reply{ID: req.id, Ref: cmd.Ref, Zoom: cmd.Zoom, Surface: surface}, true
	}
	events.Render.Failed(req.id, nil)
	return Reply{}, false
}

func (w *worker) backend(ref browse.BackendRef) browse.Backend {
	if w.cached != nil && w.cachedRef == ref {
		return w.cached
	}
	if w.cached != nil {
		browse.Discard(w.cached)
	}
	w.cachedRef = ref
	w.cached = browse.NewFromRef(ref)
	return w.cached
}
