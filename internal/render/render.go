// Package render runs rasterization off the UI loop. Every command is
// stamped from a shared monotonic counter; the worker drops commands that
// are already stale when dequeued and results that were superseded while
// rasterizing, so at most the newest request produces a reply. Failures are
// logged and produce no reply at all.
package render

import (
	"sync/atomic"

	"github.com/srwiley/oksvg"

	"loupe/internal/browse"
	"loupe/internal/doc"
	"loupe/internal/logging/events"
	"loupe/internal/pix"
)

// Command is one rasterization request.
type Command interface {
	kind() string
}

// DocCommand asks for a document page unit at the given zoom.
type DocCommand struct {
	Ref      browse.Reference
	Mode     doc.PageMode
	Zoom     pix.Zoom
	Viewport pix.Rect
}

func (DocCommand) kind() string { return "doc" }

// SVGCommand asks for a vector image rasterized at the given zoom.
type SVGCommand struct {
	Ref      browse.Reference
	Icon     *oksvg.SvgIcon
	Zoom     pix.Zoom
	Viewport pix.Rect
}

func (SVGCommand) kind() string { return "svg" }

type request struct {
	id  uint32
	cmd Command
}

// Reply carries a finished surface back to the UI, tagged with the id and
// reference it was requested under so the receiver can drop late arrivals.
type Reply struct {
	ID      uint32
	Ref     browse.Reference
	Zoom    pix.Zoom
	Surface *pix.Surface
}

// Sender stamps commands with fresh ids and queues them for the worker. It
// is safe for concurrent use; ids are strictly increasing across callers.
type Sender struct {
	counter  *atomic.Uint32
	requests chan<- request
}

// Send queues a command under a fresh id and returns that id. Stamping and
// queueing are not atomic together, so the worker compares against the
// counter rather than assuming arrival order.
func (s *Sender) Send(cmd Command) uint32 {
	id := s.counter.Add(1)
	events.Render.Dispatch(id, cmd.kind())
	s.requests <- request{id: id, cmd: cmd}
	return id
}

// Latest returns the newest id ever stamped.
func (s *Sender) Latest() uint32 { return s.counter.Load() }

// Stale reports whether a reply has been superseded by a newer command.
func (s *Sender) Stale(r Reply) bool { return r.ID != s.counter.Load() }

// Close stops the worker once the queue drains; the reply channel closes
// after it.
func (s *Sender) Close() { close(s.requests) }
