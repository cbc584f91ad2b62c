package events

import "loupe/internal/logging"

type RenderTracer struct{}

var Render = RenderTracer{}

func (RenderTracer) Dispatch(id uint32, kind string) {
	logging.Trace("render.dispatch", map[string]interface{}{"id": id, "kind": kind})
}

// Skip records a command dropped before rasterizing because a newer one was
// already queued.
func (RenderTracer) Skip(id, latest uint32) {
	logging.Trace("render.skip", map[string]interface{}{"id": id, "latest": latest})
}

// Discard records a finished result dropped because its id was superseded.
func (RenderTracer) Discard(id, latest uint32) {
	logging.Trace("render.discard", map[string]interface{}{"id": id, "latest": latest})
}

func (RenderTracer) Done(id uint32, width, height int) {
	logging.Trace("render.done", map[string]interface{}{"id": id, "width": width, "height": height})
}

func (RenderTracer) Failed(id uint32, err error) {
	payload := map[string]interface{}{"id": id}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("render.failed", payload)
}
