package events

import "loupe/internal/logging"

type BrowseTracer struct{}

type ListingTracer struct{}

var (
	Browse  = BrowseTracer{}
	Listing = ListingTracer{}
)

func (BrowseTracer) Enter(kind, path, item string) {
	logging.Trace("browse.enter", map[string]interface{}{
		"kind": kind,
		"path": path,
		"item": item,
	})
}

func (BrowseTracer) Leave(kind, path string, target string) {
	logging.Trace("browse.leave", map[string]interface{}{
		"kind":   kind,
		"path":   path,
		"target": target,
	})
}

func (BrowseTracer) Cursor(path string, position int, name string) {
	logging.Trace("browse.cursor", map[string]interface{}{
		"path":     path,
		"position": position,
		"name":     name,
	})
}

func (BrowseTracer) Sort(path, sort string) {
	logging.Trace("browse.sort", map[string]interface{}{"path": path, "sort": sort})
}

func (BrowseTracer) Filter(path, filter string) {
	logging.Trace("browse.filter", map[string]interface{}{"path": path, "filter": filter})
}

func (BrowseTracer) Reload(path string) {
	logging.Trace("browse.reload", map[string]interface{}{"path": path})
}

func (ListingTracer) Skip(container, entry string, err error) {
	payload := map[string]interface{}{"container": container, "entry": entry}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("listing.skip", payload)
}

func (ListingTracer) Failed(container string, err error) {
	payload := map[string]interface{}{"container": container}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("listing.failed", payload)
}
