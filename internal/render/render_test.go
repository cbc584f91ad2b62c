package render

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/srwiley/oksvg"

	"loupe/internal/browse"
	"loupe/internal/pix"
)

func testIcon(t *testing.T) *oksvg.SvgIcon {
	t.Helper()
	src := `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10" fill="#ffffff"/></svg>`
	icon, err := pix.ParseSVG("box.svg", []byte(src))
	if err != nil {
		t.Fatalf("parse svg: %v", err)
	}
	return icon
}

func svgCommand(icon *oksvg.SvgIcon) SVGCommand {
	return SVGCommand{
		Ref:      browse.Reference{Backend: browse.BackendRef{Kind: browse.KindFilesystem, Path: "/x"}},
		Icon:     icon,
		Zoom:     pix.NewZoom(pix.Size{W: 10, H: 10}),
		Viewport: pix.NewRect(0, 0, 10, 10),
	}
}

func TestSendStampsMonotonicIDs(t *testing.T) {
	const workers, each = 4, 25
	requests := make(chan request, workers*each)
	s := &Sender{counter: &atomic.Uint32{}, requests: requests}
	icon := testIcon(t)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < each; j++ {
				s.Send(svgCommand(icon))
			}
		}()
	}
	wg.Wait()
	close(requests)

	seen := map[uint32]bool{}
	for req := range requests {
		if seen[req.id] {
			t.Fatalf("id %d issued twice", req.id)
		}
		seen[req.id] = true
	}
	if len(seen) != workers*each {
		t.Fatalf("stamped %d ids, want %d", len(seen), workers*each)
	}
	if s.Latest() != workers*each {
		t.Fatalf("Latest() = %d, want %d", s.Latest(), workers*each)
	}
}

func TestStaleCommandSkipped(t *testing.T) {
	counter := &atomic.Uint32{}
	requests := make(chan request, 2)
	replies := make(chan Reply, 2)
	s := &Sender{counter: counter, requests: requests}
	icon := testIcon(t)

	// Queue two commands before the worker runs; only the newest id
	// matches the counter when dequeued.
	s.Send(svgCommand(icon))
	s.Send(svgCommand(icon))
	close(requests)

	w := &worker{
		counter:  counter,
		requests: requests,
		replies:  replies,
	}
	w.run()

	var got []Reply
	for reply := range replies {
		got = append(got, reply)
	}
	if len(got) != 1 {
		t.Fatalf("received %d replies, want exactly 1", len(got))
	}
	if got[0].ID != 2 {
		t.Fatalf("reply id = %d, want the newest command", got[0].ID)
	}
	if got[0].Surface == nil || got[0].Surface.Width() != 10 {
		t.Fatalf("reply surface = %v", got[0].Surface)
	}
}

func TestFailureProducesNoReply(t *testing.T) {
	counter := &atomic.Uint32{}
	requests := make(chan request, 1)
	replies := make(chan Reply, 1)
	s := &Sender{counter: counter, requests: requests}

	// A nil icon cannot rasterize; the command must vanish silently.
	s.Send(SVGCommand{Zoom: pix.NewZoom(pix.Size{W: 10, H: 10}), Viewport: pix.NewRect(0, 0, 10, 10)})
	close(requests)

	w := &worker{
		counter:  counter,
		requests: requests,
		replies:  replies,
	}
	w.run()

	if reply, ok := <-replies; ok {
		t.Fatalf("failure produced a reply: %+v", reply)
	}
}

func TestWorkerKeepsOnlyLatestBackend(t *testing.T) {
	w := &worker{}
	first := browse.BackendRef{Kind: browse.KindFilesystem, Path: t.TempDir()}
	second := browse.BackendRef{Kind: browse.KindFilesystem, Path: t.TempDir()}

	a := w.backend(first)
	if w.backend(first) != a {
		t.Fatal("repeated reference must reuse the cached backend")
	}

	b := w.backend(second)
	if b == a {
		t.Fatal("new reference must build a new backend")
	}
	if w.cachedRef != second {
		t.Fatalf("cached reference = %+v, want %+v", w.cachedRef, second)
	}
	if w.cached != b {
		t.Fatal("only the latest backend may stay cached")
	}
}

func TestStaleReplyDetection(t *testing.T) {
	s := &Sender{counter: &atomic.Uint32{}, requests: make(chan request, 4)}
	icon := testIcon(t)
	id := s.Send(svgCommand(icon))
	if s.Stale(Reply{ID: id}) {
		t.Fatal("newest reply must not be stale")
	}
	s.Send(svgCommand(icon))
	if !s.Stale(Reply{ID: id}) {
		t.Fatal("superseded reply must be stale")
	}
}

func TestStartRoundTrip(t *testing.T) {
	sender, replies := Start()
	defer sender.Close()

	id := sender.Send(svgCommand(testIcon(t)))
	select {
	case reply := <-replies:
		if reply.ID != id {
			t.Fatalf("reply id = %d, want %d", reply.ID, id)
		}
		if reply.Surface == nil || reply.Surface.Width() != 10 || reply.Surface.Height() != 10 {
			t.Fatalf("unexpected surface: %v", reply.Surface)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reply from the render worker")
	}
}
