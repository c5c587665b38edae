package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	b := NoopBoardHooks{}
	b.OnInitialized("s1", 17, 15, time.Millisecond)
	b.OnPlacementExhausted("s1", 16, 100)
	b.OnViewportChange("s1", 1280, 720, 180, 15)
	b.OnDragCommitted("s1", "sticker-3", true)
	b.OnClosed("s1")

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "svg")
	c.OnCacheMiss(ctx, "svg")
	c.OnCacheSet(ctx, "svg", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/sessions/{id}")
	h.OnResponse(ctx, "GET", "/sessions/{id}", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Board().(NoopBoardHooks); !ok {
		t.Error("Board() should return NoopBoardHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customBoard := &testBoardHooks{}
	SetBoardHooks(customBoard)
	if Board() != customBoard {
		t.Error("SetBoardHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// nil does not replace registered hooks
	SetBoardHooks(nil)
	if Board() != customBoard {
		t.Error("SetBoardHooks(nil) should be ignored")
	}

	Reset()
	if _, ok := Board().(NoopBoardHooks); !ok {
		t.Error("Reset() should restore NoopBoardHooks")
	}
}

func TestCustomBoardHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testBoardHooks{}
	SetBoardHooks(h)

	Board().OnInitialized("s", 3, 2, 0)
	Board().OnPlacementExhausted("s", 2, 100)

	if h.initialized != 1 || h.exhausted != 1 {
		t.Errorf("got initialized=%d exhausted=%d, want 1 and 1", h.initialized, h.exhausted)
	}
}

type testBoardHooks struct {
	NoopBoardHooks
	initialized int
	exhausted   int
}

func (h *testBoardHooks) OnInitialized(string, int, int, time.Duration) { h.initialized++ }
func (h *testBoardHooks) OnPlacementExhausted(string, int, int)         { h.exhausted++ }

type testCacheHooks struct{ NoopCacheHooks }

type testHTTPHooks struct{ NoopHTTPHooks }
