package sse

import (
	"bufio"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/RichTeaMan/timer/observability"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

func receive(t *testing.T, c *Client) Frame {
	t.Helper()
	select {
	case f, ok := <-c.Frames():
		if !ok {
			t.Fatal("client closed")
		}
		return f
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a frame")
	}
	return Frame{}
}

func TestClientSend(t *testing.T) {
	c := NewClient("run:1:a", WithRunID("1"), WithBuffer(2))
	if c.ID() != "run:1:a" || c.RunID() != "1" {
		t.Fatalf("unexpected client %q %q", c.ID(), c.RunID())
	}

	if !c.Send(Frame{Event: "tick"}) || !c.Send(Frame{Event: "tick"}) {
		t.Fatal("expected sends within the buffer to succeed")
	}
	if c.Send(Frame{Event: "overflow"}) {
		t.Error("expected send to fail when the buffer is full")
	}
	if c.Dropped() != 1 {
		t.Errorf("expected 1 dropped frame, got %d", c.Dropped())
	}
	if f := <-c.Frames(); f.Event != "tick" {
		t.Errorf("unexpected frame %+v", f)
	}
}

func TestClientCloseTwice(t *testing.T) {
	c := NewClient("run:1:a")
	c.Close()
	c.Close()
	if _, open := <-c.Frames(); open {
		t.Error("expected channel to be closed")
	}
}

func TestClientMetadata(t *testing.T) {
	c := NewClient("x", WithMetadata("a", "1"), WithMetadata("b", "2"), WithBuffer(0))
	if len(c.Metadata()) != 2 || c.Metadata()["b"] != "2" {
		t.Errorf("unexpected metadata %v", c.Metadata())
	}
	if cap(c.frames) != DefaultClientBuffer {
		t.Errorf("expected a non-positive buffer to keep the default, got %d", cap(c.frames))
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := startHub(t)
	c := NewClient("run:1:a")

	if !hub.Register(c) {
		t.Fatal("expected Register to succeed")
	}
	waitFor(t, "registration", func() bool { return hub.ClientCount() == 1 })
	if hub.Client("run:1:a") != c {
		t.Error("expected Client to return the registered client")
	}
	if ids := hub.ClientIDs(); len(ids) != 1 || ids[0] != "run:1:a" {
		t.Errorf("ClientIDs() = %v", ids)
	}

	hub.Unregister(c)
	waitFor(t, "unregistration", func() bool { return hub.ClientCount() == 0 })
	if _, open := <-c.Frames(); open {
		t.Error("expected Unregister to close the client")
	}
}

func TestHubReplacesDuplicateID(t *testing.T) {
	hub := startHub(t)
	first, second := NewClient("run:1:a"), NewClient("run:1:a")
	hub.Register(first)
	hub.Register(second)
	waitFor(t, "replacement", func() bool { return hub.Client("run:1:a") == second })

	if _, open := <-first.Frames(); open {
		t.Error("expected the replaced client to be closed")
	}

	hub.Unregister(first)
	hub.Broadcast("run:1:*", "tick", []byte("{}"))
	if f := receive(t, second); f.Event != "tick" {
		t.Errorf("expected the replacement to stay registered, got %+v", f)
	}
}

func TestHubBroadcastPattern(t *testing.T) {
	hub := startHub(t)
	a1, a2, b := NewClient("run:a:1"), NewClient("run:a:2"), NewClient("run:b:1")
	for _, c := range []*Client{a1, a2, b} {
		hub.Register(c)
	}
	waitFor(t, "clients", func() bool { return hub.ClientCount() == 3 })

	hub.Broadcast("run:a:*", "transition", []byte(`{"to":"COMPLETED"}`))
	for _, c := range []*Client{a1, a2} {
		f := receive(t, c)
		if f.Event != "transition" || string(f.Data) != `{"to":"COMPLETED"}` {
			t.Errorf("unexpected frame %+v", f)
		}
	}

	hub.Broadcast("run:*", "completed", nil)
	for _, c := range []*Client{a1, a2, b} {
		if f := receive(t, c); f.Event != "completed" {
			t.Errorf("expected completed, got %+v", f)
		}
	}
	select {
	case f := <-b.Frames():
		t.Errorf("run:b client received an unexpected frame %+v", f)
	default:
	}
}

func TestHubStop(t *testing.T) {
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		hub.Run()
		close(done)
	}()

	c := NewClient("run:1:a")
	hub.Register(c)
	hub.Stop()
	hub.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
	if _, open := <-c.Frames(); open {
		t.Error("expected clients to be closed on Stop")
	}

	late := NewClient("run:1:b")
	if hub.Register(late) {
		t.Error("expected Register to fail after Stop")
	}
	hub.Unregister(late)
	hub.Broadcast("*", "tick", nil)
}

func TestHubConcurrentOperations(t *testing.T) {
	hub := startHub(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := NewClient("run:x:" + string(rune('a'+i)))
			hub.Register(c)
			hub.Broadcast("run:x:*", "tick", []byte("{}"))
			hub.Unregister(c)
		}(i)
	}
	wg.Wait()
	waitFor(t, "all clients gone", func() bool { return hub.ClientCount() == 0 })
}

func TestWriteFrame(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  string
	}{
		{"event and data", Frame{Event: "tick", Data: []byte(`{"a":1}`)}, "event: tick\ndata: {\"a\":1}\n\n"},
		{"data only", Frame{Data: []byte("x")}, "data: x\n\n"},
		{"multi-line", Frame{Event: "m", Data: []byte("a\nb")}, "event: m\ndata: a\ndata: b\n\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteFrame(&buf, tc.frame); err != nil {
				t.Fatalf("WriteFrame failed: %v", err)
			}
			if buf.String() != tc.want {
				t.Errorf("expected %q, got %q", tc.want, buf.String())
			}
		})
	}
}

func TestComponentLifecycle(t *testing.T) {
	comp := NewComponent("/runs/:id/stream")
	ctx := context.Background()

	if h := comp.Health(ctx); h.Status != observability.HealthStatusDown {
		t.Errorf("expected down before Start, got %s", h.Status)
	}
	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := comp.Start(ctx); err != nil {
		t.Fatalf("second Start failed: %v", err)
	}

	comp.Hub().Register(NewClient("run:1:a"))
	waitFor(t, "registration", func() bool { return comp.Hub().ClientCount() == 1 })
	h := comp.Health(ctx)
	if h.Status != observability.HealthStatusUp || !strings.Contains(h.Message, "1 clients") {
		t.Errorf("unexpected health %+v", h)
	}

	if err := comp.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if h := comp.Health(ctx); h.Status != observability.HealthStatusDown {
		t.Errorf("expected down after Stop, got %s", h.Status)
	}
	if comp.Name() != "sse" {
		t.Errorf("unexpected name %q", comp.Name())
	}
	if d := comp.Describe(); d.Type != "sse" || !strings.Contains(d.Details, "/runs/:id/stream") {
		t.Errorf("unexpected description %+v", d)
	}
}

func TestServeSSE(t *testing.T) {
	hub := startHub(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeSSE(hub, w, r, "run:7:abc", StreamOptions{
			KeepAlive: time.Hour,
			Initial:   []Frame{{Event: "snapshot", Data: []byte(`{"clock":0}`)}},
		}, WithRunID("7"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, http.NoBody)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("expected text/event-stream, got %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	readFrame := func() string {
		var b strings.Builder
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				t.Fatalf("read failed: %v", err)
			}
			if line == "\n" {
				return b.String()
			}
			b.WriteString(line)
		}
	}

	if f := readFrame(); !strings.Contains(f, "event: connected") || !strings.Contains(f, `"runId":"7"`) {
		t.Errorf("unexpected connected frame %q", f)
	}
	if f := readFrame(); !strings.Contains(f, "event: snapshot") {
		t.Errorf("expected the initial snapshot frame, got %q", f)
	}

	waitFor(t, "registration", func() bool { return hub.ClientCount() == 1 })
	hub.Broadcast("run:7:*", "tick", []byte(`{"clock":1}`))
	if f := readFrame(); f != "event: tick\ndata: {\"clock\":1}\n" {
		t.Errorf("unexpected tick frame %q", f)
	}

	cancel()
	waitFor(t, "disconnect", func() bool { return hub.ClientCount() == 0 })
}
