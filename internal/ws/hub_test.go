package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(nil)
	go h.Run(ctx)

	c := &Client{hub: h, send: make(chan []byte, 4)}
	h.register <- c

	h.Broadcast([]byte(`{"event_type":"newOrder"}`))

	select {
	case msg := <-c.send:
		assert.JSONEq(t, `{"event_type":"newOrder"}`, string(msg))
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(nil)
	go h.Run(ctx)

	slow := &Client{hub: h, send: make(chan []byte, 1)}
	h.register <- slow

	h.Broadcast([]byte("one")) // fills the buffer
	h.Broadcast([]byte("two")) // overflows, client is dropped

	// Drain: first the buffered frame, then the closed channel.
	select {
	case msg := <-slow.send:
		assert.Equal(t, "one", string(msg))
	case <-time.After(time.Second):
		t.Fatal("buffered frame missing")
	}
	select {
	case _, ok := <-slow.send:
		assert.False(t, ok, "send channel closed after drop")
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}
}

func TestHubUnregister(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(nil)
	go h.Run(ctx)

	c := &Client{hub: h, send: make(chan []byte, 1)}
	h.register <- c
	h.unregister <- c

	select {
	case _, ok := <-c.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed on unregister")
	}
}

func TestServeWSEndToEnd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(nil)
	go h.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWS(h, nil, w, r)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	defer conn.Close()

	// Registration races the broadcast; retry until the frame lands.
	got := make(chan []byte, 1)
	go func() {
		_, msg, err := conn.ReadMessage()
		if err == nil {
			got <- msg
		}
	}()

	deadline := time.After(2 * time.Second)
	for {
		h.Broadcast([]byte("hello"))
		select {
		case msg := <-got:
			assert.Equal(t, "hello", string(msg))
			return
		case <-deadline:
			t.Fatal("client never received broadcast")
		case <-time.After(50 * time.Millisecond):
		}
	}
}
