package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcast(t *testing.T) {
	h := newHub()

	a := h.subscribe(2)
	b := h.subscribe(2)

	h.broadcast([]byte("one"))
	h.broadcast([]byte("two"))

	assert.Equal(t, "one", string(<-a.ch))
	assert.Equal(t, "two", string(<-a.ch))
	assert.Equal(t, "one", string(<-b.ch))

	h.unsubscribe(b)
	h.broadcast([]byte("three"))

	assert.Equal(t, "three", string(<-a.ch))

	// Unsubscribed channel is closed and drained.
	payload, ok := <-b.ch
	require.True(t, ok)
	assert.Equal(t, "two", string(payload))
	_, ok = <-b.ch
	assert.False(t, ok)
}

func TestHubSlowSubscriberDropsUpdates(t *testing.T) {
	h := newHub()

	sub := h.subscribe(1)
	h.broadcast([]byte("one"))
	h.broadcast([]byte("two")) // dropped, buffer full

	assert.Equal(t, "one", string(<-sub.ch))
	select {
	case payload := <-sub.ch:
		t.Fatalf("unexpected payload %q", payload)
	default:
	}
}
