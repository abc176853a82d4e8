package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	return &Client{send: make(chan []byte, sendBuffer)}
}

func recv(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case payload := <-c.send:
		return payload
	case <-time.After(time.Second):
		t.Fatal("no payload delivered")
		return nil
	}
}

func assertSilent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case payload := <-c.send:
		t.Fatalf("unexpected payload: %s", payload)
	default:
	}
}

func TestBroadcastIsRoomScopedAndSkipsSender(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	a, b, other := newTestClient(), newTestClient(), newTestClient()
	hub.Register(a)
	hub.Register(b)
	hub.Register(other)
	hub.Join(a, "R1")
	hub.Join(b, "R1")
	hub.Join(other, "R2")

	payload, err := json.Marshal(Envelope{
		Event: EventSeatStatusUpdate,
		Data:  &SeatEvent{ID: "L-101", Status: "Paid", Seat: "A3", Shift: "S1"},
	})
	require.NoError(t, err)

	hub.Broadcast("R1", a, payload)

	var got Envelope
	require.NoError(t, json.Unmarshal(recv(t, b), &got))
	assert.Equal(t, EventSeatStatusUpdate, got.Event)
	require.NotNil(t, got.Data)
	assert.Equal(t, "L-101", got.Data.ID)
	assert.Equal(t, "Paid", got.Data.Status)
	assert.Equal(t, "A3", got.Data.Seat)
	assert.Equal(t, "S1", got.Data.Shift)

	// Delivery for this broadcast finished before b saw it, so silence on
	// the other channels is conclusive.
	assertSilent(t, a)
	assertSilent(t, other)
}

func TestBroadcastWithoutRoomUsesSenderRooms(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	a, b, c, stranger := newTestClient(), newTestClient(), newTestClient(), newTestClient()
	for _, cl := range []*Client{a, b, c, stranger} {
		hub.Register(cl)
	}
	hub.Join(a, "R1")
	hub.Join(b, "R1")
	hub.Join(a, "R2")
	hub.Join(c, "R2")
	hub.Join(stranger, "R3")

	hub.Broadcast("", a, []byte(`{"event":"seatStatusUpdate"}`))

	assert.NotNil(t, recv(t, b))
	assert.NotNil(t, recv(t, c))
	assertSilent(t, a)
	assertSilent(t, stranger)
}

func TestSlowConsumerIsDropped(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	a, slow := newTestClient(), newTestClient()
	hub.Register(a)
	hub.Register(slow)
	hub.Join(a, "R1")
	hub.Join(slow, "R1")

	// Overflow the send buffer without draining it.
	for i := 0; i <= sendBuffer; i++ {
		hub.Broadcast("R1", a, []byte("seat update"))
	}

	require.Eventually(t, func() bool {
		// A dropped client has its send channel closed once the buffered
		// payloads are drained.
		for {
			select {
			case _, open := <-slow.send:
				if !open {
					return true
				}
			default:
				return false
			}
		}
	}, time.Second, 10*time.Millisecond)
}

func TestUnregisterIsIdempotent(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	c := newTestClient()
	hub.Register(c)
	hub.Join(c, "R1")
	hub.Unregister(c)
	hub.Unregister(c)

	// The room must be gone: a broadcast to it delivers nothing.
	a := newTestClient()
	hub.Register(a)
	hub.Broadcast("R1", a, []byte("x"))
	time.Sleep(20 * time.Millisecond)
	assertSilent(t, a)
}
