package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed unexpectedly")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestBus_CoalescesBurst(t *testing.T) {
	bus := NewBus(200 * time.Millisecond)
	defer bus.Close()

	ch, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	for i := 0; i < 10; i++ {
		require.NoError(t, bus.SendEvent(Event{Type: EventLabelsChanged}))
	}

	ev := receive(t, ch)
	assert.Equal(t, EventLabelsChanged, ev.Type)
	assert.Equal(t, int64(1), ev.SequenceID)

	select {
	case extra := <-ch:
		t.Fatalf("expected a single batched event, got extra %+v", extra)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestBus_MixedTypesBecomeDataChanged(t *testing.T) {
	bus := NewBus(time.Hour) // only Close flushes
	ch, _ := bus.Subscribe()

	require.NoError(t, bus.SendEvent(Event{Type: EventLabelsChanged}))
	require.NoError(t, bus.SendEvent(Event{Type: EventTasksChanged}))
	require.NoError(t, bus.Close())

	ev := receive(t, ch)
	assert.Equal(t, EventDataChanged, ev.Type)

	_, ok := <-ch
	assert.False(t, ok, "subscriber channel should be closed after Close")
}

func TestBus_SendAfterClose(t *testing.T) {
	bus := NewBus(0)
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close(), "double close must be safe")

	assert.ErrorIs(t, bus.SendEvent(Event{Type: EventTasksChanged}), ErrClosed)

	ch, _ := bus.Subscribe()
	_, ok := <-ch
	assert.False(t, ok)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(10 * time.Millisecond)
	defer bus.Close()

	ch, unsubscribe := bus.Subscribe()
	unsubscribe()
	unsubscribe() // idempotent

	_, ok := <-ch
	assert.False(t, ok)
	require.NoError(t, bus.SendEvent(Event{Type: EventTasksChanged}))
}

func TestBus_Metrics(t *testing.T) {
	bus := NewBus(time.Hour)

	_, unsubscribeA := bus.Subscribe()
	_, _ = bus.Subscribe()
	assert.Equal(t, int32(2), bus.Metrics().Snapshot().Subscribers)
	unsubscribeA()

	for i := 0; i < 3; i++ {
		require.NoError(t, bus.SendEvent(Event{Type: EventTasksChanged}))
	}
	snap := bus.Metrics().Snapshot()
	assert.Equal(t, int64(3), snap.EventsQueued)
	assert.Equal(t, int32(1), snap.Subscribers)
	assert.Zero(t, snap.BatchesSent)

	require.NoError(t, bus.Close())
	assert.ErrorIs(t, bus.SendEvent(Event{Type: EventTasksChanged}), ErrClosed)

	snap = bus.Metrics().Snapshot()
	assert.Equal(t, int64(1), snap.BatchesSent, "close flushes the pending batch once")
	assert.Equal(t, int64(1), snap.EventsRejected)
	assert.Zero(t, snap.Subscribers)
	assert.False(t, snap.StartTime.IsZero())
}
