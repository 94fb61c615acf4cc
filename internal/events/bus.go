package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultDebounce is the batching window used when none is configured
const DefaultDebounce = 100 * time.Millisecond

// Bus is an in-process EventPublisher. Events arriving within one debounce
// window are coalesced into a single delivery per subscriber.
type Bus struct {
	mu sync.Mutex

	// Batching configuration
	eventQueue chan Event
	debounce   time.Duration
	closed     bool // Prevent double-close panics

	// Subscribers keyed by an increasing id
	subscribers map[int]chan Event
	nextSubID   int

	// Event tracking
	lastSequence int64
	metrics      *Metrics

	// Context for graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc

	// Batching goroutine
	batcherDone chan struct{}
}

// NewBus creates a bus and starts its batching goroutine.
// A non-positive debounce uses DefaultDebounce.
func NewBus(debounce time.Duration) *Bus {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ctx, cancel := context.WithCancel(context.Background())

	b := &Bus{
		eventQueue:  make(chan Event, 100),
		debounce:    debounce,
		subscribers: make(map[int]chan Event),
		ctx:         ctx,
		cancel:      cancel,
		batcherDone: make(chan struct{}),
		metrics:     newMetrics(),
	}
	go b.startBatcher()
	return b
}

// SendEvent queues an event. It never blocks; a full queue returns ErrQueueFull.
func (b *Bus) SendEvent(event Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		b.metrics.rejected.Add(1)
		return ErrClosed
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case b.eventQueue <- event:
		b.metrics.queued.Add(1)
		return nil
	default:
		b.metrics.rejected.Add(1)
		return ErrQueueFull
	}
}

// Metrics returns the bus counters
func (b *Bus) Metrics() *Metrics {
	return b.metrics
}

// Subscribe registers a new subscriber. The channel has room for one batch;
// a slow subscriber misses intermediate batches but always sees the latest.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, 1)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextSubID
	b.nextSubID++
	b.subscribers[id] = ch
	b.metrics.subscribers.Store(int32(len(b.subscribers)))

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subscribers[id]; ok {
				delete(b.subscribers, id)
				close(sub)
				b.metrics.subscribers.Store(int32(len(b.subscribers)))
			}
		})
	}
}

// Close flushes pending events, stops the batcher and closes every
// subscriber channel.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	b.cancel()
	<-b.batcherDone

	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
	b.metrics.subscribers.Store(0)

	snap := b.metrics.Snapshot()
	slog.Debug("event bus closed",
		"queued", snap.EventsQueued,
		"rejected", snap.EventsRejected,
		"batches", snap.BatchesSent,
		"dropped", snap.BatchesDropped,
		"uptime", snap.Uptime)
	return nil
}

// startBatcher runs in a goroutine and batches events from the queue.
// It delivers one event every debounce window if any events are pending.
// If events of different types are batched together, delivers EventDataChanged.
func (b *Bus) startBatcher() {
	defer close(b.batcherDone)

	ticker := time.NewTicker(b.debounce)
	defer ticker.Stop()

	var pending bool
	var batchType EventType

	add := func(event Event) {
		if !pending {
			pending = true
			batchType = event.Type
			return
		}
		if batchType != event.Type {
			batchType = EventDataChanged
		}
	}

	flushPending := func() {
		if !pending {
			return
		}
		b.deliver(batchType)
		pending = false
	}

	for {
		select {
		case <-b.ctx.Done():
			// Drain whatever is queued, then flush before exiting
			for {
				select {
				case event := <-b.eventQueue:
					add(event)
				default:
					flushPending()
					return
				}
			}

		case event := <-b.eventQueue:
			add(event)

		case <-ticker.C:
			flushPending()
		}
	}
}

// deliver fans one batched event out to every subscriber without blocking
func (b *Bus) deliver(eventType EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastSequence++
	event := Event{
		Type:       eventType,
		Timestamp:  time.Now(),
		SequenceID: b.lastSequence,
	}
	b.metrics.batches.Add(1)

	for id, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// Replace the stale undelivered batch with the newer one
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- event:
			default:
				b.metrics.dropped.Add(1)
				slog.Debug("dropped event for slow subscriber", "subscriber", id, "sequence", event.SequenceID)
			}
		}
	}
}
