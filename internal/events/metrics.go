package events

import (
	"sync/atomic"
	"time"
)

// Metrics counts bus traffic. Counters are atomic so the batcher and
// publishers can update them without holding the bus lock.
type Metrics struct {
	queued      atomic.Int64
	rejected    atomic.Int64
	batches     atomic.Int64
	dropped     atomic.Int64
	subscribers atomic.Int32
	startTime   time.Time
}

func newMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// MetricsSnapshot is a point-in-time copy of the bus counters
type MetricsSnapshot struct {
	EventsQueued   int64     `json:"events_queued"`
	EventsRejected int64     `json:"events_rejected"` // full queue or closed bus
	BatchesSent    int64     `json:"batches_sent"`
	BatchesDropped int64     `json:"batches_dropped"` // per subscriber
	Subscribers    int32     `json:"subscribers"`
	StartTime      time.Time `json:"start_time"`
	Uptime         string    `json:"uptime"`
}

// Snapshot returns the current counter values
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		EventsQueued:   m.queued.Load(),
		EventsRejected: m.rejected.Load(),
		BatchesSent:    m.batches.Load(),
		BatchesDropped: m.dropped.Load(),
		Subscribers:    m.subscribers.Load(),
		StartTime:      m.startTime,
		Uptime:         time.Since(m.startTime).Round(time.Millisecond).String(),
	}
}
