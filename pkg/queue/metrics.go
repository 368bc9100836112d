// Package queue tracks counters for the in-process embedding queue.
package queue

import "sync/atomic"

// Metrics is shared by the publisher (enqueue side) and the consumer
// (dequeue side). All counters are monotonic except Pending, which is
// derived.
type Metrics struct {
	queued    atomic.Int64
	processed atomic.Int64
	failed    atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) MarkQueued() {
	m.queued.Add(1)
}

func (m *Metrics) MarkProcessed() {
	m.processed.Add(1)
}

func (m *Metrics) MarkFailed() {
	m.failed.Add(1)
}

func (m *Metrics) Queued() int64    { return m.queued.Load() }
func (m *Metrics) Processed() int64 { return m.processed.Load() }
func (m *Metrics) Failed() int64    { return m.failed.Load() }

// Pending is jobs accepted but not yet resolved either way. Clamped at
// zero: a consumer may have drained jobs queued by a previous process.
func (m *Metrics) Pending() int64 {
	pending := m.queued.Load() - m.processed.Load() - m.failed.Load()
	if pending < 0 {
		return 0
	}
	return pending
}
