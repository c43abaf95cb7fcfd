package server

import (
	"sync/atomic"
	"time"
)

// Metrics holds server runtime counters
type Metrics struct {
	ConnectionsTotal   atomic.Int64
	AcceptFailures     atomic.Int64
	RequestsServed     atomic.Int64
	ParseFailures      atomic.Int64
	ConnectionFailures atomic.Int64

	TotalLatencyNs atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

type outcome int

const (
	outcomeServed outcome = iota
	outcomeRejected
	outcomeFailed
)

// RecordConnection records one handled connection
func (m *Metrics) RecordConnection(o outcome, duration time.Duration) {
	m.ConnectionsTotal.Add(1)
	m.TotalLatencyNs.Add(duration.Nanoseconds())

	switch o {
	case outcomeServed:
		m.RequestsServed.Add(1)
	case outcomeRejected:
		m.ParseFailures.Add(1)
	case outcomeFailed:
		m.ConnectionFailures.Add(1)
	}
}

// AverageLatency returns average connection handling time
func (m *Metrics) AverageLatency() time.Duration {
	total := m.ConnectionsTotal.Load()
	if total == 0 {
		return 0
	}
	return time.Duration(m.TotalLatencyNs.Load() / total)
}

type MetricsSnapshot struct {
	ConnectionsTotal   int64
	AcceptFailures     int64
	RequestsServed     int64
	ParseFailures      int64
	ConnectionFailures int64
	AverageLatency     time.Duration
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		ConnectionsTotal:   m.ConnectionsTotal.Load(),
		AcceptFailures:     m.AcceptFailures.Load(),
		RequestsServed:     m.RequestsServed.Load(),
		ParseFailures:      m.ParseFailures.Load(),
		ConnectionFailures: m.ConnectionFailures.Load(),
		AverageLatency:     m.AverageLatency(),
	}
}
