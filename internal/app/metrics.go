package app

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Metrics tracks how long decoration updates and frames take.
type Metrics struct {
	// Decoration updates
	updateCount   atomic.Uint64
	updateTotalNs atomic.Int64
	updateMaxNs   atomic.Int64
	rebuilds      atomic.Uint64

	// Frames
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64

	// File reloads
	reloads      atomic.Uint64
	reloadErrors atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordUpdate records one adapter update and whether it rebuilt.
func (m *Metrics) RecordUpdate(duration time.Duration, rebuilt bool) {
	ns := duration.Nanoseconds()
	m.updateCount.Add(1)
	m.updateTotalNs.Add(ns)
	if rebuilt {
		m.rebuilds.Add(1)
	}

	// Update max (atomic compare-and-swap loop)
	for {
		old := m.updateMaxNs.Load()
		if ns <= old {
			break
		}
		if m.updateMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordFrame records frame timing.
func (m *Metrics) RecordFrame(duration time.Duration) {
	m.frameCount.Add(1)
	m.frameTotalNs.Add(duration.Nanoseconds())
}

// RecordReload records a document or settings reload.
func (m *Metrics) RecordReload(err error) {
	m.reloads.Add(1)
	if err != nil {
		m.reloadErrors.Add(1)
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	updates := m.updateCount.Load()
	frames := m.frameCount.Load()

	var avgUpdate, avgFrame time.Duration
	if updates > 0 {
		avgUpdate = time.Duration(m.updateTotalNs.Load() / int64(updates))
	}
	if frames > 0 {
		avgFrame = time.Duration(m.frameTotalNs.Load() / int64(frames))
	}

	return MetricsSnapshot{
		Uptime:       time.Since(m.startTime),
		Updates:      updates,
		Rebuilds:     m.rebuilds.Load(),
		AvgUpdate:    avgUpdate,
		MaxUpdate:    time.Duration(m.updateMaxNs.Load()),
		Frames:       frames,
		AvgFrame:     avgFrame,
		Reloads:      m.reloads.Load(),
		ReloadErrors: m.reloadErrors.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	Updates      uint64
	Rebuilds     uint64
	AvgUpdate    time.Duration
	MaxUpdate    time.Duration
	Frames       uint64
	AvgFrame     time.Duration
	Reloads      uint64
	ReloadErrors uint64
}

// RebuildRate returns the share of updates that rebuilt decorations, in percent.
func (s MetricsSnapshot) RebuildRate() float64 {
	if s.Updates == 0 {
		return 0
	}
	return float64(s.Rebuilds) / float64(s.Updates) * 100
}

func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("updates=%d rebuilds=%d (%.0f%%) avg=%s max=%s frames=%d avg=%s reloads=%d/%d",
		s.Updates, s.Rebuilds, s.RebuildRate(), s.AvgUpdate, s.MaxUpdate,
		s.Frames, s.AvgFrame, s.Reloads, s.ReloadErrors)
}
