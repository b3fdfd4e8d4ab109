// Package performance provides lightweight operation timing for the
// serialization and content endpoints.
package performance

import (
	"sync"
	"time"
)

// Marker represents a single performance measurement for an operation
type Marker struct {
	Operation string        `json:"operation"` // e.g., "serialize_request", "fragment_generate"
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Duration  time.Duration `json:"duration"`
	Success   bool          `json:"success"`
	Completed bool          `json:"completed"`

	tracker *Tracker
}

// Complete marks the operation as finished and records it with its tracker
func (m *Marker) Complete() {
	if m.Completed {
		return
	}
	m.EndTime = time.Now()
	m.Duration = m.EndTime.Sub(m.StartTime)
	m.Completed = true

	if m.tracker != nil {
		m.tracker.record(m)
	}
}

// SetSuccess marks the operation as successful or failed
func (m *Marker) SetSuccess(success bool) {
	m.Success = success
}

// OperationStats aggregates completed markers for one operation name
type OperationStats struct {
	Operation string        `json:"operation"`
	Count     int64         `json:"count"`
	Failures  int64         `json:"failures"`
	Total     time.Duration `json:"total"`
	Max       time.Duration `json:"max"`
}

// Average returns the mean duration across completed operations
func (s OperationStats) Average() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Tracker aggregates operation timings. Markers report back to the tracker
// when completed; only aggregates are retained.
type Tracker struct {
	stats map[string]*OperationStats
	mu    sync.Mutex
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{stats: make(map[string]*OperationStats)}
}

// StartOperation begins timing a named operation
func (t *Tracker) StartOperation(operation string) *Marker {
	return &Marker{
		Operation: operation,
		StartTime: time.Now(),
		tracker:   t,
	}
}

// Snapshot returns a copy of the aggregated stats per operation
func (t *Tracker) Snapshot() []OperationStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]OperationStats, 0, len(t.stats))
	for _, s := range t.stats {
		out = append(out, *s)
	}
	return out
}

func (t *Tracker) record(m *Marker) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.stats[m.Operation]
	if !ok {
		s = &OperationStats{Operation: m.Operation}
		t.stats[m.Operation] = s
	}
	s.Count++
	if !m.Success {
		s.Failures++
	}
	s.Total += m.Duration
	if m.Duration > s.Max {
		s.Max = m.Duration
	}
}
