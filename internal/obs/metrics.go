package obs

import (
	"sort"
	"strings"
	"sync"
)

// Label is a key/value pair attached to measurements.
type Label struct {
	Key   string
	Value string
}

// Meter is a very small interface for emitting counters/histograms.
// Implementations may no-op or bridge to a metrics system.
type Meter interface {
	Counter(name string, value float64, labels ...Label)
	Histogram(name string, value float64, labels ...Label)
}

// NopMeter is a Meter that discards all measurements.
type NopMeter struct{}

func (NopMeter) Counter(name string, value float64, labels ...Label)   {}
func (NopMeter) Histogram(name string, value float64, labels ...Label) {}

// MemMeter accumulates counters in memory, keyed by name and sorted
// labels. Intended for tests and ad-hoc inspection.
type MemMeter struct {
	mu     sync.Mutex
	counts map[string]float64
}

func (m *MemMeter) Counter(name string, value float64, labels ...Label) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]float64)
	}
	m.counts[seriesKey(name, labels)] += value
}

func (m *MemMeter) Histogram(name string, value float64, labels ...Label) {
	// Histograms collapse to a counter of observations here.
	m.Counter(name+"_count", 1, labels...)
}

// Count returns the accumulated counter value for name and labels.
func (m *MemMeter) Count(name string, labels ...Label) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[seriesKey(name, labels)]
}

func seriesKey(name string, labels []Label) string {
	if len(labels) == 0 {
		return name
	}
	ls := make([]string, len(labels))
	for i, l := range labels {
		ls[i] = l.Key + "=" + l.Value
	}
	sort.Strings(ls)
	return name + "{" + strings.Join(ls, ",") + "}"
}
