// Package metrics keeps in-process request counters exposed on the
// /metrics endpoint.
package metrics

import (
	"sync"
	"time"
)

type Collector struct {
	mu             sync.Mutex
	requests       int64
	statusClasses  map[int]int64
	errorsByCode   map[string]int64
	totalDuration  time.Duration
	activeRequests int64
}

func NewCollector() *Collector {
	return &Collector{
		statusClasses: make(map[int]int64),
		errorsByCode:  make(map[string]int64),
	}
}

func (c *Collector) ObserveRequest(status int, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests++
	c.statusClasses[status/100]++
	c.totalDuration += duration
}

func (c *Collector) ObserveError(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorsByCode[code]++
}

func (c *Collector) IncActive() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeRequests++
}

func (c *Collector) DecActive() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeRequests--
}

type Snapshot struct {
	Requests       int64            `json:"requests"`
	StatusClasses  map[string]int64 `json:"status_classes"`
	ErrorsByCode   map[string]int64 `json:"errors_by_code"`
	AvgDurationMS  float64          `json:"avg_duration_ms"`
	ActiveRequests int64            `json:"active_requests"`
}

func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		Requests:       c.requests,
		StatusClasses:  make(map[string]int64, len(c.statusClasses)),
		ErrorsByCode:   make(map[string]int64, len(c.errorsByCode)),
		ActiveRequests: c.activeRequests,
	}
	classNames := map[int]string{2: "2xx", 3: "3xx", 4: "4xx", 5: "5xx"}
	for class, count := range c.statusClasses {
		name, ok := classNames[class]
		if !ok {
			name = "other"
		}
		snap.StatusClasses[name] += count
	}
	for code, count := range c.errorsByCode {
		snap.ErrorsByCode[code] = count
	}
	if c.requests > 0 {
		snap.AvgDurationMS = float64(c.totalDuration.Milliseconds()) / float64(c.requests)
	}
	return snap
}
