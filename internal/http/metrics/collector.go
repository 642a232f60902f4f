package metrics

import (
	"sync"

	"github.com/someswar123624/job-portal-backend/internal/common"
)

// Collector keeps request and error counters for the /metrics endpoint.
type Collector struct {
	mu           sync.Mutex
	requests     int64
	byStatus     map[int]int64
	errorsByCode map[common.Code]int64
}

func NewCollector() *Collector {
	return &Collector{
		byStatus:     make(map[int]int64),
		errorsByCode: make(map[common.Code]int64),
	}
}

func (c *Collector) ObserveRequest(status int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests++
	c.byStatus[status]++
}

func (c *Collector) ObserveError(code common.Code) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorsByCode[code]++
}

type Snapshot struct {
	Requests     int64                 `json:"requests"`
	ByStatus     map[int]int64         `json:"by_status"`
	ErrorsByCode map[common.Code]int64 `json:"errors_by_code"`
}

func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		Requests:     c.requests,
		ByStatus:     make(map[int]int64, len(c.byStatus)),
		ErrorsByCode: make(map[common.Code]int64, len(c.errorsByCode)),
	}
	for status, count := range c.byStatus {
		snap.ByStatus[status] = count
	}
	for code, count := range c.errorsByCode {
		snap.ErrorsByCode[code] = count
	}
	return snap
}
