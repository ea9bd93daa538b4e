package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64
	savesSucceeded  uint64
	savesFailed     uint64
	autoPopulated   uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordSave counts a document write attempt.
func (c *Collector) RecordSave(success bool) {
	if success {
		atomic.AddUint64(&c.savesSucceeded, 1)
		return
	}
	atomic.AddUint64(&c.savesFailed, 1)
}

// RecordAutoPopulate counts daily tasks created by auto-population.
func (c *Collector) RecordAutoPopulate(created int) {
	if created > 0 {
		atomic.AddUint64(&c.autoPopulated, uint64(created))
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":       total,
		"errorsTotal":         errs,
		"rateLimitedTotal":    limited,
		"avgDurationMs":       avg,
		"totalDurationMs":     totalMs,
		"savesSucceededTotal": atomic.LoadUint64(&c.savesSucceeded),
		"savesFailedTotal":    atomic.LoadUint64(&c.savesFailed),
		"tasksAutoPopulated":  atomic.LoadUint64(&c.autoPopulated),
	}
}
