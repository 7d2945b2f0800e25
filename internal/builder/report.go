package builder

import "sync/atomic"

// Report summarises a finished build.
type Report struct {
	Total   int // non-blank input lines
	Queried int // datasets sent to the resolver
	Written int // entries in the manifest
	// Failed and Malformed list skipped identifiers in input order.
	Failed    []string
	Malformed []string
}

// Progress holds counters updated while a build runs.
type Progress struct {
	total     atomic.Int64
	done      atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
	malformed atomic.Int64
}

// ProgressSnapshot is a point-in-time copy of Progress.
type ProgressSnapshot struct {
	Total     int64 `json:"total"`
	Done      int64 `json:"done"`
	Succeeded int64 `json:"succeeded"`
	Failed    int64 `json:"failed"`
	Malformed int64 `json:"malformed"`
}

func (p *Progress) reset(total int) {
	p.total.Store(int64(total))
	p.done.Store(0)
	p.succeeded.Store(0)
	p.failed.Store(0)
	p.malformed.Store(0)
}

// Snapshot returns the current counter values.
func (p *Progress) Snapshot() ProgressSnapshot {
	return ProgressSnapshot{
		Total:     p.total.Load(),
		Done:      p.done.Load(),
		Succeeded: p.succeeded.Load(),
		Failed:    p.failed.Load(),
		Malformed: p.malformed.Load(),
	}
}
