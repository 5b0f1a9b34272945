// Package laptimer holds the per-endpoint lap stopwatches behind
// MeasureTimeLap: a first request from an endpoint starts its timer,
// the next one stops it and reports the elapsed time. Entries left
// untouched beyond the expiry window are dropped.
package laptimer

import (
	"fmt"
	"sync"
	"time"

	"timeq/pkg/socket"
)

// DefaultExpiry is how long a started lap stays armed.
const DefaultExpiry = 180 * time.Second

// Result of a Touch: either the timer just started, or it was stopped
// and Elapsed holds the lap duration.
type Result struct {
	Started bool
	Elapsed time.Duration
}

// String renders the protocol's reply text: the start marker, or the
// elapsed time as zero-padded MM:SS. Minutes are not capped at 60,
// though the expiry window keeps real laps below three minutes.
func (r Result) String() string {
	if r.Started {
		return "Timer started"
	}
	sec := int64(r.Elapsed / time.Second)
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

// Table maps client endpoints to lap start instants. It is the one
// piece of state shared across requests, so every operation runs under
// a single lock.
type Table struct {
	mu     sync.Mutex
	expiry time.Duration
	starts map[socket.Endpoint]time.Time
}

// New returns an empty table; expiry <= 0 selects DefaultExpiry.
func New(expiry time.Duration) *Table {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Table{
		expiry: expiry,
		starts: make(map[socket.Endpoint]time.Time),
	}
}

// Touch starts a lap for ep or stops a pending one. Entries older than
// the expiry window relative to now are purged first, whichever
// endpoint they belong to; the purge and the lookup happen inside the
// same critical section.
func (t *Table) Touch(ep socket.Endpoint, now time.Time) Result {
	t.mu.Lock()
	defer t.mu.Unlock()

	for key, started := range t.starts {
		if now.Sub(started) > t.expiry {
			delete(t.starts, key)
		}
	}

	started, ok := t.starts[ep]
	if !ok {
		t.starts[ep] = now
		return Result{Started: true}
	}
	delete(t.starts, ep)
	return Result{Elapsed: now.Sub(started)}
}

// Len reports the number of pending laps.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.starts)
}
