package log

import (
	"sync"
	"time"

	"github.com/go-kit/log"
)

// RateLimitedLogger wraps a go-kit logger and drops log lines once more
// than limit have been logged within the current one-second window.
type RateLimitedLogger struct {
	mu     sync.Mutex
	limit  int
	next   log.Logger
	window time.Time
	count  int
}

// NewRateLimitedLogger returns a logger that forwards at most limit Log
// calls per second to next.
func NewRateLimitedLogger(limit int, next log.Logger) *RateLimitedLogger {
	return &RateLimitedLogger{limit: limit, next: next}
}

// Log implements log.Logger.
func (r *RateLimitedLogger) Log(keyvals ...interface{}) error {
	r.mu.Lock()
	now := time.Now()
	if now.Sub(r.window) >= time.Second {
		r.window = now
		r.count = 0
	}
	r.count++
	drop := r.count > r.limit
	r.mu.Unlock()

	if drop {
		return nil
	}
	return r.next.Log(keyvals...)
}
