package workerpool

import (
	"context"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/multierr"
)

// Pool runs phases across a fixed number of workers. It holds no
// background goroutines between calls: RunPhase spawns exactly NumWorkers
// goroutines, waits for all of them (even when ctx is cancelled), and
// returns.
// That keeps each phase a closed barrier rather than a persistent queue,
// matching the table's own SetConcurrent/MakeStable/SetSequential protocol
// where a round only completes once every worker has reported in.
type Pool struct {
	n      int
	phases *atomic.Int64 // total RunPhase calls completed, for diagnostics
}

// New constructs a Pool of n workers. n <= 0 is treated as 1.
func New(n int) *Pool {
	if n <= 0 {
		n = 1
	}
	return &Pool{n: n, phases: atomic.NewInt64(0)}
}

// NumWorkers returns the pool's fixed width.
func (p *Pool) NumWorkers() int { return p.n }

// PhasesRun returns the number of RunPhase calls that have completed so
// far, for callers that want to report progress across long-running loops
// of barrier rounds.
func (p *Pool) PhasesRun() int64 { return p.phases.Load() }

// RunPhase invokes fn(ctx, w) once for every worker id w in [0, NumWorkers),
// concurrently, and blocks until every call has returned. The non-nil
// errors are combined with multierr.Combine; a nil result means every
// worker succeeded. If ctx is cancelled before all workers finish, RunPhase
// still waits for them (fn is expected to observe ctx.Done() itself) and
// returns ctx.Err() wrapped with whatever worker errors already occurred.
func (p *Pool) RunPhase(ctx context.Context, fn func(ctx context.Context, worker int) error) error {
	errs := make([]error, p.n)

	var wg sync.WaitGroup
	wg.Add(p.n)
	for w := 0; w < p.n; w++ {
		w := w
		go func() {
			defer wg.Done()
			errs[w] = fn(ctx, w)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.phases.Inc()
		return multierr.Combine(errs...)
	case <-ctx.Done():
		<-done
		p.phases.Inc()
		return multierr.Append(ctx.Err(), multierr.Combine(errs...))
	}
}
