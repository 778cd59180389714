package tiechan

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dkmccandless/tiechan/bufchan"
)

// A Scheduler runs posted continuations. tiechan's engine (core.go) never
// invokes a completion inline; every completion is handed to a Scheduler's
// Post method instead, which must run it on some other goroutine and must
// not block the caller.
//
// The scheduler is deliberately the module's only real external
// collaborator: the async runtime itself (executors, task scheduling) is
// out of scope for the channel engine. Go has no bundled cooperative
// executor to stand in for it, though, so this file supplies one default
// implementation good enough to make the rest of the package usable out
// of the box.
type Scheduler interface {
	// Post schedules f to run asynchronously. Post must return without
	// running f and without blocking: tiechan calls it from inside a
	// channel's flush, while that channel's engine mutex and the
	// completing op's mutex are held.
	Post(f func())
}

// A WorkTracker is a Scheduler that also wants visibility into ops that
// have been submitted but not yet resolved, not just continuations that
// have already been posted. channel.go and tie.go call trackWork around
// an op's full submit-to-completion lifetime whenever the Scheduler in
// use implements this interface; a Scheduler that doesn't simply won't
// see parked ops reflected in whatever it exposes as outstanding work.
type WorkTracker interface {
	// trackWork records one unit of pending work and returns a function
	// that retires it. release must be safe to call exactly once and
	// must not itself block.
	trackWork() (release func())
}

// trackWork starts tracking one unit of work on sched if sched is a
// WorkTracker, and returns a no-op release otherwise.
func trackWork(sched Scheduler) (release func()) {
	if wt, ok := sched.(WorkTracker); ok {
		return wt.trackWork()
	}
	return func() {}
}

// workerIdleTimeout is how long a PoolScheduler worker waits for another
// task before exiting, so an idle scheduler does not pin goroutines.
const workerIdleTimeout = 10 * time.Second

// A PoolScheduler is a Scheduler backed by a small pool of goroutines
// that spin up lazily as work arrives and exit once idle. Its task queue
// is a bufchan.Chan: an unboundedly-buffered channel whose Send never
// blocks, matching Post's contract of never blocking its caller.
//
// This is the same shape as the corpus's own worker-pool package,
// leo9827-own-x-go/gopool (lock-guarded task queue, atomic worker count,
// lazy spin-up capped at a maximum), adapted here to lean on bufchan for
// the queue itself instead of a hand-rolled linked list, and extended
// with an outstanding-work counter that implements WorkTracker: an op
// parked waiting for a match, not just a continuation already posted,
// counts toward Outstanding for as long as it is pending.
type PoolScheduler struct {
	tasks       bufchan.Chan[func()]
	max         int32
	workerCount atomic.Int32
	outstanding atomic.Int64
	spawnMu     sync.Mutex
}

// NewPoolScheduler creates a PoolScheduler that runs up to max tasks
// concurrently. A max less than 1 is treated as 1.
func NewPoolScheduler(max int32) *PoolScheduler {
	if max < 1 {
		max = 1
	}
	return &PoolScheduler{tasks: bufchan.Make[func()](), max: max}
}

// defaultScheduler is used by Channels and Ties constructed without an
// explicit Scheduler.
var defaultScheduler = NewPoolScheduler(defaultSchedulerWorkers)

const defaultSchedulerWorkers = 32

// Outstanding reports the number of work units still pending: ops
// submitted but not yet resolved, plus tasks already posted but not yet
// run to completion. It exists for diagnostics and tests; the engine
// itself never inspects it.
func (s *PoolScheduler) Outstanding() int64 {
	return s.outstanding.Load()
}

// trackWork implements WorkTracker.
func (s *PoolScheduler) trackWork() (release func()) {
	s.outstanding.Add(1)
	var released atomic.Bool
	return func() {
		if released.CompareAndSwap(false, true) {
			s.outstanding.Add(-1)
		}
	}
}

// Post implements Scheduler.
func (s *PoolScheduler) Post(f func()) {
	s.outstanding.Add(1)
	s.tasks.Send() <- func() {
		defer s.outstanding.Add(-1)
		defer func() {
			if r := recover(); r != nil {
				logrus.WithField("panic", r).Error("tiechan: scheduler task panicked")
			}
		}()
		f()
	}
	s.maybeSpawn()
}

func (s *PoolScheduler) maybeSpawn() {
	if s.workerCount.Load() >= s.max {
		return
	}
	s.spawnMu.Lock()
	defer s.spawnMu.Unlock()
	if s.workerCount.Load() >= s.max {
		return
	}
	s.workerCount.Add(1)
	go s.work()
}

func (s *PoolScheduler) work() {
	idle := time.NewTimer(workerIdleTimeout)
	defer idle.Stop()
	for {
		select {
		case f := <-s.tasks.Receive():
			if !idle.Stop() {
				<-idle.C
			}
			f()
			idle.Reset(workerIdleTimeout)
		case <-idle.C:
			// Give up the worker slot before checking for a last-moment
			// task: a Post arriving right as the timer fires may have
			// already seen workerCount >= max and skipped spawning a
			// replacement, so this worker must pick up anything it
			// raced with instead of dropping it.
			s.workerCount.Add(-1)
			select {
			case f := <-s.tasks.Receive():
				s.workerCount.Add(1)
				f()
				idle.Reset(workerIdleTimeout)
			default:
				return
			}
		}
	}
}
