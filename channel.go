package tiechan

// A Channel is a handle to a bounded, typed, multi-producer/
// multi-consumer queue. The zero value of Channel is a null channel:
// TryConsume, SendAsync and ConsumeAsync on it fail with ErrChannelNull,
// as a moved-from or default-constructed channel does in Boost.Channels,
// and Close on it is a no-op.
// Channel values are cheap to copy; every copy refers to the same
// underlying engine.
type Channel[T any] struct {
	core *core[T]
	sched Scheduler
}

// New creates a Channel with the given capacity, using the package's
// default Scheduler to deliver completions. Capacity 0 makes a
// rendezvous channel.
func New[T any](capacity int) Channel[T] {
	return NewScheduled[T](defaultScheduler, capacity)
}

// NewScheduled creates a Channel whose completions are delivered on
// sched rather than the package default.
func NewScheduled[T any](sched Scheduler, capacity int) Channel[T] {
	if sched == nil {
		panic("tiechan: nil Scheduler")
	}
	return Channel[T]{core: newCore[T](capacity), sched: sched}
}

func (ch Channel[T]) scheduler() Scheduler {
	if ch.sched != nil {
		return ch.sched
	}
	return defaultScheduler
}

// TryConsume attempts to take a value without suspending the caller. It
// returns the value and true on success. On failure it returns false and
// one of ErrChannelNull (ch is the null Channel) or ErrChannelClosed (the
// channel is closed and has no buffered values or pending producers
// left); a false result with a nil error means nothing is available yet
// on an otherwise healthy channel.
func (ch Channel[T]) TryConsume() (v T, ok bool, err error) {
	if ch.core == nil {
		return v, false, ErrChannelNull
	}
	return ch.core.tryConsume()
}

// SendAsync submits v for delivery and reports the outcome to done. done
// is always invoked asynchronously, on ch's Scheduler, never inline
// within SendAsync.
func (ch Channel[T]) SendAsync(v T, done func(err error)) {
	if done == nil {
		panic("tiechan: nil SendAsync completion")
	}
	if ch.core == nil {
		sched := ch.scheduler()
		sched.Post(func() { done(ErrChannelNull) })
		return
	}
	sched := ch.scheduler()
	release := trackWork(sched)
	op := newOwnedProduceOp(v, func(err error) {
		sched.Post(func() {
			release()
			done(err)
		})
	})
	ch.core.submitProducer(op)
}

// ConsumeAsync submits a receive and reports the outcome to done. done is
// always invoked asynchronously, on ch's Scheduler, never inline within
// ConsumeAsync. On error, the value passed to done is T's zero value.
func (ch Channel[T]) ConsumeAsync(done func(v T, err error)) {
	if done == nil {
		panic("tiechan: nil ConsumeAsync completion")
	}
	if ch.core == nil {
		sched := ch.scheduler()
		var zero T
		sched.Post(func() { done(zero, ErrChannelNull) })
		return
	}
	sched := ch.scheduler()
	release := trackWork(sched)
	op := newOwnedConsumeOp(func(v T, err error) {
		sched.Post(func() {
			release()
			done(v, err)
		})
	})
	ch.core.submitConsumer(op)
}

// Close transitions ch into its terminal state. Close is idempotent and
// a no-op on the null Channel. After Close, buffered values (if any) are
// still delivered to consumers in FIFO order; every send made or pending
// after Close fails with ErrChannelClosed, and every consume made or
// pending once the buffer is empty fails with ErrChannelClosed too.
func (ch Channel[T]) Close() {
	if ch.core == nil {
		return
	}
	ch.core.close()
}
