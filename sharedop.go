package tiechan

import "sync"

// sharedProduceOp is the tie variant of produceOp: rather than owning its
// value, it holds a pointer back into the caller's cell (the value the
// caller wrote before building the tie), and rather than owning its
// completion it delegates arbitration entirely to a shared selectState.
// Every channel a given tie call touches receives its own sharedProduceOp
// (or sharedConsumeOp), but all of them share one *selectState, so their
// mutex and completed checks are the same for all of them and only one
// can ever actually transfer a value.
type sharedProduceOp[T any] struct {
	state  *selectState
	source *T
	which  int
}

func newSharedProduceOp[T any](state *selectState, source *T, which int) *sharedProduceOp[T] {
	return &sharedProduceOp[T]{state: state, source: source, which: which}
}

func (p *sharedProduceOp[T]) completed() bool    { return p.state.completed() }
func (p *sharedProduceOp[T]) mutex() *sync.Mutex { return p.state.mutex() }
func (p *sharedProduceOp[T]) lockID() uint64     { return p.state.lockID() }

func (p *sharedProduceOp[T]) consume() T {
	v := *p.source
	p.state.complete(nil, p.which)
	return v
}

func (p *sharedProduceOp[T]) fail(err error) {
	p.state.complete(err, p.which)
}

// sharedConsumeOp is the tie variant of consumeOp: it writes the
// delivered value into the caller's cell instead of invoking a
// per-channel callback, then defers to the shared selectState exactly
// like sharedProduceOp.
type sharedConsumeOp[T any] struct {
	state *selectState
	sink  *T
	which int
}

func newSharedConsumeOp[T any](state *selectState, sink *T, which int) *sharedConsumeOp[T] {
	return &sharedConsumeOp[T]{state: state, sink: sink, which: which}
}

func (c *sharedConsumeOp[T]) completed() bool    { return c.state.completed() }
func (c *sharedConsumeOp[T]) mutex() *sync.Mutex { return c.state.mutex() }
func (c *sharedConsumeOp[T]) lockID() uint64     { return c.state.lockID() }

func (c *sharedConsumeOp[T]) commit(v T, err error) {
	*c.sink = v
	c.state.complete(err, c.which)
}
