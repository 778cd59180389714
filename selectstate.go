package tiechan

import "sync"

// A selectState is the exactly-once completion latch shared by every
// operand of one tie call. All shared ops built for the same tie call
// hold the same *selectState, so acquiring its mutex is what
// gives the channel core a single, atomic "who won?" decision even
// though the competing operands live in different channels' queues.
//
// The shape, a mutex guarding a one-shot completed flag plus the
// callback to run exactly once, mirrors warpfork-go-sup's promise: a
// value-carrying one-shot resolve latch with the identical "panic on
// double completion" discipline, generalized here from resolving with an
// arbitrary value to resolving with (error, winning index).
type selectState struct {
	mu     sync.Mutex
	id     uint64
	done   bool
	onDone func(err error, which int)
}

func newSelectState(onDone func(err error, which int)) *selectState {
	return &selectState{id: nextLockID(), onDone: onDone}
}

// complete resolves the latch with the given outcome and invokes the
// stored callback exactly once. Like promise.Resolve, calling complete a
// second time is a caller error: every call site first locks the state's
// mutex and checks completed(), so by the time complete runs the caller
// already knows this is the winning operand. A shared op that loses the
// race is never asked to complete a second time: the flush that finds
// it already completed discards it silently instead of calling complete
// again.
func (s *selectState) complete(err error, which int) {
	if s.done {
		panic("tiechan: select state completed twice")
	}
	s.done = true
	s.onDone(err, which)
}

func (s *selectState) completed() bool    { return s.done }
func (s *selectState) mutex() *sync.Mutex { return &s.mu }
func (s *selectState) lockID() uint64     { return s.id }
