package tiechan

import "github.com/dkmccandless/tiechan/internal/roundrobinrandom"

// An Operand is one leg of a Tie: either "send from an external cell into
// channel C" (built by Send) or "receive from channel C into an external
// cell" (built by Recv). Operand values from Channels of different
// element types can be mixed freely in the same Tie call, which is why
// Operand itself carries no type parameter: the type argument lives only
// on the concrete sendOperand[T]/recvOperand[T] that implements it.
type Operand interface {
	isNull() bool
	scheduler() Scheduler
	channelIdentity() any
	submit(state *selectState, which int)
}

type sendOperand[T any] struct {
	ch  Channel[T]
	src *T
}

// Send builds a producer Operand: winning the Tie sends *src to ch. src
// must remain valid until the Tie's completion fires.
func Send[T any](ch Channel[T], src *T) Operand {
	return sendOperand[T]{ch: ch, src: src}
}

func (o sendOperand[T]) isNull() bool         { return o.ch.core == nil }
func (o sendOperand[T]) scheduler() Scheduler { return o.ch.scheduler() }
func (o sendOperand[T]) channelIdentity() any { return o.ch.core }
func (o sendOperand[T]) submit(state *selectState, which int) {
	o.ch.core.submitProducer(newSharedProduceOp(state, o.src, which))
}

type recvOperand[T any] struct {
	ch  Channel[T]
	dst *T
}

// Recv builds a consumer Operand: winning the Tie writes the received
// value into *dst. dst must remain valid until the Tie's completion
// fires.
func Recv[T any](ch Channel[T], dst *T) Operand {
	return recvOperand[T]{ch: ch, dst: dst}
}

func (o recvOperand[T]) isNull() bool         { return o.ch.core == nil }
func (o recvOperand[T]) scheduler() Scheduler { return o.ch.scheduler() }
func (o recvOperand[T]) channelIdentity() any { return o.ch.core }
func (o recvOperand[T]) submit(state *selectState, which int) {
	o.ch.core.submitConsumer(newSharedConsumeOp(state, o.dst, which))
}

// A TiedOp is a first-past-the-post composition over a heterogeneous set
// of send and receive Operands: exactly one operand completes
// successfully (or fails first), and the rest are cancelled by having
// already lost the race by the time the channel engine reaches them.
type TiedOp struct {
	ops []Operand
}

// Tie builds a TiedOp over the given Operands. The Operands' order is
// the order reported to the caller as "which" on completion; it has no
// bearing on which operand wins, since submission order is randomized.
//
// No two Operands may name the same Channel. A Send and a Recv on one
// Channel would submit two ops that share a single selectState, and
// therefore a single lockID, into that Channel's own producer and
// consumer queues, which is exactly the pairing flushRunning's
// direct-hand-off case is never supposed to see: dualLock would be asked
// to lock the same mutex against itself. Tie rejects that case up front
// instead of leaving it to surface as a panic deep inside a flush.
func Tie(ops ...Operand) TiedOp {
	if len(ops) == 0 {
		panic("tiechan: tie with no operands")
	}
	seen := make(map[any]bool, len(ops))
	for _, op := range ops {
		id := op.channelIdentity()
		if seen[id] {
			panic("tiechan: tie operands reference the same channel twice")
		}
		seen[id] = true
	}
	return TiedOp{ops: ops}
}

// WaitAsync resolves the TiedOp: it completes done with (nil, i) for the
// winning operand i, or with the first error encountered and that
// operand's index. done is always delivered on a Scheduler, never
// inline: the first operand's own Scheduler unless overridden by
// WaitAsyncOn.
func (t TiedOp) WaitAsync(done func(err error, which int)) {
	t.waitAsync(t.ops[0].scheduler(), done)
}

// WaitAsyncOn is WaitAsync with an explicit Scheduler, for callers that
// do not want the first operand's channel to dictate where the
// completion runs.
func (t TiedOp) WaitAsyncOn(sched Scheduler, done func(err error, which int)) {
	t.waitAsync(sched, done)
}

func (t TiedOp) waitAsync(sched Scheduler, done func(err error, which int)) {
	// Pre-flight: if any operand's channel handle is null, complete
	// immediately with the index of the FIRST null operand encountered
	// in caller order. Boost.Channels' own check-for-null guard does not
	// report the null operand's index; this module implements
	// the behavior its own doc comments describe instead of copying
	// that bug forward (see DESIGN.md).
	for i, op := range t.ops {
		if op.isNull() {
			sched.Post(func() { done(ErrChannelNull, i) })
			return
		}
	}

	// Each operand is tracked as outstanding work from the moment it is
	// submitted until the tie as a whole resolves: a losing operand
	// never gets its own completion callback (core.go's flush discards
	// it silently once it finds the shared state already done), so the
	// only sound release point for every operand's work unit is the one
	// callback that does fire.
	releases := make([]func(), len(t.ops))
	for i := range releases {
		releases[i] = trackWork(sched)
	}

	state := newSelectState(func(err error, which int) {
		sched.Post(func() {
			for _, release := range releases {
				release()
			}
			done(err, which)
		})
	})

	for _, i := range permutation(len(t.ops)) {
		t.ops[i].submit(state, i)
	}
}

// permutation returns a uniformly random permutation of 0..n-1, using a
// fresh roundrobinrandom.Order as its shuffle source, so that no operand
// is systematically favored when several channels are simultaneously
// ready. An Order is meant to be reused across many rounds; here a
// fresh one is built and drained exactly once, which degrades
// gracefully to the one-shot Fisher-Yates permutation Add/Next already
// perform internally.
func permutation(n int) []int {
	var order roundrobinrandom.Order[int]
	for i := 0; i < n; i++ {
		order.Add(i)
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = order.Next()
	}
	return perm
}
