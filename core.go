package tiechan

import "sync"

// coreState is the channel engine's two-state lifecycle. Closed is
// terminal: once reached, a core never returns to running.
type coreState int

const (
	stateRunning coreState = iota
	stateClosed
)

// core is the channel engine: the state machine that glues the ring
// buffer, the two op queues and the Running/Closed state together under
// one mutex. It is the "hard core" component this module exists to
// implement; everything else in the package is either a thin
// façade over it (channel.go) or a way of building ops to feed it
// (op.go, sharedop.go, tie.go).
//
// core has no notion of a Scheduler: every op it touches already carries
// a post-wrapped completion, so core's only job is deciding, under its
// own mutex, which ops get to fire and in what order.
type core[T any] struct {
	mu sync.Mutex // protects the following fields
	st coreState
	buf ring[T]

	producers opQueue[produceOp[T]]
	consumers opQueue[consumeOp[T]]
}

func newCore[T any](capacity int) *core[T] {
	return &core[T]{buf: newRing[T](capacity)}
}

// submitProducer enqueues op and runs the engine forward. It is used by
// both an owned send and a shared (tie) send.
func (c *core[T]) submitProducer(op produceOp[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.producers.push(op)
	c.flush()
}

// submitConsumer enqueues op and runs the engine forward.
func (c *core[T]) submitConsumer(op consumeOp[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consumers.push(op)
	c.flush()
}

func (c *core[T]) flush() {
	if c.st == stateClosed {
		c.flushClosed()
	} else {
		c.flushRunning()
	}
}

// flushRunning drives the engine forward while the channel is open,
// applying three transfer rules in priority order until none of them
// can make progress:
//
//  1. a pending producer can push into a ring buffer with room, or
//  2. the ring buffer holds a value a pending consumer can take, or
//  3. with the buffer empty, a pending producer and pending consumer can
//     hand a value directly to one another.
//
// A non-empty buffer is always drained (rule 2) before a new producer is
// allowed to reach a waiting consumer directly (rule 3): direct hand-off
// only ever happens when the buffer is, and stays, empty.
func (c *core[T]) flushRunning() {
	for {
		switch {
		case !c.buf.full() && !c.producers.empty():
			p := c.producers.front()
			p.mutex().Lock()
			if !p.completed() {
				c.buf.push(p.consume())
			}
			p.mutex().Unlock()
			c.producers.pop()

		case !c.buf.empty() && !c.consumers.empty():
			cons := c.consumers.front()
			cons.mutex().Lock()
			if !cons.completed() {
				cons.commit(c.buf.pop(), nil)
			}
			cons.mutex().Unlock()
			c.consumers.pop()

		case c.buf.empty() && !c.consumers.empty() && !c.producers.empty():
			cons := c.consumers.front()
			prod := c.producers.front()
			unlock := dualLock(cons.mutex(), cons.lockID(), prod.mutex(), prod.lockID())
			pc, cc := prod.completed(), cons.completed()
			if !pc && !cc {
				v := prod.consume()
				cons.commit(v, nil)
				pc, cc = true, true
			}
			unlock()
			if cc {
				c.consumers.pop()
			}
			if pc {
				c.producers.pop()
			}
			if !pc && !cc {
				// Neither op is completed, so neither would be popped and
				// this loop would spin forever. This cannot happen: the
				// transfer above marks both completed whenever both
				// were live.
				panic("tiechan: dual-lock transfer completed neither op")
			}

		default:
			return
		}
	}
}

// flushClosed drives the engine forward once the channel has entered its
// terminal state: every pending producer fails immediately, buffered
// values still drain to waiting consumers in FIFO order, and only once
// the buffer is empty do remaining consumers see the close.
func (c *core[T]) flushClosed() {
	for !c.producers.empty() {
		p := c.producers.front()
		p.mutex().Lock()
		if !p.completed() {
			p.fail(ErrChannelClosed)
		}
		p.mutex().Unlock()
		c.producers.pop()
	}
	for !c.buf.empty() && !c.consumers.empty() {
		cons := c.consumers.front()
		cons.mutex().Lock()
		if !cons.completed() {
			cons.commit(c.buf.pop(), nil)
		}
		cons.mutex().Unlock()
		c.consumers.pop()
	}
	var zero T
	for !c.consumers.empty() {
		cons := c.consumers.front()
		cons.mutex().Lock()
		if !cons.completed() {
			cons.commit(zero, ErrChannelClosed)
		}
		cons.mutex().Unlock()
		c.consumers.pop()
	}
}

// tryConsume implements the synchronous, non-blocking consume path:
// drain the buffer first, then an uncompleted pending producer, then
// report ErrChannelClosed, and otherwise report nothing pending.
// A head-of-queue producer found already completed (the rare case of a
// tie loss not yet flushed away) is discarded and the search continues,
// since a completed op can never legitimately answer a tryConsume.
func (c *core[T]) tryConsume() (v T, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.buf.empty() {
		return c.buf.pop(), true, nil
	}
	for !c.producers.empty() {
		p := c.producers.front()
		p.mutex().Lock()
		live := !p.completed()
		if live {
			v = p.consume()
		}
		p.mutex().Unlock()
		c.producers.pop()
		if live {
			return v, true, nil
		}
	}
	if c.st == stateClosed {
		return v, false, ErrChannelClosed
	}
	return v, false, nil
}

// close transitions the engine into its terminal state and drains it.
// close is idempotent: closing an already-closed channel is a no-op.
func (c *core[T]) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st == stateClosed {
		return
	}
	c.st = stateClosed
	c.flushClosed()
}
