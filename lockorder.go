package tiechan

import (
	"sync"
	"sync/atomic"
)

// lockIDs orders op mutexes for the dual-lock protocol in flushRunning's
// direct producer-to-consumer hand-off: two op mutexes must be held
// simultaneously, and always in the same relative order across all
// callers, or two flushes racing on different channels could deadlock by
// acquiring the same pair of op mutexes in opposite order.
//
// The source uses lock-in-address-order (or the platform's atomic
// "lock both" primitive); Go code has no portable way to compare two
// mutexes' addresses without unsafe, so instead every op is stamped with
// a monotonically increasing id at creation and the two mutexes are
// always locked lowest-id-first. This is the same "assign a comparable
// handle up front" idiom the corpus already uses for ordering
// (notorious-go-sync/semaphore and gopool/pool.go both drive control flow
// off an atomic counter rather than identity).
var lastLockID atomic.Uint64

func nextLockID() uint64 {
	return lastLockID.Add(1)
}

// dualLock locks mutexes m1 (id1) and m2 (id2) in id order and returns a
// function that unlocks both together, so the pair is always acquired
// and released as a unit. id1 and id2 must be distinct: a produceOp and
// a consumeOp built from the same Tie call share one selectState, and
// therefore one lockID, and Tie itself rejects an operand list that
// would put such a pair in the same core's queues (see tie.go), so
// dualLock should never observe two ops with equal ids in practice.
func dualLock(m1 *sync.Mutex, id1 uint64, m2 *sync.Mutex, id2 uint64) (unlock func()) {
	if id1 == id2 {
		panic("tiechan: dual-lock on the same op twice")
	}
	if id1 < id2 {
		m1.Lock()
		m2.Lock()
	} else {
		m2.Lock()
		m1.Lock()
	}
	return func() {
		m1.Unlock()
		m2.Unlock()
	}
}
