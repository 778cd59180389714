package tiechan

// goScheduler posts each task on its own goroutine. It exists so tests can
// exercise "post" semantics (never inline, never under an internal mutex)
// without pulling in PoolScheduler's pooling and idle-timeout behavior.
type goScheduler struct{}

func (goScheduler) Post(f func()) { go f() }
