package tiechan

import (
	"testing"

	"kr.dev/diff"
)

func TestTieRecvPicksReadyChannel(t *testing.T) {
	c1 := NewScheduled[string](goScheduler{}, 0) // rendezvous: Send(c1, ...) cannot self-complete by buffering
	c2 := NewScheduled[string](goScheduler{}, 1)

	sendErr := make(chan error, 1)
	c2.SendAsync("from c2", func(err error) { sendErr <- err })
	<-sendErr

	var s string
	result := make(chan struct {
		err   error
		which int
	}, 1)
	Tie(Send(c1, ptr("unused")), Recv(c2, &s)).WaitAsyncOn(goScheduler{}, func(err error, which int) {
		result <- struct {
			err   error
			which int
		}{err, which}
	})

	got := <-result
	diff.Test(t, t.Errorf, got.err, nil)
	diff.Test(t, t.Errorf, got.which, 1)
	diff.Test(t, t.Errorf, s, "from c2")
}

func TestTieWithNullOperandFailsWithFirstNullIndex(t *testing.T) {
	c1 := New[int](1)
	var null Channel[int]

	var dst int
	result := make(chan struct {
		err   error
		which int
	}, 1)
	Tie(Recv(c1, &dst), Send(null, ptr(1))).WaitAsyncOn(goScheduler{}, func(err error, which int) {
		result <- struct {
			err   error
			which int
		}{err, which}
	})

	got := <-result
	diff.Test(t, t.Errorf, got.err, ErrChannelNull)
	diff.Test(t, t.Errorf, got.which, 1)
}

func TestTieWithNoOperandsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Tie() with no operands did not panic")
		}
	}()
	Tie()
}

func TestTieOnSameChannelTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Tie() with two operands on the same channel did not panic")
		}
	}()
	c := New[int](1)
	var dst int
	Tie(Send(c, ptr(1)), Recv(c, &dst))
}

func TestTieOnlyOneOperandEverWins(t *testing.T) {
	c1 := NewScheduled[int](goScheduler{}, 1)
	c2 := NewScheduled[int](goScheduler{}, 1)

	sendErr1 := make(chan error, 1)
	sendErr2 := make(chan error, 1)
	c1.SendAsync(1, func(err error) { sendErr1 <- err })
	c2.SendAsync(2, func(err error) { sendErr2 <- err })
	<-sendErr1
	<-sendErr2

	var d1, d2 int
	winners := make(chan int, 2)
	Tie(Recv(c1, &d1), Recv(c2, &d2)).WaitAsyncOn(goScheduler{}, func(err error, which int) {
		winners <- which
	})

	which := <-winners
	if which != 0 && which != 1 {
		t.Fatalf("which = %d, want 0 or 1", which)
	}

	// The losing operand's channel still holds its value, retrievable
	// synchronously: only the winning channel was drained.
	if which == 0 {
		v, ok, err := c2.TryConsume()
		diff.Test(t, t.Errorf, ok, true)
		diff.Test(t, t.Errorf, err, nil)
		diff.Test(t, t.Errorf, v, 2)
	} else {
		v, ok, err := c1.TryConsume()
		diff.Test(t, t.Errorf, ok, true)
		diff.Test(t, t.Errorf, err, nil)
		diff.Test(t, t.Errorf, v, 1)
	}
}

func ptr[T any](v T) *T { return &v }
