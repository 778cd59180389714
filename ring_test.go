package tiechan

import "testing"

func TestRingZeroCapacity(t *testing.T) {
	r := newRing[int](0)
	if !r.full() {
		t.Errorf("newRing(0).full() = false, want true")
	}
	if !r.empty() {
		t.Errorf("newRing(0).empty() = false, want true")
	}
}

func TestRingPushPop(t *testing.T) {
	r := newRing[string](3)
	if r.cap() != 3 {
		t.Errorf("cap() = %d, want 3", r.cap())
	}
	for _, v := range []string{"a", "b", "c"} {
		if r.full() {
			t.Fatalf("full() before pushing %d elements", r.cap())
		}
		r.push(v)
	}
	if !r.full() {
		t.Errorf("full() = false after pushing to capacity")
	}

	got := []string{r.pop(), r.pop(), r.pop()}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pop()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !r.empty() {
		t.Errorf("empty() = false after popping every element")
	}
}

func TestRingWrapsAroundBuffer(t *testing.T) {
	r := newRing[int](2)
	r.push(1)
	r.push(2)
	if got := r.pop(); got != 1 {
		t.Fatalf("pop() = %d, want 1", got)
	}
	r.push(3)
	if got := r.front(); got != 2 {
		t.Errorf("front() = %d, want 2", got)
	}
	if got := r.pop(); got != 2 {
		t.Errorf("pop() = %d, want 2", got)
	}
	if got := r.pop(); got != 3 {
		t.Errorf("pop() = %d, want 3", got)
	}
}

func TestRingPushFullPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("push into full ring did not panic")
		}
	}()
	r := newRing[int](1)
	r.push(1)
	r.push(2)
}

func TestRingPopEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("pop from empty ring did not panic")
		}
	}()
	r := newRing[int](1)
	r.pop()
}
