package tiechan

import "testing"

func TestOpQueueFIFO(t *testing.T) {
	var q opQueue[int]
	if !q.empty() {
		t.Fatalf("zero-value opQueue is not empty")
	}
	for _, v := range []int{1, 2, 3} {
		q.push(v)
	}
	for _, want := range []int{1, 2, 3} {
		if q.empty() {
			t.Fatalf("queue empty before draining %d elements", want)
		}
		if got := q.front(); got != want {
			t.Errorf("front() = %d, want %d", got, want)
		}
		q.pop()
	}
	if !q.empty() {
		t.Errorf("queue not empty after draining every element")
	}
}

func TestOpQueueCompactsAfterLongDrain(t *testing.T) {
	var q opQueue[int]
	for i := 0; i < 200; i++ {
		q.push(i)
	}
	for i := 0; i < 130; i++ {
		if got := q.front(); got != i {
			t.Fatalf("front() = %d, want %d", got, i)
		}
		q.pop()
	}
	if got, want := q.len(), 70; got != want {
		t.Errorf("len() = %d, want %d", got, want)
	}
	if got := q.front(); got != 130 {
		t.Errorf("front() = %d, want 130", got)
	}
}

func TestOpQueueFrontEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("front of empty queue did not panic")
		}
	}()
	var q opQueue[int]
	q.front()
}

func TestOpQueuePopEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("pop from empty queue did not panic")
		}
	}()
	var q opQueue[int]
	q.pop()
}
