package pipeline

import "testing"

func TestBudgetSortPath(t *testing.T) {
	p, c := Budget(4, true)
	if p != 3 || c != 1 {
		t.Fatalf("got producer=%d consumer=%d, want 3,1", p, c)
	}
}

func TestBudgetSortPathFloor(t *testing.T) {
	p, c := Budget(1, true)
	if p != 1 || c != 1 {
		t.Fatalf("got producer=%d consumer=%d, want 1,1", p, c)
	}
}

func TestBudgetMultiThreadNoSort(t *testing.T) {
	p, c := Budget(8, false)
	if p != 4 || c != 4 {
		t.Fatalf("got producer=%d consumer=%d, want 4,4", p, c)
	}
}

func TestBudgetMultiThreadFloorsAtTwo(t *testing.T) {
	p, c := Budget(3, false)
	if p != 2 || c != 2 {
		t.Fatalf("got producer=%d consumer=%d, want 2,2", p, c)
	}
}

func TestBudgetSingleThread(t *testing.T) {
	p, c := Budget(1, false)
	if p != 1 || c != 1 {
		t.Fatalf("got producer=%d consumer=%d, want 1,1", p, c)
	}
}

func TestBudgetZeroThreads(t *testing.T) {
	p, c := Budget(0, false)
	if p != 1 || c != 1 {
		t.Fatalf("got producer=%d consumer=%d, want 1,1", p, c)
	}
}
