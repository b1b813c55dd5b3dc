package sorter

import (
	"testing"
	"time"

	"github.com/opencoff/ff/internal/cancel"
	"github.com/opencoff/ff/internal/filter"
	"github.com/opencoff/ff/internal/walk"
)

func feed(paths ...string) chan walk.Entry {
	ch := make(chan walk.Entry, len(paths))
	for _, p := range paths {
		ch <- walk.Entry{Path: p, Actions: []filter.Action{filter.Print}}
	}
	close(ch)
	return ch
}

func drain(t *testing.T, out <-chan walk.Entry) []string {
	t.Helper()
	var paths []string
	for e := range out {
		paths = append(paths, e.Path)
	}
	return paths
}

func TestSorterEternityBufferSortsByPath(t *testing.T) {
	in := feed("c", "a", "b")
	var cf cancel.Flag
	out, _ := Run(in, &cf, Config{SortPath: true, CancelLimit: 1000})

	got := drain(t, out)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSorterStreamingPreservesArrivalOrder(t *testing.T) {
	in := feed("z", "y", "x")
	var cf cancel.Flag
	out, _ := Run(in, &cf, Config{SortPath: false, IsTTY: false, CancelLimit: 1000})

	got := drain(t, out)
	want := []string{"z", "y", "x"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSorterCancellationStopsWithoutFlush(t *testing.T) {
	in := make(chan walk.Entry)
	var cf cancel.Flag
	out, _ := Run(in, &cf, Config{SortPath: true, CancelLimit: 1})

	in <- walk.Entry{Path: "a"}
	cf.Trip(2) // SIGINT
	in <- walk.Entry{Path: "b"}
	close(in)

	select {
	case _, ok := <-out:
		if ok {
			t.Fatalf("expected no entries to be flushed after cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("sorter did not exit after cancellation")
	}
}
