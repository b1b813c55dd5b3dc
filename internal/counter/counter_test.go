package counter

import (
	"testing"

	"github.com/opencoff/ff/internal/cancel"
)

func TestCounterNoFlag(t *testing.T) {
	c := New(3, nil)

	for i := 0; i < 2; i++ {
		if c.Tick() {
			t.Fatalf("tick %d: expected false below limit", i)
		}
	}
	if !c.Tick() {
		t.Fatalf("tick at limit with nil flag must report true")
	}
}

func TestCounterWithFlag(t *testing.T) {
	var flag cancel.Flag
	c := New(3, &flag)

	for i := 0; i < 2; i++ {
		if c.Tick() {
			t.Fatalf("tick %d: expected false below limit", i)
		}
	}
	if c.Tick() {
		t.Fatalf("tick at limit: expected false, flag unset")
	}

	flag.Trip(2) // SIGINT
	for i := 0; i < 2; i++ {
		if c.Tick() {
			t.Fatalf("tick %d after cancel: expected false below limit", i)
		}
	}
	if !c.Tick() {
		t.Fatalf("tick at limit: expected true, flag set")
	}
}

func TestCounterTickBy(t *testing.T) {
	c := New(10, nil)
	if c.TickBy(9) {
		t.Fatalf("expected false, 9 < 10")
	}
	if !c.TickBy(1) {
		t.Fatalf("expected true at limit with nil flag")
	}
}
