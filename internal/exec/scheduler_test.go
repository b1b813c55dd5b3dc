package exec

import (
	"testing"

	"github.com/opencoff/ff/internal/cancel"
	"github.com/opencoff/ff/internal/walk"
)

func TestRunExecutesEachEntry(t *testing.T) {
	in := make(chan walk.Entry, 2)
	in <- walk.Entry{Path: "one"}
	in <- walk.Entry{Path: "two"}
	close(in)

	var cf cancel.Flag
	cfg := Config{
		Template:     NewTemplate([]string{"true"}),
		Threads:      2,
		Cancel:       &cf,
		CounterLimit: 1000,
	}

	if err := Run(in, cfg); err != nil {
		t.Fatalf("Run: %s", err)
	}
}

func TestRunReportsSpawnErrors(t *testing.T) {
	in := make(chan walk.Entry, 1)
	in <- walk.Entry{Path: "x"}
	close(in)

	var cf cancel.Flag
	cfg := Config{
		Template:     NewTemplate([]string{"/no/such/binary-ff-test"}),
		Threads:      1,
		Cancel:       &cf,
		CounterLimit: 1000,
	}

	if err := Run(in, cfg); err == nil {
		t.Fatal("expected a spawn error to be reported")
	}
}
