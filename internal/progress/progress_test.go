package progress

import (
	"errors"
	"testing"
)

func TestNewSpinner(t *testing.T) {
	spinner := NewSpinner("walking history")
	if spinner == nil {
		t.Fatal("NewSpinner() returned nil")
	}
	if spinner.label != "walking history" {
		t.Errorf("label = %q, want %q", spinner.label, "walking history")
	}

	spinner.Tick()
	spinner.Tick()
	spinner.FinishSuccess()
}

func TestNewTracker(t *testing.T) {
	tracker := NewTracker("resolving commits", 10)
	if tracker == nil {
		t.Fatal("NewTracker() returned nil")
	}

	for i := 0; i < 10; i++ {
		tracker.Tick()
	}
	tracker.FinishSuccess()
}

func TestFinishSkipped(t *testing.T) {
	tracker := NewTracker("resolving commits", 5)
	tracker.Tick()
	tracker.FinishSkipped("cache hit")
}

func TestFinishError(t *testing.T) {
	tracker := NewTracker("resolving commits", 5)
	tracker.Tick()
	tracker.FinishError(errors.New("walk aborted"))
}
