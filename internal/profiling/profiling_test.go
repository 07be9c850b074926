package profiling

import (
	"testing"
	"time"
)

func TestTopNOrdersByDuration(t *testing.T) {
	ResetFrame()
	defer ResetFrame()

	Add("scene.Update", 300*time.Microsecond)
	Add("engine.Render", 4200*time.Microsecond)
	Add("engine.Input", 2*time.Millisecond)
	Add("engine.Input", 1*time.Millisecond)

	if got, want := TopN(2), "engine.Render:4.2ms, engine.Input:3ms"; got != want {
		t.Errorf("TopN(2) = %q, want %q", got, want)
	}
	if got, want := TopN(10), "engine.Render:4.2ms, engine.Input:3ms, scene.Update:0.3ms"; got != want {
		t.Errorf("TopN(10) = %q, want %q", got, want)
	}
}

func TestTrackUsesClock(t *testing.T) {
	ResetFrame()
	defer ResetFrame()

	base := time.Unix(0, 0)
	calls := 0
	now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * 5 * time.Millisecond)
	}
	defer func() { now = time.Now }()

	Track("phase")()
	if got := Snapshot()["phase"]; got != 5*time.Millisecond {
		t.Errorf("tracked %v, want 5ms", got)
	}
}

func TestResetFrame(t *testing.T) {
	Add("x", time.Millisecond)
	ResetFrame()
	if len(Snapshot()) != 0 || TopN(3) != "" {
		t.Errorf("totals survived reset")
	}
}
