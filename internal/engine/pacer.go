package engine

import (
	"runtime"
	"time"
)

// spinWindow is how close to the deadline Wait stops sleeping and spins.
const spinWindow = 200 * time.Microsecond

// Clock abstracts time for the pacer.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type wallClock struct{}

func (wallClock) Now() time.Time        { return time.Now() }
func (wallClock) Sleep(d time.Duration) { time.Sleep(d) }

// FramePacer caps the frame rate and measures the variable frame delta.
type FramePacer struct {
	clock  Clock
	target time.Duration
	next   time.Time
	last   time.Time
	start  time.Time
}

// NewFramePacer paces to fps frames per second using clock, or the wall
// clock when clock is nil. fps <= 0 disables the cap.
func NewFramePacer(fps int, clock Clock) *FramePacer {
	if clock == nil {
		clock = wallClock{}
	}
	p := &FramePacer{clock: clock}
	if fps > 0 {
		p.target = time.Second / time.Duration(fps)
	}
	return p
}

// Begin marks the start of a frame and returns the seconds elapsed since the
// previous Begin. The first frame reports zero.
func (p *FramePacer) Begin() float32 {
	now := p.clock.Now()
	p.start = now
	if p.last.IsZero() {
		p.last = now
		return 0
	}
	dt := now.Sub(p.last)
	p.last = now
	return float32(dt.Seconds())
}

// Elapsed returns the time spent since Begin.
func (p *FramePacer) Elapsed() time.Duration {
	return p.clock.Now().Sub(p.start)
}

// Wait blocks until the frame's slot is over. Sleeping stops just short of
// the deadline and the rest is spun.
func (p *FramePacer) Wait() {
	if p.target <= 0 {
		p.next = time.Time{}
		return
	}
	if p.next.IsZero() {
		p.next = p.start.Add(p.target)
	} else {
		p.next = p.next.Add(p.target)
	}

	for {
		remaining := p.next.Sub(p.clock.Now())
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			p.clock.Sleep(remaining - spinWindow)
			continue
		}
		runtime.Gosched()
	}

	// After a hitch, resync instead of racing to catch up.
	if late := p.clock.Now().Sub(p.next); late > p.target {
		p.next = p.clock.Now()
	}
}
