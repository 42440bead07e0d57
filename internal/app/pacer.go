package app

import "time"

// Pacer holds frames to a fixed budget. Time spent rendering counts against
// the budget, so only the remainder is slept.
type Pacer struct {
	budget time.Duration
	start  time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewPacer returns a pacer for fps frames per second. fps <= 0 disables pacing.
func NewPacer(fps int) *Pacer {
	p := &Pacer{now: time.Now, sleep: time.Sleep}
	if fps > 0 {
		p.budget = time.Second / time.Duration(fps)
	}
	p.start = p.now()
	return p
}

// Budget returns the per-frame budget, zero when unpaced.
func (p *Pacer) Budget() time.Duration { return p.budget }

// Wait sleeps out the rest of the current frame and starts the next one.
// It returns the time since the previous Wait, sleep included.
func (p *Pacer) Wait() time.Duration {
	if p.budget > 0 {
		if rest := p.budget - p.now().Sub(p.start); rest > 0 {
			p.sleep(rest)
		}
	}
	now := p.now()
	frame := now.Sub(p.start)
	p.start = now
	return frame
}
