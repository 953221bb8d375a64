package overlay

import "time"

// DefaultSampleInterval is the minimum spacing between samples outside fast mode.
const DefaultSampleInterval = 200 * time.Millisecond

// Scheduler decides once per tick whether the panels should be resampled.
type Scheduler struct {
	Interval time.Duration
}

// ShouldSample returns true when fast mode is on or strictly more than
// Interval has elapsed since last.
func (s Scheduler) ShouldSample(now, last time.Time, fast bool) bool {
	return fast || now.Sub(last) > s.Interval
}
