// Package overlay implements the sampling and presentation engine of the
// debug window.
//
// Each presentation tick the host calls Overlay.Tick. The tick:
//
//  1. latches the requested visibility into the effective flag, so a
//     visibility change from another goroutine never splits a tick
//  2. asks the Scheduler whether the sample interval has passed (or fast
//     mode is on), skipping the check entirely while the window is closed
//  3. re-renders the text of every panel through the Sampler
//  4. returns a Frame with the latched visibility, window rectangle and a
//     copy of each panel for the surface to draw
//
// # Sources
//
// The Sampler reads from a registry of stats.Source values keyed by
// stats.SourceID. Reads go through a Reader that turns missing sources,
// source errors and panics into the Unavailable placeholder and NaN or
// infinite numbers into NonFinite, so one bad statistic only degrades its
// own line.
//
// # Rounding
//
// Numbers are rounded half away from zero at the stated number of decimals
// and printed in their shortest form (1.000 prints as "1").
package overlay
