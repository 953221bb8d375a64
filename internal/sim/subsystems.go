package sim

import (
	"time"

	"github.com/rileyhilliard/statoverlay/internal/stats"
)

var (
	_ stats.TimeSyncer    = (*World)(nil)
	_ stats.NetworkWorker = (*World)(nil)
	_ stats.VesselWorker  = (*World)(nil)
	_ stats.DynamicTicker = (*World)(nil)
	_ stats.SkewTracker   = (*World)(nil)
	_ stats.Readier       = (*World)(nil)
)

func (w *World) read(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn()
}

func (w *World) WarpRate() (v float64)        { w.read(func() { v = w.warp }); return }
func (w *World) AverageSkewRate() (v float64) { w.read(func() { v = w.avgSkew }); return }
func (w *World) CurrentSubspace() (v int)     { w.read(func() { v = w.subspace }); return }
func (w *World) CurrentError() (v float64)    { w.read(func() { v = w.errSec }); return }
func (w *World) UniverseTime() (v float64)    { w.read(func() { v = w.ut }); return }
func (w *World) RequestedRate() (v float64)   { w.read(func() { v = w.requested }); return }

func (w *World) NetworkLatencyAverage() (v int64) { w.read(func() { v = w.latency }); return }
func (w *World) ClockOffsetAverage() (v int64)    { w.read(func() { v = w.offset }); return }
func (w *World) ServerLag() (v int64)             { w.read(func() { v = w.lag }); return }

// SubspaceSpeed returns the recorded speed of a subspace.
func (w *World) SubspaceSpeed(subspace int) (speed float64, ok bool) {
	w.read(func() { speed, ok = w.speeds[subspace] })
	return
}

// SinceLastSend is measured on the virtual clock.
func (w *World) SinceLastSend() (d time.Duration) {
	w.read(func() { d = w.clock.Sub(w.lastSend) })
	return
}

// SinceLastReceive is measured on the virtual clock.
func (w *World) SinceLastReceive() (d time.Duration) {
	w.read(func() { d = w.clock.Sub(w.lastRecv) })
	return
}

func (w *World) QueueLength(p stats.Priority) (n int) {
	w.read(func() {
		if p >= 0 && int(p) < len(w.queues) {
			n = w.queues[p]
		}
	})
	return
}

func (w *World) StoredFutureUpdates() (n int)      { w.read(func() { n = w.future }); return }
func (w *World) StoredFutureProtoUpdates() (n int) { w.read(func() { n = w.futureProto }); return }

func (w *World) SendTickRate() (n int)               { w.read(func() { n = w.tickRate }); return }
func (w *World) MaxSecondaryVesselsPerTick() (n int) { w.read(func() { n = w.maxSecondary }); return }

// ClientSkews returns a copy of the peers in insertion order.
func (w *World) ClientSkews() (out []stats.PeerRate) {
	w.read(func() {
		out = make([]stats.PeerRate, len(w.peers))
		copy(out, w.peers)
	})
	return
}
