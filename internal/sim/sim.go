// Package sim simulates the host subsystems the overlay observes so the
// debug window can run stand-alone.
//
// A World implements every subsystem interface of the stats package. Its state
// advances with Step, either directly in tests or from Run on a background
// goroutine; all reads and writes go through one mutex.
package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/rileyhilliard/statoverlay/internal/stats"
)

// Tuning bounds for the simulated dynamic tick scheduler.
const (
	MaxTickRate = 30
	MinTickRate = 5
)

// 100ns ticks per millisecond.
const ticksPerMs = 10000

var peerNames = []string{"Jebediah", "Bill", "Bob", "Valentina"}

// Options configures a World.
type Options struct {
	// Peers is the number of remote peers.
	Peers int
	// Seed makes a run reproducible. Zero picks a time-based seed.
	Seed int64
	// WarmUp is how many steps the subsystems report not ready.
	WarmUp int
	// Start is the virtual clock origin. Zero uses time.Now.
	Start time.Time
}

// World is a set of simulated subsystems.
type World struct {
	mu  sync.Mutex
	rng *rand.Rand

	clock time.Time
	steps int
	warm  int

	warp      float64
	avgSkew   float64
	requested float64
	subspace  int
	speeds    map[int]float64
	errSec    float64
	ut        float64
	latency   int64
	offset    int64
	lag       int64

	lastSend time.Time
	lastRecv time.Time
	queues   [3]int

	future      int
	futureProto int

	tickRate     int
	maxSecondary int

	peers []stats.PeerRate
}

// New creates a world in its initial state.
func New(opts Options) *World {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	start := opts.Start
	if start.IsZero() {
		start = time.Now()
	}

	w := &World{
		rng:          rand.New(rand.NewSource(seed)),
		clock:        start,
		warm:         opts.WarmUp,
		warp:         1,
		avgSkew:      1,
		requested:    1,
		speeds:       map[int]float64{0: 1},
		latency:      20 * ticksPerMs,
		lastSend:     start,
		lastRecv:     start,
		tickRate:     MaxTickRate,
		maxSecondary: 1 + MaxTickRate/5,
	}
	for i := 0; i < opts.Peers; i++ {
		w.peers = append(w.peers, stats.PeerRate{Peer: peerName(i), Rate: 1})
	}
	return w
}

func peerName(i int) string {
	if i < len(peerNames) {
		return peerNames[i]
	}
	return fmt.Sprintf("peer-%d", i+1)
}

// Sources returns a source registry backed by this world.
func (w *World) Sources() map[stats.SourceID]stats.Source {
	return map[stats.SourceID]stats.Source{
		stats.SourceTimeSync:    stats.NewTimeSyncSource(w),
		stats.SourceNetwork:     stats.NewNetworkSource(w),
		stats.SourceVessels:     stats.NewVesselSource(w),
		stats.SourceDynamicTick: stats.NewDynamicTickSource(w),
		stats.SourcePeers:       stats.NewPeerSource(w),
	}
}

// Run advances the world every interval until ctx is cancelled.
func (w *World) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Step(interval)
		}
	}
}

// Step advances the virtual clock by dt and updates every subsystem.
func (w *World) Step(dt time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.steps++
	w.clock = w.clock.Add(dt)

	// Time sync: the local clock drifts around the server's and the
	// controller corrects it, occasionally hopping subspace.
	w.errSec = clamp(w.errSec+w.noise(0.0005), -0.01, 0.01)
	w.warp = 1 - w.errSec*10
	w.avgSkew = 0.9*w.avgSkew + 0.1*w.warp
	w.requested = w.warp
	if w.rng.Float64() < 0.01 {
		w.subspace++
	}
	w.speeds[w.subspace] = w.avgSkew
	w.ut += dt.Seconds() * w.warp
	w.latency = clampInt64(w.latency+int64(w.noise(2*ticksPerMs)), 5*ticksPerMs, 250*ticksPerMs)
	w.offset = int64(w.errSec * 1000 * ticksPerMs)
	w.lag = clampInt64(w.latency/4+int64(w.noise(ticksPerMs)), 0, w.latency)

	// Network: bursts of queued messages drain at the current tick rate.
	for i := range w.queues {
		w.queues[i] = clampInt(w.queues[i]+w.rng.Intn(5)-2, 0, 200)
	}
	if w.rng.Float64() < 0.8 {
		w.lastSend = w.clock
	}
	if w.rng.Float64() < 0.6 {
		w.lastRecv = w.clock
	}

	w.future = clampInt(w.future+w.rng.Intn(3)-1, 0, 50)
	w.futureProto = clampInt(w.futureProto+w.rng.Intn(3)-1, 0, w.future)

	backlog := w.queues[stats.PriorityLow] + w.queues[stats.PrioritySplit]
	w.tickRate = clampInt(MaxTickRate-backlog/4, MinTickRate, MaxTickRate)
	w.maxSecondary = 1 + w.tickRate/5

	for i := range w.peers {
		w.peers[i].Rate = clamp(w.peers[i].Rate+w.noise(0.005), 0.9, 1.1)
	}
}

func (w *World) noise(scale float64) float64 {
	return (w.rng.Float64()*2 - 1) * scale
}

// AddPeer adds a remote peer after the existing ones.
func (w *World) AddPeer(name string, rate float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.peers = append(w.peers, stats.PeerRate{Peer: name, Rate: rate})
}

// RemovePeer drops a remote peer, keeping the others in order.
func (w *World) RemovePeer(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, p := range w.peers {
		if p.Peer == name {
			w.peers = append(w.peers[:i], w.peers[i+1:]...)
			return true
		}
	}
	return false
}

// Steps returns how many times the world has advanced.
func (w *World) Steps() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.steps
}

// Ready reports whether the warm-up period has passed.
func (w *World) Ready() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.steps >= w.warm
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt64(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
