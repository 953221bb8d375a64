package stats

import (
	"time"

	"github.com/rileyhilliard/statoverlay/internal/errors"
)

// TimeSyncer is the slice of the time-synchronization service the overlay reads.
// Latency, offset and lag are in 100ns ticks.
type TimeSyncer interface {
	WarpRate() float64
	AverageSkewRate() float64
	CurrentSubspace() int
	SubspaceSpeed(subspace int) (float64, bool)
	CurrentError() float64
	UniverseTime() float64
	NetworkLatencyAverage() int64
	ClockOffsetAverage() int64
	ServerLag() int64
	RequestedRate() float64
}

// Priority is an outgoing message queue class.
type Priority int

const (
	PriorityHigh Priority = iota
	PrioritySplit
	PriorityLow
)

// NetworkWorker is the slice of the network transport the overlay reads.
type NetworkWorker interface {
	SinceLastSend() time.Duration
	SinceLastReceive() time.Duration
	QueueLength(p Priority) int
}

// VesselWorker reports updates buffered for entities that do not exist yet.
type VesselWorker interface {
	StoredFutureUpdates() int
	StoredFutureProtoUpdates() int
}

// DynamicTicker reports the adaptive send rate chosen by the tick scheduler.
type DynamicTicker interface {
	SendTickRate() int
	MaxSecondaryVesselsPerTick() int
}

// PeerRate is one remote peer's last requested warp rate.
type PeerRate struct {
	Peer string
	Rate float64
}

// SkewTracker reports remote peers' requested rates in insertion order.
type SkewTracker interface {
	ClientSkews() []PeerRate
}

// Readier is optionally implemented by subsystems that start uninitialised.
// While Ready returns false every statistic of the subsystem is unavailable.
type Readier interface {
	Ready() bool
}

// guard wraps getters so a nil or not-ready subsystem yields unavailable.
type guard struct {
	id  SourceID
	sub interface{}
}

func (g guard) ok() bool {
	if g.sub == nil {
		return false
	}
	if r, isReadier := g.sub.(Readier); isReadier {
		return r.Ready()
	}
	return true
}

func (g guard) value(name string, fn func() Value) Getter {
	return func() (Value, error) {
		if !g.ok() {
			return Value{}, errors.Unavailable(string(g.id), name)
		}
		return fn(), nil
	}
}

// NewTimeSyncSource adapts a TimeSyncer. A nil syncer yields a source whose
// statistics are all unavailable.
func NewTimeSyncSource(ts TimeSyncer) *Table {
	t := NewTable(SourceTimeSync)
	g := guard{id: SourceTimeSync, sub: ts}

	t.Add(StatWarpRate, g.value(StatWarpRate, func() Value { return Number(ts.WarpRate()) }))
	t.Add(StatAverageSkewRate, g.value(StatAverageSkewRate, func() Value { return Number(ts.AverageSkewRate()) }))
	t.Add(StatCurrentSubspace, g.value(StatCurrentSubspace, func() Value { return Int(int64(ts.CurrentSubspace())) }))
	t.Add(StatSubspaceRate, func() (Value, error) {
		if !g.ok() {
			return Value{}, errors.Unavailable(string(SourceTimeSync), StatSubspaceRate)
		}
		speed, ok := ts.SubspaceSpeed(ts.CurrentSubspace())
		if !ok {
			return Value{}, errors.Unavailable(string(SourceTimeSync), StatSubspaceRate)
		}
		return Number(speed), nil
	})
	t.Add(StatCurrentError, g.value(StatCurrentError, func() Value { return Number(ts.CurrentError()) }))
	t.Add(StatUniverseTime, g.value(StatUniverseTime, func() Value { return Number(ts.UniverseTime()) }))
	t.Add(StatNetworkLatency, g.value(StatNetworkLatency, func() Value { return Int(ts.NetworkLatencyAverage()) }))
	t.Add(StatClockOffset, g.value(StatClockOffset, func() Value { return Int(ts.ClockOffsetAverage()) }))
	t.Add(StatServerLag, g.value(StatServerLag, func() Value { return Int(ts.ServerLag()) }))
	t.Add(StatRequestedRate, g.value(StatRequestedRate, func() Value { return Number(ts.RequestedRate()) }))
	return t
}

// NewNetworkSource adapts a NetworkWorker.
func NewNetworkSource(nw NetworkWorker) *Table {
	t := NewTable(SourceNetwork)
	g := guard{id: SourceNetwork, sub: nw}

	t.Add(StatLastSendTime, g.value(StatLastSendTime, func() Value { return Int(nw.SinceLastSend().Milliseconds()) }))
	t.Add(StatLastReceiveTime, g.value(StatLastReceiveTime, func() Value { return Int(nw.SinceLastReceive().Milliseconds()) }))
	t.Add(StatHighPriorityQueueLength, g.value(StatHighPriorityQueueLength, func() Value { return Int(int64(nw.QueueLength(PriorityHigh))) }))
	t.Add(StatSplitPriorityQueueLength, g.value(StatSplitPriorityQueueLength, func() Value { return Int(int64(nw.QueueLength(PrioritySplit))) }))
	t.Add(StatLowPriorityQueueLength, g.value(StatLowPriorityQueueLength, func() Value { return Int(int64(nw.QueueLength(PriorityLow))) }))
	return t
}

// NewVesselSource adapts a VesselWorker.
func NewVesselSource(vw VesselWorker) *Table {
	t := NewTable(SourceVessels)
	g := guard{id: SourceVessels, sub: vw}

	t.Add(StatStoredFutureUpdates, g.value(StatStoredFutureUpdates, func() Value { return Int(int64(vw.StoredFutureUpdates())) }))
	t.Add(StatStoredFutureProtoUpdates, g.value(StatStoredFutureProtoUpdates, func() Value { return Int(int64(vw.StoredFutureProtoUpdates())) }))
	return t
}

// NewDynamicTickSource adapts a DynamicTicker.
func NewDynamicTickSource(dt DynamicTicker) *Table {
	t := NewTable(SourceDynamicTick)
	g := guard{id: SourceDynamicTick, sub: dt}

	t.Add(StatSendTickRate, g.value(StatSendTickRate, func() Value { return Int(int64(dt.SendTickRate())) }))
	t.Add(StatMaxSecondaryVesselsPerTick, g.value(StatMaxSecondaryVesselsPerTick, func() Value { return Int(int64(dt.MaxSecondaryVesselsPerTick())) }))
	return t
}

// NewPeerSource adapts a SkewTracker. Entries keep the tracker's order.
func NewPeerSource(st SkewTracker) *Table {
	t := NewTable(SourcePeers)
	g := guard{id: SourcePeers, sub: st}

	t.AddEntries(EntriesClientSkew, func() ([]Entry, error) {
		if !g.ok() {
			return nil, errors.Unavailable(string(SourcePeers), EntriesClientSkew)
		}
		skews := st.ClientSkews()
		entries := make([]Entry, 0, len(skews))
		for _, s := range skews {
			entries = append(entries, Entry{Key: s.Peer, Value: Number(s.Rate)})
		}
		return entries, nil
	})
	return t
}
