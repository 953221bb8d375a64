package sim

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rileyhilliard/statoverlay/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var origin = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	w := New(Options{Peers: 6, Seed: 1, Start: origin})

	assert.True(t, w.Ready())
	assert.Equal(t, 0, w.Steps())
	assert.Equal(t, 1.0, w.WarpRate())
	assert.Equal(t, 0, w.CurrentSubspace())
	assert.Equal(t, MaxTickRate, w.SendTickRate())
	assert.Equal(t, time.Duration(0), w.SinceLastSend())

	skews := w.ClientSkews()
	require.Len(t, skews, 6)
	assert.Equal(t, "Jebediah", skews[0].Peer)
	assert.Equal(t, "Valentina", skews[3].Peer)
	assert.Equal(t, "peer-5", skews[4].Peer)
	assert.Equal(t, "peer-6", skews[5].Peer)
}

func TestWarmUp(t *testing.T) {
	w := New(Options{Seed: 1, WarmUp: 3, Start: origin})
	src := w.Sources()[stats.SourceTimeSync]

	for i := 0; i < 3; i++ {
		assert.False(t, w.Ready())
		_, err := src.Statistic(stats.StatWarpRate)
		assert.Error(t, err, "step %d", i)
		w.Step(100 * time.Millisecond)
	}

	assert.True(t, w.Ready())
	_, err := src.Statistic(stats.StatWarpRate)
	assert.NoError(t, err)
}

func TestStepDeterministic(t *testing.T) {
	a := New(Options{Peers: 2, Seed: 42, Start: origin})
	b := New(Options{Peers: 2, Seed: 42, Start: origin})

	for i := 0; i < 50; i++ {
		a.Step(50 * time.Millisecond)
		b.Step(50 * time.Millisecond)
	}

	assert.Equal(t, a.UniverseTime(), b.UniverseTime())
	assert.Equal(t, a.NetworkLatencyAverage(), b.NetworkLatencyAverage())
	assert.Equal(t, a.ClientSkews(), b.ClientSkews())
	assert.Equal(t, 50, a.Steps())
}

func TestStepBounds(t *testing.T) {
	w := New(Options{Peers: 3, Seed: 7, Start: origin})

	for i := 0; i < 2000; i++ {
		w.Step(20 * time.Millisecond)

		require.GreaterOrEqual(t, w.SendTickRate(), MinTickRate)
		require.LessOrEqual(t, w.SendTickRate(), MaxTickRate)
		require.Equal(t, 1+w.SendTickRate()/5, w.MaxSecondaryVesselsPerTick())
		for _, p := range []stats.Priority{stats.PriorityHigh, stats.PrioritySplit, stats.PriorityLow} {
			require.GreaterOrEqual(t, w.QueueLength(p), 0)
		}
		require.LessOrEqual(t, w.StoredFutureProtoUpdates(), w.StoredFutureUpdates())
		require.LessOrEqual(t, w.ServerLag(), w.NetworkLatencyAverage())
		require.GreaterOrEqual(t, w.SinceLastSend(), time.Duration(0))

		speed, ok := w.SubspaceSpeed(w.CurrentSubspace())
		require.True(t, ok)
		require.Equal(t, w.AverageSkewRate(), speed)
		for _, p := range w.ClientSkews() {
			require.InDelta(t, 1.0, p.Rate, 0.11)
		}
	}

	assert.Greater(t, w.UniverseTime(), 0.0)
	assert.Equal(t, 0, w.QueueLength(stats.Priority(9)))
	_, ok := w.SubspaceSpeed(-1)
	assert.False(t, ok)
}

func TestAddRemovePeer(t *testing.T) {
	w := New(Options{Peers: 2, Seed: 1, Start: origin})

	w.AddPeer("Wernher", 1.25)
	assert.True(t, w.RemovePeer("Jebediah"))
	assert.False(t, w.RemovePeer("Gene"))

	skews := w.ClientSkews()
	require.Len(t, skews, 2)
	assert.Equal(t, stats.PeerRate{Peer: "Bill", Rate: 1}, skews[0])
	assert.Equal(t, stats.PeerRate{Peer: "Wernher", Rate: 1.25}, skews[1])

	skews[0].Peer = "changed"
	assert.Equal(t, "Bill", w.ClientSkews()[0].Peer, "ClientSkews returns a copy")
}

func TestSources(t *testing.T) {
	w := New(Options{Peers: 1, Seed: 3, Start: origin})
	w.Step(time.Second)

	sources := w.Sources()
	require.Len(t, sources, 5)

	v, err := sources[stats.SourceDynamicTick].Statistic(stats.StatSendTickRate)
	require.NoError(t, err)
	assert.Equal(t, stats.Int(int64(w.SendTickRate())), v)

	lister, ok := sources[stats.SourcePeers].(stats.EntrySource)
	require.True(t, ok)
	entries, err := lister.Entries(stats.EntriesClientSkew)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Jebediah", entries[0].Key)
}

func TestRun(t *testing.T) {
	w := New(Options{Peers: 2})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, time.Millisecond) }()

	// Readers race the stepping goroutine.
	var wg sync.WaitGroup
	sources := w.Sources()
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_, _ = sources[stats.SourceTimeSync].Statistic(stats.StatUniverseTime)
				_ = w.ClientSkews()
			}
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool { return w.Steps() > 0 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
