package overlay

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rileyhilliard/statoverlay/internal/logger"
	"github.com/rileyhilliard/statoverlay/internal/stats"
)

// PeerOrder controls how remote peers are listed in the requested rates panel.
type PeerOrder string

const (
	// PeerOrderInsertion keeps the skew tracker's order.
	PeerOrderInsertion PeerOrder = "insertion"
	// PeerOrderName sorts peers by name.
	PeerOrderName PeerOrder = "name"
)

// Time-sync latency, offset and lag are reported in 100ns ticks.
const ticksPerMillisecond = 10000

// Renderer formats one panel's text from the current statistics.
type Renderer func(r *Reader) []string

// Sampler renders every panel's text from the registered sources.
type Sampler struct {
	reader     *Reader
	playerName string
	peerOrder  PeerOrder
	renderers  map[PanelID]Renderer
}

// SamplerOptions configures a Sampler.
type SamplerOptions struct {
	PlayerName string
	PeerOrder  PeerOrder
	Logger     logger.Logger
}

// NewSampler creates a sampler reading from the given source registry.
func NewSampler(sources map[stats.SourceID]stats.Source, opts SamplerOptions) *Sampler {
	s := &Sampler{
		reader:     NewReader(sources, opts.Logger),
		playerName: opts.PlayerName,
		peerOrder:  opts.PeerOrder,
	}
	s.renderers = map[PanelID]Renderer{
		PanelTimeSync:    renderTimeSync,
		PanelConnection:  renderConnection,
		PanelDynamicTick: renderDynamicTick,
		PanelPeerRates:   s.renderPeerRates,
	}
	return s
}

// Sample re-renders the text of every panel in place.
func (s *Sampler) Sample(panels []Panel) {
	for i := range panels {
		panels[i].Text = s.Render(panels[i].ID)
	}
}

// Render returns the formatted text of a single panel.
func (s *Sampler) Render(id PanelID) string {
	render, ok := s.renderers[id]
	if !ok {
		return ""
	}
	return strings.Join(render(s.reader), "\n")
}

// Missing returns how many statistics were unavailable in the last sample.
func (s *Sampler) Missing() int {
	return s.reader.Missing()
}

func renderTimeSync(r *Reader) []string {
	src := stats.SourceTimeSync
	return []string{
		fmt.Sprintf("Warp rate: %sx.", r.Rounded(src, stats.StatWarpRate, 3)),
		fmt.Sprintf("Average Warp rate: %sx.", r.Rounded(src, stats.StatAverageSkewRate, 3)),
		fmt.Sprintf("Current subspace: %s.", r.Text(src, stats.StatCurrentSubspace)),
		fmt.Sprintf("Current subspace rate: %sx.", r.Rounded(src, stats.StatSubspaceRate, 3)),
		fmt.Sprintf("Current Error: %s ms.", r.Multiplied(src, stats.StatCurrentError, 1000, 0)),
		fmt.Sprintf("Current universe time: %s UT", r.Rounded(src, stats.StatUniverseTime, 3)),
		fmt.Sprintf("Network latency: %s ms", r.Divided(src, stats.StatNetworkLatency, ticksPerMillisecond, 3)),
		fmt.Sprintf("Server clock difference: %s ms", r.Divided(src, stats.StatClockOffset, ticksPerMillisecond, 3)),
		fmt.Sprintf("Server lag: %s ms", r.Divided(src, stats.StatServerLag, ticksPerMillisecond, 3)),
	}
}

func renderConnection(r *Reader) []string {
	net, ves := stats.SourceNetwork, stats.SourceVessels
	return []string{
		fmt.Sprintf("Last send time: %sms.", r.Text(net, stats.StatLastSendTime)),
		fmt.Sprintf("Last receive time: %sms.", r.Text(net, stats.StatLastReceiveTime)),
		fmt.Sprintf("Queued outgoing messages (High): %s.", r.Text(net, stats.StatHighPriorityQueueLength)),
		fmt.Sprintf("Queued outgoing messages (Split): %s.", r.Text(net, stats.StatSplitPriorityQueueLength)),
		fmt.Sprintf("Queued outgoing messages (Low): %s.", r.Text(net, stats.StatLowPriorityQueueLength)),
		fmt.Sprintf("Stored future updates: %s.", r.Text(ves, stats.StatStoredFutureUpdates)),
		fmt.Sprintf("Stored future proto updates: %s.", r.Text(ves, stats.StatStoredFutureProtoUpdates)),
	}
}

func renderDynamicTick(r *Reader) []string {
	src := stats.SourceDynamicTick
	return []string{
		fmt.Sprintf("Current tick rate: %shz.", r.Text(src, stats.StatSendTickRate)),
		fmt.Sprintf("Current max secondary vessels: %s.", r.Text(src, stats.StatMaxSecondaryVesselsPerTick)),
	}
}

func (s *Sampler) renderPeerRates(r *Reader) []string {
	lines := []string{
		fmt.Sprintf("%s: %sx.", s.playerName, r.Rounded(stats.SourceTimeSync, stats.StatRequestedRate, 3)),
	}

	entries, ok := r.Entries(stats.SourcePeers, stats.EntriesClientSkew)
	if !ok {
		return lines
	}
	if s.peerOrder == PeerOrderName {
		sorted := make([]stats.Entry, len(entries))
		copy(sorted, entries)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
		entries = sorted
	}

	for _, e := range entries {
		rate := Unavailable
		if f, ok := e.Value.Float(); ok {
			rate = FormatNumber(f, 3)
		}
		lines = append(lines, fmt.Sprintf("%s: %sx.", e.Key, rate))
	}
	return lines
}
