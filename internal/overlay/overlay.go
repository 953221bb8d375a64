package overlay

import (
	"sync/atomic"
	"time"

	"github.com/rileyhilliard/statoverlay/internal/errors"
	"github.com/rileyhilliard/statoverlay/internal/logger"
	"github.com/rileyhilliard/statoverlay/internal/stats"
)

// Rect is the window position and size in surface units. The core stores
// whatever the surface reports and never validates it.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Frame is everything the surface needs to draw one tick.
type Frame struct {
	Visible bool
	Fast    bool
	Window  Rect
	Panels  []Panel
}

// Options configures an Overlay.
type Options struct {
	SampleInterval time.Duration
	Fast           bool
	Visible        bool
	Toggled        map[PanelID]bool
	Window         Rect
	PlayerName     string
	PeerOrder      PeerOrder
	Logger         logger.Logger
}

// Overlay owns the panels and the visibility state. All methods except
// SetVisible, ToggleVisible and Visible must be called from the tick
// goroutine.
type Overlay struct {
	requested atomic.Bool
	effective bool

	fast       bool
	lastSample time.Time
	samples    uint64

	scheduler Scheduler
	sampler   *Sampler
	panels    []Panel
	index     map[PanelID]int

	window Rect
	placed bool
	log    logger.Logger
}

// New creates an overlay over the given source registry.
func New(sources map[stats.SourceID]stats.Source, opts Options) *Overlay {
	if opts.SampleInterval <= 0 {
		opts.SampleInterval = DefaultSampleInterval
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}

	o := &Overlay{
		fast:      opts.Fast,
		scheduler: Scheduler{Interval: opts.SampleInterval},
		sampler: NewSampler(sources, SamplerOptions{
			PlayerName: opts.PlayerName,
			PeerOrder:  opts.PeerOrder,
			Logger:     opts.Logger,
		}),
		index:  make(map[PanelID]int, len(PanelIDs)),
		window: opts.Window,
		log:    opts.Logger,
	}
	for i, id := range PanelIDs {
		o.panels = append(o.panels, Panel{ID: id, Title: id.Title(), Toggled: opts.Toggled[id]})
		o.index[id] = i
	}
	o.requested.Store(opts.Visible)
	return o
}

// SetVisible records the user's requested visibility. Safe from any goroutine;
// it takes effect at the start of the next Tick.
func (o *Overlay) SetVisible(v bool) {
	o.requested.Store(v)
}

// ToggleVisible flips the requested visibility and returns the new value.
func (o *Overlay) ToggleVisible() bool {
	for {
		cur := o.requested.Load()
		if o.requested.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

// Visible returns the requested visibility.
func (o *Overlay) Visible() bool {
	return o.requested.Load()
}

// Tick runs one presentation tick: latch visibility, resample if the
// scheduler says so, and return the frame to draw.
func (o *Overlay) Tick(now time.Time) Frame {
	o.effective = o.requested.Load()
	if o.effective && o.scheduler.ShouldSample(now, o.lastSample, o.fast) {
		o.sample(now)
	}
	return o.Frame()
}

// Refresh samples immediately regardless of visibility and schedule.
func (o *Overlay) Refresh(now time.Time) {
	o.sample(now)
}

func (o *Overlay) sample(now time.Time) {
	o.sampler.Sample(o.panels)
	o.lastSample = now
	o.samples++
	if o.samples == 1 {
		o.log.Debug("first sample taken, %d statistics unavailable", o.sampler.Missing())
	}
}

// Frame returns the state latched by the most recent Tick.
func (o *Overlay) Frame() Frame {
	panels := make([]Panel, len(o.panels))
	copy(panels, o.panels)
	return Frame{
		Visible: o.effective,
		Fast:    o.fast,
		Window:  o.window,
		Panels:  panels,
	}
}

// Toggle flips one panel's visibility. It never resamples.
func (o *Overlay) Toggle(id PanelID) error {
	i, ok := o.index[id]
	if !ok {
		return unknownPanel(id)
	}
	o.panels[i].Toggled = !o.panels[i].Toggled
	return nil
}

// SetToggled sets one panel's visibility.
func (o *Overlay) SetToggled(id PanelID, on bool) error {
	i, ok := o.index[id]
	if !ok {
		return unknownPanel(id)
	}
	o.panels[i].Toggled = on
	return nil
}

// Panel returns a copy of one panel.
func (o *Overlay) Panel(id PanelID) (Panel, bool) {
	i, ok := o.index[id]
	if !ok {
		return Panel{}, false
	}
	return o.panels[i], true
}

// ToggleFast flips fast mode and returns the new value.
func (o *Overlay) ToggleFast() bool {
	o.fast = !o.fast
	return o.fast
}

// Fast reports whether every tick samples.
func (o *Overlay) Fast() bool { return o.fast }

// LastSample returns when the panels were last sampled.
func (o *Overlay) LastSample() time.Time { return o.lastSample }

// Samples returns how many samples have been taken.
func (o *Overlay) Samples() uint64 { return o.samples }

// Window returns the stored window rectangle.
func (o *Overlay) Window() Rect { return o.window }

// MoveWindow stores a new window position reported by the surface.
func (o *Overlay) MoveWindow(x, y int) {
	o.window.X = x
	o.window.Y = y
	o.placed = true
}

// PlaceWindow positions the window rightMargin from the right edge of the
// screen and centred vertically. Only the first call with a known screen
// size has an effect; later calls and drags keep the user's position.
func (o *Overlay) PlaceWindow(screenWidth, screenHeight, rightMargin int) bool {
	if o.placed || screenWidth <= 0 || screenHeight <= 0 {
		return false
	}
	o.window.X = screenWidth - (o.window.Width + rightMargin)
	o.window.Y = screenHeight/2 - o.window.Height/2
	o.placed = true
	return true
}

func unknownPanel(id PanelID) error {
	return errors.New(errors.ErrStat,
		"Unknown panel: "+string(id),
		"Valid panels: timesync, connection, dynamictick, peerrates")
}
