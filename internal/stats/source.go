// Package stats is the read-only adapter layer between observed subsystems
// and the overlay. Every subsystem is exposed as a Source of named
// statistics; list-shaped statistics (per-peer rates) come from an
// EntrySource. Sources must be non-blocking and free of side effects.
package stats

import (
	"sort"

	"github.com/rileyhilliard/statoverlay/internal/errors"
)

// SourceID names a registered source.
type SourceID string

// Sources known to the overlay panels.
const (
	SourceTimeSync    SourceID = "timesync"
	SourceNetwork     SourceID = "network"
	SourceVessels     SourceID = "vessels"
	SourceDynamicTick SourceID = "dynamictick"
	SourcePeers       SourceID = "peers"
)

// Time-sync statistics.
const (
	StatWarpRate        = "WarpRate"
	StatAverageSkewRate = "AverageSkewRate"
	StatCurrentSubspace = "CurrentSubspace"
	StatSubspaceRate    = "SubspaceRate"
	StatCurrentError    = "CurrentError"
	StatUniverseTime    = "UniverseTime"
	StatNetworkLatency  = "NetworkLatency"
	StatClockOffset     = "ClockOffset"
	StatServerLag       = "ServerLag"
	StatRequestedRate   = "RequestedRate"
)

// Network statistics. Times are milliseconds since the event.
const (
	StatLastSendTime             = "LastSendTime"
	StatLastReceiveTime          = "LastReceiveTime"
	StatHighPriorityQueueLength  = "HighPriorityQueueLength"
	StatSplitPriorityQueueLength = "SplitPriorityQueueLength"
	StatLowPriorityQueueLength   = "LowPriorityQueueLength"
)

// Vessel worker statistics.
const (
	StatStoredFutureUpdates      = "StoredFutureUpdates"
	StatStoredFutureProtoUpdates = "StoredFutureProtoUpdates"
)

// Dynamic tick statistics.
const (
	StatSendTickRate               = "SendTickRate"
	StatMaxSecondaryVesselsPerTick = "MaxSecondaryVesselsPerTick"
)

// EntriesClientSkew lists each remote peer's requested warp rate.
const EntriesClientSkew = "ClientSkew"

// Source exposes named scalar statistics for one subsystem.
type Source interface {
	Statistic(name string) (Value, error)
}

// EntrySource exposes named ordered key/value lists.
type EntrySource interface {
	Entries(name string) ([]Entry, error)
}

// Entry is one element of a list statistic.
type Entry struct {
	Key   string
	Value Value
}

// Getter produces the current value of one statistic.
type Getter func() (Value, error)

// EntriesGetter produces the current contents of one list statistic.
type EntriesGetter func() ([]Entry, error)

// Table is a Source and EntrySource backed by named getters. Adapters build
// one Table per subsystem.
type Table struct {
	id      SourceID
	getters map[string]Getter
	lists   map[string]EntriesGetter
}

// NewTable creates an empty table for the given source.
func NewTable(id SourceID) *Table {
	return &Table{
		id:      id,
		getters: make(map[string]Getter),
		lists:   make(map[string]EntriesGetter),
	}
}

// ID returns the source id the table was created for.
func (t *Table) ID() SourceID { return t.id }

// Add registers a scalar statistic and returns the table for chaining.
func (t *Table) Add(name string, g Getter) *Table {
	t.getters[name] = g
	return t
}

// AddEntries registers a list statistic and returns the table for chaining.
func (t *Table) AddEntries(name string, g EntriesGetter) *Table {
	t.lists[name] = g
	return t
}

// Statistic implements Source. Unknown names are unavailable.
func (t *Table) Statistic(name string) (Value, error) {
	g, ok := t.getters[name]
	if !ok {
		return Value{}, errors.Unavailable(string(t.id), name)
	}
	return g()
}

// Entries implements EntrySource. Unknown names are unavailable.
func (t *Table) Entries(name string) ([]Entry, error) {
	g, ok := t.lists[name]
	if !ok {
		return nil, errors.Unavailable(string(t.id), name)
	}
	return g()
}

// Names returns the registered scalar statistic names, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.getters))
	for name := range t.getters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stat names one statistic of one source.
type Stat struct {
	Source SourceID
	Name   string
	List   bool
}

// Catalog returns every statistic the overlay panels read, grouped by
// source in panel order.
func Catalog() []Stat {
	return []Stat{
		{SourceTimeSync, StatWarpRate, false},
		{SourceTimeSync, StatAverageSkewRate, false},
		{SourceTimeSync, StatCurrentSubspace, false},
		{SourceTimeSync, StatSubspaceRate, false},
		{SourceTimeSync, StatCurrentError, false},
		{SourceTimeSync, StatUniverseTime, false},
		{SourceTimeSync, StatNetworkLatency, false},
		{SourceTimeSync, StatClockOffset, false},
		{SourceTimeSync, StatServerLag, false},
		{SourceTimeSync, StatRequestedRate, false},
		{SourceNetwork, StatLastSendTime, false},
		{SourceNetwork, StatLastReceiveTime, false},
		{SourceNetwork, StatHighPriorityQueueLength, false},
		{SourceNetwork, StatSplitPriorityQueueLength, false},
		{SourceNetwork, StatLowPriorityQueueLength, false},
		{SourceVessels, StatStoredFutureUpdates, false},
		{SourceVessels, StatStoredFutureProtoUpdates, false},
		{SourceDynamicTick, StatSendTickRate, false},
		{SourceDynamicTick, StatMaxSecondaryVesselsPerTick, false},
		{SourcePeers, EntriesClientSkew, true},
	}
}
