package stats

import (
	"sync"
	"sync/atomic"

	"github.com/rileyhilliard/statoverlay/internal/errors"
)

// snapshotData is immutable once published.
type snapshotData struct {
	values  map[string]Value
	entries map[string][]Entry
}

// Snapshot is a Source for hosts whose statistics are produced on worker
// goroutines. Writers publish copy-on-write; readers load one immutable
// snapshot per call, so a reader never sees a half-applied update.
type Snapshot struct {
	id   SourceID
	mu   sync.Mutex // serialises writers
	data atomic.Pointer[snapshotData]
}

// NewSnapshot creates an empty snapshot source.
func NewSnapshot(id SourceID) *Snapshot {
	s := &Snapshot{id: id}
	s.data.Store(&snapshotData{
		values:  map[string]Value{},
		entries: map[string][]Entry{},
	})
	return s
}

// ID returns the source id.
func (s *Snapshot) ID() SourceID { return s.id }

// Set publishes a single statistic.
func (s *Snapshot) Set(name string, v Value) {
	s.update(func(d *snapshotData) { d.values[name] = v })
}

// SetEntries publishes a list statistic. The slice is copied.
func (s *Snapshot) SetEntries(name string, entries []Entry) {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	s.update(func(d *snapshotData) { d.entries[name] = cp })
}

// Delete marks a statistic unavailable again.
func (s *Snapshot) Delete(name string) {
	s.update(func(d *snapshotData) {
		delete(d.values, name)
		delete(d.entries, name)
	})
}

// Publish replaces every scalar statistic at once.
func (s *Snapshot) Publish(values map[string]Value) {
	s.update(func(d *snapshotData) {
		d.values = make(map[string]Value, len(values))
		for k, v := range values {
			d.values[k] = v
		}
	})
}

func (s *Snapshot) update(fn func(d *snapshotData)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.data.Load()
	next := &snapshotData{
		values:  make(map[string]Value, len(cur.values)+1),
		entries: make(map[string][]Entry, len(cur.entries)),
	}
	for k, v := range cur.values {
		next.values[k] = v
	}
	for k, v := range cur.entries {
		next.entries[k] = v
	}
	fn(next)
	s.data.Store(next)
}

// Statistic implements Source.
func (s *Snapshot) Statistic(name string) (Value, error) {
	v, ok := s.data.Load().values[name]
	if !ok {
		return Value{}, errors.Unavailable(string(s.id), name)
	}
	return v, nil
}

// Entries implements EntrySource. The returned slice must not be modified.
func (s *Snapshot) Entries(name string) ([]Entry, error) {
	e, ok := s.data.Load().entries[name]
	if !ok {
		return nil, errors.Unavailable(string(s.id), name)
	}
	return e, nil
}
