package overlay

import (
	stderrors "errors"
	"fmt"

	"github.com/rileyhilliard/statoverlay/internal/errors"
	"github.com/rileyhilliard/statoverlay/internal/logger"
	"github.com/rileyhilliard/statoverlay/internal/stats"
)

// Reader reads statistics from the registered sources and never fails: a
// missing source, an error or a panic inside a source all read as
// unavailable. Availability changes are logged once per transition.
type Reader struct {
	sources map[stats.SourceID]stats.Source
	log     logger.Logger
	missing map[string]bool
}

// NewReader creates a reader over the given sources.
func NewReader(sources map[stats.SourceID]stats.Source, log logger.Logger) *Reader {
	if log == nil {
		log = logger.Noop()
	}
	reg := make(map[stats.SourceID]stats.Source, len(sources))
	for id, src := range sources {
		if src != nil {
			reg[id] = src
		}
	}
	return &Reader{sources: reg, log: log, missing: make(map[string]bool)}
}

// Value returns a scalar statistic and whether it was available.
func (r *Reader) Value(src stats.SourceID, name string) (stats.Value, bool) {
	source, ok := r.sources[src]
	if !ok {
		r.note(src, name, errors.Unavailable(string(src), name))
		return stats.Value{}, false
	}

	v, err := r.call(src, name, func() (stats.Value, error) { return source.Statistic(name) })
	r.note(src, name, err)
	return v, err == nil
}

// Entries returns a list statistic and whether it was available.
func (r *Reader) Entries(src stats.SourceID, name string) ([]stats.Entry, bool) {
	source, ok := r.sources[src]
	if !ok {
		r.note(src, name, errors.Unavailable(string(src), name))
		return nil, false
	}
	lister, ok := source.(stats.EntrySource)
	if !ok {
		r.note(src, name, errors.Unavailable(string(src), name))
		return nil, false
	}

	var entries []stats.Entry
	_, err := r.call(src, name, func() (stats.Value, error) {
		var err error
		entries, err = lister.Entries(name)
		return stats.Value{}, err
	})
	r.note(src, name, err)
	if err != nil {
		return nil, false
	}
	return entries, true
}

// Text returns the statistic formatted without rounding.
func (r *Reader) Text(src stats.SourceID, name string) string {
	v, ok := r.Value(src, name)
	if !ok {
		return Unavailable
	}
	return formatValue(v)
}

// Rounded returns the statistic rounded to places decimals.
func (r *Reader) Rounded(src stats.SourceID, name string, places int) string {
	return r.scaled(src, name, func(f float64) float64 { return f }, places)
}

// Multiplied returns the statistic times factor, rounded to places decimals.
func (r *Reader) Multiplied(src stats.SourceID, name string, factor float64, places int) string {
	return r.scaled(src, name, func(f float64) float64 { return f * factor }, places)
}

// Divided returns the statistic divided by divisor, rounded to places decimals.
func (r *Reader) Divided(src stats.SourceID, name string, divisor float64, places int) string {
	return r.scaled(src, name, func(f float64) float64 { return f / divisor }, places)
}

func (r *Reader) scaled(src stats.SourceID, name string, fn func(float64) float64, places int) string {
	v, ok := r.Value(src, name)
	if !ok {
		return Unavailable
	}
	f, ok := v.Float()
	if !ok {
		r.log.Debug("%s/%s is %s, not a number", src, name, v.Kind())
		return Unavailable
	}
	return FormatNumber(fn(f), places)
}

func (r *Reader) call(src stats.SourceID, name string, fn func() (stats.Value, error)) (v stats.Value, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.WrapWithCode(fmt.Errorf("%v", p), errors.ErrStat,
				fmt.Sprintf("statistic %s/%s panicked", src, name), "")
		}
	}()
	return fn()
}

func (r *Reader) note(src stats.SourceID, name string, err error) {
	key := string(src) + "/" + name
	switch {
	case err != nil && !r.missing[key]:
		r.missing[key] = true
		r.log.Debug("%s unavailable: %s", key, oneLine(err))
	case err == nil && r.missing[key]:
		delete(r.missing, key)
		r.log.Debug("%s available again", key)
	}
}

// Missing returns how many statistics are currently unavailable.
func (r *Reader) Missing() int {
	return len(r.missing)
}

func oneLine(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}
