package stats

import (
	"math"
	"strconv"
)

// Kind classifies a Value.
type Kind int

const (
	KindNone Kind = iota
	KindInt
	KindNumber
	KindText
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "none"
	}
}

// Value is a single statistic: an integer counter, a float measurement or a
// string identifier. The zero Value has KindNone.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Number returns a floating point Value.
func Number(f float64) Value { return Value{kind: KindNumber, f: f} }

// Text returns a string Value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// Float returns the value as a float64. Text values parse if they look numeric.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindNumber:
		return v.f, true
	case KindText:
		f, err := strconv.ParseFloat(v.s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// IsFinite reports whether a numeric value is neither NaN nor infinite.
// Non-numeric values are considered finite.
func (v Value) IsFinite() bool {
	if v.kind != KindNumber {
		return true
	}
	return !math.IsNaN(v.f) && !math.IsInf(v.f, 0)
}

// String formats the value with no rounding: integers in base 10, floats in
// their shortest round-tripping decimal form.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindNumber:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindText:
		return v.s
	default:
		return ""
	}
}
