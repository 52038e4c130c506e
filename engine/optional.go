package engine

import (
	"encoding/json"
	"math"
)

// ============================================================================
// OPTIONAL — explicit "missing" for catalog fields and statistics
// ============================================================================
// A blank price is absent, not $0. Aggregates skip absent values, and JSON
// output renders them as null.
// ============================================================================

// Optional holds a value that may be absent.
type Optional[T any] struct {
	Value T
	Ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Ok: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Ok
}

// Or returns the value, or fallback when absent.
func (o Optional[T]) Or(fallback T) T {
	if !o.Ok {
		return fallback
	}
	return o.Value
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// someFinite returns None for NaN/Inf so they never leak into output.
func someFinite(v float64) Optional[float64] {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return None[float64]()
	}
	return Some(v)
}
