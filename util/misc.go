package util

import (
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// SortedKeys returns the keys of the map in increasing order
func SortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// Finite returns v, or nil when v is NaN or infinite. encoding/json
// refuses non finite floats.
func Finite(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// FiniteMap applies Finite to every value of the map
func FiniteMap(m map[string]float64) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = Finite(v)
	}
	return out
}

// FiniteSlice applies Finite to every value of the slice
func FiniteSlice(s []float64) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = Finite(v)
	}
	return out
}

func CopyFloats(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}
