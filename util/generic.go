// generic.go
// Copyright(c) 2022 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package util carries the small set of generic map helpers the
// aggregators need for deterministic snapshot ordering.
package util

import (
	"maps"
	"slices"

	"golang.org/x/exp/constraints"
)

// SortedMapKeys returns the keys of the given map, sorted from low to
// high, so that callers iterating an aggregator's snapshot get
// deterministic output regardless of Go's randomized map iteration.
func SortedMapKeys[K constraints.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}
