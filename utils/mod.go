package utils

import (
	"cmp"
	"slices"
)

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// MostFrequent returns the mode of values. Among equally frequent values the
// smallest wins because the scan runs over the values sorted ascending.
// values is not modified. It panics on an empty slice.
func MostFrequent[T cmp.Ordered](values []T) T {
	if len(values) == 0 {
		panic("mode of empty slice")
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	best, bestCount := sorted[0], 1
	count := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			count++
		} else {
			count = 1
		}
		if count > bestCount {
			bestCount = count
			best = sorted[i]
		}
	}
	return best
}
