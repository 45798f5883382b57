package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]string{"a", "b", "c"}, "b"))
	require.Equal(t, -1, FindIndex([]string{"a"}, "z"))
}

func TestMostFrequent(t *testing.T) {
	tests := []struct {
		name     string
		values   []int
		expected int
	}{
		{name: "single value", values: []int{4}, expected: 4},
		{name: "clear mode", values: []int{3, 1, 3, 2, 3}, expected: 3},
		{name: "tie goes to the smallest", values: []int{7, 2, 7, 2, 5}, expected: 2},
		{name: "all distinct picks the smallest", values: []int{9, 4, 6, 8, 5}, expected: 4},
		{name: "negative values", values: []int{-1, 0, -1, 12, 0, -1}, expected: -1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			before := append([]int(nil), test.values...)

			require.Equal(t, test.expected, MostFrequent(test.values))
			require.Equal(t, before, test.values, "Input should not be reordered")
		})
	}

	t.Run("empty input panics", func(t *testing.T) {
		require.Panics(t, func() { MostFrequent([]int{}) })
	})
}
