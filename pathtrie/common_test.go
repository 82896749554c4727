package pathtrie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioItems is the reference data set: integer paths with values that
// spell out the path.
var scenarioItems = []Item[int, int]{
	{[]int{1}, 1},
	{[]int{1, 1}, 11},
	{[]int{1, 2}, 12},
	{[]int{1, 2, 1}, 121},
	{[]int{1, 2, 2}, 122},
	{[]int{1, 3, 1, 1, 1}, 13111},
}

func newScenarioTrie(t testing.TB) *Trie[int, int] {
	tr, err := FromItems(scenarioItems...)
	require.NoError(t, err)
	return tr
}

func isStrictPrefix[K comparable](pfx, path []K) bool {
	if len(pfx) >= len(path) {
		return false
	}
	for i := range pfx {
		if pfx[i] != path[i] {
			return false
		}
	}
	return true
}

// assertPreOrder checks that no item is yielded after an item nested below it.
func assertPreOrder[K comparable, V any](t *testing.T, items []Item[K, V]) {
	t.Helper()
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			assert.False(t, isStrictPrefix(items[j].Path, items[i].Path),
				"%v yielded before its prefix %v", items[i].Path, items[j].Path)
		}
	}
}

func indexOf[K comparable, V any](items []Item[K, V], path []K) int {
	for i, item := range items {
		if equalPath(item.Path, path) {
			return i
		}
	}
	return -1
}

func equalPath[K comparable](a, b []K) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
