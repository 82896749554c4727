package pathtrie

import (
	"errors"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tr := New[string, int]()

	require.NotNil(t, tr)
	assert.True(t, tr.Empty())
	assert.Equal(t, 0, tr.Len())

	_, ok := tr.Fetch(nil)
	assert.False(t, ok)
}

func TestNewWithValue(t *testing.T) {
	t.Parallel()

	tr := NewWithValue[string]("root")

	assert.Equal(t, 1, tr.Len())

	val, ok := tr.Fetch(nil)
	assert.True(t, ok)
	assert.Equal(t, "root", val)

	val, ok = tr.Fetch([]string{})
	assert.True(t, ok)
	assert.Equal(t, "root", val)

	err := tr.Insert(nil, "again")
	assert.ErrorIs(t, err, ErrDuplicatePath)
}

func TestFetch(t *testing.T) {
	t.Parallel()

	tr := newScenarioTrie(t)

	for _, tcase := range []*struct {
		Path   []int
		ExpVal int
		ExpOK  bool
	}{
		{nil, 0, false},
		{[]int{1}, 1, true},
		{[]int{1, 1}, 11, true},
		{[]int{1, 2}, 12, true},
		{[]int{1, 2, 1}, 121, true},
		{[]int{1, 2, 2}, 122, true},
		{[]int{1, 2, 3}, 0, false},
		{[]int{1, 3}, 0, false},       // branch node
		{[]int{1, 3, 1, 1}, 0, false}, // branch node
		{[]int{1, 3, 1, 1, 1}, 13111, true},
		{[]int{1, 3, 1, 1, 1, 1}, 0, false},
		{[]int{2}, 0, false},
		{[]int{2, 1}, 0, false},
	} {
		name := fmt.Sprintf("%v", tcase.Path)

		t.Run(name, func(t *testing.T) {
			val, ok := tr.Fetch(tcase.Path)

			assert.Equal(t, tcase.ExpVal, val)
			assert.Equal(t, tcase.ExpOK, ok)
			assert.Equal(t, tcase.ExpOK, tr.Has(tcase.Path))
		})
	}
}

func TestInsert_Duplicate(t *testing.T) {
	t.Parallel()

	tr := newScenarioTrie(t)

	err := tr.Insert([]int{1, 2}, 999)

	var perr *PathError
	require.True(t, errors.As(err, &perr))
	assert.ErrorIs(t, err, ErrDuplicatePath)
	assert.Equal(t, "insert", perr.Op)
	assert.Equal(t, "/1/2", perr.Path)
	assert.Equal(t, "insert /1/2: path already holds a value", err.Error())

	// the first value stays
	val, ok := tr.Fetch([]int{1, 2})
	assert.True(t, ok)
	assert.Equal(t, 12, val)
	assert.Equal(t, len(scenarioItems), tr.Len())
}

func TestInsert_IntoBranch(t *testing.T) {
	t.Parallel()

	tr := newScenarioTrie(t)

	require.NoError(t, tr.Insert([]int{1, 3}, 13))

	val, ok := tr.Fetch([]int{1, 3})
	assert.True(t, ok)
	assert.Equal(t, 13, val)
	assert.Equal(t, len(scenarioItems)+1, tr.Len())
}

func TestMustInsert(t *testing.T) {
	t.Parallel()

	tr := New[string, int]()

	assert.NotPanics(t, func() { tr.MustInsert([]string{"a", "b"}, 1) })
	assert.Panics(t, func() { tr.MustInsert([]string{"a", "b"}, 2) })

	val, _ := tr.Fetch([]string{"a", "b"})
	assert.Equal(t, 1, val)
}

func TestFromItems_Duplicate(t *testing.T) {
	t.Parallel()

	tr, err := FromItems(
		Item[string, int]{[]string{"x"}, 1},
		Item[string, int]{[]string{"x"}, 2},
	)

	assert.Nil(t, tr)
	assert.ErrorIs(t, err, ErrDuplicatePath)
}

func TestUnitValue(t *testing.T) {
	t.Parallel()

	tr := New[string, struct{}]()
	require.NoError(t, tr.Insert([]string{"x"}, struct{}{}))

	val, ok := tr.Fetch([]string{"x"})
	assert.True(t, ok)
	assert.Equal(t, struct{}{}, val)

	_, ok = tr.Fetch([]string{"nonexistent"})
	assert.False(t, ok)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	a, err := FromItems(
		Item[string, any]{[]string{"ABC"}, "@"},
		Item[string, any]{[]string{"DEF", "X"}, 'H'},
	)
	require.NoError(t, err)

	b, err := FromItems(
		Item[string, any]{[]string{"DEF"}, -1},
		Item[string, any]{[]string{"GHI"}, 0.3},
	)
	require.NoError(t, err)

	merged, err := a.Merge(b)
	require.NoError(t, err)
	assert.Same(t, a, merged)

	assert.ElementsMatch(t, []Item[string, any]{
		{[]string{"ABC"}, "@"},
		{[]string{"DEF"}, -1},
		{[]string{"DEF", "X"}, 'H'},
		{[]string{"GHI"}, 0.3},
	}, a.Items())

	// b is untouched
	assert.Equal(t, 2, b.Len())
}

func TestMerge_Duplicate(t *testing.T) {
	t.Parallel()

	a := newScenarioTrie(t)
	b := New[int, int]()
	b.MustInsert([]int{1, 2, 2}, 0)

	_, err := a.Merge(b)

	var perr *PathError
	require.True(t, errors.As(err, &perr))
	assert.ErrorIs(t, err, ErrDuplicatePath)
	assert.Equal(t, "merge", perr.Op)
	assert.Equal(t, "/1/2/2", perr.Path)

	val, _ := a.Fetch([]int{1, 2, 2})
	assert.Equal(t, 122, val)
}

func TestMerge_Self(t *testing.T) {
	t.Parallel()

	a := newScenarioTrie(t)

	_, err := a.Merge(a)
	assert.ErrorIs(t, err, ErrDuplicatePath)
	assert.Equal(t, len(scenarioItems), a.Len())

	empty := New[int, int]()
	_, err = empty.Merge(empty)
	assert.NoError(t, err)

	_, err = a.Merge(nil)
	assert.NoError(t, err)
}

func TestInsert_FakeData(t *testing.T) {
	t.Parallel()

	const (
		total = 300
		seed  = 1234567890
	)

	var (
		tr    = New[string, string]()
		state = map[string]string{}
		paths = map[string][]string{}
		fake  = gofakeit.New(seed)
	)

	for i := 0; i < total; i++ {
		var (
			depth = fake.IntRange(0, 5)
			path  = make([]string, depth)
			val   = fake.Name()
		)

		for j := range path {
			path[j] = fake.RandomString([]string{"usr", "bin", "lib", "etc", "var", "log", "tmp"})
		}

		name := formatPath(path)
		err := tr.Insert(path, val)

		if _, dup := state[name]; dup {
			assert.ErrorIs(t, err, ErrDuplicatePath, name)
			continue
		}

		require.NoError(t, err, name)
		state[name] = val
		paths[name] = path
	}

	assert.Equal(t, len(state), tr.Len())

	for name, val := range state {
		actual, ok := tr.Fetch(paths[name])

		assert.True(t, ok, name)
		assert.Equal(t, val, actual, name)
	}
}
