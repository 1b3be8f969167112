package hashmap

import (
	"testing"

	"github.com/npillmayer/pds/hashset"
	"github.com/npillmayer/pds/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyViewBindsSnapshot(t *testing.T) {
	m := strIntMap(t, map[string]int{"a": 1, "b": 2})
	view := m.Keys()
	m2, err := m.With("c", 3)
	require.NoError(t, err)
	//
	assert.Equal(t, 2, view.Len(), "view must stay bound to the state at creation")
	in, _ := view.Contains("c")
	assert.False(t, in)
	assert.Equal(t, 3, m2.Keys().Len())
}

func TestKeyViewIsSetLike(t *testing.T) {
	m := strIntMap(t, map[string]int{"a": 1, "b": 2})
	var sl hashset.SetLike[string] = m.Keys()
	assert.Equal(t, 2, sl.Len())
	in, err := sl.Contains("a")
	require.NoError(t, err)
	assert.True(t, in)
}

func TestKeyViewAlgebraWithSet(t *testing.T) {
	m := strIntMap(t, map[string]int{"a": 1, "b": 2, "c": 3})
	s, err := hashset.FromSlice[string](keys.Strings{}, []string{"b", "c", "d"})
	require.NoError(t, err)
	//
	u, err := m.Keys().Union(s)
	require.NoError(t, err)
	want, _ := hashset.FromSlice[string](keys.Strings{}, []string{"a", "b", "c", "d"})
	eq, _ := u.Equal(want)
	assert.True(t, eq, "union is %v", u)
	//
	i, err := m.Keys().Intersect(s)
	require.NoError(t, err)
	want, _ = hashset.FromSlice[string](keys.Strings{}, []string{"b", "c"})
	eq, _ = i.Equal(want)
	assert.True(t, eq, "intersection is %v", i)
	//
	d, err := m.Keys().Difference(s)
	require.NoError(t, err)
	want, _ = hashset.FromSlice[string](keys.Strings{}, []string{"a"})
	eq, _ = d.Equal(want)
	assert.True(t, eq, "difference is %v", d)
	//
	x, err := m.Keys().SymmetricDifference(s)
	require.NoError(t, err)
	want, _ = hashset.FromSlice[string](keys.Strings{}, []string{"a", "d"})
	eq, _ = x.Equal(want)
	assert.True(t, eq, "symmetric difference is %v", x)
}

func TestKeyViewComparesWithSet(t *testing.T) {
	m := strIntMap(t, map[string]int{"a": 1, "b": 2})
	s, _ := hashset.FromSlice[string](keys.Strings{}, []string{"a", "b"})
	eq, err := m.Keys().Equal(s)
	require.NoError(t, err)
	assert.True(t, eq, "key view must compare equal to the set of its keys")
	//
	bigger, _ := hashset.FromSlice[string](keys.Strings{}, []string{"a", "b", "c"})
	sub, _ := m.Keys().SubsetOf(bigger)
	assert.True(t, sub)
	sup, _ := m.Keys().SupersetOf(bigger)
	assert.False(t, sup)
	sub, _ = m.Keys().ProperSubsetOf(bigger)
	assert.True(t, sub)
	sub, _ = m.Keys().ProperSubsetOf(s)
	assert.False(t, sub, "equal key sets are not proper subsets")
	sup, _ = m.Keys().ProperSupersetOf(s)
	assert.False(t, sup)
	// and the set agrees from its side
	eq, _ = s.Equal(m.Keys())
	assert.True(t, eq)
}

func TestKeyViewHashMatchesSetHash(t *testing.T) {
	m := strIntMap(t, map[string]int{"a": 1, "b": 2})
	s, err := m.Keys().Set()
	require.NoError(t, err)
	hv, err := m.Keys().Hash()
	require.NoError(t, err)
	hs, err := s.Hash()
	require.NoError(t, err)
	assert.Equal(t, hv, hs, "a key view and its materialized set must hash alike")
}

func TestKeyViewIterator(t *testing.T) {
	m := strIntMap(t, map[string]int{"a": 1, "b": 2, "c": 3})
	seen := map[string]bool{}
	for it := m.Keys().Iterator(); it.HasElem(); it.Next() {
		seen[it.Elem()] = true
	}
	assert.Len(t, seen, 3)
}

func TestValueView(t *testing.T) {
	m := strIntMap(t, map[string]int{"a": 1, "b": 1, "c": 2})
	view := m.Values()
	assert.Equal(t, 3, view.Len(), "duplicate values count")
	in, err := view.Contains(1)
	require.NoError(t, err)
	assert.True(t, in)
	in, _ = view.Contains(9)
	assert.False(t, in)
	//
	sum := 0
	for it := view.Iterator(); it.HasElem(); it.Next() {
		sum += it.Elem()
	}
	assert.Equal(t, 4, sum)
}

func TestItemView(t *testing.T) {
	m := strIntMap(t, map[string]int{"a": 1, "b": 2})
	view := m.Items()
	assert.Equal(t, 2, view.Len())
	in, err := view.Contains("a", 1)
	require.NoError(t, err)
	assert.True(t, in)
	in, _ = view.Contains("a", 2)
	assert.False(t, in, "entry membership checks the value too")
	in, _ = view.Contains("z", 1)
	assert.False(t, in)
	//
	pairs := view.Pairs()
	assert.Len(t, pairs, 2)
	back, err := FromPairs[string, int](keys.Strings{}, keys.Ints{}, pairs)
	require.NoError(t, err)
	eq, _ := m.Equal(back)
	assert.True(t, eq, "round trip through Pairs must preserve content")
}
