package hashset

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/npillmayer/pds/keys"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strSet(t *testing.T, elements ...string) Set[string] {
	s, err := FromSlice[string](keys.Strings{}, elements)
	require.NoError(t, err)
	return s
}

func TestSetHandlesAreSnapshots(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pds.hashset")
	defer teardown()
	//
	s0 := Immutable[string](keys.Strings{})
	s1, err := s0.With("a")
	require.NoError(t, err)
	s2, err := s1.With("b")
	require.NoError(t, err)
	//
	assert.Equal(t, 0, s0.Len())
	assert.Equal(t, 1, s1.Len())
	assert.Equal(t, 2, s2.Len())
	in, _ := s1.Contains("b")
	assert.False(t, in, "older handle must not see later insert")
}

func TestFromSliceCollapsesDuplicates(t *testing.T) {
	s := strSet(t, "a", "b", "a", "c", "b")
	assert.Equal(t, 3, s.Len())
	for _, el := range []string{"a", "b", "c"} {
		in, err := s.Contains(el)
		require.NoError(t, err)
		assert.True(t, in, el)
	}
}

func TestWithPresentElement(t *testing.T) {
	s := strSet(t, "a")
	s2, err := s.With("a")
	require.NoError(t, err)
	assert.Equal(t, 1, s2.Len())
	eq, _ := s.Equal(s2)
	assert.True(t, eq)
}

func TestWithDeletedStrict(t *testing.T) {
	s := strSet(t, "a", "b")
	s2, err := s.WithDeleted("a")
	require.NoError(t, err)
	assert.Equal(t, 1, s2.Len())
	assert.Equal(t, 2, s.Len(), "receiver must stay untouched")
	_, err = s.WithDeleted("zzz")
	assert.True(t, errors.Is(err, ErrNoElement))
}

func TestDiscardIsLenient(t *testing.T) {
	s := strSet(t, "a")
	s2, err := s.Discard("zzz")
	require.NoError(t, err)
	assert.Equal(t, 1, s2.Len())
}

func TestUnion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pds.hashset")
	defer teardown()
	//
	a := strSet(t, "a", "b", "c")
	b := strSet(t, "c", "d")
	u, err := a.Union(b)
	require.NoError(t, err)
	want := strSet(t, "a", "b", "c", "d")
	eq, _ := u.Equal(want)
	assert.True(t, eq, "union is %v", u)
	// commutativity
	u2, err := b.Union(a)
	require.NoError(t, err)
	eq, _ = u.Equal(u2)
	assert.True(t, eq)
	assert.Equal(t, 3, a.Len(), "operands stay untouched")
	assert.Equal(t, 2, b.Len())
}

func TestIntersect(t *testing.T) {
	a := strSet(t, "a", "b", "c", "d")
	b := strSet(t, "c", "d", "e")
	i, err := a.Intersect(b)
	require.NoError(t, err)
	eq, _ := i.Equal(strSet(t, "c", "d"))
	assert.True(t, eq, "intersection is %v", i)
	i2, _ := b.Intersect(a)
	eq, _ = i.Equal(i2)
	assert.True(t, eq)
}

func TestDifference(t *testing.T) {
	a := strSet(t, "a", "b", "c", "d")
	b := strSet(t, "c", "d", "e")
	d, err := a.Difference(b)
	require.NoError(t, err)
	eq, _ := d.Equal(strSet(t, "a", "b"))
	assert.True(t, eq, "difference is %v", d)
	// the other direction differs
	d2, err := b.Difference(a)
	require.NoError(t, err)
	eq, _ = d2.Equal(strSet(t, "e"))
	assert.True(t, eq, "difference is %v", d2)
}

func TestSymmetricDifference(t *testing.T) {
	a := strSet(t, "a", "b", "c")
	b := strSet(t, "b", "c", "d", "e")
	x, err := a.SymmetricDifference(b)
	require.NoError(t, err)
	eq, _ := x.Equal(strSet(t, "a", "d", "e"))
	assert.True(t, eq, "symmetric difference is %v", x)
	x2, _ := b.SymmetricDifference(a)
	eq, _ = x.Equal(x2)
	assert.True(t, eq, "symmetric difference must be commutative")
}

func TestAlgebraLaws(t *testing.T) {
	a := strSet(t, "a", "b", "c")
	b := strSet(t, "b", "c", "d", "e")
	//
	u, _ := a.Union(a)
	eq, _ := u.Equal(a)
	assert.True(t, eq, "A ∪ A must be A")
	d, _ := a.Difference(a)
	assert.True(t, d.IsEmpty(), "A − A must be empty")
	x, _ := a.SymmetricDifference(a)
	assert.True(t, x.IsEmpty(), "A ⊕ A must be empty")
	//
	u, _ = a.Union(b)
	i, _ := a.Intersect(b)
	assert.Equal(t, a.Len()+b.Len(), u.Len()+i.Len(),
		"|A ∪ B| + |A ∩ B| must equal |A| + |B|")
}

func TestAlgebraWithEmptySet(t *testing.T) {
	a := strSet(t, "a", "b")
	empty := Immutable[string](keys.Strings{})
	u, _ := a.Union(empty)
	eq, _ := u.Equal(a)
	assert.True(t, eq)
	i, _ := a.Intersect(empty)
	assert.True(t, i.IsEmpty())
	d, _ := a.Difference(empty)
	eq, _ = d.Equal(a)
	assert.True(t, eq)
	x, _ := empty.SymmetricDifference(a)
	eq, _ = x.Equal(a)
	assert.True(t, eq)
}

func TestSubsetSuperset(t *testing.T) {
	a := strSet(t, "a", "b")
	b := strSet(t, "a", "b", "c")
	ok, err := a.SubsetOf(b)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = b.SubsetOf(a)
	assert.False(t, ok)
	ok, _ = b.SupersetOf(a)
	assert.True(t, ok)
	ok, _ = a.SubsetOf(a)
	assert.True(t, ok, "a set is a subset of itself")
	ok, _ = a.SupersetOf(a)
	assert.True(t, ok)
}

func TestProperSubsetSuperset(t *testing.T) {
	a := strSet(t, "a", "b")
	b := strSet(t, "a", "b", "c")
	ok, err := a.ProperSubsetOf(b)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = b.ProperSupersetOf(a)
	assert.True(t, ok)
	ok, _ = a.ProperSubsetOf(a)
	assert.False(t, ok, "a set is never a proper subset of itself")
	ok, _ = a.ProperSupersetOf(a)
	assert.False(t, ok)
	// equal size but different elements is neither
	c := strSet(t, "a", "x")
	ok, _ = a.ProperSubsetOf(c)
	assert.False(t, ok)
}

func TestSetEqualityIgnoresHistory(t *testing.T) {
	a := strSet(t, "a", "b", "c")
	b := Immutable[string](keys.Strings{})
	for _, el := range []string{"c", "x", "a", "b"} {
		b, _ = b.With(el)
	}
	b, _ = b.Discard("x")
	eq, err := a.Equal(b)
	require.NoError(t, err)
	assert.True(t, eq)
	ha, _ := a.Hash()
	hb, _ := b.Hash()
	assert.Equal(t, ha, hb, "equal sets must hash equally")
}

func TestSetHashDistinguishesContent(t *testing.T) {
	a := strSet(t, "a", "b")
	b := strSet(t, "a", "c")
	ha, _ := a.Hash()
	hb, _ := b.Hash()
	assert.NotEqual(t, ha, hb)
	empty := Immutable[string](keys.Strings{})
	he, err := empty.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, ha, he)
}

func TestSetIterator(t *testing.T) {
	s := strSet(t, "a", "b", "c")
	seen := map[string]bool{}
	for it := s.Iterator(); it.HasElem(); it.Next() {
		seen[it.Elem()] = true
	}
	assert.Len(t, seen, 3)
	assert.Equal(t, 3, s.Len(), "iteration must not drain the set itself")
}

func TestCollect(t *testing.T) {
	src := strSet(t, "a", "b")
	s, err := Collect[string](keys.Strings{}, src)
	require.NoError(t, err)
	eq, _ := s.Equal(src)
	assert.True(t, eq)
}

func TestSetMarshalJSON(t *testing.T) {
	s := strSet(t, "a")
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["a"]`, string(data))
}
