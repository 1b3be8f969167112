package hashmap

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/npillmayer/pds/keys"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strIntMap(t *testing.T, src map[string]int) Map[string, int] {
	m, err := FromGoMap[string, int](keys.Strings{}, keys.Ints{}, src)
	require.NoError(t, err)
	return m
}

func TestMapHandlesAreSnapshots(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pds.hashmap")
	defer teardown()
	//
	m0 := Immutable[string, int](keys.Strings{}, keys.Ints{})
	m1, err := m0.With("a", 1)
	require.NoError(t, err)
	m2, err := m1.With("b", 2)
	require.NoError(t, err)
	//
	assert.Equal(t, 0, m0.Len())
	assert.Equal(t, 1, m1.Len())
	assert.Equal(t, 2, m2.Len())
	in, _ := m1.Contains("b")
	assert.False(t, in, "older handle must not see later insert")
	v, err := m2.At("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	v, err = m2.At("b")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	//
	m3, err := m2.WithDeleted("a")
	require.NoError(t, err)
	assert.Equal(t, 1, m3.Len())
	_, err = m3.At("a")
	assert.True(t, errors.Is(err, ErrNoKey))
	v, err = m2.At("a")
	require.NoError(t, err, "removal must leave its source handle untouched")
	assert.Equal(t, 1, v)
}

func TestAtMissingKey(t *testing.T) {
	m := strIntMap(t, map[string]int{"a": 0})
	v, err := m.At("a")
	require.NoError(t, err, "a stored zero value is not a missing key")
	assert.Equal(t, 0, v)
	_, err = m.At("b")
	assert.True(t, errors.Is(err, ErrNoKey))
}

func TestGetReturnsOption(t *testing.T) {
	m := strIntMap(t, map[string]int{"a": 1})
	opt, err := m.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1, opt.WithDefault(-1))
	opt, err = m.Get("b")
	require.NoError(t, err)
	assert.False(t, opt.IsJust())
	assert.Equal(t, -1, opt.WithDefault(-1))
}

func TestWithDeletedStrict(t *testing.T) {
	m := strIntMap(t, map[string]int{"a": 1, "b": 2})
	m2, err := m.WithDeleted("a")
	require.NoError(t, err)
	assert.Equal(t, 1, m2.Len())
	assert.Equal(t, 2, m.Len(), "receiver must stay untouched")
	_, err = m.WithDeleted("zzz")
	assert.True(t, errors.Is(err, ErrNoKey))
}

func TestDiscardIsLenient(t *testing.T) {
	m := strIntMap(t, map[string]int{"a": 1})
	m2, err := m.Discard("zzz")
	require.NoError(t, err)
	assert.Equal(t, 1, m2.Len())
	m3, err := m2.Discard("a")
	require.NoError(t, err)
	assert.Equal(t, 0, m3.Len())
}

func TestFromPairsLastWriteWins(t *testing.T) {
	m, err := FromPairs[string, int](keys.Strings{}, keys.Ints{}, []Pair[string, int]{
		{"a", 1}, {"b", 2}, {"a", 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
	v, _ := m.At("a")
	assert.Equal(t, 3, v)
}

func TestUpdateMergesLeftToRight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pds.hashmap")
	defer teardown()
	//
	m1 := strIntMap(t, map[string]int{"a": 1, "b": 1})
	m2 := strIntMap(t, map[string]int{"b": 2, "c": 2})
	m3 := strIntMap(t, map[string]int{"c": 3})
	merged, err := m1.Update(m2, m3)
	require.NoError(t, err)
	//
	assert.Equal(t, 3, merged.Len())
	v, _ := merged.At("a")
	assert.Equal(t, 1, v)
	v, _ = merged.At("b")
	assert.Equal(t, 2, v, "later operand overrides earlier")
	v, _ = merged.At("c")
	assert.Equal(t, 3, v, "rightmost operand wins")
	assert.Equal(t, 2, m1.Len(), "operands stay untouched")
}

func TestUpdatePairs(t *testing.T) {
	m := strIntMap(t, map[string]int{"a": 1})
	m2, err := m.UpdatePairs(Pair[string, int]{"b", 2}, Pair[string, int]{"b", 3})
	require.NoError(t, err)
	assert.Equal(t, 2, m2.Len())
	v, _ := m2.At("b")
	assert.Equal(t, 3, v)
}

func TestMapEqualityIgnoresHistory(t *testing.T) {
	m1 := Immutable[string, int](keys.Strings{}, keys.Ints{})
	m1, _ = m1.With("a", 1)
	m1, _ = m1.With("b", 2)
	//
	m2 := Immutable[string, int](keys.Strings{}, keys.Ints{})
	m2, _ = m2.With("b", 2)
	m2, _ = m2.With("c", 9)
	m2, _ = m2.With("a", 1)
	m2, _ = m2.Discard("c")
	//
	eq, err := m1.Equal(m2)
	require.NoError(t, err)
	assert.True(t, eq, "equal content must compare equal regardless of history")
	//
	m3, _ := m2.With("a", 99)
	eq, err = m1.Equal(m3)
	require.NoError(t, err)
	assert.False(t, eq, "differing values at a key must compare unequal")
}

func TestMapHashIgnoresHistory(t *testing.T) {
	m1 := strIntMap(t, map[string]int{"a": 1, "b": 2, "c": 3})
	m2 := Immutable[string, int](keys.Strings{}, keys.Ints{})
	for _, p := range []Pair[string, int]{{"c", 3}, {"a", 1}, {"b", 2}} {
		m2, _ = m2.With(p.Key, p.Value)
	}
	h1, err := m1.Hash()
	require.NoError(t, err)
	h2, err := m2.Hash()
	require.NoError(t, err)
	assert.Equal(t, h1, h2, "equal maps must hash equally")
	//
	m3, _ := m2.With("d", 4)
	h3, _ := m3.Hash()
	assert.NotEqual(t, h1, h3)
}

func TestMapWithoutValueArbiter(t *testing.T) {
	m := Immutable[string, int](keys.Strings{}, nil)
	m, _ = m.With("a", 1)
	_, err := m.Equal(m)
	assert.True(t, errors.Is(err, ErrNoValueArbiter))
	_, err = m.Hash()
	assert.True(t, errors.Is(err, ErrNoValueArbiter))
	v, err := m.At("a") // lookups need no value arbiter
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestMapIterator(t *testing.T) {
	m := strIntMap(t, map[string]int{"a": 1, "b": 2, "c": 3})
	seen := map[string]int{}
	for it := m.Iterator(); it.HasElem(); it.Next() {
		k, v := it.Elem()
		seen[k] = v
	}
	assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, seen)
	assert.Equal(t, 3, m.Len(), "iteration must not drain the map itself")
}

func TestMapMarshalJSON(t *testing.T) {
	m := strIntMap(t, map[string]int{"a": 1})
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `[["a", 1]]`, string(data))
}

func TestMapString(t *testing.T) {
	m := strIntMap(t, map[string]int{"a": 1})
	assert.Equal(t, "{a: 1}", m.String())
}
