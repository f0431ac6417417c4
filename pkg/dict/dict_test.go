package dict

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// S1: New table; insert "abc", "abcd", "abc". Expect count=2, the two
// finds of "abc" return the same node, lookup of "xyz" returns nil.
func TestScenarioS1(t *testing.T) {
	tbl := New(Config{InitialSize: 64}, nil, nil)
	defer tbl.Delete()

	n1 := tbl.Find(nil, []byte("abc"))
	tbl.Find(nil, []byte("abcd"))
	n2 := tbl.Find(nil, []byte("abc"))

	require.Same(t, n1, n2)
	require.EqualValues(t, 2, tbl.count)

	_, ok := tbl.Lookup([]byte("xyz"))
	require.False(t, ok)

	v, ok := tbl.Lookup([]byte("abc"))
	require.True(t, ok)
	require.Nil(t, v) // never written
}

// Invariant 1: inserting K sequentially into an empty table yields exactly
// as many distinct nodes as distinct byte strings in K, and every member of
// K looks up to a node whose retrieved bytes equal that key.
func TestInvariantDistinctCount(t *testing.T) {
	tbl := New(Config{InitialSize: 16}, nil, nil)
	defer tbl.Delete()

	keys := make([][]byte, 0, 300)
	distinct := map[string]struct{}{}
	for i := 0; i < 300; i++ {
		k := []byte(fmt.Sprintf("key-%d", i%137))
		keys = append(keys, k)
		distinct[string(k)] = struct{}{}
	}

	for _, k := range keys {
		tbl.Find(nil, k)
	}

	require.EqualValues(t, len(distinct), tbl.count)

	for k := range distinct {
		v, ok := tbl.Lookup([]byte(k))
		require.True(t, ok)
		_ = v
	}
}

// Invariant 2: find(a) == find(b) iff a and b are byte-equal.
func TestInvariantFindIdentity(t *testing.T) {
	tbl := New(Config{InitialSize: 32}, nil, nil)
	defer tbl.Delete()

	a := tbl.Find(nil, []byte("same"))
	b := tbl.Find(nil, []byte("same"))
	c := tbl.Find(nil, []byte("different"))

	require.Same(t, a, b)
	require.NotSame(t, a, c)
}

func TestFindAllocatesOnMissOnly(t *testing.T) {
	tbl := New(Config{InitialSize: 32}, nil, nil)
	defer tbl.Delete()

	n := tbl.Insert(nil, []byte("k"))
	require.Nil(t, n.Value())
	n.SetValue(42)

	n2 := tbl.Insert(nil, []byte("k"))
	require.Same(t, n, n2)
	require.Equal(t, 42, n2.Value())
}

func TestIterateVisitsEveryNode(t *testing.T) {
	tbl := New(Config{InitialSize: 8}, nil, nil)
	defer tbl.Delete()

	want := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		k := fmt.Sprintf("it-%d", i)
		tbl.Find(nil, []byte(k))
		want[k] = struct{}{}
	}

	got := map[string]struct{}{}
	tbl.Iterate(func(key []byte, _ any) {
		got[string(key)] = struct{}{}
	})

	require.Equal(t, want, got)
}

func TestZeroLengthKeyIsLegalAtDictLevel(t *testing.T) {
	tbl := New(Config{InitialSize: 8}, nil, nil)
	defer tbl.Delete()

	n := tbl.Find(nil, []byte{})
	require.Equal(t, 0, len(n.Retrieve()))
	n2 := tbl.Find(nil, []byte{})
	require.Same(t, n, n2)
}
