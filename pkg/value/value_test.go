package value

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harmonylang/harmonydict/pkg/dict"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	c := NewContext(dict.Config{InitialSize: 64})
	t.Cleanup(c.Close)
	return c
}

func TestPutBoolIntPc(t *testing.T) {
	require.Equal(t, PutBool(true), PutBool(true))
	require.NotEqual(t, PutBool(true), PutBool(false))
	require.Equal(t, PutInt(5), PutInt(5))
	require.NotEqual(t, PutInt(5), PutInt(6))
	require.Equal(t, Pc, PutPC(3).Tag())
}

func TestPutAtomInterns(t *testing.T) {
	c := newTestContext(t)

	a := c.PutAtom([]byte("foo"))
	b := c.PutAtom([]byte("foo"))
	d := c.PutAtom([]byte("bar"))

	require.Equal(t, a, b)
	require.NotEqual(t, a, d)

	got, ok := c.Get(a)
	require.True(t, ok)
	require.Equal(t, "foo", string(got))
}

func TestPutAtomRejectsEmpty(t *testing.T) {
	c := newTestContext(t)
	require.Panics(t, func() { c.PutAtom(nil) })
}

// S5: put-set on a sorted array of values twice returns the same tagged
// word; compare of that set against put-set of a strict subset is > 0.
func TestScenarioS5(t *testing.T) {
	c := newTestContext(t)

	vs := []Value{PutInt(1), PutInt(2)}
	s1 := c.PutSet(vs)
	s2 := c.PutSet([]Value{PutInt(1), PutInt(2)})
	require.Equal(t, s1, s2)

	sub := c.PutSet([]Value{PutInt(1)})
	require.Greater(t, Compare(s1, sub), 0)
	require.Less(t, Compare(sub, s1), 0)
}

// S6: put-dict on an empty array equals the bare Dict tag word; to-string
// of it yields "()"; compare(empty dict, non-empty dict) < 0.
func TestScenarioS6(t *testing.T) {
	c := newTestContext(t)

	empty := c.PutDict(nil)
	require.Equal(t, Value{tag: Dict}, empty)
	require.Equal(t, "()", c.ToString(empty))

	nonEmpty := c.PutDict([]Value{PutInt(0), PutInt(0)})
	require.Less(t, Compare(empty, nonEmpty), 0)
	require.Greater(t, Compare(nonEmpty, empty), 0)
}

func TestCompareTotalOrderAcrossTags(t *testing.T) {
	c := newTestContext(t)
	values := []Value{
		PutBool(false),
		PutInt(-1),
		c.PutAtom([]byte("x")),
		c.PutDict(nil),
		c.PutSet(nil),
		c.PutAddress(nil),
	}
	for i := range values {
		for j := range values {
			got := Compare(values[i], values[j])
			switch {
			case i < j:
				require.Negative(t, got, "values[%d] vs values[%d]", i, j)
			case i > j:
				require.Positive(t, got, "values[%d] vs values[%d]", i, j)
			default:
				require.Zero(t, got)
			}
		}
	}
}

func TestComparePcPanics(t *testing.T) {
	require.Panics(t, func() { Compare(PutPC(1), PutPC(2)) })
}

func TestToStringFormats(t *testing.T) {
	c := newTestContext(t)

	require.Equal(t, "True", c.ToString(PutBool(true)))
	require.Equal(t, "False", c.ToString(PutBool(false)))
	require.Equal(t, "42", c.ToString(PutInt(42)))
	require.Equal(t, "inf", c.ToString(PutInt(IntPosInf)))
	require.Equal(t, "-inf", c.ToString(PutInt(IntNegInf)))
	require.Equal(t, "PC(7)", c.ToString(PutPC(7)))
	require.Equal(t, ".foo", c.ToString(c.PutAtom([]byte("foo"))))

	set := c.PutSet([]Value{PutInt(1), PutInt(2)})
	require.Equal(t, "{ 1, 2 }", c.ToString(set))
	require.Equal(t, "{}", c.ToString(c.PutSet(nil)))

	d := c.PutDict([]Value{c.PutAtom([]byte("k")), PutInt(9)})
	require.Equal(t, "dict{ .k: 9 }", c.ToString(d))

	addr := c.PutAddress([]Value{c.PutAtom([]byte("x")), c.PutAtom([]byte("field")), PutInt(3)})
	require.Equal(t, "?x.field[3]", c.ToString(addr))
	require.Equal(t, "None", c.ToString(c.PutAddress(nil)))

	ctx := c.PutContext(c.PutAtom([]byte("T1")), 5)
	require.Equal(t, "CONTEXT(.T1, 5)", c.ToString(ctx))
}

func TestContextValuesAreInspectionOnly(t *testing.T) {
	c := newTestContext(t)
	ctx := c.PutContext(c.PutAtom([]byte("T1")), 5)

	nametag, pc, ok := c.ContextParts(ctx)
	require.True(t, ok)
	require.Equal(t, ".T1", c.ToString(nametag))
	require.EqualValues(t, 5, pc)

	_, err := c.ToJSON(ctx)
	require.Error(t, err)
}

func TestCopyReturnsSameValue(t *testing.T) {
	c := newTestContext(t)
	a := c.PutAtom([]byte("foo"))
	require.Equal(t, a, c.Copy(a))
}

// Property 6 (round trip), interpreted against this port's actual
// serialization pair (ToJSON/FromJSON rather than a from-string parser,
// which the external interface does not define): every non-context value
// survives a JSON round trip unchanged.
func TestJSONRoundTrip(t *testing.T) {
	c := newTestContext(t)

	values := []Value{
		PutBool(true),
		PutInt(-17),
		PutPC(4),
		c.PutAtom([]byte("leaf")),
		c.PutSet(nil),
		c.PutSet([]Value{PutInt(1), PutInt(2), c.PutAtom([]byte("a"))}),
		c.PutDict(nil),
		c.PutDict([]Value{PutInt(0), PutInt(1), PutInt(2), PutInt(3)}),
		c.PutAddress([]Value{c.PutAtom([]byte("x")), PutInt(2)}),
	}

	for _, v := range values {
		b, err := c.ToJSON(v)
		require.NoError(t, err)

		got, err := c.FromJSON(b)
		require.NoError(t, err)
		require.Equal(t, v, got, "round trip of %s", c.ToString(v))
	}
}

func TestFromJSONRejectsUnknownType(t *testing.T) {
	c := newTestContext(t)
	_, err := c.FromJSON([]byte(`{"type":"nonsense"}`))
	require.Error(t, err)
}
