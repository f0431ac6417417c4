package value

import "bytes"

// Compare imposes the total order required of every Value in the system
// (property: total order). Values of different tags compare by tag
// ordinal alone, regardless of payload. Within a tag:
//
//   - Bool, Int: numeric order on the scalar.
//   - Atom: lexicographic byte order on the interned name, which is also
//     the length-tiebreak order since a shorter string that is a prefix
//     of a longer one is never byte-equal to it.
//   - Dict, Set, Address: recursive element-wise comparison over the
//     decoded member sequence, with the shorter sequence sorting first
//     when one is a prefix of the other. The canonical empty aggregate
//     (the bare tag word, no table lookup) sorts before every non-empty
//     value of that tag.
//   - Pc: undefined; Compare panics. A PC's ordering is only meaningful
//     relative to the machine state that produced it, never globally, so
//     any caller reaching this case has a bug.
//   - Context: lexicographic byte order on its interned (nametag, pc) key,
//     the same rule as Atom, since node.Retrieve() already holds the raw
//     encoded key bytes PutContext interned.
func Compare(v1, v2 Value) int {
	if v1 == v2 {
		return 0
	}
	if v1.tag != v2.tag {
		if v1.tag < v2.tag {
			return -1
		}
		return 1
	}
	switch v1.tag {
	case Bool, Int:
		return compareInt64(v1.scalar, v2.scalar)
	case Pc:
		panic("value: comparison between Pc values is undefined")
	case Atom, Context:
		return bytes.Compare(v1.node.Retrieve(), v2.node.Retrieve())
	default: // Dict, Set, Address
		return compareAggregate(v1, v2)
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareAggregate(v1, v2 Value) int {
	a, _ := elementsOf(v1)
	b, _ := elementsOf(v2)
	return compareValueSlices(a, b)
}

func compareValueSlices(a, b []Value) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// elementsOf decodes an aggregate Value's members without needing a
// Context: the []Value payload already lives in the node's value slot
// (see putAggregate in value.go), so Compare can walk nested structure on
// its own.
func elementsOf(v Value) ([]Value, bool) {
	if v.node == nil {
		return nil, true
	}
	elems, ok := v.node.Value().([]Value)
	return elems, ok
}
