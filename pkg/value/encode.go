package value

import (
	"encoding/binary"
	"unsafe"
)

// encodeWord packs v into the 64-bit tagged word the original C
// implementation would have stored in an aggregate's element array: the tag
// ordinal in the low valueBits bits, and either a shifted scalar (Bool, Int,
// Pc) or a bare node pointer (Atom, Context; Dict/Set/Address nest through
// the same encoding recursively). dict.Node is always heap-allocated and at
// least word-aligned, so its low valueBits bits are free for the tag.
//
// The word is used only to build byte keys for interning aggregates (see
// encodeWords); it is never decoded back into a pointer. The live []Value
// slice stays reachable through the node's value slot (see value.go), so
// there is no risk of the garbage collector reclaiming a nested node that
// is only "referenced" by bytes it cannot scan.
func encodeWord(v Value) uint64 {
	switch v.tag {
	case Bool, Int, Pc:
		return uint64(v.scalar)<<valueBits | uint64(v.tag)
	default:
		if v.node == nil {
			return uint64(v.tag)
		}
		return uint64(uintptr(unsafe.Pointer(v.node))) | uint64(v.tag)
	}
}

// encodeWords packs a slice of Values into a byte key suitable for
// dict.Table.Find, in the order given. Each element contributes its tagged
// word followed by its full 64-bit scalar: shifting a scalar into the
// tagged word drops its top valueBits bits (PutInt(-1) and
// PutInt(IntPosInf) share a tagged word), so the second word keeps such
// scalars apart. Two slices produce the same key iff they are the same
// length and every element has the same tag, scalar and node, which for
// aggregate elements means "is the same interned node", exactly the
// structural-sharing property the intern tables are built to provide.
func encodeWords(vs []Value) []byte {
	buf := make([]byte, 16*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint64(buf[i*16:], encodeWord(v))
		binary.LittleEndian.PutUint64(buf[i*16+8:], uint64(v.scalar))
	}
	return buf
}
