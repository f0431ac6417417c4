package dict

import "sync/atomic"

// Node is an immutable key entry: once published, its hash and key bytes
// never change. value is the single caller-mutable slot; it starts nil and
// distinguishes "just inserted" from "found" for nothing except that the
// caller chooses to interpret it that way (the table itself never inspects
// it).
type Node struct {
	hash   uint32
	key    []byte
	next   *Node // stable or unstable chain link, depending on which chain holds this node
	unext  *Node // link within a worker's per-promoter deferred list
	bucket *bucket
	value  atomic.Pointer[any]
}

func newNode(a NodeAllocator, alloc AllocFunc, hash uint32, key []byte) *Node {
	var buf []byte
	if a != nil {
		buf = a.AllocNode(len(key))
	} else {
		buf = alloc(len(key))
	}
	copy(buf, key)
	return &Node{hash: hash, key: buf}
}

// Retrieve returns the node's key bytes, mirroring the C dict_retrieve
// contract (which also returns a length; here len(Retrieve()) suffices).
func (n *Node) Retrieve() []byte {
	return n.key
}

// Value loads the node's mutable value slot.
func (n *Node) Value() any {
	if v := n.value.Load(); v != nil {
		return *v
	}
	return nil
}

// SetValue stores into the node's mutable value slot. Concurrent callers
// must hold the node's bucket stripe lock (via FindLock) to synchronize
// with other writers/readers of the same bucket, exactly as spec'd for
// dict_insert.
func (n *Node) SetValue(v any) {
	n.value.Store(&v)
}

func (n *Node) matches(hash uint32, key []byte) bool {
	if n.hash != hash || len(n.key) != len(key) {
		return false
	}
	for i := range key {
		if n.key[i] != key[i] {
			return false
		}
	}
	return true
}
