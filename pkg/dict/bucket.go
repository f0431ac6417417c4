package dict

// bucket holds the two chains for one hash slot. stable is readable without
// any lock: it is append-only from the concurrent phase's point of view,
// and only ever mutated (via splicing during MakeStable, or rebuilding
// during resize) while no finds/lookups/iterates are in flight. unstable is
// guarded by the bucket's stripe lock at all times during the concurrent
// phase.
type bucket struct {
	stable   *Node
	unstable *Node
}

func (b *bucket) findStable(hash uint32, key []byte) *Node {
	for n := b.stable; n != nil; n = n.next {
		if n.matches(hash, key) {
			return n
		}
	}
	return nil
}

func (b *bucket) findUnstable(hash uint32, key []byte) *Node {
	for n := b.unstable; n != nil; n = n.next {
		if n.matches(hash, key) {
			return n
		}
	}
	return nil
}
