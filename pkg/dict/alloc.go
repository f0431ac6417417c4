package dict

// AllocFunc allocates a zeroed byte slice of the given size. Tables default
// to Go's ordinary allocator (make); a caller embedding this table in an
// arena-managed host may supply its own.
type AllocFunc func(size int) []byte

// FreeFunc is retained for parity with the originating C allocator
// contract, which accepts a free() alongside alloc(). Go has no manual
// free; the hook exists purely as an extension point that Table.Delete
// calls once per node so a host that pools node storage can reclaim it.
// The default FreeFunc is a no-op: ordinary Go memory is reclaimed by the
// garbage collector once the table itself is unreferenced.
type FreeFunc func(b []byte)

func defaultAlloc(size int) []byte { return make([]byte, size) }

func defaultFree([]byte) {}

// NodeAllocator is the optional per-worker allocator passed to Find,
// FindLock and Insert during the concurrent regime. Supplying one gives a
// worker an arena-like fast path and selects which producer-worker slot
// receives the node's deferred promotion record (via Worker()).
type NodeAllocator interface {
	// AllocNode returns a zeroed buffer of the given size for a new node's
	// key bytes.
	AllocNode(size int) []byte
	// Worker returns the id of the worker this allocator belongs to. It
	// must be stable for the lifetime of the allocator and in
	// [0, nworkers).
	Worker() int
}

// arenaAllocator is a minimal NodeAllocator that just calls through to the
// table's global allocator but records a fixed worker id; sufficient for
// callers that don't need a real arena but do need deferred-list routing.
type arenaAllocator struct {
	alloc  AllocFunc
	worker int
}

// NewArenaAllocator returns a NodeAllocator that allocates node buffers via
// alloc (or the process allocator if nil) and tags all deferred nodes as
// produced by worker.
func NewArenaAllocator(worker int, alloc AllocFunc) NodeAllocator {
	if alloc == nil {
		alloc = defaultAlloc
	}
	return &arenaAllocator{alloc: alloc, worker: worker}
}

func (a *arenaAllocator) AllocNode(size int) []byte { return a.alloc(size) }
func (a *arenaAllocator) Worker() int               { return a.worker }
