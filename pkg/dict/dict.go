package dict

import (
	"sync/atomic"

	"github.com/go-kit/log/level"

	hlog "github.com/harmonylang/harmonydict/pkg/util/log"
)

const (
	growthThreshold = 2.0
	growthFactor    = 10
)

// Config sizes a new Table.
type Config struct {
	// InitialSize is the starting bucket-array length. The original C
	// implementation silently overrode its caller's initial-size argument
	// with a hardcoded constant; this port honors InitialSize exactly.
	// Zero defaults to 256.
	InitialSize int
	// NumWorkers is the number of concurrent-phase workers this table will
	// ever be driven by. It sizes both the stripe-lock pool
	// (16*NumWorkers) and the NumWorkers x NumWorkers deferred-list
	// matrix. Zero defaults to 1 (a single worker, id 0, in the concurrent
	// regime).
	NumWorkers int
}

// tableData is the bucket array and its length, published atomically so
// resizes (sequential regime only) can swap in a fresh array without any
// lock on the read path.
type tableData struct {
	buckets []bucket
	length  uint32
}

// Table is a concurrent intern table. See package doc for the phase
// protocol. The zero value is not usable; construct with New.
type Table struct {
	data       atomic.Pointer[tableData]
	concurrent atomic.Bool
	count      uint32 // valid only in the sequential regime; see invariant 4

	nworkers int
	stripes  *stripeLocks
	workers  []workerRecord

	alloc AllocFunc
	free  FreeFunc
}

// New constructs a Table sized per cfg. alloc/free default to the process
// allocator (make/no-op) when nil.
func New(cfg Config, alloc AllocFunc, free FreeFunc) *Table {
	size := cfg.InitialSize
	if size <= 0 {
		size = 256
	}
	nworkers := cfg.NumWorkers
	if nworkers <= 0 {
		nworkers = 1
	}
	if alloc == nil {
		alloc = defaultAlloc
	}
	if free == nil {
		free = defaultFree
	}

	t := &Table{
		nworkers: nworkers,
		stripes:  newStripeLocks(nworkers),
		workers:  newWorkerRecords(nworkers),
		alloc:    alloc,
		free:     free,
	}
	t.data.Store(&tableData{buckets: make([]bucket, size), length: uint32(size)})
	globalMetrics.tableLength.Set(float64(size))
	return t
}

// Delete frees every node in every bucket's chains, iteratively (the
// original C destructor recursed over chain length, which risks a stack
// overflow on long chains).
func (t *Table) Delete() {
	data := t.data.Load()
	for i := range data.buckets {
		b := &data.buckets[i]
		freeChain(b.stable, t.free)
		freeChain(b.unstable, t.free)
		b.stable = nil
		b.unstable = nil
	}
}

func freeChain(head *Node, free FreeFunc) {
	for n := head; n != nil; {
		next := n.next
		free(n.key)
		n = next
	}
}

func workerIDFor(a NodeAllocator) int {
	if a == nil {
		return 0
	}
	return a.Worker()
}

// Find returns the unique node for key, creating it if absent. In the
// sequential regime this may trigger a resize. In the concurrent regime it
// scans the lock-free stable chain first, then falls back to the
// stripe-locked unstable chain.
func (t *Table) Find(a NodeAllocator, key []byte) *Node {
	hash := hashKey(key)
	data := t.data.Load()
	index := hash % data.length
	b := &data.buckets[index]

	if n := b.findStable(hash, key); n != nil {
		return n
	}

	if t.concurrent.Load() {
		lock := t.stripes.forIndex(index)
		lock.Lock()
		if n := b.findUnstable(hash, key); n != nil {
			lock.Unlock()
			return n
		}
		n := newNode(a, t.alloc, hash, key)
		n.bucket = b
		n.next = b.unstable
		b.unstable = n
		lock.Unlock()

		worker := workerIDFor(a)
		promoter := promoterFor(index, data.length, t.nworkers)
		n.unext = t.workers[worker].unstable[promoter]
		t.workers[worker].unstable[promoter] = n
		return n
	}

	// Sequential regime: the growth predicate is only evaluated when the
	// bucket we're about to insert into currently has an empty stable
	// chain, matching the original C implementation's resize trigger
	// rather than an unconditional load-factor check on every insert.
	if b.stable == nil {
		if float64(t.count)/float64(data.length) > growthThreshold {
			t.resize(data.length*growthFactor - 1)
			return t.Find(a, key)
		}
	}

	n := newNode(a, t.alloc, hash, key)
	n.bucket = b
	n.next = b.stable
	b.stable = n
	t.count++
	return n
}

// FindLock is like Find but always takes the bucket's stripe lock up front
// and returns it held, via the returned unlock closure, so the caller can
// update the node's value atomically with respect to other inserters and
// readers of the same bucket. It never triggers a resize (neither does the
// original C dict_find_lock).
func (t *Table) FindLock(a NodeAllocator, key []byte) (*Node, func()) {
	hash := hashKey(key)
	data := t.data.Load()
	index := hash % data.length
	b := &data.buckets[index]

	lock := t.stripes.forIndex(index)
	lock.Lock()
	unlock := func() { lock.Unlock() }

	if n := b.findStable(hash, key); n != nil {
		return n, unlock
	}

	concurrent := t.concurrent.Load()
	if concurrent {
		if n := b.findUnstable(hash, key); n != nil {
			return n, unlock
		}
	}

	n := newNode(a, t.alloc, hash, key)
	n.bucket = b
	if concurrent {
		n.next = b.unstable
		b.unstable = n

		worker := workerIDFor(a)
		promoter := promoterFor(index, data.length, t.nworkers)
		n.unext = t.workers[worker].unstable[promoter]
		t.workers[worker].unstable[promoter] = n
	} else {
		n.next = b.stable
		b.stable = n
		t.count++
	}
	return n, unlock
}

// Insert is Find, returning the node the caller uses as the value slot
// (Node.Value / Node.SetValue). In the concurrent regime the caller is
// responsible for synchronizing writes to the slot, typically by also
// using FindLock.
func (t *Table) Insert(a NodeAllocator, key []byte) *Node {
	return t.Find(a, key)
}

// Lookup is read-only: it never allocates, and returns ok=false if no node
// matches key.
func (t *Table) Lookup(key []byte) (any, bool) {
	hash := hashKey(key)
	data := t.data.Load()
	index := hash % data.length
	b := &data.buckets[index]

	if n := b.findStable(hash, key); n != nil {
		return n.Value(), true
	}

	if t.concurrent.Load() {
		lock := t.stripes.forIndex(index)
		lock.Lock()
		n := b.findUnstable(hash, key)
		lock.Unlock()
		if n != nil {
			return n.Value(), true
		}
	}
	return nil, false
}

// Iterate walks every bucket in order, stable chain first then (in the
// concurrent regime) the stripe-locked unstable chain. No structural
// modification is permitted while iterating.
func (t *Table) Iterate(fn func(key []byte, value any)) {
	data := t.data.Load()
	concurrent := t.concurrent.Load()
	for i := range data.buckets {
		b := &data.buckets[i]
		for n := b.stable; n != nil; n = n.next {
			fn(n.Retrieve(), n.Value())
		}
		if concurrent {
			lock := t.stripes.forIndex(uint32(i))
			lock.Lock()
			for n := b.unstable; n != nil; n = n.next {
				fn(n.Retrieve(), n.Value())
			}
			lock.Unlock()
		}
	}
}

// SetConcurrent transitions the table from the sequential to the
// concurrent regime. No resize may occur until the table transitions back.
func (t *Table) SetConcurrent() {
	invariant(!t.concurrent.Load(), "SetConcurrent called while already concurrent")
	t.concurrent.Store(true)
}

// MakeStable is called by worker during a quiesced promotion barrier (no
// finds, lookups or iterates in flight). It promotes every node that any
// producer worker deferred to worker, because worker is that node's
// bucket's unique promoter, and returns the number of nodes promoted.
func (t *Table) MakeStable(worker int) int {
	invariant(t.concurrent.Load(), "MakeStable called outside the concurrent regime")
	n := 0
	for p := range t.workers {
		w := &t.workers[p]
		for {
			k := w.unstable[worker]
			if k == nil {
				break
			}
			w.unstable[worker] = k.unext
			k.unext = nil
			k.next = k.bucket.stable
			k.bucket.stable = k
			k.bucket.unstable = nil
			n++
		}
	}
	if n > 0 {
		globalMetrics.promoted.Add(float64(n))
		level.Debug(hlog.Logger).Log("msg", "promoted nodes", "worker", worker, "count", n)
	}
	return n
}

// SetSequential completes the transition back from the concurrent regime.
// total must be the sum of every worker's MakeStable return value for this
// barrier. It may trigger a resize.
func (t *Table) SetSequential(total int) {
	invariant(t.concurrent.Load(), "SetSequential called outside the concurrent regime")
	t.count += uint32(total)
	globalMetrics.tableCount.Set(float64(t.count))

	data := t.data.Load()
	if float64(t.count)/float64(data.length) > growthThreshold {
		target := data.length * growthFactor
		if target < t.count {
			target = t.count * 2
		}
		t.resize(target)
	}
	t.concurrent.Store(false)
}

// resize rebuilds the bucket array at newSize, re-threading every stable
// node by recomputing its index from its (immutable) hash; it never copies
// key bytes. Requires that no bucket's unstable chain is non-empty, which
// the phase protocol guarantees by only calling resize in the sequential
// regime.
func (t *Table) resize(newSize uint32) {
	old := t.data.Load()
	newBuckets := make([]bucket, newSize)
	for i := range old.buckets {
		b := &old.buckets[i]
		invariant(b.unstable == nil, "resize with a non-empty unstable chain")
		k := b.stable
		for k != nil {
			next := k.next
			idx := k.hash % newSize
			nb := &newBuckets[idx]
			k.next = nb.stable
			nb.stable = k
			k = next
		}
	}
	t.data.Store(&tableData{buckets: newBuckets, length: newSize})
	globalMetrics.resizes.Inc()
	globalMetrics.tableLength.Set(float64(newSize))
	level.Debug(hlog.Logger).Log("msg", "resized table", "new_length", newSize)
}

func invariant(cond bool, msg string) {
	if !cond {
		panic("dict: " + msg)
	}
}
