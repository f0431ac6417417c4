package dict

import "sync"

// stripeLocks is a fixed-size pool of mutexes shared among buckets by
// index modulo the pool size: a small striped lock array across a much
// larger keyspace, rather than one lock per bucket.
type stripeLocks struct {
	locks []sync.Mutex
}

func newStripeLocks(nworkers int) *stripeLocks {
	n := nworkers * 16
	if n < 16 {
		n = 16
	}
	return &stripeLocks{locks: make([]sync.Mutex, n)}
}

func (s *stripeLocks) forIndex(index uint32) *sync.Mutex {
	return &s.locks[int(index)%len(s.locks)]
}
