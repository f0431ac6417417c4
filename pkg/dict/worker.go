package dict

// workerRecord holds, for producer worker w, one deferred chain per target
// promoter worker: unstable[t] heads the list of nodes w inserted whose
// bucket's promoter is worker t. These chains are private to w during the
// concurrent phase (only w ever appends to them), which is what lets
// MakeStable run without any lock: each bucket has exactly one promoter,
// and only that promoter's invocation of MakeStable ever reads the chains
// that feed it.
type workerRecord struct {
	unstable []*Node // length nworkers, indexed by promoter id
}

func newWorkerRecords(nworkers int) []workerRecord {
	w := make([]workerRecord, nworkers)
	for i := range w {
		w[i].unstable = make([]*Node, nworkers)
	}
	return w
}

// promoterFor returns the worker responsible for promoting the bucket at
// index, out of length buckets, across nworkers promoters. Buckets are
// partitioned contiguously: promoter = (index * nworkers) / length.
func promoterFor(index uint32, length uint32, nworkers int) int {
	return int(uint64(index) * uint64(nworkers) / uint64(length))
}
