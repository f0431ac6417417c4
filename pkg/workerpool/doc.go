// Package workerpool drives the fixed-worker-count phases that make up the
// table's concurrent regime: SetConcurrent, a burst of per-worker Find
// traffic, a quiesced MakeStable barrier per worker, then SetSequential.
// Unlike a general job-queue pool, the width here is fixed up front and
// every phase call invokes exactly one function per worker id, because
// that is what the promotion protocol requires: the deferred nodes whose
// bucket has promoter i, whichever worker inserted them, are only ever
// promoted by calling MakeStable(i) from worker i's own logical slot.
package workerpool
