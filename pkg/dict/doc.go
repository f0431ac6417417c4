// Package dict implements a concurrent intern table: a hash dictionary that
// deduplicates immutable byte-string keys into stable, pointer-identified
// nodes. It supports two operating regimes in one data structure, switched
// by an external phase protocol:
//
//   - sequential: a single goroutine reads and grows the table.
//   - concurrent: many goroutines insert and look up in parallel, lock-free
//     against already-interned keys, synchronized only through a striped
//     lock array on newly inserted keys.
//
// Growth (resize) only ever happens in the sequential regime. Moving from
// concurrent back to sequential requires a quiesced promotion barrier,
// driven externally (see pkg/workerpool), during which each worker promotes
// the nodes it is uniquely responsible for via MakeStable.
package dict
