// Package value implements the tagged-value layer on top of pkg/dict: a
// small sum type, Value, carrying one of eight type tags (Bool, Int, Atom,
// Pc, Dict, Set, Address, Context). Scalar tags (Bool, Int, Pc) carry an
// int64 directly; aggregate tags (Atom, Dict, Set, Address, Context) carry
// a handle into one of five intern tables held by a Context, so that
// byte-equal payloads always resolve to the same canonical handle.
//
// Value is a struct carrying a real *dict.Node field rather than a tagged
// pointer word, so the garbage collector can trace aggregate handles. It
// still packs a tag ordinal into the key bytes used to intern aggregates,
// which is what lets a Dict/Set/Address built from the same nested values
// always dedupe to the same table entry without re-walking nested
// structures on every compare.
package value
