package value

import (
	"github.com/harmonylang/harmonydict/pkg/dict"
)

// Value is the tagged word handed around by callers: a tiny sum type over
// the eight classes listed in Tag. Bool/Int/Pc carry scalar directly; the
// aggregate classes carry node, a handle into one of Context's five intern
// tables, or nil for the canonical empty aggregate. Value is comparable
// with ==, and two Values compare == iff they were built from byte-equal
// payloads (for aggregates, recursively).
type Value struct {
	tag    Tag
	scalar int64
	node   *dict.Node
}

// Tag reports v's variant.
func (v Value) Tag() Tag { return v.tag }

// PutBool wraps a boolean. There is no interning: Bool is a scalar tag.
func PutBool(b bool) Value {
	var s int64
	if b {
		s = 1
	}
	return Value{tag: Bool, scalar: s}
}

// PutInt wraps a signed integer. IntPosInf and IntNegInf are sentinel
// values the original used to represent the mathematical +/-infinity that
// arises from e.g. unbounded counters; ToString renders them as "inf" and
// "-inf" rather than their literal decimal value.
func PutInt(i int64) Value { return Value{tag: Int, scalar: i} }

// PutPC wraps a program-counter index. Comparison between two Pc values is
// deliberately unsupported (see Compare) because a PC's ordering is only
// meaningful relative to a particular machine/thread, never globally.
func PutPC(pc int64) Value { return Value{tag: Pc, scalar: pc} }

const (
	IntPosInf int64 = 1<<63 - 1
	IntNegInf int64 = -(1 << 63)
)

// Context owns the five intern tables backing the aggregate tags (Atom,
// Dict, Set, Address, Context). A Value produced by one Context must never
// be passed to another: handles are only canonical within the table that
// minted them. Tables are owned by an explicit, disposable object rather
// than held as process-wide globals, so a process that needs independent
// interning domains (e.g. one per model-checking run, so runs can be torn
// down and their memory reclaimed independently) just constructs more
// than one.
type Context struct {
	atoms     *dict.Table
	dicts     *dict.Table
	sets      *dict.Table
	addresses *dict.Table
	contexts  *dict.Table
}

// NewContext constructs a Context whose five tables are each sized per
// cfg. cfg.NumWorkers only matters if callers intend to drive interning
// through the concurrent regime; SetConcurrent/MakeStable/SetSequential on
// the returned tables' underlying dict.Table are not exposed here. Context
// is meant for single-threaded or externally-synchronized use; callers
// needing concurrent aggregate construction should build on pkg/dict
// directly.
func NewContext(cfg dict.Config) *Context {
	return &Context{
		atoms:     dict.New(cfg, nil, nil),
		dicts:     dict.New(cfg, nil, nil),
		sets:      dict.New(cfg, nil, nil),
		addresses: dict.New(cfg, nil, nil),
		contexts:  dict.New(cfg, nil, nil),
	}
}

// Close releases every node held by the Context's intern tables. Values
// minted by this Context must not be used afterward.
func (c *Context) Close() {
	c.atoms.Delete()
	c.dicts.Delete()
	c.sets.Delete()
	c.addresses.Delete()
	c.contexts.Delete()
}

// PutAtom interns b and returns an Atom Value. b must be non-empty: an
// atom names something, and the empty name is reserved for nothing in
// particular, matching the original's put_atom assertion that size > 0.
func (c *Context) PutAtom(b []byte) Value {
	if len(b) == 0 {
		panic("value: PutAtom requires a non-empty name")
	}
	n := c.atoms.Find(nil, b)
	return Value{tag: Atom, node: n}
}

// PutDict interns pairs, a flattened, already key-sorted sequence
// (key0, value0, key1, value1, ...), and returns a Dict Value. An empty
// pairs returns the canonical empty dict without touching the table.
func (c *Context) PutDict(pairs []Value) Value {
	if len(pairs)%2 != 0 {
		panic("value: PutDict requires an even number of elements")
	}
	return c.putAggregate(Dict, c.dicts, pairs)
}

// PutSet interns vs, a pre-sorted sequence of distinct elements, and
// returns a Set Value. An empty vs returns the canonical empty set.
func (c *Context) PutSet(vs []Value) Value {
	return c.putAggregate(Set, c.sets, vs)
}

// PutAddress interns vs, a path of the form [base, step, step, ...] (base
// is conventionally an Atom naming a variable; each step is an Atom field
// name or an Int index), and returns an Address Value.
func (c *Context) PutAddress(vs []Value) Value {
	return c.putAggregate(Address, c.addresses, vs)
}

func (c *Context) putAggregate(tag Tag, table *dict.Table, vs []Value) Value {
	if len(vs) == 0 {
		return Value{tag: tag}
	}
	n := table.Find(nil, encodeWords(vs))
	if n.Value() == nil {
		n.SetValue(append([]Value(nil), vs...))
	}
	return Value{tag: tag, node: n}
}

type contextPayload struct {
	nametag Value
	pc      int64
}

// PutContext interns a (nametag, pc) pair, identifying one thread of
// execution by name and program counter, and returns a Context-tagged
// Value. Context values are inspection-only: they support ContextParts/ToString but
// are never produced from, or reducible to, JSON (see json.go).
func (c *Context) PutContext(nametag Value, pc int64) Value {
	key := encodeWords([]Value{nametag, PutPC(pc)})
	n := c.contexts.Find(nil, key)
	if n.Value() == nil {
		n.SetValue(contextPayload{nametag: nametag, pc: pc})
	}
	return Value{tag: Context, node: n}
}

// Get returns the raw interned bytes for an Atom, or false for any other
// tag (including the empty Context sentinel, which never arises: Context
// values are always non-empty).
func (c *Context) Get(v Value) ([]byte, bool) {
	if v.tag != Atom || v.node == nil {
		return nil, false
	}
	return v.node.Retrieve(), true
}

// Elements returns the decoded member sequence of a Dict, Set, or Address
// Value (nil for the canonical empty aggregate), or false for any other
// tag. For Dict the sequence is the flattened (key, value, key, value...)
// form PutDict was given.
func (c *Context) Elements(v Value) ([]Value, bool) {
	switch v.tag {
	case Dict, Set, Address:
	default:
		return nil, false
	}
	if v.node == nil {
		return nil, true
	}
	elems, _ := v.node.Value().([]Value)
	return elems, true
}

// ContextParts decodes a Context Value back into its nametag and pc, or
// returns ok=false if v is not a Context Value.
func (c *Context) ContextParts(v Value) (nametag Value, pc int64, ok bool) {
	if v.tag != Context || v.node == nil {
		return Value{}, 0, false
	}
	p, ok := v.node.Value().(contextPayload)
	if !ok {
		return Value{}, 0, false
	}
	return p.nametag, p.pc, true
}

// Copy returns v unchanged. The original C value_copy duplicated an
// interned payload into a fresh allocation so a caller could hold it past
// the owning table's lifetime without risking a dangling pointer; under Go
// garbage collection a Value already keeps its node reachable for as long
// as anything holds the Value, so there is nothing to duplicate. Copy
// exists only so code ported from the original's call sites has somewhere
// to go.
func (c *Context) Copy(v Value) Value { return v }
