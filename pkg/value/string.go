package value

import (
	"fmt"
	"strconv"
	"strings"
)

// ToString renders v the way the original's value_string family does:
// booleans as True/False, integers as decimal (or the inf/-inf sentinels),
// atoms as .name, program counters as PC(n), dicts as
// "dict{ k: v, ... }" (the canonical empty dict renders as "()", matching
// the original's treatment of the empty dict as the unit value), sets as
// "{ v, ... }" ("{}" when empty), addresses as "?name" followed by
// ".field" or "[index]" per step ("None" for the empty address, matching
// the original's value_string_address), and contexts as
// "CONTEXT(nametag, pc)".
func (c *Context) ToString(v Value) string {
	switch v.tag {
	case Bool:
		if v.scalar != 0 {
			return "True"
		}
		return "False"
	case Int:
		return intString(v.scalar)
	case Pc:
		return fmt.Sprintf("PC(%d)", v.scalar)
	case Atom:
		b, _ := c.Get(v)
		return "." + string(b)
	case Dict:
		return c.dictString(v)
	case Set:
		return c.setString(v)
	case Address:
		return c.addressString(v)
	case Context:
		return c.contextString(v)
	default:
		panic("value: ToString on unknown tag")
	}
}

func intString(scalar int64) string {
	switch scalar {
	case IntPosInf:
		return "inf"
	case IntNegInf:
		return "-inf"
	default:
		return strconv.FormatInt(scalar, 10)
	}
}

func (c *Context) dictString(v Value) string {
	elems, _ := c.Elements(v)
	if len(elems) == 0 {
		return "()"
	}
	var sb strings.Builder
	sb.WriteString("dict{ ")
	for i := 0; i < len(elems); i += 2 {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.ToString(elems[i]))
		sb.WriteString(": ")
		sb.WriteString(c.ToString(elems[i+1]))
	}
	sb.WriteString(" }")
	return sb.String()
}

func (c *Context) setString(v Value) string {
	elems, _ := c.Elements(v)
	if len(elems) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{ ")
	for i, e := range elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.ToString(e))
	}
	sb.WriteString(" }")
	return sb.String()
}

func (c *Context) addressString(v Value) string {
	elems, _ := c.Elements(v)
	if len(elems) == 0 {
		return "None"
	}
	var sb strings.Builder
	sb.WriteString("?")
	sb.WriteString(strings.TrimPrefix(c.ToString(elems[0]), "."))
	for _, e := range elems[1:] {
		if e.tag == Int {
			fmt.Fprintf(&sb, "[%d]", e.scalar)
			continue
		}
		sb.WriteString(c.ToString(e))
	}
	return sb.String()
}

func (c *Context) contextString(v Value) string {
	nametag, pc, ok := c.ContextParts(v)
	if !ok {
		panic("value: malformed context value")
	}
	return fmt.Sprintf("CONTEXT(%s, %d)", c.ToString(nametag), pc)
}
