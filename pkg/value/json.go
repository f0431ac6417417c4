package value

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// valueDTO is the wire shape FromJSON/ToJSON marshal through. Aggregates
// nest via Elems; scalar fields are pointers so omitempty can tell "absent"
// from "present and zero".
type valueDTO struct {
	Type  string     `json:"type"`
	Bool  *bool      `json:"bool,omitempty"`
	Int   *int64     `json:"int,omitempty"`
	Pc    *int64     `json:"pc,omitempty"`
	Atom  *string    `json:"atom,omitempty"`
	Elems []valueDTO `json:"elems,omitempty"`
}

// ToJSON serializes v. Context values cannot be serialized: they are
// inspection-only (see PutContext), mirroring the original's treatment of
// contexts as something the checker introspects but never round-trips
// through an external representation.
func (c *Context) ToJSON(v Value) ([]byte, error) {
	dto, err := c.toDTO(v)
	if err != nil {
		return nil, err
	}
	b, err := jsonAPI.Marshal(dto)
	if err != nil {
		return nil, errors.Wrap(err, "value: encoding json")
	}
	return b, nil
}

// FromJSON parses b, previously produced by ToJSON (or a hand-written
// document of the same shape), interning any aggregate payload into c.
func (c *Context) FromJSON(b []byte) (Value, error) {
	var dto valueDTO
	if err := jsonAPI.Unmarshal(b, &dto); err != nil {
		return Value{}, errors.Wrap(err, "value: decoding json")
	}
	return c.fromDTO(dto)
}

func (c *Context) toDTO(v Value) (valueDTO, error) {
	switch v.tag {
	case Bool:
		b := v.scalar != 0
		return valueDTO{Type: "bool", Bool: &b}, nil
	case Int:
		i := v.scalar
		return valueDTO{Type: "int", Int: &i}, nil
	case Pc:
		p := v.scalar
		return valueDTO{Type: "pc", Pc: &p}, nil
	case Atom:
		raw, _ := c.Get(v)
		s := string(raw)
		return valueDTO{Type: "atom", Atom: &s}, nil
	case Dict, Set, Address:
		elems, _ := c.Elements(v)
		dtos := make([]valueDTO, len(elems))
		for i, e := range elems {
			d, err := c.toDTO(e)
			if err != nil {
				return valueDTO{}, err
			}
			dtos[i] = d
		}
		return valueDTO{Type: v.tag.String(), Elems: dtos}, nil
	default:
		return valueDTO{}, errors.Errorf("value: %s values cannot be serialized to json", v.tag)
	}
}

func (c *Context) fromDTO(dto valueDTO) (Value, error) {
	switch dto.Type {
	case "bool":
		if dto.Bool == nil {
			return Value{}, errors.New("value: json bool missing value")
		}
		return PutBool(*dto.Bool), nil
	case "int":
		if dto.Int == nil {
			return Value{}, errors.New("value: json int missing value")
		}
		return PutInt(*dto.Int), nil
	case "pc":
		if dto.Pc == nil {
			return Value{}, errors.New("value: json pc missing value")
		}
		return PutPC(*dto.Pc), nil
	case "atom":
		if dto.Atom == nil {
			return Value{}, errors.New("value: json atom missing value")
		}
		return c.PutAtom([]byte(*dto.Atom)), nil
	case "dict", "set", "address":
		elems := make([]Value, len(dto.Elems))
		for i, d := range dto.Elems {
			v, err := c.fromDTO(d)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		switch dto.Type {
		case "dict":
			return c.PutDict(elems), nil
		case "set":
			return c.PutSet(elems), nil
		default:
			return c.PutAddress(elems), nil
		}
	default:
		return Value{}, errors.Errorf("value: unknown json type %q", dto.Type)
	}
}
