package wire

import (
	"fmt"

	"github.com/scalelite/scalelite/registry"
	"github.com/scalelite/scalelite/schema"
)

// Decoder is a bounds-checked read cursor over an immutable byte buffer. The
// buffer is borrowed for the lifetime of one decode session; the position
// only moves forward, by exactly the number of bytes each operation consumes.
type Decoder struct {
	buf      []byte
	pos      int
	registry *registry.Registry
}

// NewDecoder creates a new wire format decoder over data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{
		buf: data,
		pos: 0,
	}
}

// NewDecoderWithRegistry creates a decoder that resolves named types through
// the given registry.
func NewDecoderWithRegistry(data []byte, registry *registry.Registry) *Decoder {
	return &Decoder{
		buf:      data,
		pos:      0,
		registry: registry,
	}
}

// DecodeValue decodes one value of type t from a prefix of data - main entry
// point. Trailing unconsumed bytes are not an error at this layer.
func DecodeValue(data []byte, t *schema.Type, registry *registry.Registry) (interface{}, error) {
	decoder := NewDecoderWithRegistry(data, registry)
	return decoder.DecodeValue(t)
}

// CURSOR METHODS

// Remaining returns the count of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// HasMore reports whether n more bytes are available without consuming them.
func (d *Decoder) HasMore(n int) bool {
	return n >= 0 && d.Remaining() >= n
}

// Position returns the current read offset.
func (d *Decoder) Position() int {
	return d.pos
}

// NextByte consumes and returns exactly one byte.
func (d *Decoder) NextByte() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, ErrNotEnoughData
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

// ReadBytes consumes n bytes atomically: either all n are consumed, or none
// are. The returned slice shares the underlying buffer; callers that retain
// it must copy.
func (d *Decoder) ReadBytes(n int) ([]byte, error) {
	if !d.HasMore(n) {
		return nil, ErrNotEnoughData
	}
	data := d.buf[d.pos : d.pos+n]
	d.pos += n
	return data, nil
}

// DISPATCH

// DecodeValue routes to the appropriate sub-decoder based on the type
// descriptor. The decoded in-memory forms are: uint8..uint64 and int8..int64
// for fixed-width integers, *big.Int for compact, bool, string, []byte,
// nil-or-value for options, []interface{} for vectors, arrays and tuples,
// map[string]interface{} for structs, map[interface{}]interface{} for maps
// and Variant for tagged unions.
func (d *Decoder) DecodeValue(t *schema.Type) (interface{}, error) {
	switch t.Kind {
	case schema.KindUint, schema.KindInt:
		fd := NewFixedDecoder(d)
		return fd.DecodeInteger(t.Width, t.Kind == schema.KindInt)
	case schema.KindBool:
		fd := NewFixedDecoder(d)
		return fd.DecodeBool()
	case schema.KindCompact:
		cd := NewCompactDecoder(d)
		return cd.DecodeCompact()
	case schema.KindString:
		bd := NewBytesDecoder(d)
		return bd.DecodeString()
	case schema.KindBytes:
		bd := NewBytesDecoder(d)
		return bd.DecodeBytes()
	case schema.KindOption:
		od := NewOptionDecoder(d)
		return od.DecodeOption(t.Elem)
	case schema.KindVector:
		cd := NewCollectionDecoder(d)
		return cd.DecodeVector(t.Elem)
	case schema.KindArray:
		cd := NewCollectionDecoder(d)
		return cd.DecodeArray(t.Elem, t.Len)
	case schema.KindMap:
		cd := NewCollectionDecoder(d)
		return cd.DecodeMap(t.Key, t.Value)
	case schema.KindTuple:
		cd := NewCollectionDecoder(d)
		return cd.DecodeTuple(t.Elems)
	case schema.KindStruct:
		cd := NewCollectionDecoder(d)
		return cd.DecodeStruct(t.Fields)
	case schema.KindVariant:
		vd := NewVariantDecoder(d)
		return vd.DecodeVariant(t.Alts)
	case schema.KindPointer:
		// The indirection carries no wire bytes of its own.
		return d.DecodeValue(t.Elem)
	case schema.KindNamed:
		resolved, err := d.resolveNamed(t.Name)
		if err != nil {
			return nil, err
		}
		value, err := d.DecodeValue(resolved)
		if err != nil {
			return nil, wrapWithField(err, t.Name)
		}
		return value, nil
	default:
		return nil, fmt.Errorf("unknown type kind %q", t.Kind)
	}
}

// resolveNamed looks a name up in the decoder's registry.
func (d *Decoder) resolveNamed(name string) (*schema.Type, error) {
	if d.registry == nil {
		return nil, fmt.Errorf("type %s requires a registry, decoder has none", name)
	}
	return d.registry.Get(name)
}

// resolveType follows named references until a structural descriptor is
// reached. The depth guard breaks definition cycles that never reach a
// structural kind.
func (d *Decoder) resolveType(t *schema.Type) (*schema.Type, error) {
	for depth := 0; t.Kind == schema.KindNamed; depth++ {
		if depth >= maxNamedDepth {
			return nil, fmt.Errorf("type %s: named reference chain too deep", t.Name)
		}
		resolved, err := d.resolveNamed(t.Name)
		if err != nil {
			return nil, err
		}
		t = resolved
	}
	return t, nil
}

// maxNamedDepth bounds chains of pure aliases (named -> named -> ...).
const maxNamedDepth = 64
