package wire

import (
	"fmt"

	"github.com/scalelite/scalelite/registry"
	"github.com/scalelite/scalelite/schema"
)

// Encoder is an append-only growable byte sink accumulating one encoding.
type Encoder struct {
	buf      []byte
	registry *registry.Registry
}

// NewEncoder creates a new wire format encoder.
func NewEncoder() *Encoder {
	return &Encoder{
		buf: make([]byte, 0),
	}
}

// NewEncoderWithRegistry creates an encoder that resolves named types through
// the given registry.
func NewEncoderWithRegistry(registry *registry.Registry) *Encoder {
	return &Encoder{
		buf:      make([]byte, 0),
		registry: registry,
	}
}

// EncodeValue encodes one value of type t - main entry point.
func EncodeValue(value interface{}, t *schema.Type, registry *registry.Registry) ([]byte, error) {
	encoder := NewEncoderWithRegistry(registry)
	if err := encoder.EncodeValue(value, t); err != nil {
		return nil, err
	}
	return encoder.Bytes(), nil
}

// SINK METHODS

// PutByte appends a single byte.
func (e *Encoder) PutByte(b byte) {
	e.buf = append(e.buf, b)
}

// PutBytes appends a byte slice.
func (e *Encoder) PutBytes(data []byte) {
	e.buf = append(e.buf, data...)
}

// Bytes returns the encoded bytes.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Reset clears the encoder buffer.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}

// DISPATCH

// EncodeValue routes to the appropriate sub-encoder based on the type
// descriptor. Accepted in-memory forms mirror what DecodeValue produces.
func (e *Encoder) EncodeValue(value interface{}, t *schema.Type) error {
	switch t.Kind {
	case schema.KindUint, schema.KindInt:
		fe := NewFixedEncoder(e)
		return fe.EncodeInteger(value, t.Width, t.Kind == schema.KindInt)
	case schema.KindBool:
		fe := NewFixedEncoder(e)
		return fe.EncodeBoolValue(value)
	case schema.KindCompact:
		ce := NewCompactEncoder(e)
		return ce.EncodeCompactValue(value)
	case schema.KindString:
		be := NewBytesEncoder(e)
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("string value must be string, got %T", value)
		}
		return be.EncodeString(s)
	case schema.KindBytes:
		be := NewBytesEncoder(e)
		data, ok := value.([]byte)
		if !ok {
			return fmt.Errorf("bytes value must be []byte, got %T", value)
		}
		return be.EncodeBytes(data)
	case schema.KindOption:
		oe := NewOptionEncoder(e)
		return oe.EncodeOption(value, t.Elem)
	case schema.KindVector:
		ce := NewCollectionEncoder(e)
		return ce.EncodeVector(value, t.Elem)
	case schema.KindArray:
		ce := NewCollectionEncoder(e)
		return ce.EncodeArray(value, t.Elem, t.Len)
	case schema.KindMap:
		ce := NewCollectionEncoder(e)
		return ce.EncodeMap(value, t.Key, t.Value)
	case schema.KindTuple:
		ce := NewCollectionEncoder(e)
		return ce.EncodeTuple(value, t.Elems)
	case schema.KindStruct:
		ce := NewCollectionEncoder(e)
		return ce.EncodeStruct(value, t.Fields)
	case schema.KindVariant:
		ve := NewVariantEncoder(e)
		return ve.EncodeVariant(value, t.Alts)
	case schema.KindPointer:
		// The indirection carries no wire bytes of its own.
		return e.EncodeValue(value, t.Elem)
	case schema.KindNamed:
		resolved, err := e.resolveNamed(t.Name)
		if err != nil {
			return err
		}
		if err := e.EncodeValue(value, resolved); err != nil {
			return wrapWithField(err, t.Name)
		}
		return nil
	default:
		return fmt.Errorf("unknown type kind %q", t.Kind)
	}
}

// resolveNamed looks a name up in the encoder's registry.
func (e *Encoder) resolveNamed(name string) (*schema.Type, error) {
	if e.registry == nil {
		return nil, fmt.Errorf("type %s requires a registry, encoder has none", name)
	}
	return e.registry.Get(name)
}

// resolveType follows named references until a structural descriptor is
// reached.
func (e *Encoder) resolveType(t *schema.Type) (*schema.Type, error) {
	for depth := 0; t.Kind == schema.KindNamed; depth++ {
		if depth >= maxNamedDepth {
			return nil, fmt.Errorf("type %s: named reference chain too deep", t.Name)
		}
		resolved, err := e.resolveNamed(t.Name)
		if err != nil {
			return nil, err
		}
		t = resolved
	}
	return t, nil
}
