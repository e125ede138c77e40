package wire

import (
	"fmt"

	"github.com/scalelite/scalelite/schema"
)

// OptionDecoder handles optional value decoding operations
type OptionDecoder struct {
	decoder *Decoder
}

// OptionEncoder handles optional value encoding operations
type OptionEncoder struct {
	encoder *Encoder
}

// NewOptionDecoder creates a new option decoder
func NewOptionDecoder(d *Decoder) *OptionDecoder {
	return &OptionDecoder{decoder: d}
}

// NewOptionEncoder creates a new option encoder
func NewOptionEncoder(e *Encoder) *OptionEncoder {
	return &OptionEncoder{encoder: e}
}

// DECODER METHODS

// DecodeOption decodes an optional value of elem. Absent decodes to nil; a
// present value is returned directly. Option of bool uses the single-byte
// 3-state form instead of a presence byte plus value.
func (od *OptionDecoder) DecodeOption(elem *schema.Type) (interface{}, error) {
	d := od.decoder

	resolved, err := d.resolveType(elem)
	if err != nil {
		return nil, err
	}

	if resolved.Kind == schema.KindBool {
		fd := NewFixedDecoder(d)
		present, value, err := fd.DecodeOptionBool()
		if err != nil {
			return nil, err
		}
		if !present {
			return nil, nil
		}
		return value, nil
	}

	fd := NewFixedDecoder(d)
	present, err := fd.DecodeBool()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	return d.DecodeValue(elem)
}

// ENCODER METHODS

// EncodeOption encodes an optional value of elem; nil means absent
func (oe *OptionEncoder) EncodeOption(value interface{}, elem *schema.Type) error {
	e := oe.encoder

	resolved, err := e.resolveType(elem)
	if err != nil {
		return err
	}

	if resolved.Kind == schema.KindBool {
		fe := NewFixedEncoder(e)
		if value == nil {
			return fe.EncodeOptionBool(false, false)
		}
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool value, got %T", value)
		}
		return fe.EncodeOptionBool(true, v)
	}

	fe := NewFixedEncoder(e)
	if value == nil {
		return fe.EncodeBool(false)
	}
	if err := fe.EncodeBool(true); err != nil {
		return err
	}
	return e.EncodeValue(value, elem)
}
