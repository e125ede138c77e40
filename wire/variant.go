package wire

import (
	"fmt"

	"github.com/scalelite/scalelite/schema"
)

// VariantDecoder handles tagged union decoding operations
type VariantDecoder struct {
	decoder *Decoder
}

// VariantEncoder handles tagged union encoding operations
type VariantEncoder struct {
	encoder *Encoder
}

// NewVariantDecoder creates a new variant decoder
func NewVariantDecoder(d *Decoder) *VariantDecoder {
	return &VariantDecoder{decoder: d}
}

// NewVariantEncoder creates a new variant encoder
func NewVariantEncoder(e *Encoder) *VariantEncoder {
	return &VariantEncoder{encoder: e}
}

// DECODER METHODS

// DecodeVariant decodes a tag byte and the active alternative's value. The
// alternative list is the ordered dispatch table built at type-definition
// time; a tag at or beyond its length is rejected.
func (vd *VariantDecoder) DecodeVariant(alts []*schema.Type) (Variant, error) {
	d := vd.decoder

	tag, err := d.NextByte()
	if err != nil {
		return Variant{}, err
	}
	if int(tag) >= len(alts) {
		return Variant{}, ErrWrongTypeIndex
	}

	value, err := d.DecodeValue(alts[tag])
	if err != nil {
		return Variant{}, wrapWithField(err, fmt.Sprintf("alt[%d]", tag))
	}
	return Variant{Index: tag, Value: value}, nil
}

// ENCODER METHODS

// EncodeVariant encodes the active alternative's index as a single tag byte
// followed by its value
func (ve *VariantEncoder) EncodeVariant(value interface{}, alts []*schema.Type) error {
	var v Variant
	switch t := value.(type) {
	case Variant:
		v = t
	case *Variant:
		if t == nil {
			return fmt.Errorf("variant value must not be nil")
		}
		v = *t
	default:
		return fmt.Errorf("expected Variant value, got %T", value)
	}

	if int(v.Index) >= len(alts) {
		return ErrWrongTypeIndex
	}

	e := ve.encoder
	e.PutByte(v.Index)
	if err := e.EncodeValue(v.Value, alts[v.Index]); err != nil {
		return wrapWithField(err, fmt.Sprintf("alt[%d]", v.Index))
	}
	return nil
}
