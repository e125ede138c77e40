package wire

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/scalelite/scalelite/schema"
)

// CollectionDecoder handles sequence, map, tuple and struct decoding
type CollectionDecoder struct {
	decoder *Decoder
}

// CollectionEncoder handles sequence, map, tuple and struct encoding
type CollectionEncoder struct {
	encoder *Encoder
}

// NewCollectionDecoder creates a new collection decoder
func NewCollectionDecoder(d *Decoder) *CollectionDecoder {
	return &CollectionDecoder{decoder: d}
}

// NewCollectionEncoder creates a new collection encoder
func NewCollectionEncoder(e *Encoder) *CollectionEncoder {
	return &CollectionEncoder{encoder: e}
}

// DECODER METHODS

// DecodeVector decodes a compact count prefix followed by that many elements
func (cd *CollectionDecoder) DecodeVector(elem *schema.Type) ([]interface{}, error) {
	d := cd.decoder

	count, err := cd.decodeCount()
	if err != nil {
		return nil, err
	}

	items := make([]interface{}, count)
	for i := 0; i < count; i++ {
		value, err := d.DecodeValue(elem)
		if err != nil {
			return nil, wrapWithField(err, fmt.Sprintf("[%d]", i))
		}
		items[i] = value
	}
	return items, nil
}

// DecodeArray decodes exactly n elements with no count prefix
func (cd *CollectionDecoder) DecodeArray(elem *schema.Type, n int) ([]interface{}, error) {
	d := cd.decoder

	items := make([]interface{}, n)
	for i := 0; i < n; i++ {
		value, err := d.DecodeValue(elem)
		if err != nil {
			return nil, wrapWithField(err, fmt.Sprintf("[%d]", i))
		}
		items[i] = value
	}
	return items, nil
}

// DecodeMap decodes a compact count prefix followed by that many key/value
// pairs. Insertion order is not preserved by the backing map.
func (cd *CollectionDecoder) DecodeMap(keyType, valueType *schema.Type) (map[interface{}]interface{}, error) {
	d := cd.decoder

	count, err := cd.decodeCount()
	if err != nil {
		return nil, err
	}

	result := make(map[interface{}]interface{}, count)
	for i := 0; i < count; i++ {
		key, err := d.DecodeValue(keyType)
		if err != nil {
			return nil, wrapWithField(err, fmt.Sprintf("key[%d]", i))
		}
		value, err := d.DecodeValue(valueType)
		if err != nil {
			return nil, wrapWithField(err, fmt.Sprintf("value[%d]", i))
		}
		result[key] = value
	}
	return result, nil
}

// DecodeTuple decodes each component in declared order with no framing
func (cd *CollectionDecoder) DecodeTuple(elems []*schema.Type) ([]interface{}, error) {
	d := cd.decoder

	items := make([]interface{}, len(elems))
	for i, elem := range elems {
		value, err := d.DecodeValue(elem)
		if err != nil {
			return nil, wrapWithField(err, fmt.Sprintf("[%d]", i))
		}
		items[i] = value
	}
	return items, nil
}

// DecodeStruct decodes each field in declared order with no framing
func (cd *CollectionDecoder) DecodeStruct(fields []*schema.Field) (map[string]interface{}, error) {
	d := cd.decoder

	result := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		value, err := d.DecodeValue(field.Type)
		if err != nil {
			return nil, wrapWithField(err, field.Name)
		}
		result[field.Name] = value
	}
	return result, nil
}

// decodeCount reads and bounds-checks a collection count prefix. A count
// beyond the configured cap fails before any allocation; a count the
// remaining input cannot possibly satisfy (every element occupies at least
// one byte) can never complete, so it fails as a short read, also before
// allocation.
func (cd *CollectionDecoder) decodeCount() (int, error) {
	return cd.decoder.DecodeLen()
}

// DecodeLen reads a compact count prefix and applies the collection bounds
// checks - convenience method for main decoder
func (d *Decoder) DecodeLen() (int, error) {
	cd := NewCompactDecoder(d)
	count, err := cd.DecodeCompact()
	if err != nil {
		return 0, err
	}

	if !count.IsUint64() || count.Uint64() > config.MaxCollectionLen {
		return 0, ErrTooManyItems
	}
	n := count.Uint64()
	if n > uint64(d.Remaining()) {
		return 0, ErrNotEnoughData
	}
	return int(n), nil
}

// ENCODER METHODS

// EncodeVector encodes a compact count prefix followed by each element
func (ce *CollectionEncoder) EncodeVector(value interface{}, elem *schema.Type) error {
	items, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("vector value must be []interface{}, got %T", value)
	}

	e := ce.encoder
	if err := e.EncodeCompactUint64(uint64(len(items))); err != nil {
		return err
	}
	for i, item := range items {
		if err := e.EncodeValue(item, elem); err != nil {
			return wrapWithField(err, fmt.Sprintf("[%d]", i))
		}
	}
	return nil
}

// EncodeArray encodes exactly n elements with no count prefix
func (ce *CollectionEncoder) EncodeArray(value interface{}, elem *schema.Type, n int) error {
	items, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("array value must be []interface{}, got %T", value)
	}
	if len(items) != n {
		return fmt.Errorf("array value has %d elements, type declares %d", len(items), n)
	}

	e := ce.encoder
	for i, item := range items {
		if err := e.EncodeValue(item, elem); err != nil {
			return wrapWithField(err, fmt.Sprintf("[%d]", i))
		}
	}
	return nil
}

// EncodeMap encodes a compact count prefix followed by the key/value pairs.
// Pairs are emitted sorted by encoded key bytes so that differently ordered
// backing maps produce identical wire output.
func (ce *CollectionEncoder) EncodeMap(value interface{}, keyType, valueType *schema.Type) error {
	mapData, ok := value.(map[interface{}]interface{})
	if !ok {
		return fmt.Errorf("map value must be map[interface{}]interface{}, got %T", value)
	}

	type entry struct {
		keyBytes []byte
		value    interface{}
	}
	entries := make([]entry, 0, len(mapData))
	for key, val := range mapData {
		keyEncoder := NewEncoderWithRegistry(ce.encoder.registry)
		if err := keyEncoder.EncodeValue(key, keyType); err != nil {
			return wrapWithField(err, "key")
		}
		entries = append(entries, entry{keyBytes: keyEncoder.Bytes(), value: val})
	}
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].keyBytes, entries[j].keyBytes) < 0
	})

	e := ce.encoder
	if err := e.EncodeCompactUint64(uint64(len(entries))); err != nil {
		return err
	}
	for _, ent := range entries {
		e.PutBytes(ent.keyBytes)
		if err := e.EncodeValue(ent.value, valueType); err != nil {
			return wrapWithField(err, "value")
		}
	}
	return nil
}

// EncodeTuple encodes each component in declared order with no framing
func (ce *CollectionEncoder) EncodeTuple(value interface{}, elems []*schema.Type) error {
	items, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("tuple value must be []interface{}, got %T", value)
	}
	if len(items) != len(elems) {
		return fmt.Errorf("tuple value has %d components, type declares %d", len(items), len(elems))
	}

	e := ce.encoder
	for i, item := range items {
		if err := e.EncodeValue(item, elems[i]); err != nil {
			return wrapWithField(err, fmt.Sprintf("[%d]", i))
		}
	}
	return nil
}

// EncodeStruct encodes each field in declared order with no framing; every
// declared field must be present
func (ce *CollectionEncoder) EncodeStruct(value interface{}, fields []*schema.Field) error {
	data, ok := value.(map[string]interface{})
	if !ok {
		return fmt.Errorf("struct value must be map[string]interface{}, got %T", value)
	}

	e := ce.encoder
	for _, field := range fields {
		fieldValue, present := data[field.Name]
		if !present {
			return fmt.Errorf("missing value for field %s", field.Name)
		}
		if err := e.EncodeValue(fieldValue, field.Type); err != nil {
			return wrapWithField(err, field.Name)
		}
	}
	return nil
}
