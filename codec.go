package scalelite

import (
	"bytes"
	"fmt"
	"math/big"
	"reflect"
	"sort"

	"github.com/scalelite/scalelite/wire"
)

// ===== REFLECTION API =====
//
// Encode and Decode work over native Go values with no registered schema:
// sized integers, bool, string, []byte, *big.Int (compact), slices, arrays,
// maps, structs and pointers. Struct fields are encoded in declaration order;
// unexported fields and fields tagged `scale:"-"` are skipped, and integer
// fields tagged `scale:"compact"` use the compact encoding. A pointer field
// is an optional: nil encodes as absent. *bool uses the single-byte 3-state
// optional-boolean form.

var bigIntType = reflect.TypeOf((*big.Int)(nil))

// Encode serializes a native Go value to its SCALE encoding.
func Encode(v interface{}) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, fmt.Errorf("cannot encode untyped nil")
	}
	encoder := wire.NewEncoder()
	if err := encodeValue(encoder, rv, false); err != nil {
		return nil, err
	}
	return encoder.Bytes(), nil
}

// Decode deserializes a prefix of data into v, which must be a non-nil
// pointer. Trailing unconsumed bytes are not an error.
func Decode(data []byte, v interface{}) error {
	_, err := decodeInto(data, v)
	return err
}

// DecodeAll is Decode with the additional requirement that the value consumes
// the entire input.
func DecodeAll(data []byte, v interface{}) error {
	decoder, err := decodeInto(data, v)
	if err != nil {
		return err
	}
	if decoder.Remaining() != 0 {
		return fmt.Errorf("%d trailing bytes after value", decoder.Remaining())
	}
	return nil
}

func decodeInto(data []byte, v interface{}) (*wire.Decoder, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return nil, fmt.Errorf("decode target must be a non-nil pointer, got %T", v)
	}
	decoder := wire.NewDecoder(data)
	if err := decodeValue(decoder, rv.Elem(), false); err != nil {
		return nil, err
	}
	return decoder, nil
}

// encodeValue encodes one reflected value. The compact flag selects the
// compact integer form for unsigned integer shapes; it propagates through
// containers to their elements.
func encodeValue(e *wire.Encoder, rv reflect.Value, compact bool) error {
	if rv.Type() == bigIntType {
		if rv.IsNil() {
			return fmt.Errorf("*big.Int value must not be nil")
		}
		ce := wire.NewCompactEncoder(e)
		return ce.EncodeCompact(rv.Interface().(*big.Int))
	}

	switch rv.Kind() {
	case reflect.Ptr:
		fe := wire.NewFixedEncoder(e)
		if rv.Type().Elem().Kind() == reflect.Bool {
			if rv.IsNil() {
				return fe.EncodeOptionBool(false, false)
			}
			return fe.EncodeOptionBool(true, rv.Elem().Bool())
		}
		if rv.IsNil() {
			return fe.EncodeBool(false)
		}
		if err := fe.EncodeBool(true); err != nil {
			return err
		}
		return encodeValue(e, rv.Elem(), compact)

	case reflect.Interface:
		if rv.IsNil() {
			return fmt.Errorf("cannot encode nil interface value")
		}
		return encodeValue(e, rv.Elem(), compact)

	case reflect.Bool:
		fe := wire.NewFixedEncoder(e)
		return fe.EncodeBool(rv.Bool())

	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if compact {
			ce := wire.NewCompactEncoder(e)
			return ce.EncodeCompactUint64(rv.Uint())
		}
		fe := wire.NewFixedEncoder(e)
		switch rv.Kind() {
		case reflect.Uint8:
			return fe.EncodeUint8(uint8(rv.Uint()))
		case reflect.Uint16:
			return fe.EncodeUint16(uint16(rv.Uint()))
		case reflect.Uint32:
			return fe.EncodeUint32(uint32(rv.Uint()))
		default:
			return fe.EncodeUint64(rv.Uint())
		}

	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if compact {
			return fmt.Errorf("compact encoding requires an unsigned or *big.Int field, got %s", rv.Type())
		}
		fe := wire.NewFixedEncoder(e)
		switch rv.Kind() {
		case reflect.Int8:
			return fe.EncodeInt8(int8(rv.Int()))
		case reflect.Int16:
			return fe.EncodeInt16(int16(rv.Int()))
		case reflect.Int32:
			return fe.EncodeInt32(int32(rv.Int()))
		default:
			return fe.EncodeInt64(rv.Int())
		}

	case reflect.Int, reflect.Uint, reflect.Uintptr:
		return fmt.Errorf("platform-width %s is not encodable; use a sized integer type", rv.Kind())

	case reflect.String:
		be := wire.NewBytesEncoder(e)
		return be.EncodeString(rv.String())

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			be := wire.NewBytesEncoder(e)
			return be.EncodeBytes(rv.Bytes())
		}
		if err := e.EncodeCompactUint64(uint64(rv.Len())); err != nil {
			return err
		}
		for i := 0; i < rv.Len(); i++ {
			if err := encodeValue(e, rv.Index(i), compact); err != nil {
				return fmt.Errorf("failed to encode element %d: %w", i, err)
			}
		}
		return nil

	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			raw := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(raw), rv)
			e.PutBytes(raw)
			return nil
		}
		for i := 0; i < rv.Len(); i++ {
			if err := encodeValue(e, rv.Index(i), compact); err != nil {
				return fmt.Errorf("failed to encode element %d: %w", i, err)
			}
		}
		return nil

	case reflect.Map:
		return encodeMap(e, rv, compact)

	case reflect.Struct:
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			field := rt.Field(i)
			if field.PkgPath != "" {
				continue // unexported
			}
			tag := field.Tag.Get("scale")
			if tag == "-" {
				continue
			}
			if err := encodeValue(e, rv.Field(i), tag == "compact"); err != nil {
				return fmt.Errorf("failed to encode field %s: %w", field.Name, err)
			}
		}
		return nil

	default:
		return fmt.Errorf("unsupported type %s", rv.Type())
	}
}

// encodeMap emits entries sorted by encoded key bytes for deterministic
// output regardless of Go map iteration order.
func encodeMap(e *wire.Encoder, rv reflect.Value, compact bool) error {
	type entry struct {
		keyBytes []byte
		value    reflect.Value
	}
	entries := make([]entry, 0, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		keyEncoder := wire.NewEncoder()
		if err := encodeValue(keyEncoder, iter.Key(), compact); err != nil {
			return fmt.Errorf("failed to encode map key: %w", err)
		}
		entries = append(entries, entry{keyBytes: keyEncoder.Bytes(), value: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].keyBytes, entries[j].keyBytes) < 0
	})

	if err := e.EncodeCompactUint64(uint64(len(entries))); err != nil {
		return err
	}
	for _, ent := range entries {
		e.PutBytes(ent.keyBytes)
		if err := encodeValue(e, ent.value, compact); err != nil {
			return fmt.Errorf("failed to encode map value: %w", err)
		}
	}
	return nil
}

// decodeValue decodes into one settable reflected value.
func decodeValue(d *wire.Decoder, rv reflect.Value, compact bool) error {
	if rv.Type() == bigIntType {
		n, err := d.DecodeCompact()
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(n))
		return nil
	}

	switch rv.Kind() {
	case reflect.Ptr:
		fd := wire.NewFixedDecoder(d)
		if rv.Type().Elem().Kind() == reflect.Bool {
			present, value, err := fd.DecodeOptionBool()
			if err != nil {
				return err
			}
			if !present {
				rv.Set(reflect.Zero(rv.Type()))
				return nil
			}
			p := reflect.New(rv.Type().Elem())
			p.Elem().SetBool(value)
			rv.Set(p)
			return nil
		}
		present, err := fd.DecodeBool()
		if err != nil {
			return err
		}
		if !present {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		p := reflect.New(rv.Type().Elem())
		if err := decodeValue(d, p.Elem(), compact); err != nil {
			return err
		}
		rv.Set(p)
		return nil

	case reflect.Bool:
		fd := wire.NewFixedDecoder(d)
		b, err := fd.DecodeBool()
		if err != nil {
			return err
		}
		rv.SetBool(b)
		return nil

	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if compact {
			v, err := d.DecodeCompactUint64()
			if err != nil {
				return err
			}
			if rv.OverflowUint(v) {
				return fmt.Errorf("compact value %d overflows %s", v, rv.Type())
			}
			rv.SetUint(v)
			return nil
		}
		fd := wire.NewFixedDecoder(d)
		switch rv.Kind() {
		case reflect.Uint8:
			v, err := fd.DecodeUint8()
			if err != nil {
				return err
			}
			rv.SetUint(uint64(v))
		case reflect.Uint16:
			v, err := fd.DecodeUint16()
			if err != nil {
				return err
			}
			rv.SetUint(uint64(v))
		case reflect.Uint32:
			v, err := fd.DecodeUint32()
			if err != nil {
				return err
			}
			rv.SetUint(uint64(v))
		default:
			v, err := fd.DecodeUint64()
			if err != nil {
				return err
			}
			rv.SetUint(v)
		}
		return nil

	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		fd := wire.NewFixedDecoder(d)
		switch rv.Kind() {
		case reflect.Int8:
			v, err := fd.DecodeInt8()
			if err != nil {
				return err
			}
			rv.SetInt(int64(v))
		case reflect.Int16:
			v, err := fd.DecodeInt16()
			if err != nil {
				return err
			}
			rv.SetInt(int64(v))
		case reflect.Int32:
			v, err := fd.DecodeInt32()
			if err != nil {
				return err
			}
			rv.SetInt(int64(v))
		default:
			v, err := fd.DecodeInt64()
			if err != nil {
				return err
			}
			rv.SetInt(v)
		}
		return nil

	case reflect.Int, reflect.Uint, reflect.Uintptr:
		return fmt.Errorf("platform-width %s is not decodable; use a sized integer type", rv.Kind())

	case reflect.String:
		bd := wire.NewBytesDecoder(d)
		s, err := bd.DecodeString()
		if err != nil {
			return err
		}
		rv.SetString(s)
		return nil

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			bd := wire.NewBytesDecoder(d)
			data, err := bd.DecodeBytes()
			if err != nil {
				return err
			}
			rv.SetBytes(data)
			return nil
		}
		n, err := d.DecodeLen()
		if err != nil {
			return err
		}
		slice := reflect.MakeSlice(rv.Type(), n, n)
		for i := 0; i < n; i++ {
			if err := decodeValue(d, slice.Index(i), compact); err != nil {
				return fmt.Errorf("failed to decode element %d: %w", i, err)
			}
		}
		rv.Set(slice)
		return nil

	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			data, err := d.ReadBytes(rv.Len())
			if err != nil {
				return err
			}
			reflect.Copy(rv, reflect.ValueOf(data))
			return nil
		}
		for i := 0; i < rv.Len(); i++ {
			if err := decodeValue(d, rv.Index(i), compact); err != nil {
				return fmt.Errorf("failed to decode element %d: %w", i, err)
			}
		}
		return nil

	case reflect.Map:
		n, err := d.DecodeLen()
		if err != nil {
			return err
		}
		m := reflect.MakeMapWithSize(rv.Type(), n)
		for i := 0; i < n; i++ {
			key := reflect.New(rv.Type().Key()).Elem()
			if err := decodeValue(d, key, compact); err != nil {
				return fmt.Errorf("failed to decode map key: %w", err)
			}
			value := reflect.New(rv.Type().Elem()).Elem()
			if err := decodeValue(d, value, compact); err != nil {
				return fmt.Errorf("failed to decode map value: %w", err)
			}
			m.SetMapIndex(key, value)
		}
		rv.Set(m)
		return nil

	case reflect.Struct:
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			field := rt.Field(i)
			if field.PkgPath != "" {
				continue // unexported
			}
			tag := field.Tag.Get("scale")
			if tag == "-" {
				continue
			}
			if err := decodeValue(d, rv.Field(i), tag == "compact"); err != nil {
				return fmt.Errorf("failed to decode field %s: %w", field.Name, err)
			}
		}
		return nil

	default:
		return fmt.Errorf("unsupported type %s", rv.Type())
	}
}
