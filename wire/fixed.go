package wire

import (
	"encoding/binary"
	"fmt"
	"math/big"
)

// FixedDecoder handles fixed-width decoding operations
type FixedDecoder struct {
	decoder *Decoder
}

// FixedEncoder handles fixed-width encoding operations
type FixedEncoder struct {
	encoder *Encoder
}

// NewFixedDecoder creates a new fixed-width decoder
func NewFixedDecoder(d *Decoder) *FixedDecoder {
	return &FixedDecoder{decoder: d}
}

// NewFixedEncoder creates a new fixed-width encoder
func NewFixedEncoder(e *Encoder) *FixedEncoder {
	return &FixedEncoder{encoder: e}
}

// DECODER METHODS

// DecodeUint8 decodes an unsigned 8-bit value
func (fd *FixedDecoder) DecodeUint8() (uint8, error) {
	return fd.decoder.NextByte()
}

// DecodeUint16 decodes an unsigned 16-bit little-endian value
func (fd *FixedDecoder) DecodeUint16() (uint16, error) {
	data, err := fd.decoder.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data), nil
}

// DecodeUint32 decodes an unsigned 32-bit little-endian value
func (fd *FixedDecoder) DecodeUint32() (uint32, error) {
	data, err := fd.decoder.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

// DecodeUint64 decodes an unsigned 64-bit little-endian value
func (fd *FixedDecoder) DecodeUint64() (uint64, error) {
	data, err := fd.decoder.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(data), nil
}

// DecodeInt8 decodes a signed 8-bit value
func (fd *FixedDecoder) DecodeInt8() (int8, error) {
	v, err := fd.DecodeUint8()
	if err != nil {
		return 0, err
	}
	return int8(v), nil
}

// DecodeInt16 decodes a signed 16-bit little-endian value
func (fd *FixedDecoder) DecodeInt16() (int16, error) {
	v, err := fd.DecodeUint16()
	if err != nil {
		return 0, err
	}
	return int16(v), nil
}

// DecodeInt32 decodes a signed 32-bit little-endian value
func (fd *FixedDecoder) DecodeInt32() (int32, error) {
	v, err := fd.DecodeUint32()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// DecodeInt64 decodes a signed 64-bit little-endian value
func (fd *FixedDecoder) DecodeInt64() (int64, error) {
	v, err := fd.DecodeUint64()
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// DecodeInteger decodes a fixed-width integer of the given byte width and
// signedness into the matching Go type
func (fd *FixedDecoder) DecodeInteger(width int, signed bool) (interface{}, error) {
	if signed {
		switch width {
		case 1:
			return fd.DecodeInt8()
		case 2:
			return fd.DecodeInt16()
		case 4:
			return fd.DecodeInt32()
		case 8:
			return fd.DecodeInt64()
		}
	} else {
		switch width {
		case 1:
			return fd.DecodeUint8()
		case 2:
			return fd.DecodeUint16()
		case 4:
			return fd.DecodeUint32()
		case 8:
			return fd.DecodeUint64()
		}
	}
	return nil, fmt.Errorf("unsupported integer width %d", width)
}

// DecodeUintN decodes an unsigned little-endian integer of exactly n bytes,
// for widths outside the native 1/2/4/8 set
func (fd *FixedDecoder) DecodeUintN(n int) (*big.Int, error) {
	data, err := fd.decoder.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(reverseBytes(data)), nil
}

// DecodeBool decodes a boolean byte; only 0x00 and 0x01 are valid
func (fd *FixedDecoder) DecodeBool() (bool, error) {
	b, err := fd.decoder.NextByte()
	if err != nil {
		return false, err
	}
	switch b {
	case boolFalse:
		return false, nil
	case boolTrue:
		return true, nil
	default:
		return false, ErrInvalidBoolean
	}
}

// DecodeOptionBool decodes the single-byte 3-state optional boolean
func (fd *FixedDecoder) DecodeOptionBool() (present bool, value bool, err error) {
	b, err := fd.decoder.NextByte()
	if err != nil {
		return false, false, err
	}
	switch b {
	case optBoolNone:
		return false, false, nil
	case optBoolFalse:
		return true, false, nil
	case optBoolTrue:
		return true, true, nil
	default:
		return false, false, ErrInvalidBoolean
	}
}

// ENCODER METHODS

// EncodeUint8 encodes an unsigned 8-bit value
func (fe *FixedEncoder) EncodeUint8(v uint8) error {
	fe.encoder.PutByte(v)
	return nil
}

// EncodeUint16 encodes an unsigned 16-bit little-endian value
func (fe *FixedEncoder) EncodeUint16(v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	fe.encoder.PutBytes(buf[:])
	return nil
}

// EncodeUint32 encodes an unsigned 32-bit little-endian value
func (fe *FixedEncoder) EncodeUint32(v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	fe.encoder.PutBytes(buf[:])
	return nil
}

// EncodeUint64 encodes an unsigned 64-bit little-endian value
func (fe *FixedEncoder) EncodeUint64(v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	fe.encoder.PutBytes(buf[:])
	return nil
}

// EncodeInt8 encodes a signed 8-bit value
func (fe *FixedEncoder) EncodeInt8(v int8) error {
	return fe.EncodeUint8(uint8(v))
}

// EncodeInt16 encodes a signed 16-bit little-endian value
func (fe *FixedEncoder) EncodeInt16(v int16) error {
	return fe.EncodeUint16(uint16(v))
}

// EncodeInt32 encodes a signed 32-bit little-endian value
func (fe *FixedEncoder) EncodeInt32(v int32) error {
	return fe.EncodeUint32(uint32(v))
}

// EncodeInt64 encodes a signed 64-bit little-endian value
func (fe *FixedEncoder) EncodeInt64(v int64) error {
	return fe.EncodeUint64(uint64(v))
}

// EncodeInteger encodes a dynamically typed fixed-width integer; the value's
// Go type must match the declared width and signedness exactly
func (fe *FixedEncoder) EncodeInteger(value interface{}, width int, signed bool) error {
	if signed {
		switch width {
		case 1:
			if v, ok := value.(int8); ok {
				return fe.EncodeInt8(v)
			}
		case 2:
			if v, ok := value.(int16); ok {
				return fe.EncodeInt16(v)
			}
		case 4:
			if v, ok := value.(int32); ok {
				return fe.EncodeInt32(v)
			}
		case 8:
			if v, ok := value.(int64); ok {
				return fe.EncodeInt64(v)
			}
		default:
			return fmt.Errorf("unsupported integer width %d", width)
		}
		return fmt.Errorf("expected int%d value, got %T", width*8, value)
	}

	switch width {
	case 1:
		if v, ok := value.(uint8); ok {
			return fe.EncodeUint8(v)
		}
	case 2:
		if v, ok := value.(uint16); ok {
			return fe.EncodeUint16(v)
		}
	case 4:
		if v, ok := value.(uint32); ok {
			return fe.EncodeUint32(v)
		}
	case 8:
		if v, ok := value.(uint64); ok {
			return fe.EncodeUint64(v)
		}
	default:
		return fmt.Errorf("unsupported integer width %d", width)
	}
	return fmt.Errorf("expected uint%d value, got %T", width*8, value)
}

// EncodeUintN encodes a non-negative integer as exactly n little-endian
// bytes, zero-padded
func (fe *FixedEncoder) EncodeUintN(v *big.Int, n int) error {
	if v == nil || v.Sign() < 0 {
		return fmt.Errorf("value must be a non-negative integer")
	}
	payload := v.Bytes()
	if len(payload) > n {
		return fmt.Errorf("value does not fit in %d bytes", n)
	}
	buf := make([]byte, n)
	copy(buf, reverseBytes(payload))
	fe.encoder.PutBytes(buf)
	return nil
}

// EncodeBool encodes a boolean as a single byte
func (fe *FixedEncoder) EncodeBool(v bool) error {
	if v {
		fe.encoder.PutByte(boolTrue)
	} else {
		fe.encoder.PutByte(boolFalse)
	}
	return nil
}

// EncodeBoolValue encodes a dynamically typed boolean
func (fe *FixedEncoder) EncodeBoolValue(value interface{}) error {
	v, ok := value.(bool)
	if !ok {
		return fmt.Errorf("expected bool value, got %T", value)
	}
	return fe.EncodeBool(v)
}

// EncodeOptionBool encodes the single-byte 3-state optional boolean
func (fe *FixedEncoder) EncodeOptionBool(present bool, value bool) error {
	switch {
	case !present:
		fe.encoder.PutByte(optBoolNone)
	case value:
		fe.encoder.PutByte(optBoolTrue)
	default:
		fe.encoder.PutByte(optBoolFalse)
	}
	return nil
}
