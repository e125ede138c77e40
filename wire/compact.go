package wire

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"math/bits"
)

// CompactDecoder handles compact integer decoding operations
type CompactDecoder struct {
	decoder *Decoder
}

// CompactEncoder handles compact integer encoding operations
type CompactEncoder struct {
	encoder *Encoder
}

// NewCompactDecoder creates a new compact integer decoder
func NewCompactDecoder(d *Decoder) *CompactDecoder {
	return &CompactDecoder{decoder: d}
}

// NewCompactEncoder creates a new compact integer encoder
func NewCompactEncoder(e *Encoder) *CompactEncoder {
	return &CompactEncoder{encoder: e}
}

// DECODER METHODS

// DecodeCompact decodes a compact integer of arbitrary magnitude. The mode is
// taken from the 2 low bits of the first byte; a syntactically valid but
// non-minimal encoding is accepted and yields the same value as the minimal
// one.
func (cd *CompactDecoder) DecodeCompact() (*big.Int, error) {
	d := cd.decoder

	first, err := d.NextByte()
	if err != nil {
		return nil, err
	}

	switch CompactMode(first & compactModeMask) {
	case CompactSingleByte:
		return big.NewInt(int64(first >> 2)), nil

	case CompactTwoBytes:
		second, err := d.NextByte()
		if err != nil {
			return nil, err
		}
		v := (uint64(first) | uint64(second)<<8) >> 2
		return new(big.Int).SetUint64(v), nil

	case CompactFourBytes:
		rest, err := d.ReadBytes(3)
		if err != nil {
			return nil, err
		}
		v := (uint64(first) |
			uint64(rest[0])<<8 |
			uint64(rest[1])<<16 |
			uint64(rest[2])<<24) >> 2
		return new(big.Int).SetUint64(v), nil

	default: // CompactBigNumber
		payloadLen := int(first>>2) + minCompactBigLen
		payload, err := d.ReadBytes(payloadLen)
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetBytes(reverseBytes(payload)), nil
	}
}

// DecodeCompactUint64 decodes a compact integer that must fit in a uint64
func (cd *CompactDecoder) DecodeCompactUint64() (uint64, error) {
	v, err := cd.DecodeCompact()
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, ErrCompactOverflow
	}
	return v.Uint64(), nil
}

// ENCODER METHODS

// EncodeCompactUint64 encodes a uint64 in the smallest applicable mode
func (ce *CompactEncoder) EncodeCompactUint64(v uint64) error {
	e := ce.encoder

	switch {
	case v <= maxCompactSingleByte:
		e.PutByte(byte(v<<2) | byte(CompactSingleByte))
	case v <= maxCompactTwoBytes:
		e.PutByte(byte(v<<2) | byte(CompactTwoBytes))
		e.PutByte(byte(v >> 6))
	case v <= maxCompactFourBytes:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(v<<2)|uint32(CompactFourBytes))
		e.PutBytes(buf[:])
	default:
		payloadLen := (bits.Len64(v) + 7) / 8
		e.PutByte(byte(payloadLen-minCompactBigLen)<<2 | byte(CompactBigNumber))
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], v)
		e.PutBytes(buf[:payloadLen])
	}
	return nil
}

// EncodeCompact encodes an arbitrary-precision non-negative integer in the
// smallest applicable mode. Values needing more than 67 payload bytes (i.e.
// >= 2^536) are not representable.
func (ce *CompactEncoder) EncodeCompact(v *big.Int) error {
	if v == nil {
		return fmt.Errorf("compact value must not be nil")
	}
	if v.Sign() < 0 {
		return ErrCompactNegative
	}
	if v.IsUint64() {
		return ce.EncodeCompactUint64(v.Uint64())
	}

	payload := v.Bytes() // big-endian, no leading zeros
	if len(payload) > maxCompactBigLen {
		return ErrCompactOverflow
	}

	e := ce.encoder
	e.PutByte(byte(len(payload)-minCompactBigLen)<<2 | byte(CompactBigNumber))
	e.PutBytes(reverseBytes(payload))
	return nil
}

// EncodeCompactValue encodes a dynamically typed compact integer value
func (ce *CompactEncoder) EncodeCompactValue(value interface{}) error {
	switch v := value.(type) {
	case *big.Int:
		return ce.EncodeCompact(v)
	case uint64:
		return ce.EncodeCompactUint64(v)
	case uint32:
		return ce.EncodeCompactUint64(uint64(v))
	case uint16:
		return ce.EncodeCompactUint64(uint64(v))
	case uint8:
		return ce.EncodeCompactUint64(uint64(v))
	case uint:
		return ce.EncodeCompactUint64(uint64(v))
	case int:
		if v < 0 {
			return ErrCompactNegative
		}
		return ce.EncodeCompactUint64(uint64(v))
	default:
		return fmt.Errorf("compact value must be *big.Int or unsigned integer, got %T", value)
	}
}

// UTILITY FUNCTIONS

// CompactSize returns the number of bytes the compact encoding of v occupies
func CompactSize(v uint64) int {
	switch {
	case v <= maxCompactSingleByte:
		return 1
	case v <= maxCompactTwoBytes:
		return 2
	case v <= maxCompactFourBytes:
		return 4
	default:
		return 1 + (bits.Len64(v)+7)/8
	}
}

// reverseBytes returns a new slice with the byte order reversed; it converts
// between the wire's little-endian payloads and big.Int's big-endian form.
func reverseBytes(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[len(data)-1-i] = b
	}
	return out
}

// Convenience methods for direct access

// DecodeCompact - convenience method for main decoder
func (d *Decoder) DecodeCompact() (*big.Int, error) {
	cd := NewCompactDecoder(d)
	return cd.DecodeCompact()
}

// DecodeCompactUint64 - convenience method for main decoder
func (d *Decoder) DecodeCompactUint64() (uint64, error) {
	cd := NewCompactDecoder(d)
	return cd.DecodeCompactUint64()
}

// EncodeCompact - convenience method for main encoder
func (e *Encoder) EncodeCompact(v *big.Int) error {
	ce := NewCompactEncoder(e)
	return ce.EncodeCompact(v)
}

// EncodeCompactUint64 - convenience method for main encoder
func (e *Encoder) EncodeCompactUint64(v uint64) error {
	ce := NewCompactEncoder(e)
	return ce.EncodeCompactUint64(v)
}
