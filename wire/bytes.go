package wire

import (
	"fmt"
)

// BytesDecoder handles length-prefixed byte string decoding operations
type BytesDecoder struct {
	decoder *Decoder
}

// BytesEncoder handles length-prefixed byte string encoding operations
type BytesEncoder struct {
	encoder *Encoder
}

// NewBytesDecoder creates a new bytes decoder
func NewBytesDecoder(d *Decoder) *BytesDecoder {
	return &BytesDecoder{decoder: d}
}

// NewBytesEncoder creates a new bytes encoder
func NewBytesEncoder(e *Encoder) *BytesEncoder {
	return &BytesEncoder{encoder: e}
}

// DECODER METHODS

// DecodeBytes decodes a compact-length-prefixed byte string. The claimed
// length is checked against the remaining input before any allocation.
func (bd *BytesDecoder) DecodeBytes() ([]byte, error) {
	d := bd.decoder

	length, err := bd.decodeLength()
	if err != nil {
		return nil, err
	}

	data, err := d.ReadBytes(length)
	if err != nil {
		return nil, err
	}

	if config.ZeroCopyBytes {
		return data, nil
	}
	out := make([]byte, length)
	copy(out, data)
	return out, nil
}

// DecodeString decodes a compact-length-prefixed UTF-8 string
func (bd *BytesDecoder) DecodeString() (string, error) {
	d := bd.decoder

	length, err := bd.decodeLength()
	if err != nil {
		return "", err
	}

	data, err := d.ReadBytes(length)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeLength reads and bounds-checks a byte-string length prefix. A length
// beyond the configured cap is rejected outright; a length that cannot be
// satisfied by the remaining input can never complete, so it fails the same
// way a short read would.
func (bd *BytesDecoder) decodeLength() (int, error) {
	return bd.decoder.DecodeLen()
}

// ENCODER METHODS

// EncodeBytes encodes a byte string with a compact length prefix
func (be *BytesEncoder) EncodeBytes(data []byte) error {
	ce := NewCompactEncoder(be.encoder)
	if err := ce.EncodeCompactUint64(uint64(len(data))); err != nil {
		return fmt.Errorf("failed to encode bytes length: %w", err)
	}
	be.encoder.PutBytes(data)
	return nil
}

// EncodeString encodes a string as a compact-length-prefixed byte string
func (be *BytesEncoder) EncodeString(s string) error {
	ce := NewCompactEncoder(be.encoder)
	if err := ce.EncodeCompactUint64(uint64(len(s))); err != nil {
		return fmt.Errorf("failed to encode string length: %w", err)
	}
	be.encoder.PutBytes([]byte(s))
	return nil
}

// UTILITY FUNCTIONS

// BytesSize returns the encoded size of the given byte string
func BytesSize(data []byte) int {
	return CompactSize(uint64(len(data))) + len(data)
}

// StringSize returns the encoded size of the given string
func StringSize(s string) int {
	return CompactSize(uint64(len(s))) + len(s)
}

// Convenience methods for direct access

// DecodeBytes - convenience method for main decoder
func (d *Decoder) DecodeBytes() ([]byte, error) {
	bd := NewBytesDecoder(d)
	return bd.DecodeBytes()
}

// DecodeString - convenience method for main decoder
func (d *Decoder) DecodeString() (string, error) {
	bd := NewBytesDecoder(d)
	return bd.DecodeString()
}

// EncodeBytes - convenience method for main encoder
func (e *Encoder) EncodeBytes(data []byte) error {
	be := NewBytesEncoder(e)
	return be.EncodeBytes(data)
}

// EncodeString - convenience method for main encoder
func (e *Encoder) EncodeString(s string) error {
	be := NewBytesEncoder(e)
	return be.EncodeString(s)
}
