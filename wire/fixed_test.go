package wire

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixed_UnsignedRoundTrip(t *testing.T) {
	e := NewEncoder()
	fe := NewFixedEncoder(e)
	require.NoError(t, fe.EncodeUint8(0xAB))
	require.NoError(t, fe.EncodeUint16(0xABCD))
	require.NoError(t, fe.EncodeUint32(0xDEADBEEF))
	require.NoError(t, fe.EncodeUint64(0x0123456789ABCDEF))

	// Little-endian layout, width bytes each.
	require.Equal(t, []byte{
		0xAB,
		0xCD, 0xAB,
		0xEF, 0xBE, 0xAD, 0xDE,
		0xEF, 0xCD, 0xAB, 0x89, 0x67, 0x45, 0x23, 0x01,
	}, e.Bytes())

	d := NewDecoder(e.Bytes())
	fd := NewFixedDecoder(d)

	v8, err := fd.DecodeUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(0xAB), v8)

	v16, err := fd.DecodeUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0xABCD), v16)

	v32, err := fd.DecodeUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), v32)

	v64, err := fd.DecodeUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0123456789ABCDEF), v64)

	require.Equal(t, 0, d.Remaining())
}

func TestFixed_SignedTwosComplement(t *testing.T) {
	e := NewEncoder()
	fe := NewFixedEncoder(e)
	require.NoError(t, fe.EncodeInt8(-1))
	require.NoError(t, fe.EncodeInt16(-2))
	require.NoError(t, fe.EncodeInt32(-128))
	require.NoError(t, fe.EncodeInt64(-1))

	require.Equal(t, []byte{
		0xFF,
		0xFE, 0xFF,
		0x80, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	}, e.Bytes())

	d := NewDecoder(e.Bytes())
	fd := NewFixedDecoder(d)

	i8, err := fd.DecodeInt8()
	require.NoError(t, err)
	require.Equal(t, int8(-1), i8)

	i16, err := fd.DecodeInt16()
	require.NoError(t, err)
	require.Equal(t, int16(-2), i16)

	i32, err := fd.DecodeInt32()
	require.NoError(t, err)
	require.Equal(t, int32(-128), i32)

	i64, err := fd.DecodeInt64()
	require.NoError(t, err)
	require.Equal(t, int64(-1), i64)
}

func TestFixed_DecodeIntegerDispatch(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		signed   bool
		input    []byte
		expected interface{}
	}{
		{"u8", 1, false, []byte{0x2A}, uint8(42)},
		{"u16", 2, false, []byte{0x39, 0x30}, uint16(12345)},
		{"u32", 4, false, []byte{0x40, 0xE2, 0x01, 0x00}, uint32(123456)},
		{"u64", 8, false, []byte{0x15, 0xCD, 0x5B, 0x07, 0x00, 0x00, 0x00, 0x00}, uint64(123456789)},
		{"i8", 1, true, []byte{0xD6}, int8(-42)},
		{"i16", 2, true, []byte{0xC7, 0xCF}, int16(-12345)},
		{"i32", 4, true, []byte{0xC0, 0x1D, 0xFE, 0xFF}, int32(-123456)},
		{"i64", 8, true, []byte{0xEB, 0x32, 0xA4, 0xF8, 0xFF, 0xFF, 0xFF, 0xFF}, int64(-123456789)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(tt.input)
			fd := NewFixedDecoder(d)
			got, err := fd.DecodeInteger(tt.width, tt.signed)
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)

			e := NewEncoder()
			fe := NewFixedEncoder(e)
			require.NoError(t, fe.EncodeInteger(got, tt.width, tt.signed))
			require.Equal(t, tt.input, e.Bytes())
		})
	}
}

func TestFixed_EncodeIntegerTypeMismatch(t *testing.T) {
	e := NewEncoder()
	fe := NewFixedEncoder(e)

	err := fe.EncodeInteger(uint16(1), 4, false)
	require.Error(t, err)

	err = fe.EncodeInteger(uint32(1), 4, true)
	require.Error(t, err)
}

func TestFixed_UintN(t *testing.T) {
	// A 16-byte unsigned integer, a width with no native Go type.
	v := new(big.Int).Lsh(big.NewInt(1), 120)

	e := NewEncoder()
	fe := NewFixedEncoder(e)
	require.NoError(t, fe.EncodeUintN(v, 16))
	require.Equal(t, 16, e.Len())

	d := NewDecoder(e.Bytes())
	fd := NewFixedDecoder(d)
	got, err := fd.DecodeUintN(16)
	require.NoError(t, err)
	require.Zero(t, v.Cmp(got))

	// Does not fit.
	e2 := NewEncoder()
	require.Error(t, NewFixedEncoder(e2).EncodeUintN(v, 8))
}

func TestFixed_BoolStrict(t *testing.T) {
	for _, v := range []bool{false, true} {
		e := NewEncoder()
		require.NoError(t, NewFixedEncoder(e).EncodeBool(v))
		require.Equal(t, 1, e.Len())

		d := NewDecoder(e.Bytes())
		got, err := NewFixedDecoder(d).DecodeBool()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}

	// Every byte outside {0x00, 0x01} is rejected.
	for b := 2; b <= 0xFF; b++ {
		d := NewDecoder([]byte{byte(b)})
		_, err := NewFixedDecoder(d).DecodeBool()
		require.ErrorIs(t, err, ErrInvalidBoolean, "byte 0x%02X", b)
	}

	d := NewDecoder(nil)
	_, err := NewFixedDecoder(d).DecodeBool()
	require.ErrorIs(t, err, ErrNotEnoughData)
}

func TestFixed_OptionBoolExhaustive(t *testing.T) {
	tests := []struct {
		input   byte
		present bool
		value   bool
	}{
		{0x00, false, false},
		{0x01, true, false},
		{0x02, true, true},
	}

	for _, tt := range tests {
		d := NewDecoder([]byte{tt.input})
		present, value, err := NewFixedDecoder(d).DecodeOptionBool()
		require.NoError(t, err)
		require.Equal(t, tt.present, present)
		require.Equal(t, tt.value, value)

		e := NewEncoder()
		require.NoError(t, NewFixedEncoder(e).EncodeOptionBool(tt.present, tt.value))
		require.Equal(t, []byte{tt.input}, e.Bytes())
	}

	for b := 3; b <= 0xFF; b++ {
		d := NewDecoder([]byte{byte(b)})
		_, _, err := NewFixedDecoder(d).DecodeOptionBool()
		require.ErrorIs(t, err, ErrInvalidBoolean, "byte 0x%02X", b)
	}
}

func TestFixed_DecodeNotEnoughData(t *testing.T) {
	d := NewDecoder([]byte{0x01, 0x02})
	fd := NewFixedDecoder(d)

	_, err := fd.DecodeUint32()
	require.ErrorIs(t, err, ErrNotEnoughData)

	// The failed read consumed nothing.
	require.Equal(t, 2, d.Remaining())

	v, err := fd.DecodeUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0201), v)
}
