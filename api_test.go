package scalelite

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scalelite/scalelite/schema"
	"github.com/scalelite/scalelite/wire"
)

// ===== SCHEMA-AWARE API =====

func TestScalelite_MarshalUnmarshal(t *testing.T) {
	s := New()
	require.NoError(t, s.RegisterType("Transfer", schema.StructOf(
		schema.F("to", schema.ArrayOf(4, schema.U8())),
		schema.F("amount", schema.Compact()),
	)))

	value := map[string]interface{}{
		"to":     []interface{}{uint8(1), uint8(2), uint8(3), uint8(4)},
		"amount": big.NewInt(1000),
	}

	encoded, err := s.Marshal(value, "Transfer")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0xA1, 0x0F}, encoded)

	decoded, err := s.Unmarshal(encoded, "Transfer")
	require.NoError(t, err)
	require.Equal(t, value, decoded)

	_, err = s.Marshal(value, "Unknown")
	require.Error(t, err)
}

func TestScalelite_MarshalType(t *testing.T) {
	s := New()
	typ := schema.OptionOf(schema.Str())

	encoded, err := s.MarshalType("yes", typ)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x0C, 'y', 'e', 's'}, encoded)

	decoded, err := s.UnmarshalType(encoded, typ)
	require.NoError(t, err)
	require.Equal(t, "yes", decoded)

	// Invalid inline descriptors are rejected up front.
	_, err = s.MarshalType(uint8(1), &schema.Type{Kind: schema.KindUint, Width: 5})
	require.Error(t, err)
}

func TestScalelite_LoadSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "types.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
types:
  - name: Balance
    type: {kind: compact}
  - name: AccountInfo
    type:
      kind: struct
      fields:
        - name: nonce
          type: {kind: uint, width: 4}
        - name: free
          type: {kind: named, name: Balance}
`), 0o644))

	s := New()
	require.NoError(t, s.LoadSchema(path))
	require.Equal(t, []string{"AccountInfo", "Balance"}, s.ListTypes())

	encoded, err := s.Marshal(map[string]interface{}{
		"nonce": uint32(1),
		"free":  big.NewInt(64),
	}, "AccountInfo")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x00, 0x00, 0x00, 0x01, 0x01}, encoded)
}

// ===== REFLECTION API =====

type testHeader struct {
	Parent [4]byte
	Number uint64 `scale:"compact"`
	Final  bool
}

func TestEncode_Struct(t *testing.T) {
	h := testHeader{Parent: [4]byte{0xAA, 0xBB, 0xCC, 0xDD}, Number: 3, Final: true}

	encoded, err := Encode(h)
	require.NoError(t, err)
	require.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD, 0x0C, 0x01}, encoded)

	var decoded testHeader
	require.NoError(t, DecodeAll(encoded, &decoded))
	require.Equal(t, h, decoded)
}

func TestEncode_SkippedFields(t *testing.T) {
	type record struct {
		Kept    uint8
		Ignored uint64 `scale:"-"`
		hidden  uint32 //nolint:unused
	}

	encoded, err := Encode(record{Kept: 9, Ignored: 77})
	require.NoError(t, err)
	require.Equal(t, []byte{0x09}, encoded)

	var decoded record
	require.NoError(t, DecodeAll(encoded, &decoded))
	require.Equal(t, uint8(9), decoded.Kept)
	require.Zero(t, decoded.Ignored)
}

func TestEncode_Optionals(t *testing.T) {
	type form struct {
		Note  *string
		Agree *bool
	}

	// Both absent. The *bool collapses to the 3-state byte.
	encoded, err := Encode(form{})
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x00}, encoded)

	note := "hi"
	agree := true
	encoded, err = Encode(form{Note: &note, Agree: &agree})
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x08, 'h', 'i', 0x02}, encoded)

	var decoded form
	require.NoError(t, DecodeAll(encoded, &decoded))
	require.NotNil(t, decoded.Note)
	require.Equal(t, "hi", *decoded.Note)
	require.NotNil(t, decoded.Agree)
	require.True(t, *decoded.Agree)
}

func TestEncode_BigInt(t *testing.T) {
	type payload struct {
		Amount *big.Int
	}

	huge := new(big.Int).Lsh(big.NewInt(1), 100)
	encoded, err := Encode(payload{Amount: huge})
	require.NoError(t, err)

	var decoded payload
	require.NoError(t, DecodeAll(encoded, &decoded))
	require.Zero(t, huge.Cmp(decoded.Amount))

	_, err = Encode(payload{})
	require.Error(t, err)
}

func TestEncode_Collections(t *testing.T) {
	type doc struct {
		Tags   []string
		Scores map[string]uint32
		Raw    []byte
	}
	d := doc{
		Tags:   []string{"b", "a"},
		Scores: map[string]uint32{"beta": 2, "alpha": 1},
		Raw:    []byte{0xFF},
	}

	encoded, err := Encode(d)
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x08, 0x04, 'b', 0x04, 'a',
		0x08,
		0x10, 'b', 'e', 't', 'a', 0x02, 0x00, 0x00, 0x00,
		0x14, 'a', 'l', 'p', 'h', 'a', 0x01, 0x00, 0x00, 0x00,
		0x04, 0xFF,
	}, encoded)

	var decoded doc
	require.NoError(t, DecodeAll(encoded, &decoded))
	require.Equal(t, d, decoded)

	// Map output is deterministic across repeated encodes.
	again, err := Encode(d)
	require.NoError(t, err)
	require.Equal(t, encoded, again)
}

func TestEncode_Rejections(t *testing.T) {
	_, err := Encode(nil)
	require.Error(t, err)

	_, err = Encode(42) // platform-width int
	require.Error(t, err)

	_, err = Encode(struct {
		N int64 `scale:"compact"`
	}{N: 1})
	require.Error(t, err)

	require.Error(t, Decode([]byte{0x00}, nil))
	var n uint8
	require.Error(t, Decode([]byte{0x00}, n)) // non-pointer target
}

func TestDecodeAll_TrailingBytes(t *testing.T) {
	var v uint8
	require.NoError(t, Decode([]byte{0x07, 0xEE}, &v))
	require.Equal(t, uint8(7), v)

	err := DecodeAll([]byte{0x07, 0xEE}, &v)
	require.Error(t, err)
	require.Contains(t, err.Error(), "trailing")
}

func TestDecode_ErrorKinds(t *testing.T) {
	var s string
	err := DecodeAll([]byte{0x10, 'a'}, &s)
	require.Equal(t, wire.ErrNotEnoughData, wire.Kind(err))

	var b bool
	err = DecodeAll([]byte{0x05}, &b)
	require.Equal(t, wire.ErrInvalidBoolean, wire.Kind(err))
}
