package wire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scalelite/scalelite/schema"
)

func TestErrorKind_Descriptions(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{ErrNotEnoughData, "not enough data to decode value"},
		{ErrWrongTypeIndex, "wrong variant type index"},
		{ErrTooManyItems, "collection claims too many items"},
		{ErrInvalidBoolean, "invalid boolean byte"},
		{ErrCompactOverflow, "compact integer exceeds encodable magnitude"},
		{ErrCompactNegative, "compact integer must be non-negative"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.kind.Error())
	}

	// Codes outside the registered set still produce a usable message.
	require.Equal(t, "unknown scale error (code 999)", ErrorKind(999).Error())
}

func TestCodecError_Path(t *testing.T) {
	err := wrapWithField(ErrInvalidBoolean, "inner")
	err = wrapWithField(err, "middle")
	err = wrapWithField(err, "outer")

	var ce *CodecError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, []string{"outer", "middle", "inner"}, ce.Path)
	require.Contains(t, ce.Error(), "outer.middle.inner")

	require.ErrorIs(t, err, ErrInvalidBoolean)
	require.NotErrorIs(t, err, ErrNotEnoughData)
	require.Equal(t, ErrInvalidBoolean, Kind(err))
}

func TestKind_PlainErrors(t *testing.T) {
	require.Equal(t, ErrorKind(0), Kind(nil))
	require.Equal(t, ErrorKind(0), Kind(errors.New("unrelated")))
	require.Equal(t, ErrNotEnoughData, Kind(ErrNotEnoughData))
}

func TestErrors_SurfaceThroughDispatch(t *testing.T) {
	typ := schema.StructOf(
		schema.F("items", schema.VectorOf(schema.Bool())),
	)

	// vector count 2, first bool valid, second invalid
	_, err := DecodeValue([]byte{0x08, 0x01, 0x07}, typ, nil)
	require.ErrorIs(t, err, ErrInvalidBoolean)

	var ce *CodecError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, []string{"items", "[1]"}, ce.Path)
}
