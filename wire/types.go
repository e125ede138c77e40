package wire

// ===== SCALE WIRE FORMAT TYPES =====

// CompactMode identifies the compact integer encoding mode, carried in the 2
// low bits of the first byte.
type CompactMode byte

const (
	CompactSingleByte CompactMode = 0 // values 0..63, 1 byte
	CompactTwoBytes   CompactMode = 1 // values 64..16383, 2 bytes
	CompactFourBytes  CompactMode = 2 // values 16384..2^30-1, 4 bytes
	CompactBigNumber  CompactMode = 3 // values >= 2^30, 1 length byte + 4..67 payload bytes
)

const (
	compactModeMask = 0x03

	// Value bounds per mode.
	maxCompactSingleByte = 1<<6 - 1
	maxCompactTwoBytes   = 1<<14 - 1
	maxCompactFourBytes  = 1<<30 - 1

	// Payload length bounds for CompactBigNumber; the length byte encodes
	// payloadLen-4 in its upper 6 bits.
	minCompactBigLen = 4
	maxCompactBigLen = 67
)

// Variant is the in-memory form of a decoded tagged union: the 0-based index
// of the active alternative and its value.
type Variant struct {
	Index byte
	Value interface{}
}

// Bool byte values on the wire.
const (
	boolFalse = 0x00
	boolTrue  = 0x01
)

// Optional-boolean byte values on the wire.
const (
	optBoolNone  = 0x00
	optBoolFalse = 0x01
	optBoolTrue  = 0x02
)
