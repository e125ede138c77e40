package wire

import (
	"os"
	"strconv"
)

// Config controls optional decode behaviors. Defaults preserve the safe
// baseline behavior.
type Config struct {
	// MaxCollectionLen caps the element count any single collection or byte
	// string may claim in its length prefix. Claims beyond the cap are
	// rejected before allocation.
	MaxCollectionLen uint64

	// ZeroCopyBytes: when true, DecodeBytes returns slices sharing the input
	// buffer instead of copies. Callers that retain decoded bytes past the
	// lifetime of the input must leave this off.
	ZeroCopyBytes bool
}

// DefaultMaxCollectionLen is the default claim cap for collection lengths.
const DefaultMaxCollectionLen = 1 << 30

var config = Config{
	MaxCollectionLen: DefaultMaxCollectionLen,
}

// SetConfig sets the global wire configuration.
func SetConfig(c Config) {
	if c.MaxCollectionLen == 0 {
		c.MaxCollectionLen = DefaultMaxCollectionLen
	}
	config = c
}

// GetConfig returns the current wire configuration.
func GetConfig() Config { return config }

func init() {
	// Optional env toggles for test harnesses; defaults remain unchanged if unset.
	if v := os.Getenv("SCALELITE_MAX_COLLECTION_LEN"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil && n > 0 {
			config.MaxCollectionLen = n
		}
	}
	if v := os.Getenv("SCALELITE_ZERO_COPY_BYTES"); v == "1" || v == "true" {
		config.ZeroCopyBytes = true
	}
}
