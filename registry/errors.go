package registry

import (
	"fmt"
	"sync"
)

// Error categories map a numeric error code within a named category to a
// human-readable description. The codec core registers its category once at
// package initialization; other layers may add their own. The table is
// process-wide; registration is idempotent and safe for concurrent use.
var (
	categoriesMu sync.RWMutex
	categories   = make(map[string]map[int]string)
)

// RegisterErrorCategory installs the descriptions for a category. The first
// registration of a category wins; repeated registrations of the same
// category are ignored, so lazy call sites need no coordination.
func RegisterErrorCategory(category string, descriptions map[int]string) {
	categoriesMu.Lock()
	defer categoriesMu.Unlock()
	if _, exists := categories[category]; exists {
		return
	}
	copied := make(map[int]string, len(descriptions))
	for code, text := range descriptions {
		copied[code] = text
	}
	categories[category] = copied
}

// DescribeError returns the human-readable description for a code within a
// category, or a generic placeholder when the category or code is unknown.
func DescribeError(category string, code int) string {
	categoriesMu.RLock()
	defer categoriesMu.RUnlock()
	if descriptions, ok := categories[category]; ok {
		if text, ok := descriptions[code]; ok {
			return text
		}
	}
	return fmt.Sprintf("unknown %s error (code %d)", category, code)
}
