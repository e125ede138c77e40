package wire

import (
	"errors"
	"fmt"
	"strings"

	"github.com/scalelite/scalelite/registry"
)

// ErrorCategory is the error-description category the codec registers its
// kinds under.
const ErrorCategory = "scale"

// ErrorKind is a typed codec failure. Kinds implement error directly; their
// message text is resolved through the process-wide description registry.
type ErrorKind int

const (
	// ErrNotEnoughData - the cursor ran out of bytes mid-value.
	ErrNotEnoughData ErrorKind = iota + 1
	// ErrWrongTypeIndex - a variant tag byte is >= the alternative count.
	ErrWrongTypeIndex
	// ErrTooManyItems - a collection length prefix exceeds the accepted bound.
	ErrTooManyItems
	// ErrInvalidBoolean - a boolean or optional-boolean byte is outside its valid set.
	ErrInvalidBoolean
	// ErrCompactOverflow - a compact integer exceeds the representable magnitude.
	ErrCompactOverflow
	// ErrCompactNegative - a compact integer value is negative.
	ErrCompactNegative
)

func init() {
	registry.RegisterErrorCategory(ErrorCategory, map[int]string{
		int(ErrNotEnoughData):   "not enough data to decode value",
		int(ErrWrongTypeIndex):  "wrong variant type index",
		int(ErrTooManyItems):    "collection claims too many items",
		int(ErrInvalidBoolean):  "invalid boolean byte",
		int(ErrCompactOverflow): "compact integer exceeds encodable magnitude",
		int(ErrCompactNegative): "compact integer must be non-negative",
	})
}

// Error implements the error interface.
func (k ErrorKind) Error() string {
	return registry.DescribeError(ErrorCategory, int(k))
}

// CodecError carries a typed failure together with the path of composite
// components it surfaced through, e.g. ["header", "digest", "[2]"].
type CodecError struct {
	Path []string // outermost component first
	Err  error    // underlying error, ultimately an ErrorKind
}

// Error implements the error interface.
func (e *CodecError) Error() string {
	if len(e.Path) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("error at %s: %v", strings.Join(e.Path, "."), e.Err)
}

// Unwrap returns the underlying error.
func (e *CodecError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for compatibility.
func (e *CodecError) Is(target error) bool {
	_, ok := target.(*CodecError)
	return ok
}

// Kind extracts the ErrorKind from an error chain, or 0 if the error does not
// originate from the codec.
func Kind(err error) ErrorKind {
	for _, k := range []ErrorKind{
		ErrNotEnoughData,
		ErrWrongTypeIndex,
		ErrTooManyItems,
		ErrInvalidBoolean,
		ErrCompactOverflow,
		ErrCompactNegative,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return 0
}

// wrapWithField prefixes the error path with a component name.
func wrapWithField(err error, fieldName string) error {
	if err == nil {
		return nil
	}

	if ce, ok := err.(*CodecError); ok {
		return &CodecError{
			Path: append([]string{fieldName}, ce.Path...),
			Err:  ce.Err,
		}
	}

	return &CodecError{
		Path: []string{fieldName},
		Err:  err,
	}
}
