package schema

import "fmt"

// MaxVariantAlternatives is the largest number of alternatives a variant may
// declare; the wire tag is a single byte.
const MaxVariantAlternatives = 256

// TypeKind identifies the wire shape of a value.
type TypeKind string

const (
	KindUint    TypeKind = "uint"    // fixed-width unsigned integer, little-endian
	KindInt     TypeKind = "int"     // fixed-width signed integer, little-endian two's-complement
	KindBool    TypeKind = "bool"    // single byte, 0x00/0x01
	KindCompact TypeKind = "compact" // variable-length compact integer
	KindString  TypeKind = "string"  // compact length prefix + UTF-8 bytes
	KindBytes   TypeKind = "bytes"   // compact length prefix + raw bytes
	KindOption  TypeKind = "option"  // presence byte + value; option<bool> is a single 3-state byte
	KindVector  TypeKind = "vector"  // compact count prefix + elements
	KindArray   TypeKind = "array"   // fixed element count, no prefix
	KindMap     TypeKind = "map"     // compact count prefix + key/value pairs
	KindTuple   TypeKind = "tuple"   // ordered unnamed components, no framing
	KindStruct  TypeKind = "struct"  // ordered named fields, no framing
	KindVariant TypeKind = "variant" // single tag byte + active alternative
	KindPointer TypeKind = "pointer" // owned indirection, no extra wire bytes
	KindNamed   TypeKind = "named"   // reference to a registered type
)

// Type describes the wire shape of a value. A Type is immutable after
// construction; the same descriptor may be shared across sessions.
type Type struct {
	Kind TypeKind `yaml:"kind" json:"kind"`

	// Width is the byte width for KindUint/KindInt (1, 2, 4 or 8).
	Width int `yaml:"width,omitempty" json:"width,omitempty"`

	// Elem is the element type for option, vector, array and pointer kinds.
	Elem *Type `yaml:"elem,omitempty" json:"elem,omitempty"`

	// Len is the static element count for KindArray.
	Len int `yaml:"len,omitempty" json:"len,omitempty"`

	// Key and Value describe KindMap entries.
	Key   *Type `yaml:"key,omitempty" json:"key,omitempty"`
	Value *Type `yaml:"value,omitempty" json:"value,omitempty"`

	// Elems are the ordered components of KindTuple.
	Elems []*Type `yaml:"elems,omitempty" json:"elems,omitempty"`

	// Fields are the ordered named fields of KindStruct.
	Fields []*Field `yaml:"fields,omitempty" json:"fields,omitempty"`

	// Alts are the ordered alternatives of KindVariant; the wire tag is the
	// 0-based index into this list.
	Alts []*Type `yaml:"alts,omitempty" json:"alts,omitempty"`

	// Name is the registry name for KindNamed.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
}

// Field is a named component of a struct type.
type Field struct {
	Name string `yaml:"name" json:"name"`
	Type *Type  `yaml:"type" json:"type"`
}

// U8 returns the descriptor for an unsigned 8-bit integer.
func U8() *Type { return &Type{Kind: KindUint, Width: 1} }

// U16 returns the descriptor for an unsigned 16-bit integer.
func U16() *Type { return &Type{Kind: KindUint, Width: 2} }

// U32 returns the descriptor for an unsigned 32-bit integer.
func U32() *Type { return &Type{Kind: KindUint, Width: 4} }

// U64 returns the descriptor for an unsigned 64-bit integer.
func U64() *Type { return &Type{Kind: KindUint, Width: 8} }

// I8 returns the descriptor for a signed 8-bit integer.
func I8() *Type { return &Type{Kind: KindInt, Width: 1} }

// I16 returns the descriptor for a signed 16-bit integer.
func I16() *Type { return &Type{Kind: KindInt, Width: 2} }

// I32 returns the descriptor for a signed 32-bit integer.
func I32() *Type { return &Type{Kind: KindInt, Width: 4} }

// I64 returns the descriptor for a signed 64-bit integer.
func I64() *Type { return &Type{Kind: KindInt, Width: 8} }

// Bool returns the descriptor for a boolean.
func Bool() *Type { return &Type{Kind: KindBool} }

// Compact returns the descriptor for a compact integer.
func Compact() *Type { return &Type{Kind: KindCompact} }

// Str returns the descriptor for a UTF-8 string.
func Str() *Type { return &Type{Kind: KindString} }

// Bytes returns the descriptor for a raw byte string.
func Bytes() *Type { return &Type{Kind: KindBytes} }

// OptionOf returns the descriptor for an optional value of elem.
func OptionOf(elem *Type) *Type { return &Type{Kind: KindOption, Elem: elem} }

// VectorOf returns the descriptor for a dynamically sized sequence of elem.
func VectorOf(elem *Type) *Type { return &Type{Kind: KindVector, Elem: elem} }

// ArrayOf returns the descriptor for a fixed-size array of n elements of elem.
func ArrayOf(n int, elem *Type) *Type { return &Type{Kind: KindArray, Len: n, Elem: elem} }

// MapOf returns the descriptor for an associative map from key to value.
func MapOf(key, value *Type) *Type { return &Type{Kind: KindMap, Key: key, Value: value} }

// TupleOf returns the descriptor for an ordered tuple of the given components.
func TupleOf(elems ...*Type) *Type { return &Type{Kind: KindTuple, Elems: elems} }

// StructOf returns the descriptor for a struct with the given ordered fields.
func StructOf(fields ...*Field) *Type { return &Type{Kind: KindStruct, Fields: fields} }

// F is shorthand for building a struct field.
func F(name string, t *Type) *Field { return &Field{Name: name, Type: t} }

// VariantOf returns the descriptor for a tagged union over the given ordered
// alternatives. The alternative count must fit a single tag byte; this is a
// construction-time constraint, not a runtime one.
func VariantOf(alts ...*Type) (*Type, error) {
	if len(alts) == 0 {
		return nil, fmt.Errorf("variant requires at least one alternative")
	}
	if len(alts) > MaxVariantAlternatives {
		return nil, fmt.Errorf("variant declares %d alternatives, maximum is %d", len(alts), MaxVariantAlternatives)
	}
	return &Type{Kind: KindVariant, Alts: alts}, nil
}

// MustVariantOf is VariantOf that panics on an invalid declaration. Intended
// for statically known type definitions.
func MustVariantOf(alts ...*Type) *Type {
	t, err := VariantOf(alts...)
	if err != nil {
		panic(err)
	}
	return t
}

// PointerTo returns the descriptor for an owned indirection around elem. The
// indirection itself contributes no wire bytes.
func PointerTo(elem *Type) *Type { return &Type{Kind: KindPointer, Elem: elem} }

// Named returns a descriptor referring to a registered type by name.
func Named(name string) *Type { return &Type{Kind: KindNamed, Name: name} }

// Validate checks that the descriptor is structurally sound: widths are one of
// the supported byte widths, composite kinds carry their component types, map
// keys are comparable primitives and variants respect the tag-byte bound.
// Named references are not resolved here; the registry validates those.
func (t *Type) Validate() error {
	if t == nil {
		return fmt.Errorf("nil type descriptor")
	}
	switch t.Kind {
	case KindUint, KindInt:
		switch t.Width {
		case 1, 2, 4, 8:
		default:
			return fmt.Errorf("unsupported integer width %d", t.Width)
		}
	case KindBool, KindCompact, KindString, KindBytes:
		// no parameters
	case KindOption, KindVector, KindPointer:
		if t.Elem == nil {
			return fmt.Errorf("%s type requires an element type", t.Kind)
		}
		return t.Elem.Validate()
	case KindArray:
		if t.Elem == nil {
			return fmt.Errorf("array type requires an element type")
		}
		if t.Len < 0 {
			return fmt.Errorf("array length must be non-negative, got %d", t.Len)
		}
		return t.Elem.Validate()
	case KindMap:
		if t.Key == nil || t.Value == nil {
			return fmt.Errorf("map type requires key and value types")
		}
		if !t.Key.comparableKey() {
			return fmt.Errorf("map key kind %s is not comparable", t.Key.Kind)
		}
		if err := t.Key.Validate(); err != nil {
			return err
		}
		return t.Value.Validate()
	case KindTuple:
		for _, e := range t.Elems {
			if err := e.Validate(); err != nil {
				return err
			}
		}
	case KindStruct:
		seen := make(map[string]struct{}, len(t.Fields))
		for _, f := range t.Fields {
			if f == nil || f.Name == "" {
				return fmt.Errorf("struct field requires a name")
			}
			if _, dup := seen[f.Name]; dup {
				return fmt.Errorf("duplicate struct field %q", f.Name)
			}
			seen[f.Name] = struct{}{}
			if err := f.Type.Validate(); err != nil {
				return fmt.Errorf("field %s: %w", f.Name, err)
			}
		}
	case KindVariant:
		if len(t.Alts) == 0 {
			return fmt.Errorf("variant requires at least one alternative")
		}
		if len(t.Alts) > MaxVariantAlternatives {
			return fmt.Errorf("variant declares %d alternatives, maximum is %d", len(t.Alts), MaxVariantAlternatives)
		}
		for i, a := range t.Alts {
			if err := a.Validate(); err != nil {
				return fmt.Errorf("alternative %d: %w", i, err)
			}
		}
	case KindNamed:
		if t.Name == "" {
			return fmt.Errorf("named type requires a name")
		}
	default:
		return fmt.Errorf("unknown type kind %q", t.Kind)
	}
	return nil
}

// comparableKey reports whether the type may serve as a map key in the
// decoded in-memory representation.
func (t *Type) comparableKey() bool {
	switch t.Kind {
	case KindUint, KindInt, KindBool, KindString:
		return true
	default:
		return false
	}
}

// String renders a short human-readable form of the descriptor.
func (t *Type) String() string {
	switch t.Kind {
	case KindUint:
		return fmt.Sprintf("u%d", t.Width*8)
	case KindInt:
		return fmt.Sprintf("i%d", t.Width*8)
	case KindOption:
		return fmt.Sprintf("option<%s>", t.Elem)
	case KindVector:
		return fmt.Sprintf("vector<%s>", t.Elem)
	case KindArray:
		return fmt.Sprintf("[%s; %d]", t.Elem, t.Len)
	case KindMap:
		return fmt.Sprintf("map<%s, %s>", t.Key, t.Value)
	case KindPointer:
		return fmt.Sprintf("*%s", t.Elem)
	case KindNamed:
		return t.Name
	case KindVariant:
		return fmt.Sprintf("variant[%d]", len(t.Alts))
	default:
		return string(t.Kind)
	}
}
