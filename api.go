package scalelite

import (
	"github.com/pkg/errors"

	"github.com/scalelite/scalelite/registry"
	"github.com/scalelite/scalelite/schema"
	"github.com/scalelite/scalelite/wire"
)

// ===== SCHEMA-AWARE API =====

// Scalelite provides schema-aware SCALE operations over dynamically typed
// values, backed by a registry of named type definitions.
type Scalelite struct {
	registry *registry.Registry
}

// New creates a new Scalelite instance with an empty registry.
func New() *Scalelite {
	return &Scalelite{
		registry: registry.NewRegistry(),
	}
}

// LoadSchema loads named type definitions from a YAML file or directory.
func (s *Scalelite) LoadSchema(path string) error {
	return s.registry.LoadSchema(path)
}

// RegisterType registers a named type definition.
func (s *Scalelite) RegisterType(name string, t *schema.Type) error {
	return s.registry.Register(name, t)
}

// Marshal encodes a dynamically typed value as the named type.
func (s *Scalelite) Marshal(value interface{}, typeName string) ([]byte, error) {
	t, err := s.registry.Get(typeName)
	if err != nil {
		return nil, errors.Wrap(err, "type not found")
	}
	return wire.EncodeValue(value, t, s.registry)
}

// Unmarshal decodes a prefix of data as the named type. Trailing bytes are
// not an error; use wire.Decoder directly when exact consumption matters.
func (s *Scalelite) Unmarshal(data []byte, typeName string) (interface{}, error) {
	t, err := s.registry.Get(typeName)
	if err != nil {
		return nil, errors.Wrap(err, "type not found")
	}
	return wire.DecodeValue(data, t, s.registry)
}

// MarshalType encodes a dynamically typed value using an inline descriptor.
func (s *Scalelite) MarshalType(value interface{}, t *schema.Type) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid type descriptor")
	}
	return wire.EncodeValue(value, t, s.registry)
}

// UnmarshalType decodes a prefix of data using an inline descriptor.
func (s *Scalelite) UnmarshalType(data []byte, t *schema.Type) (interface{}, error) {
	if err := t.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid type descriptor")
	}
	return wire.DecodeValue(data, t, s.registry)
}

// ===== REGISTRY ACCESS =====

func (s *Scalelite) GetRegistry() *registry.Registry { return s.registry }
func (s *Scalelite) ListTypes() []string             { return s.registry.ListTypes() }
