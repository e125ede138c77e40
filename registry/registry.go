package registry

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/scalelite/scalelite/schema"
)

// Registry stores named type definitions. Descriptors of kind named resolve
// through a Registry at encode/decode time, which is what makes recursive
// types expressible.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*schema.Type // name -> definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]*schema.Type),
	}
}

// Register adds a named type definition. The definition is validated
// structurally; references to names registered later are allowed, so mutually
// recursive definitions may be registered in any order.
func (r *Registry) Register(name string, t *schema.Type) error {
	if name == "" {
		return errors.New("type name must not be empty")
	}
	if err := t.Validate(); err != nil {
		return errors.Wrapf(err, "invalid definition for type %s", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[name]; exists {
		return errors.Errorf("type %s is already registered", name)
	}
	r.types[name] = t
	return nil
}

// Get returns the definition registered under name.
func (r *Registry) Get(name string) (*schema.Type, error) {
	r.mu.RLock()
	t, ok := r.types[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Errorf("type %s is not registered", name)
	}
	return t, nil
}

// ListTypes returns the registered type names in sorted order.
func (r *Registry) ListTypes() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// LoadSchema loads type definitions from a YAML file or, given a directory,
// from every *.yaml/*.yml file inside it, recursively.
func (r *Registry) LoadSchema(schemaPath string) error {
	info, err := os.Stat(schemaPath)
	if err != nil {
		return errors.Wrap(err, "path does not exist")
	}

	if !info.IsDir() {
		if !isYAMLFile(schemaPath) {
			return errors.Errorf("file %s is not a .yaml file", schemaPath)
		}
		return r.loadSchemaFile(schemaPath)
	}

	err = filepath.WalkDir(schemaPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAMLFile(path) {
			return nil
		}
		if err := r.loadSchemaFile(path); err != nil {
			return errors.Wrapf(err, "failed to load schema file %s", path)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to walk directory")
	}
	return nil
}

// loadSchemaFile loads and registers every definition in a single YAML file.
func (r *Registry) loadSchemaFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read file")
	}

	defs, err := parseSchemaFile(content)
	if err != nil {
		return errors.Wrapf(err, "failed to parse %s", filepath.Base(path))
	}

	for _, def := range defs {
		if err := r.Register(def.Name, def.Type); err != nil {
			return err
		}
	}
	return nil
}

func isYAMLFile(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}
