package registry

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/scalelite/scalelite/schema"
)

// schemaFile is the on-disk YAML layout:
//
//	types:
//	  - name: Header
//	    type:
//	      kind: struct
//	      fields:
//	        - name: number
//	          type: {kind: compact}
//	        - name: parent
//	          type: {kind: array, len: 32, elem: {kind: uint, width: 1}}
type schemaFile struct {
	Types []*typeDefinition `yaml:"types"`
}

// typeDefinition is a single named entry in a schema file.
type typeDefinition struct {
	Name string       `yaml:"name"`
	Type *schema.Type `yaml:"type"`
}

// parseSchemaFile parses the YAML content of one schema file into named
// definitions. Definitions are validated by Register, not here.
func parseSchemaFile(content []byte) ([]*typeDefinition, error) {
	var file schemaFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, errors.Wrap(err, "invalid YAML")
	}
	if len(file.Types) == 0 {
		return nil, errors.New("schema file declares no types")
	}
	for _, def := range file.Types {
		if def == nil || def.Name == "" {
			return nil, errors.New("schema entry is missing a name")
		}
		if def.Type == nil {
			return nil, errors.Errorf("type %s is missing a definition", def.Name)
		}
	}
	return file.Types, nil
}
