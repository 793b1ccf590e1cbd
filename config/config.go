// Package config provides loading and parsing of node schema configuration.
// A schema file declares the ordered list of node type names from which the
// relay registry assigns type tags.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/graphline/relay"
)

// Sentinel errors for schema loading.
var (
	// ErrInvalidSchema indicates the schema document failed validation:
	// no types, an empty type name, or a duplicate type name.
	ErrInvalidSchema = errors.New("config: invalid schema")

	// ErrSchemaNotFound indicates the schema document does not exist at the
	// requested location (file path or etcd key).
	ErrSchemaNotFound = errors.New("config: schema not found")
)

// Schema is a node schema document. The order of Types is the sole
// determinant of each type's tag, so the list is append-only: inserting or
// reordering entries invalidates every previously issued identifier for
// types after the change point.
//
// Example schema.yaml:
//
//	name: api
//	version: "3"
//	types:
//	  - User
//	  - Organization
//	  - Project
type Schema struct {
	// Name identifies the schema (optional, informational).
	Name string `yaml:"name,omitempty"`

	// Version is the schema revision (optional, informational). Bumping it
	// does not change tags; only list order does.
	Version string `yaml:"version,omitempty"`

	// Types is the ordered list of node type names. Position i is assigned
	// tag i+1.
	Types []string `yaml:"types"`
}

// Parse decodes and validates a schema document.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("config: parse schema: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses a schema file from disk.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, path)
		}
		return nil, fmt.Errorf("config: read schema %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks the schema for structural problems.
func (s *Schema) Validate() error {
	if len(s.Types) == 0 {
		return fmt.Errorf("%w: no node types declared", ErrInvalidSchema)
	}
	seen := make(map[string]struct{}, len(s.Types))
	for i, name := range s.Types {
		if name == "" {
			return fmt.Errorf("%w: empty type name at position %d", ErrInvalidSchema, i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate type name %q", ErrInvalidSchema, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Registry binds the schema's ordered type list to loader capabilities and
// builds the immutable relay registry. Every declared type must have a
// loader; extra loaders for undeclared types are rejected so a schema and
// its wiring cannot silently drift apart.
func (s *Schema) Registry(loaders map[string]relay.Loader) (*relay.Registry, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	types := make([]relay.NodeType, len(s.Types))
	for i, name := range s.Types {
		loader, ok := loaders[name]
		if !ok {
			return nil, fmt.Errorf("%w: no loader for declared type %q", ErrInvalidSchema, name)
		}
		types[i] = relay.NodeType{Name: name, Loader: loader}
	}

	if len(loaders) > len(s.Types) {
		for name := range loaders {
			declared := false
			for _, t := range s.Types {
				if t == name {
					declared = true
					break
				}
			}
			if !declared {
				return nil, fmt.Errorf("%w: loader for undeclared type %q", ErrInvalidSchema, name)
			}
		}
	}

	return relay.NewRegistry(types...)
}
