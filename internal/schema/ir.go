// Package schema turns persistent model declarations into a validated,
// language-independent schema of entities and properties.
package schema

import (
	"slices"

	"github.com/okra-platform/modelgen/internal/catalog"
)

// NoTarget is the Target of a scalar property
const NoTarget = -1

// Entity is a named persistent type
type Entity struct {
	Name     string
	Embedded bool
	// PrimaryKey names the primary key property, or is empty.
	PrimaryKey string
	// Properties are kept in declaration order.
	Properties []Property
}

// Property is one field of an entity
type Property struct {
	Name        string
	Type        catalog.ScalarType
	Cardinality catalog.Cardinality
	// Nullable applies to the value of a single property and to the
	// elements of a list.
	Nullable   bool
	Indexed    bool
	PrimaryKey bool
	// ObjectType is the declared target entity of a link.
	ObjectType string
	// Target is the index of the resolved ObjectType in the schema.
	Target int
}

// Key returns the catalog triple of the property
func (p Property) Key() catalog.Key {
	return catalog.Key{Type: p.Type, Nullable: p.Nullable, Cardinality: p.Cardinality}
}

// IsList reports whether the property holds a list
func (p Property) IsList() bool {
	return p.Cardinality == catalog.List
}

// IsReference reports whether the property points at another entity
func (p Property) IsReference() bool {
	return p.Type.IsReference()
}

// Property returns the named property and whether it exists
func (e Entity) Property(name string) (Property, bool) {
	for _, p := range e.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

func (e Entity) clone() Entity {
	e.Properties = slices.Clone(e.Properties)
	return e
}

// Schema is the validated, ordered collection of entities. It is immutable:
// accessors hand out copies.
type Schema struct {
	entities []Entity
	byName   map[string]int
}

// Len returns the number of entities
func (s *Schema) Len() int {
	return len(s.entities)
}

// Entity returns a copy of the entity at index i
func (s *Schema) Entity(i int) Entity {
	return s.entities[i].clone()
}

// Entities returns a copy of every entity in declaration order
func (s *Schema) Entities() []Entity {
	out := make([]Entity, len(s.entities))
	for i, e := range s.entities {
		out[i] = e.clone()
	}
	return out
}

// Lookup returns the index of the named entity
func (s *Schema) Lookup(name string) (int, bool) {
	i, ok := s.byName[name]
	return i, ok
}

// Target returns the entity a reference property points at
func (s *Schema) Target(p Property) (Entity, bool) {
	if p.Target < 0 || p.Target >= len(s.entities) {
		return Entity{}, false
	}
	return s.entities[p.Target].clone(), true
}

// Names returns the entity names in declaration order
func (s *Schema) Names() []string {
	out := make([]string, len(s.entities))
	for i, e := range s.entities {
		out[i] = e.Name
	}
	return out
}
