// Package profile describes how a target language spells a schema: accessor
// naming, annotation syntax and the type vocabulary.
package profile

import (
	"errors"
	"fmt"
	"slices"

	"github.com/okra-platform/modelgen/internal/catalog"
	"github.com/okra-platform/modelgen/internal/schema"
)

// ErrRender indicates a profile that cannot spell part of a schema
var ErrRender = errors.New("modelgen: render failed")

// ErrMemberCollision indicates two properties that derive the same member name
var ErrMemberCollision = errors.New("member name collision")

// RenderError reports a triple the profile's vocabulary has no name for,
// or a member name two properties share. It is fatal to the render call
// that hit it.
type RenderError struct {
	Profile  string
	Entity   string
	Property string
	Key      catalog.Key
	Cause    error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	msg := fmt.Sprintf("render error (%s) in entity %s", e.Profile, e.Entity)
	if e.Property != "" {
		msg += " property " + e.Property
	}
	if e.Key.Type != "" {
		msg += ": no type for " + e.Key.String()
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrRender.
func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}

// Flag is an IR flag a target may project into an annotation
type Flag string

const (
	FlagPrimaryKey Flag = "primaryKey"
	FlagIndexed    Flag = "indexed"
	FlagRequired   Flag = "required"
	FlagEmbedded   Flag = "embedded"
)

// Annotation is the target syntax of a flag
type Annotation struct {
	Syntax string
	Import string
}

// Profile is the naming and type configuration of one target language
type Profile struct {
	Name string
	// AccessorCasing builds accessor names from property names.
	AccessorCasing Casing
	// GetterPrefix and SetterPrefix start accessor names; empty means the
	// target has no accessors.
	GetterPrefix string
	SetterPrefix string
	// BooleanAccessorPrefix replaces GetterPrefix for single bool properties.
	BooleanAccessorPrefix string
	Annotations           map[Flag]Annotation
	Types                 catalog.Vocabulary
	BaseType              string
	EmbeddedBaseType      string
	Indent                string
	// Header lines open every generated unit.
	Header []string
}

// Overrides are user settings layered over a built-in profile
type Overrides struct {
	AccessorCasing        string
	BooleanAccessorPrefix string
}

// Validate checks the override values; empty fields are always valid
func (o Overrides) Validate() error {
	if o.AccessorCasing != "" {
		if _, err := ParseCasing(o.AccessorCasing); err != nil {
			return err
		}
	}
	switch o.BooleanAccessorPrefix {
	case "", "is", "get":
		return nil
	}
	return fmt.Errorf("boolean accessor prefix must be \"is\" or \"get\", got %q", o.BooleanAccessorPrefix)
}

// With returns a copy of the profile with the overrides applied
func (p Profile) With(o Overrides) (Profile, error) {
	if err := o.Validate(); err != nil {
		return Profile{}, err
	}
	if o.AccessorCasing != "" {
		p.AccessorCasing = Casing(o.AccessorCasing)
	}
	if o.BooleanAccessorPrefix != "" {
		p.BooleanAccessorPrefix = o.BooleanAccessorPrefix
	}
	return p, nil
}

// Validate checks the profile can spell every legal triple
func (p Profile) Validate() error {
	if _, err := ParseCasing(string(p.AccessorCasing)); err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}
	if missing := p.Types.Missing(); len(missing) > 0 {
		return &RenderError{Profile: p.Name, Key: missing[0], Cause: fmt.Errorf("%w: %d triples unmapped", catalog.ErrNoMapping, len(missing))}
	}
	return nil
}

// AccessorName returns the cased property name without a prefix
func (p Profile) AccessorName(prop schema.Property) string {
	return p.AccessorCasing.Apply(prop.Name)
}

// Getter returns the getter name of a property
func (p Profile) Getter(prop schema.Property) string {
	prefix := p.GetterPrefix
	if p.BooleanAccessorPrefix != "" && prop.Type == catalog.Bool && !prop.IsList() {
		prefix = p.BooleanAccessorPrefix
	}
	return p.AccessorCasing.Join(prefix, prop.Name)
}

// Setter returns the setter name of a property
func (p Profile) Setter(prop schema.Property) string {
	return p.AccessorCasing.Join(p.SetterPrefix, prop.Name)
}

// MemberNames returns the names a property contributes to the generated
// type: its accessors when the target has them, else its cased name
func (p Profile) MemberNames(prop schema.Property) []string {
	if p.GetterPrefix == "" && p.SetterPrefix == "" {
		return []string{p.AccessorName(prop)}
	}
	names := []string{p.Getter(prop)}
	if p.SetterPrefix != "" {
		names = append(names, p.Setter(prop))
	}
	return names
}

// CheckMembers reports the first property of e whose member names clash
// with an earlier property. names derives the member names of a property;
// nil means MemberNames.
func (p Profile) CheckMembers(e schema.Entity, names func(schema.Property) []string) error {
	if names == nil {
		names = p.MemberNames
	}
	owners := make(map[string]string)
	for _, prop := range e.Properties {
		for _, name := range names(prop) {
			if owner, ok := owners[name]; ok && owner != prop.Name {
				return &RenderError{
					Profile:  p.Name,
					Entity:   e.Name,
					Property: prop.Name,
					Cause:    fmt.Errorf("%w: %s is also derived from property %s", ErrMemberCollision, name, owner),
				}
			}
			owners[name] = prop.Name
		}
	}
	return nil
}

// Flags returns the property-level flags to project, in emission order.
// Indexed is dropped for primary keys, and required is emitted only when
// the declared type cannot express non-nullability.
func (p Profile) Flags(prop schema.Property) []Flag {
	var flags []Flag
	switch {
	case prop.PrimaryKey:
		flags = append(flags, FlagPrimaryKey)
	case prop.Indexed:
		flags = append(flags, FlagIndexed)
	}
	if p.Types.NeedsRequiredMarker(prop.Key()) {
		flags = append(flags, FlagRequired)
	}
	return flags
}

// Annotation returns the syntax of a flag and whether the target has one
func (p Profile) Annotation(f Flag) (Annotation, bool) {
	a, ok := p.Annotations[f]
	if !ok || a.Syntax == "" {
		return Annotation{}, false
	}
	return a, true
}

// PropertyAnnotations returns the annotation syntax of a property in Flags
// order, skipping flags the target has no syntax for
func (p Profile) PropertyAnnotations(prop schema.Property) []Annotation {
	var out []Annotation
	for _, f := range p.Flags(prop) {
		if a, ok := p.Annotation(f); ok {
			out = append(out, a)
		}
	}
	return out
}

// EntityAnnotations returns the entity-level annotations
func (p Profile) EntityAnnotations(e schema.Entity) []Annotation {
	if !e.Embedded {
		return nil
	}
	if a, ok := p.Annotation(FlagEmbedded); ok {
		return []Annotation{a}
	}
	return nil
}

// Base returns the base type of an entity
func (p Profile) Base(e schema.Entity) string {
	if e.Embedded && p.EmbeddedBaseType != "" {
		return p.EmbeddedBaseType
	}
	return p.BaseType
}

// Resolve spells the declared type of a property
func (p Profile) Resolve(s *schema.Schema, e schema.Entity, prop schema.Property) (catalog.Resolved, error) {
	linked := ""
	if prop.IsReference() {
		target, ok := s.Target(prop)
		if !ok {
			return catalog.Resolved{}, &RenderError{Profile: p.Name, Entity: e.Name, Property: prop.Name, Key: prop.Key(), Cause: errors.New("unresolved target")}
		}
		linked = target.Name
	}
	r, err := p.Types.Resolve(prop.Key(), linked)
	if err != nil {
		return catalog.Resolved{}, &RenderError{Profile: p.Name, Entity: e.Name, Property: prop.Name, Key: prop.Key(), Cause: err}
	}
	return r, nil
}

// Imports is a sorted, duplicate-free import set
type Imports struct {
	seen map[string]bool
}

// Add records imports; empty strings are ignored
func (i *Imports) Add(paths ...string) {
	if i.seen == nil {
		i.seen = make(map[string]bool)
	}
	for _, path := range paths {
		if path != "" {
			i.seen[path] = true
		}
	}
}

// Sorted returns the imports in lexical order
func (i *Imports) Sorted() []string {
	out := make([]string, 0, len(i.seen))
	for path := range i.seen {
		out = append(out, path)
	}
	slices.Sort(out)
	return out
}

// Len returns the number of imports
func (i *Imports) Len() int {
	return len(i.seen)
}
