package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoMapping is returned when a vocabulary has no spelling for a triple
var ErrNoMapping = errors.New("catalog: no type mapping")

// placeholder marks where reference forms insert the linked entity name
const placeholder = "%s"

// Forms spells one scalar type in a target language. Reference types use
// "%s" where the linked entity's type name goes.
type Forms struct {
	Value           string // single, non-nullable
	Optional        string // single, nullable
	Element         string // list element, non-nullable
	OptionalElement string // list element, nullable
	Zero            string // default literal for a non-nullable single value
	Import          string // import every use of the type needs
}

// Same returns Forms that spell every shape identically
func Same(name, importPath string) Forms {
	return Forms{Value: name, Optional: name, Element: name, OptionalElement: name, Import: importPath}
}

// Vocabulary maps catalog triples to target-language type names
type Vocabulary struct {
	Forms map[ScalarType]Forms
	// List wraps an element spelling, e.g. "RealmList<%s>".
	List       string
	ListImport string
}

// Resolved is the target spelling of a triple
type Resolved struct {
	Name    string
	Zero    string
	Imports []string
}

// Resolve looks up the spelling of k. linked is the type name of the
// referenced entity and is ignored for scalars.
func (v Vocabulary) Resolve(k Key, linked string) (Resolved, error) {
	if !k.Legal() {
		return Resolved{}, fmt.Errorf("%w: illegal triple %s", ErrNoMapping, k)
	}
	f, ok := v.Forms[k.Type]
	if !ok {
		return Resolved{}, fmt.Errorf("%w for %s", ErrNoMapping, k)
	}

	var name string
	switch {
	case k.Cardinality == List && k.Nullable:
		name = f.OptionalElement
	case k.Cardinality == List:
		name = f.Element
	case k.Nullable:
		name = f.Optional
	default:
		name = f.Value
	}
	if name == "" {
		return Resolved{}, fmt.Errorf("%w for %s", ErrNoMapping, k)
	}

	r := Resolved{Name: strings.ReplaceAll(name, placeholder, linked)}
	if f.Import != "" {
		r.Imports = append(r.Imports, f.Import)
	}
	if k.Cardinality == List {
		if v.List == "" {
			return Resolved{}, fmt.Errorf("%w for lists (%s)", ErrNoMapping, k)
		}
		r.Name = strings.ReplaceAll(v.List, placeholder, r.Name)
		if v.ListImport != "" {
			r.Imports = append(r.Imports, v.ListImport)
		}
	} else if !k.Nullable {
		r.Zero = strings.ReplaceAll(f.Zero, placeholder, linked)
	}
	return r, nil
}

// NeedsRequiredMarker reports whether non-nullability of k can only be
// expressed with an annotation: the type has a boxed form, but the target
// spells the non-nullable and nullable shapes the same way.
func (v Vocabulary) NeedsRequiredMarker(k Key) bool {
	if k.Nullable {
		return false
	}
	info, ok := table[k.Type]
	if !ok || !info.Boxable {
		return false
	}
	f, ok := v.Forms[k.Type]
	if !ok {
		return false
	}
	if k.Cardinality == List {
		return f.Element == f.OptionalElement
	}
	return f.Value == f.Optional
}

// Missing lists the legal triples the vocabulary cannot spell
func (v Vocabulary) Missing() []Key {
	var missing []Key
	for _, t := range order {
		for _, c := range []Cardinality{Single, List} {
			for _, nullable := range []bool{false, true} {
				k := Key{Type: t, Nullable: nullable, Cardinality: c}
				if !k.Legal() {
					continue
				}
				if _, err := v.Resolve(k, "T"); err != nil {
					missing = append(missing, k)
				}
			}
		}
	}
	return missing
}
