// Package catalog enumerates the scalar types and collection shapes a model
// schema supports and maps them onto target-language type names.
package catalog

import "fmt"

// ScalarType is the kind of value a property stores
type ScalarType string

const (
	Bool         ScalarType = "bool"
	Int          ScalarType = "int"
	Float        ScalarType = "float"
	Double       ScalarType = "double"
	String       ScalarType = "string"
	Date         ScalarType = "date"
	Data         ScalarType = "data"
	ObjectID     ScalarType = "objectId"
	Decimal128   ScalarType = "decimal128"
	Link         ScalarType = "link"
	EmbeddedLink ScalarType = "embeddedLink"
)

// Cardinality says whether a property holds one value or a list of values
type Cardinality string

const (
	Single Cardinality = "single"
	List   Cardinality = "list"
)

// Info describes which annotations are legal on a scalar type
type Info struct {
	// Boxable is true when the type has a nullable (boxed) form.
	Boxable bool
	// Indexable is true when a single value of the type can carry an index.
	Indexable bool
	// PrimaryKey is true when the type may back a primary key.
	PrimaryKey bool
	// Reference is true for links to other entities.
	Reference bool
}

var order = []ScalarType{Bool, Int, Float, Double, String, Date, Data, ObjectID, Decimal128, Link, EmbeddedLink}

var table = map[ScalarType]Info{
	Bool:         {Boxable: true, Indexable: true},
	Int:          {Boxable: true, Indexable: true, PrimaryKey: true},
	Float:        {Boxable: true},
	Double:       {Boxable: true},
	String:       {Boxable: true, Indexable: true, PrimaryKey: true},
	Date:         {Boxable: true, Indexable: true},
	Data:         {Boxable: true},
	ObjectID:     {Boxable: true, Indexable: true, PrimaryKey: true},
	Decimal128:   {Boxable: true, Indexable: true},
	Link:         {Reference: true},
	EmbeddedLink: {Reference: true},
}

// Lookup returns the catalog entry for a scalar type
func Lookup(t ScalarType) (Info, bool) {
	info, ok := table[t]
	return info, ok
}

// Types returns every type in the catalog, scalars first
func Types() []ScalarType {
	out := make([]ScalarType, len(order))
	copy(out, order)
	return out
}

// Scalars returns the non-reference types in catalog order
func Scalars() []ScalarType {
	out := make([]ScalarType, 0, len(order))
	for _, t := range order {
		if !table[t].Reference {
			out = append(out, t)
		}
	}
	return out
}

// Valid reports whether t is a catalog type
func (t ScalarType) Valid() bool {
	_, ok := table[t]
	return ok
}

// IsReference reports whether t points at another entity
func (t ScalarType) IsReference() bool {
	return table[t].Reference
}

// ParseScalarType converts the canonical name of a type back to a ScalarType
func ParseScalarType(s string) (ScalarType, error) {
	t := ScalarType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown scalar type %q", s)
	}
	return t, nil
}

// ParseCardinality converts "single" or "list" to a Cardinality
func ParseCardinality(s string) (Cardinality, error) {
	switch Cardinality(s) {
	case Single, List:
		return Cardinality(s), nil
	case "":
		return Single, nil
	}
	return "", fmt.Errorf("unknown cardinality %q", s)
}

// Key is the (type, nullable, cardinality) triple every lookup is keyed on
type Key struct {
	Type        ScalarType
	Nullable    bool
	Cardinality Cardinality
}

// Legal reports whether the triple can be stored at all. Reference lists
// never hold absent elements.
func (k Key) Legal() bool {
	info, ok := table[k.Type]
	if !ok {
		return false
	}
	if k.Cardinality != Single && k.Cardinality != List {
		return false
	}
	if info.Reference && k.Cardinality == List && k.Nullable {
		return false
	}
	return true
}

// String renders the key in a compact notation, e.g. "int?[]"
func (k Key) String() string {
	s := string(k.Type)
	if k.Nullable {
		s += "?"
	}
	if k.Cardinality == List {
		s += "[]"
	}
	return s
}
