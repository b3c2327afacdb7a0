package schema

import (
	"regexp"
	"strings"

	"github.com/okra-platform/modelgen/internal/catalog"
)

// token is one entry of the type token table
type token struct {
	typ catalog.ScalarType
	// primitive tokens have no absent value
	primitive bool
}

var tokens = map[string]token{
	"boolean": {catalog.Bool, true},
	"byte":    {catalog.Int, true},
	"short":   {catalog.Int, true},
	"int":     {catalog.Int, true},
	"long":    {catalog.Int, true},
	"float":   {catalog.Float, true},
	"double":  {catalog.Double, true},

	"Boolean": {catalog.Bool, false},
	"Byte":    {catalog.Int, false},
	"Short":   {catalog.Int, false},
	"Integer": {catalog.Int, false},
	"Long":    {catalog.Int, false},
	"Float":   {catalog.Float, false},
	"Double":  {catalog.Double, false},

	"String":     {catalog.String, false},
	"Date":       {catalog.Date, false},
	"byte[]":     {catalog.Data, false},
	"ObjectId":   {catalog.ObjectID, false},
	"Decimal128": {catalog.Decimal128, false},
}

// unsupported names look like entity names but are host types with no
// schema equivalent
var unsupported = map[string]bool{
	"char":            true,
	"Character":       true,
	"Object":          true,
	"Map":             true,
	"Set":             true,
	"RealmDictionary": true,
	"RealmSet":        true,
	"RealmAny":        true,
	"UUID":            true,
	"RealmList":       true,
	"List":            true,
}

var (
	listRegex       = regexp.MustCompile(`^(?:RealmList|List)\s*<\s*(.*?)\s*>$`)
	identifierRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

// Parse turns one declaration into an entity. The first failing field aborts
// the entity and is returned as a *ParseError.
func Parse(d Declaration) (*Entity, error) {
	if !identifierRegex.MatchString(d.Name) {
		return nil, &ParseError{Kind: KindInvalidName, Entity: d.Name, Message: "entity name is not an identifier"}
	}

	entity := &Entity{
		Name:       d.Name,
		Embedded:   d.Embedded,
		Properties: make([]Property, 0, len(d.Fields)),
	}
	seen := make(map[string]bool, len(d.Fields))

	for _, f := range d.Fields {
		if !identifierRegex.MatchString(f.Name) {
			return nil, &ParseError{Kind: KindInvalidName, Entity: d.Name, Field: f.Name, Message: "field name is not an identifier"}
		}
		if seen[f.Name] {
			return nil, &ParseError{Kind: KindDuplicateProperty, Entity: d.Name, Field: f.Name, Message: "field declared twice"}
		}
		seen[f.Name] = true

		p, err := parseField(d.Name, f)
		if err != nil {
			return nil, err
		}

		if p.PrimaryKey {
			if entity.PrimaryKey != "" {
				return nil, &ParseError{
					Kind:    KindDuplicatePrimaryKey,
					Entity:  d.Name,
					Field:   f.Name,
					Message: "primary key already declared on " + entity.PrimaryKey,
				}
			}
			entity.PrimaryKey = p.Name
		}
		entity.Properties = append(entity.Properties, p)
	}

	return entity, nil
}

func parseField(entity string, f FieldDeclaration) (Property, error) {
	for _, a := range f.Annotations {
		switch normalizeAnnotation(a) {
		case AnnotationRequired, AnnotationIndex, AnnotationPrimaryKey:
		default:
			return Property{}, &ParseError{Kind: KindUnknownAnnotation, Entity: entity, Field: f.Name, Token: string(a)}
		}
	}

	p := Property{
		Name:        f.Name,
		Cardinality: catalog.Single,
		Target:      NoTarget,
	}
	fail := func(kind ParseErrorKind, msg string) (Property, error) {
		return Property{}, &ParseError{Kind: kind, Entity: entity, Field: f.Name, Token: f.Type, Message: msg}
	}

	raw := strings.TrimSpace(f.Type)
	if m := listRegex.FindStringSubmatch(raw); m != nil {
		p.Cardinality = catalog.List
		raw = m[1]
		if listRegex.MatchString(raw) {
			return fail(KindNestedList, "lists cannot contain lists")
		}
	}

	required := f.Has(AnnotationRequired)
	tok, known := tokens[raw]
	switch {
	case known && tok.primitive && p.IsList():
		return fail(KindUnknownType, "list elements must be boxed or reference types")
	case known:
		p.Type = tok.typ
		p.Nullable = !tok.primitive && !required
	case raw == "" || unsupported[raw] || !identifierRegex.MatchString(raw):
		return fail(KindUnknownType, "")
	default:
		// Resolved and retagged by the Builder.
		p.Type = catalog.Link
		p.ObjectType = raw
		// Single links always admit an absent value, list elements never do.
		// required is a no-op on both.
		p.Nullable = !p.IsList()
	}

	if f.Has(AnnotationPrimaryKey) {
		p.PrimaryKey = true
		p.Indexed = true
		p.Nullable = false
	}

	if f.Has(AnnotationIndex) {
		info, _ := catalog.Lookup(p.Type)
		switch {
		case p.IsList():
			return fail(KindUnsupportedIndex, "lists cannot be indexed")
		case info.Reference:
			return fail(KindUnsupportedIndex, "links cannot be indexed")
		case !info.Indexable:
			return fail(KindUnsupportedIndex, string(p.Type)+" cannot be indexed")
		}
		p.Indexed = true
	}

	return p, nil
}

// ParseAll parses every declaration. It returns the entities in declaration
// order and one error per failing entity.
func ParseAll(decls []Declaration) ([]Entity, Errors) {
	entities := make([]Entity, 0, len(decls))
	var errs Errors
	for _, d := range decls {
		e, err := Parse(d)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entities = append(entities, *e)
	}
	return entities, errs
}

// Extract parses and builds a declaration set. Parse failures stop the run
// before the Builder sees any entity.
func Extract(decls []Declaration) (*Schema, error) {
	entities, errs := ParseAll(decls)
	if len(errs) > 0 {
		return nil, errs
	}
	return Build(entities)
}
