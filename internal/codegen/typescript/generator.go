package typescript

import (
	"slices"

	"github.com/okra-platform/modelgen/internal/catalog"
	"github.com/okra-platform/modelgen/internal/codegen/javascript"
	"github.com/okra-platform/modelgen/internal/codegen/profile"
	"github.com/okra-platform/modelgen/internal/codegen/writer"
	"github.com/okra-platform/modelgen/internal/schema"
)

// tsType spells a type whose nullable list elements widen to a union.
// Nullable single values are marked on the property name instead.
func tsType(name string) catalog.Forms {
	return catalog.Forms{
		Value:           name,
		Optional:        name,
		Element:         name,
		OptionalElement: name + " | undefined",
	}
}

func vocabulary() catalog.Vocabulary {
	return catalog.Vocabulary{
		Forms: map[catalog.ScalarType]catalog.Forms{
			catalog.Bool:         tsType("boolean"),
			catalog.Int:          tsType("number"),
			catalog.Float:        tsType("number"),
			catalog.Double:       tsType("number"),
			catalog.String:       tsType("string"),
			catalog.Date:         tsType("Date"),
			catalog.Data:         tsType("ArrayBuffer"),
			catalog.ObjectID:     tsType("Realm.ObjectId"),
			catalog.Decimal128:   tsType("Realm.Decimal128"),
			catalog.Link:         catalog.Same("%s", ""),
			catalog.EmbeddedLink: catalog.Same("%s", ""),
		},
		List: "Array<%s>",
	}
}

// DefaultProfile is the TypeScript type alias profile
func DefaultProfile() profile.Profile {
	return profile.Profile{
		Name:           "typescript",
		AccessorCasing: profile.CasingVerbatim,
		Types:          vocabulary(),
		Indent:         "  ",
	}
}

// Generator renders a TypeScript type alias plus its Realm object schema
type Generator struct {
	profile profile.Profile
	literal profile.Profile
}

// NewGenerator creates a TypeScript generator. The package name is unused;
// every entity gets its own module.
func NewGenerator(_ string, p profile.Profile) *Generator {
	return &Generator{profile: p, literal: javascript.DefaultProfile()}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return g.profile.Name
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".ts"
}

// Profile returns the rendering profile
func (g *Generator) Profile() profile.Profile {
	return g.profile
}

// linkedTypes returns the other entities e links to, sorted
func linkedTypes(s *schema.Schema, e schema.Entity) []string {
	var names []string
	for _, prop := range e.Properties {
		if !prop.IsReference() {
			continue
		}
		target, ok := s.Target(prop)
		if !ok || target.Name == e.Name || slices.Contains(names, target.Name) {
			continue
		}
		names = append(names, target.Name)
	}
	slices.Sort(names)
	return names
}

// Generate renders one entity as a TypeScript module
func (g *Generator) Generate(s *schema.Schema, i int) ([]byte, error) {
	e := s.Entity(i)
	p := g.profile

	w := writer.NewWriter(p.Indent)
	w.WriteMultilineComment(p.Header)
	w.WriteLine(`import * as Realm from "realm";`)
	for _, name := range linkedTypes(s, e) {
		w.WriteLinef(`import { %s } from "./%s";`, name, name)
	}
	w.BlankLine()

	w.WriteLinef("export type %s = {", e.Name)
	w.Indent()
	for _, prop := range e.Properties {
		r, err := p.Resolve(s, e, prop)
		if err != nil {
			return nil, err
		}
		optional := ""
		if prop.Nullable && !prop.IsList() {
			optional = "?"
		}
		w.WriteLinef("%s%s: %s;", prop.Name, optional, r.Name)
	}
	w.Dedent()
	w.WriteLine("};")
	w.BlankLine()

	w.WriteLinef("export const %sSchema: Realm.ObjectSchema = {", e.Name)
	w.Indent()
	if err := javascript.WriteSchemaBody(w, s, e, g.literal); err != nil {
		return nil, err
	}
	w.Dedent()
	w.WriteLine("};")

	return w.Bytes(), nil
}
