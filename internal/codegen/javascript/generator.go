// Package javascript renders entities as Realm JS object schema literals.
package javascript

import (
	"fmt"

	"github.com/okra-platform/modelgen/internal/catalog"
	"github.com/okra-platform/modelgen/internal/codegen/profile"
	"github.com/okra-platform/modelgen/internal/codegen/writer"
	"github.com/okra-platform/modelgen/internal/schema"
)

// typeName spells a scalar with the Realm JS property type syntax: "int",
// "int?" for nullable values, and "int[]" for lists.
func typeName(t catalog.ScalarType) catalog.Forms {
	name := string(t)
	return catalog.Forms{
		Value:           name,
		Optional:        name + "?",
		Element:         name,
		OptionalElement: name + "?",
	}
}

func vocabulary() catalog.Vocabulary {
	forms := make(map[catalog.ScalarType]catalog.Forms)
	for _, t := range catalog.Scalars() {
		forms[t] = typeName(t)
	}
	// Links name their target; a single link is implicitly optional.
	forms[catalog.Link] = catalog.Same("%s", "")
	forms[catalog.EmbeddedLink] = catalog.Same("%s", "")
	return catalog.Vocabulary{Forms: forms, List: "%s[]"}
}

// DefaultProfile is the Realm JS schema profile
func DefaultProfile() profile.Profile {
	return profile.Profile{
		Name:           "javascript",
		AccessorCasing: profile.CasingVerbatim,
		Types:          vocabulary(),
		Indent:         "  ",
	}
}

// Generator renders CommonJS modules exporting one object schema each
type Generator struct {
	profile profile.Profile
}

// NewGenerator creates a JavaScript generator. The package name is unused.
func NewGenerator(_ string, p profile.Profile) *Generator {
	return &Generator{profile: p}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return g.profile.Name
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".js"
}

// Profile returns the rendering profile
func (g *Generator) Profile() profile.Profile {
	return g.profile
}

// Generate renders one entity as an exported schema literal
func (g *Generator) Generate(s *schema.Schema, i int) ([]byte, error) {
	e := s.Entity(i)
	w := writer.NewWriter(g.profile.Indent)
	w.WriteMultilineComment(g.profile.Header)
	w.WriteLinef("exports.%s = {", e.Name)
	w.Indent()
	if err := WriteSchemaBody(w, s, e, g.profile); err != nil {
		return nil, err
	}
	w.Dedent()
	w.WriteLine("};")
	return w.Bytes(), nil
}

// PropertyLine renders one entry of the properties object, e.g.
// "age: 'int?'" or "name: { type: 'string', indexed: true }"
func PropertyLine(s *schema.Schema, e schema.Entity, prop schema.Property, p profile.Profile) (string, error) {
	r, err := p.Resolve(s, e, prop)
	if err != nil {
		return "", err
	}
	if prop.Indexed && !prop.PrimaryKey {
		return fmt.Sprintf("%s: { type: '%s', indexed: true }", prop.Name, r.Name), nil
	}
	return fmt.Sprintf("%s: '%s'", prop.Name, r.Name), nil
}

// WriteSchemaBody writes the members of an object schema literal at the
// writer's current indentation: name, primaryKey, embedded and properties.
// p must spell types with the Realm JS vocabulary.
func WriteSchemaBody(w *writer.Writer, s *schema.Schema, e schema.Entity, p profile.Profile) error {
	lines := make([]string, 0, len(e.Properties))
	for _, prop := range e.Properties {
		line, err := PropertyLine(s, e, prop, p)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	w.WriteLinef("name: '%s',", e.Name)
	if e.PrimaryKey != "" {
		w.WriteLinef("primaryKey: '%s',", e.PrimaryKey)
	}
	if e.Embedded {
		w.WriteLine("embedded: true,")
	}
	w.WriteBlock("properties: {", "},", func() {
		w.WriteSeparated(lines, ",")
	})
	return nil
}
