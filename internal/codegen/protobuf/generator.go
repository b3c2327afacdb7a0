package protobuf

import (
	"fmt"

	"github.com/okra-platform/modelgen/internal/catalog"
	"github.com/okra-platform/modelgen/internal/codegen/profile"
	"github.com/okra-platform/modelgen/internal/codegen/writer"
	"github.com/okra-platform/modelgen/internal/schema"
)

// DefaultPackage is used when no package name is configured
const DefaultPackage = "models"

const timestampImport = "google/protobuf/timestamp.proto"

// vocabulary spells every shape the same way. Presence of single values is
// carried by the optional label, and repeated fields cannot hold absent
// elements.
func vocabulary() catalog.Vocabulary {
	return catalog.Vocabulary{
		Forms: map[catalog.ScalarType]catalog.Forms{
			catalog.Bool:         catalog.Same("bool", ""),
			catalog.Int:          catalog.Same("int64", ""),
			catalog.Float:        catalog.Same("float", ""),
			catalog.Double:       catalog.Same("double", ""),
			catalog.String:       catalog.Same("string", ""),
			catalog.Date:         catalog.Same("google.protobuf.Timestamp", timestampImport),
			catalog.Data:         catalog.Same("bytes", ""),
			catalog.ObjectID:     catalog.Same("string", ""),
			catalog.Decimal128:   catalog.Same("string", ""),
			catalog.Link:         catalog.Same("%s", ""),
			catalog.EmbeddedLink: catalog.Same("%s", ""),
		},
		List: "%s",
	}
}

// DefaultProfile names fields in snake_case
func DefaultProfile() profile.Profile {
	return profile.Profile{
		Name:           "protobuf",
		AccessorCasing: profile.CasingSnake,
		Types:          vocabulary(),
		Indent:         "  ",
		Header: []string{
			"Nullable list elements are not represented in proto3 and thus are not part of the generated messages",
		},
	}
}

// Generator generates protobuf message definitions
type Generator struct {
	packageName string
	profile     profile.Profile
}

// NewGenerator creates a new protobuf generator
func NewGenerator(packageName string, p profile.Profile) *Generator {
	if packageName == "" {
		packageName = DefaultPackage
	}
	return &Generator{packageName: packageName, profile: p}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return g.profile.Name
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".proto"
}

// Profile returns the rendering profile
func (g *Generator) Profile() profile.Profile {
	return g.profile
}

// label returns the field label of a property, if any
func label(prop schema.Property) string {
	switch {
	case prop.IsList():
		return "repeated "
	case prop.Nullable && !prop.IsReference():
		// Message fields always track presence.
		return "optional "
	}
	return ""
}

// Generate renders one entity as a proto3 message. Field numbers follow
// declaration order.
func (g *Generator) Generate(s *schema.Schema, i int) ([]byte, error) {
	e := s.Entity(i)
	p := g.profile
	if err := p.CheckMembers(e, nil); err != nil {
		return nil, err
	}

	var imports profile.Imports
	fields := make([]string, 0, len(e.Properties))
	for n, prop := range e.Properties {
		r, err := p.Resolve(s, e, prop)
		if err != nil {
			return nil, err
		}
		imports.Add(r.Imports...)
		if prop.IsReference() {
			if target, ok := s.Target(prop); ok && target.Name != e.Name {
				imports.Add(target.Name + ".proto")
			}
		}

		name := p.AccessorName(prop)
		field := fmt.Sprintf("%s%s %s = %d", label(prop), r.Name, name, n+1)
		if name != prop.Name {
			field += fmt.Sprintf(" [json_name = %q]", prop.Name)
		}
		fields = append(fields, field+";")
	}

	w := writer.NewWriter(p.Indent)
	w.WriteMultilineComment(p.Header)
	w.WriteLine(`syntax = "proto3";`)
	w.BlankLine()
	w.WriteLinef("package %s;", g.packageName)
	w.BlankLine()
	if imports.Len() > 0 {
		for _, imp := range imports.Sorted() {
			w.WriteLinef("import %q;", imp)
		}
		w.BlankLine()
	}
	w.WriteBlock("message "+e.Name+" {", "}", func() {
		w.WriteLines(fields...)
	})

	return w.Bytes(), nil
}
