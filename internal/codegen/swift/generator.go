// Package swift renders entities as RealmSwift model classes using the
// @Persisted property wrapper.
package swift

import (
	"github.com/okra-platform/modelgen/internal/catalog"
	"github.com/okra-platform/modelgen/internal/codegen/profile"
	"github.com/okra-platform/modelgen/internal/codegen/writer"
	"github.com/okra-platform/modelgen/internal/schema"
)

func optional(name string) catalog.Forms {
	return catalog.Forms{
		Value:           name,
		Optional:        name + "?",
		Element:         name,
		OptionalElement: name + "?",
	}
}

func vocabulary() catalog.Vocabulary {
	// A single object link is always an optional in Swift.
	link := catalog.Forms{Value: "%s?", Optional: "%s?", Element: "%s", OptionalElement: "%s"}
	return catalog.Vocabulary{
		Forms: map[catalog.ScalarType]catalog.Forms{
			catalog.Bool:         optional("Bool"),
			catalog.Int:          optional("Int"),
			catalog.Float:        optional("Float"),
			catalog.Double:       optional("Double"),
			catalog.String:       optional("String"),
			catalog.Date:         optional("Date"),
			catalog.Data:         optional("Data"),
			catalog.ObjectID:     optional("ObjectId"),
			catalog.Decimal128:   optional("Decimal128"),
			catalog.Link:         link,
			catalog.EmbeddedLink: link,
		},
		List: "List<%s>",
	}
}

// DefaultProfile is the Swift profile. Swift spells nullability in the type,
// so no property ever needs a required marker.
func DefaultProfile() profile.Profile {
	return profile.Profile{
		Name:           "swift",
		AccessorCasing: profile.CasingVerbatim,
		Annotations: map[profile.Flag]profile.Annotation{
			profile.FlagPrimaryKey: {Syntax: "@Persisted(primaryKey: true)"},
			profile.FlagIndexed:    {Syntax: "@Persisted(indexed: true)"},
		},
		Types:            vocabulary(),
		BaseType:         "Object",
		EmbeddedBaseType: "EmbeddedObject",
		Indent:           "    ",
	}
}

// Generator renders Swift model classes
type Generator struct {
	profile profile.Profile
}

// NewGenerator creates a Swift generator. Swift has no package clause, so
// the package name is ignored.
func NewGenerator(_ string, p profile.Profile) *Generator {
	return &Generator{profile: p}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return g.profile.Name
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".swift"
}

// Profile returns the rendering profile
func (g *Generator) Profile() profile.Profile {
	return g.profile
}

// wrapper picks the property wrapper of a property. Primary key wins over
// indexed, and the plain wrapper is used otherwise.
func (g *Generator) wrapper(prop schema.Property) string {
	if as := g.profile.PropertyAnnotations(prop); len(as) > 0 {
		return as[0].Syntax
	}
	return "@Persisted"
}

// Generate renders one entity as a Swift class
func (g *Generator) Generate(s *schema.Schema, i int) ([]byte, error) {
	e := s.Entity(i)
	p := g.profile

	w := writer.NewWriter(p.Indent)
	w.WriteMultilineComment(p.Header)
	w.WriteLine("import Foundation")
	w.WriteLine("import RealmSwift")
	w.BlankLine()

	var err error
	w.WriteBlock("class "+e.Name+": "+p.Base(e)+" {", "}", func() {
		for _, prop := range e.Properties {
			var r catalog.Resolved
			r, err = p.Resolve(s, e, prop)
			if err != nil {
				return
			}
			w.WriteLinef("%s var %s: %s", g.wrapper(prop), prop.Name, r.Name)
		}
	})
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
