// Package csharp renders entities as Realm .NET model classes.
package csharp

import (
	"slices"
	"strings"

	"github.com/okra-platform/modelgen/internal/catalog"
	"github.com/okra-platform/modelgen/internal/codegen/profile"
	"github.com/okra-platform/modelgen/internal/codegen/writer"
	"github.com/okra-platform/modelgen/internal/schema"
)

// DefaultNamespace is used when no namespace is configured
const DefaultNamespace = "MyProject.Models"

func valueType(name, importPath string) catalog.Forms {
	return catalog.Forms{
		Value:           name,
		Optional:        name + "?",
		Element:         name,
		OptionalElement: name + "?",
		Import:          importPath,
	}
}

func vocabulary() catalog.Vocabulary {
	return catalog.Vocabulary{
		Forms: map[catalog.ScalarType]catalog.Forms{
			catalog.Bool:         valueType("bool", ""),
			catalog.Int:          valueType("long", ""),
			catalog.Float:        valueType("float", ""),
			catalog.Double:       valueType("double", ""),
			catalog.String:       catalog.Same("string", ""),
			catalog.Date:         valueType("DateTimeOffset", ""),
			catalog.Data:         catalog.Same("byte[]", ""),
			catalog.ObjectID:     valueType("ObjectId", "MongoDB.Bson"),
			catalog.Decimal128:   valueType("Decimal128", "MongoDB.Bson"),
			catalog.Link:         catalog.Same("%s", ""),
			catalog.EmbeddedLink: catalog.Same("%s", ""),
		},
		List:       "IList<%s>",
		ListImport: "System.Collections.Generic",
	}
}

// DefaultProfile names properties in PascalCase and maps them back to the
// stored name with [MapTo] when the two differ
func DefaultProfile() profile.Profile {
	return profile.Profile{
		Name:           "csharp",
		AccessorCasing: profile.CasingPascal,
		Annotations: map[profile.Flag]profile.Annotation{
			profile.FlagPrimaryKey: {Syntax: "[PrimaryKey]"},
			profile.FlagIndexed:    {Syntax: "[Indexed]"},
			profile.FlagRequired:   {Syntax: "[Required]"},
		},
		Types:            vocabulary(),
		BaseType:         "RealmObject",
		EmbeddedBaseType: "EmbeddedObject",
		Indent:           "    ",
		Header: []string{
			"Please note : [Backlink] properties and default values are not represented",
			"in the schema and thus will not be part of the generated models",
		},
	}
}

// Generator renders C# model classes
type Generator struct {
	namespace string
	profile   profile.Profile
}

// NewGenerator creates a C# generator
func NewGenerator(namespace string, p profile.Profile) *Generator {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Generator{namespace: namespace, profile: p}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return g.profile.Name
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".cs"
}

// Profile returns the rendering profile
func (g *Generator) Profile() profile.Profile {
	return g.profile
}

// sortUsings puts System namespaces first, each group in lexical order
func sortUsings(usings []string) {
	system := func(u string) bool {
		return u == "System" || strings.HasPrefix(u, "System.")
	}
	slices.SortFunc(usings, func(a, b string) int {
		if system(a) != system(b) {
			if system(a) {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})
}

// Generate renders one entity as a C# class
func (g *Generator) Generate(s *schema.Schema, i int) ([]byte, error) {
	e := s.Entity(i)
	p := g.profile
	if err := p.CheckMembers(e, nil); err != nil {
		return nil, err
	}

	var imports profile.Imports
	imports.Add("System", "Realms")

	body := writer.NewWriter(p.Indent)
	body.Indent()
	body.Indent()
	for _, prop := range e.Properties {
		r, err := p.Resolve(s, e, prop)
		if err != nil {
			return nil, err
		}
		imports.Add(r.Imports...)

		body.BlankLine()
		for _, a := range p.PropertyAnnotations(prop) {
			body.WriteLine(a.Syntax)
		}
		name := p.AccessorName(prop)
		if name != prop.Name {
			body.WriteLinef("[MapTo(%q)]", prop.Name)
		}
		accessors := "{ get; set; }"
		if prop.IsList() {
			accessors = "{ get; }"
		}
		body.WriteLinef("public %s %s %s", r.Name, name, accessors)
	}

	usings := imports.Sorted()
	sortUsings(usings)

	w := writer.NewWriter(p.Indent)
	w.WriteMultilineComment(p.Header)
	w.BlankLine()
	for _, u := range usings {
		w.WriteLinef("using %s;", u)
	}
	w.BlankLine()
	w.WriteLinef("namespace %s", g.namespace)
	w.WriteLine("{")
	w.Indent()
	w.WriteLinef("public class %s : %s", e.Name, p.Base(e))
	w.WriteLine("{")
	w.WriteRaw(body.String())
	w.WriteLine("}")
	w.Dedent()
	w.WriteLine("}")

	return w.Bytes(), nil
}
