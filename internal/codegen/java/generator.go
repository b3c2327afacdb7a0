// Package java renders entities as Realm Java model classes.
package java

import (
	"github.com/okra-platform/modelgen/internal/catalog"
	"github.com/okra-platform/modelgen/internal/codegen/profile"
	"github.com/okra-platform/modelgen/internal/codegen/writer"
	"github.com/okra-platform/modelgen/internal/schema"
)

// DefaultPackage is used when no package name is configured
const DefaultPackage = "your.package.name.here"

const header = "Please note : @LinkingObjects and default values are not represented in the schema and thus will not be part of the generated models"

func vocabulary() catalog.Vocabulary {
	return catalog.Vocabulary{
		Forms: map[catalog.ScalarType]catalog.Forms{
			catalog.Bool:         {Value: "boolean", Optional: "Boolean", Element: "Boolean", OptionalElement: "Boolean"},
			catalog.Int:          {Value: "long", Optional: "Long", Element: "Long", OptionalElement: "Long"},
			catalog.Float:        {Value: "float", Optional: "Float", Element: "Float", OptionalElement: "Float"},
			catalog.Double:       {Value: "double", Optional: "Double", Element: "Double", OptionalElement: "Double"},
			catalog.String:       catalog.Same("String", ""),
			catalog.Date:         catalog.Same("Date", "java.util.Date"),
			catalog.Data:         catalog.Same("byte[]", ""),
			catalog.ObjectID:     catalog.Same("ObjectId", "org.bson.types.ObjectId"),
			catalog.Decimal128:   catalog.Same("Decimal128", "org.bson.types.Decimal128"),
			catalog.Link:         catalog.Same("%s", ""),
			catalog.EmbeddedLink: catalog.Same("%s", ""),
		},
		List:       "RealmList<%s>",
		ListImport: "io.realm.RealmList",
	}
}

// DefaultProfile builds accessors with PascalCase: getStringRequired
func DefaultProfile() profile.Profile {
	return profile.Profile{
		Name:                  "java",
		AccessorCasing:        profile.CasingPascal,
		GetterPrefix:          "get",
		SetterPrefix:          "set",
		BooleanAccessorPrefix: "is",
		Annotations: map[profile.Flag]profile.Annotation{
			profile.FlagPrimaryKey: {Syntax: "@PrimaryKey", Import: "io.realm.annotations.PrimaryKey"},
			profile.FlagIndexed:    {Syntax: "@Index", Import: "io.realm.annotations.Index"},
			profile.FlagRequired:   {Syntax: "@Required", Import: "io.realm.annotations.Required"},
			profile.FlagEmbedded:   {Syntax: "@RealmClass(embedded = true)", Import: "io.realm.annotations.RealmClass"},
		},
		Types:    vocabulary(),
		BaseType: "RealmObject",
		Indent:   "    ",
		Header:   []string{header},
	}
}

// LegacyProfile reproduces older exports, which title-cased accessor names:
// getStringrequired
func LegacyProfile() profile.Profile {
	p := DefaultProfile()
	p.Name = "java-legacy"
	p.AccessorCasing = profile.CasingTitle
	return p
}

// Generator renders Java model classes
type Generator struct {
	packageName string
	profile     profile.Profile
}

// NewGenerator creates a Java generator
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
	return ".java"
}

// Profile returns the rendering profile
func (g *Generator) Profile() profile.Profile {
	return g.profile
}

type field struct {
	prop        schema.Property
	typ         string
	annotations []string
}

// Generate renders one entity as a Java class
func (g *Generator) Generate(s *schema.Schema, i int) ([]byte, error) {
	e := s.Entity(i)
	p := g.profile
	if err := p.CheckMembers(e, nil); err != nil {
		return nil, err
	}

	var imports profile.Imports
	imports.Add("io.realm." + p.BaseType)

	fields := make([]field, 0, len(e.Properties))
	for _, prop := range e.Properties {
		r, err := p.Resolve(s, e, prop)
		if err != nil {
			return nil, err
		}
		imports.Add(r.Imports...)

		f := field{prop: prop, typ: r.Name}
		for _, a := range p.PropertyAnnotations(prop) {
			f.annotations = append(f.annotations, a.Syntax)
			imports.Add(a.Import)
		}
		fields = append(fields, f)
	}
	classAnnotations := p.EntityAnnotations(e)
	for _, a := range classAnnotations {
		imports.Add(a.Import)
	}

	w := writer.NewWriter(p.Indent)
	w.WriteMultilineComment(p.Header)
	w.WriteLinef("package %s;", g.packageName)
	w.BlankLine()
	for _, imp := range imports.Sorted() {
		w.WriteLinef("import %s;", imp)
	}
	w.BlankLine()

	for _, a := range classAnnotations {
		w.WriteLine(a.Syntax)
	}
	w.WriteBlock("public class "+e.Name+" extends "+p.Base(e)+" {", "}", func() {
		for _, f := range fields {
			w.WriteLines(f.annotations...)
			w.WriteLinef("private %s %s;", f.typ, f.prop.Name)
		}
		for _, f := range fields {
			name := f.prop.Name
			w.BlankLine()
			w.WriteLinef("public %s %s() { return %s; }", f.typ, p.Getter(f.prop), name)
			w.BlankLine()
			w.WriteLinef("public void %s(%s %s) { this.%s = %s; }", p.Setter(f.prop), f.typ, name, name, name)
		}
	})

	return w.Bytes(), nil
}
