// Package kotlin renders entities as Realm Kotlin model classes.
package kotlin

import (
	"github.com/okra-platform/modelgen/internal/catalog"
	"github.com/okra-platform/modelgen/internal/codegen/profile"
	"github.com/okra-platform/modelgen/internal/codegen/writer"
	"github.com/okra-platform/modelgen/internal/schema"
)

// DefaultPackage is used when no package name is configured
const DefaultPackage = "your.package.name.here"

// forms spells a type whose nullable single form adds "?". List elements
// are spelled without "?" since element nullability is carried by @Required.
func forms(name, zero, importPath string) catalog.Forms {
	return catalog.Forms{
		Value:           name,
		Optional:        name + "?",
		Element:         name,
		OptionalElement: name,
		Zero:            zero,
		Import:          importPath,
	}
}

func vocabulary() catalog.Vocabulary {
	return catalog.Vocabulary{
		Forms: map[catalog.ScalarType]catalog.Forms{
			catalog.Bool:         forms("Boolean", "false", ""),
			catalog.Int:          forms("Long", "0", ""),
			catalog.Float:        forms("Float", "0.0f", ""),
			catalog.Double:       forms("Double", "0.0", ""),
			catalog.String:       forms("String", `""`, ""),
			catalog.Date:         forms("Date", "Date()", "java.util.Date"),
			catalog.Data:         forms("ByteArray", "ByteArray(0)", ""),
			catalog.ObjectID:     forms("ObjectId", "ObjectId()", "org.bson.types.ObjectId"),
			catalog.Decimal128:   forms("Decimal128", "Decimal128(0)", "org.bson.types.Decimal128"),
			catalog.Link:         forms("%s", "%s()", ""),
			catalog.EmbeddedLink: forms("%s", "%s()", ""),
		},
		List:       "RealmList<%s>",
		ListImport: "io.realm.RealmList",
	}
}

// DefaultProfile is the Kotlin profile. Kotlin exposes properties, so there
// are no accessor prefixes.
func DefaultProfile() profile.Profile {
	return profile.Profile{
		Name:           "kotlin",
		AccessorCasing: profile.CasingVerbatim,
		Annotations: map[profile.Flag]profile.Annotation{
			profile.FlagPrimaryKey: {Syntax: "@PrimaryKey", Import: "io.realm.annotations.PrimaryKey"},
			profile.FlagIndexed:    {Syntax: "@Index", Import: "io.realm.annotations.Index"},
			profile.FlagRequired:   {Syntax: "@Required", Import: "io.realm.annotations.Required"},
			profile.FlagEmbedded:   {Syntax: "@RealmClass(embedded = true)", Import: "io.realm.annotations.RealmClass"},
		},
		Types:    vocabulary(),
		BaseType: "RealmObject",
		Indent:   "    ",
		Header: []string{
			"Please note : @LinkingObjects and default values are not represented in the schema and thus will not be part of the generated models",
		},
	}
}

// Generator renders Kotlin model classes
type Generator struct {
	packageName string
	profile     profile.Profile
}

// NewGenerator creates a Kotlin generator
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
	return ".kt"
}

// Profile returns the rendering profile
func (g *Generator) Profile() profile.Profile {
	return g.profile
}

// defaultValue picks the initializer of a property
func defaultValue(prop schema.Property, r catalog.Resolved) string {
	switch {
	case prop.IsList():
		return "RealmList()"
	case prop.Nullable:
		return "null"
	}
	return r.Zero
}

// Generate renders one entity as a Kotlin class
func (g *Generator) Generate(s *schema.Schema, i int) ([]byte, error) {
	e := s.Entity(i)
	p := g.profile

	var imports profile.Imports
	imports.Add("io.realm." + p.BaseType)

	body := writer.NewWriter(p.Indent)
	body.Indent()
	for _, prop := range e.Properties {
		r, err := p.Resolve(s, e, prop)
		if err != nil {
			return nil, err
		}
		imports.Add(r.Imports...)
		for _, a := range p.PropertyAnnotations(prop) {
			body.WriteLine(a.Syntax)
			imports.Add(a.Import)
		}
		body.WriteLinef("var %s: %s = %s", prop.Name, r.Name, defaultValue(prop, r))
	}
	classAnnotations := p.EntityAnnotations(e)
	for _, a := range classAnnotations {
		imports.Add(a.Import)
	}

	w := writer.NewWriter(p.Indent)
	w.WriteMultilineComment(p.Header)
	w.WriteLinef("package %s", g.packageName)
	w.BlankLine()
	for _, imp := range imports.Sorted() {
		w.WriteLinef("import %s", imp)
	}
	w.BlankLine()
	for _, a := range classAnnotations {
		w.WriteLine(a.Syntax)
	}
	w.WriteLinef("open class %s : %s() {", e.Name, p.Base(e))
	w.BlankLine()
	w.WriteRaw(body.String())
	w.WriteLine("}")

	return w.Bytes(), nil
}
