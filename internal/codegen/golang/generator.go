package golang

import (
	"fmt"
	"go/format"
	"strings"
	"unicode"

	"github.com/okra-platform/modelgen/internal/catalog"
	"github.com/okra-platform/modelgen/internal/codegen/profile"
	"github.com/okra-platform/modelgen/internal/codegen/writer"
	"github.com/okra-platform/modelgen/internal/schema"
)

// DefaultPackage is used when no package name is configured
const DefaultPackage = "models"

const primitiveImport = "go.mongodb.org/mongo-driver/bson/primitive"

// pointer spells a value type whose absence is a nil pointer
func pointer(name, importPath string) catalog.Forms {
	return catalog.Forms{
		Value:           name,
		Optional:        "*" + name,
		Element:         name,
		OptionalElement: "*" + name,
		Import:          importPath,
	}
}

func vocabulary() catalog.Vocabulary {
	return catalog.Vocabulary{
		Forms: map[catalog.ScalarType]catalog.Forms{
			catalog.Bool:       pointer("bool", ""),
			catalog.Int:        pointer("int64", ""),
			catalog.Float:      pointer("float32", ""),
			catalog.Double:     pointer("float64", ""),
			catalog.String:     pointer("string", ""),
			catalog.Date:       pointer("time.Time", "time"),
			catalog.Data:       catalog.Same("[]byte", ""),
			catalog.ObjectID:   pointer("primitive.ObjectID", primitiveImport),
			catalog.Decimal128: pointer("primitive.Decimal128", primitiveImport),
			catalog.Link:       catalog.Same("*%s", ""),
			// Embedded objects are owned by their parent, so list elements are values.
			catalog.EmbeddedLink: {Value: "*%s", Optional: "*%s", Element: "%s", OptionalElement: "%s"},
		},
		List: "[]%s",
	}
}

// DefaultProfile exports fields in PascalCase and projects flags into
// options of the realm struct tag
func DefaultProfile() profile.Profile {
	return profile.Profile{
		Name:           "go",
		AccessorCasing: profile.CasingPascal,
		Annotations: map[profile.Flag]profile.Annotation{
			profile.FlagPrimaryKey: {Syntax: "pk"},
			profile.FlagIndexed:    {Syntax: "index"},
			profile.FlagRequired:   {Syntax: "required"},
		},
		Types:  vocabulary(),
		Indent: "\t",
		Header: []string{"Code generated by modelgen. DO NOT EDIT."},
	}
}

// Generator renders Go structs
type Generator struct {
	packageName string
	profile     profile.Profile
}

// NewGenerator creates a new Go code generator
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
	return ".go"
}

// Profile returns the rendering profile
func (g *Generator) Profile() profile.Profile {
	return g.profile
}

// initialisms keep one case in field names: UserID, not UserId
var initialisms = map[string]bool{
	"API": true, "HTML": true, "HTTP": true, "ID": true, "JSON": true,
	"SQL": true, "URI": true, "URL": true, "UUID": true, "XML": true,
}

// fieldName returns the struct field name of a property
func (g *Generator) fieldName(prop schema.Property) string {
	runes := []rune(g.profile.AccessorName(prop))
	var b strings.Builder
	start := 0
	word := func(end int) {
		w := string(runes[start:end])
		if initialisms[strings.ToUpper(w)] {
			w = strings.ToUpper(w)
		}
		b.WriteString(w)
		start = end
	}
	for i := 1; i < len(runes); i++ {
		if unicode.IsUpper(runes[i]) && !unicode.IsUpper(runes[i-1]) {
			word(i)
		}
	}
	word(len(runes))
	return b.String()
}

func (g *Generator) memberNames(prop schema.Property) []string {
	return []string{g.fieldName(prop)}
}

// Generate renders one entity as a gofmt-formatted Go struct
func (g *Generator) Generate(s *schema.Schema, i int) ([]byte, error) {
	e := s.Entity(i)
	p := g.profile
	if err := p.CheckMembers(e, g.memberNames); err != nil {
		return nil, err
	}

	var imports profile.Imports
	fields := make([]string, 0, len(e.Properties))
	for _, prop := range e.Properties {
		r, err := p.Resolve(s, e, prop)
		if err != nil {
			return nil, err
		}
		imports.Add(r.Imports...)
		fields = append(fields, fmt.Sprintf("%s %s `%s`", g.fieldName(prop), r.Name, g.tag(prop)))
	}

	w := writer.NewWriter(p.Indent)
	w.WriteMultilineComment(p.Header)
	w.BlankLine()
	w.WriteLinef("package %s", g.packageName)
	w.BlankLine()
	writeImports(w, imports.Sorted())

	if e.Embedded {
		w.WriteLinef("// %s is an embedded object model.", e.Name)
	} else {
		w.WriteLinef("// %s is a persisted object model.", e.Name)
	}
	w.WriteBlock("type "+e.Name+" struct {", "}", func() {
		w.WriteLines(fields...)
	})

	out, err := format.Source(w.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", e.Name, err)
	}
	return out, nil
}

// writeImports writes the import block, standard library first
func writeImports(w *writer.Writer, imports []string) {
	if len(imports) == 0 {
		return
	}
	var std, other []string
	for _, imp := range imports {
		if first, _, _ := strings.Cut(imp, "/"); strings.Contains(first, ".") {
			other = append(other, imp)
		} else {
			std = append(std, imp)
		}
	}
	w.WriteLine("import (")
	w.Indent()
	for _, imp := range std {
		w.WriteLinef("%q", imp)
	}
	if len(std) > 0 && len(other) > 0 {
		w.BlankLine()
	}
	for _, imp := range other {
		w.WriteLinef("%q", imp)
	}
	w.Dedent()
	w.WriteLine(")")
	w.BlankLine()
}

// tag builds the struct tag of a field
func (g *Generator) tag(prop schema.Property) string {
	jsonTag := prop.Name
	if prop.Nullable || prop.IsList() {
		jsonTag += ",omitempty"
	}
	realmTag := []string{prop.Name}
	for _, a := range g.profile.PropertyAnnotations(prop) {
		realmTag = append(realmTag, a.Syntax)
	}
	return fmt.Sprintf(`json:"%s" realm:"%s"`, jsonTag, strings.Join(realmTag, ","))
}
