package codegen

import (
	"fmt"

	"github.com/okra-platform/modelgen/internal/codegen/profile"
	"github.com/okra-platform/modelgen/internal/schema"
)

// Generator is the interface that all language-specific model renderers
// must implement
type Generator interface {
	// Generate renders the entity at index entity of the schema
	Generate(s *schema.Schema, entity int) ([]byte, error)

	// Language returns the name of the target language (e.g., "java", "swift")
	Language() string

	// FileExtension returns the file extension for generated files (e.g., ".java")
	FileExtension() string

	// Profile returns the naming and type profile the generator renders with
	Profile() profile.Profile
}

// Options contains common options for code generation
type Options struct {
	// PackageName is the package or namespace of the generated code
	PackageName string

	// Overrides adjust the built-in profile of the language
	Overrides profile.Overrides
}

// Unit is the generated source of one entity
type Unit struct {
	Entity   string
	Filename string
	Content  []byte
}

// Filename returns the file name of an entity's unit
func Filename(g Generator, entity string) string {
	return entity + g.FileExtension()
}

// RenderEntity renders one entity into a unit
func RenderEntity(s *schema.Schema, g Generator, i int) (Unit, error) {
	e := s.Entity(i)
	content, err := g.Generate(s, i)
	if err != nil {
		return Unit{}, fmt.Errorf("%s: %w", g.Language(), err)
	}
	return Unit{Entity: e.Name, Filename: Filename(g, e.Name), Content: content}, nil
}

// Render renders every entity in declaration order. The first failure
// aborts the call.
func Render(s *schema.Schema, g Generator) ([]Unit, error) {
	units := make([]Unit, 0, s.Len())
	for i := range s.Len() {
		u, err := RenderEntity(s, g, i)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}
