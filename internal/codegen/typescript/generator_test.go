package typescript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/modelgen/internal/schema"
)

func TestGenerator_LinkedTypes(t *testing.T) {
	// Test: Linked entities are imported once, sorted, excluding the entity itself
	decls, err := schema.ParseSDL(`
type Person {
  dog: Dog
  cats: [Cat]
  otherDog: Dog
  parent: Person
}

type Dog {
  name: String
}

type Cat {
  tags: [String]
}
`)
	require.NoError(t, err)
	s, err := schema.Extract(decls)
	require.NoError(t, err)

	assert.Equal(t, []string{"Cat", "Dog"}, linkedTypes(s, s.Entity(0)))
	assert.Empty(t, linkedTypes(s, s.Entity(1)))

	code, err := NewGenerator("", DefaultProfile()).Generate(s, 0)
	require.NoError(t, err)
	result := string(code)
	assert.Contains(t, result, "import * as Realm from \"realm\";\nimport { Cat } from \"./Cat\";\nimport { Dog } from \"./Dog\";\n\n")
	assert.Contains(t, result, "  cats: Array<Cat>;")
	assert.Contains(t, result, "  parent?: Person;")
	assert.Contains(t, result, "    cats: 'Cat[]',")

	code, err = NewGenerator("", DefaultProfile()).Generate(s, 2)
	require.NoError(t, err)
	assert.Contains(t, string(code), "  tags: Array<string | undefined>;")
	assert.Contains(t, string(code), "    tags: 'string?[]'\n")
}
