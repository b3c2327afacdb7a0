package codegen

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/modelgen/internal/codegen/profile"
	"github.com/okra-platform/modelgen/internal/schema"
)

// mockGenerator is a test generator
type mockGenerator struct {
	lang string
	opts Options
}

func (m *mockGenerator) Generate(s *schema.Schema, i int) ([]byte, error) {
	return []byte("mock " + s.Entity(i).Name), nil
}

func (m *mockGenerator) Language() string {
	return m.lang
}

func (m *mockGenerator) FileExtension() string {
	return ".mock"
}

func (m *mockGenerator) Profile() profile.Profile {
	return profile.Profile{Name: m.lang}
}

func mockFactory(lang string) Factory {
	return func(opts Options) (Generator, error) {
		return &mockGenerator{lang: lang, opts: opts}, nil
	}
}

func TestRegistry_NewRegistry(t *testing.T) {
	// Test: New registry is empty by default
	r := NewRegistry()
	assert.NotNil(t, r)
	assert.Empty(t, r.Languages())

	_, err := r.Get("unknown", Options{})
	assert.Error(t, err)
}

func TestRegistry_Register(t *testing.T) {
	// Test: Register custom generator and pass options through
	r := NewRegistry()
	r.Register("mock", mockFactory("mock"))

	gen, err := r.Get("mock", Options{PackageName: "testpkg"})
	require.NoError(t, err)
	assert.Equal(t, "mock", gen.Language())
	assert.Equal(t, "testpkg", gen.(*mockGenerator).opts.PackageName)
}

func TestRegistry_Alias(t *testing.T) {
	// Test: Aliases resolve to the registered language and are not listed
	r := NewRegistry()
	r.Register("typescript", mockFactory("typescript"))
	r.Alias("ts", "typescript")

	gen, err := r.Get("ts", Options{})
	require.NoError(t, err)
	assert.Equal(t, "typescript", gen.Language())
	assert.Equal(t, []string{"typescript"}, r.Languages())
}

func TestRegistry_UnsupportedLanguage(t *testing.T) {
	// Test: Error for unsupported language
	r := NewRegistry()

	gen, err := r.Get("unknown", Options{})
	assert.Error(t, err)
	assert.Nil(t, gen)
	assert.Contains(t, err.Error(), "unsupported language: unknown")
}

func TestRegistry_FactoryError(t *testing.T) {
	// Test: Factory errors are wrapped with the language
	r := NewRegistry()
	boom := errors.New("boom")
	r.Register("broken", func(Options) (Generator, error) { return nil, boom })

	_, err := r.Get("broken", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "broken")
}

func TestRegistry_Languages(t *testing.T) {
	// Test: Languages are sorted
	r := NewRegistry()
	r.Register("swift", mockFactory("swift"))
	r.Register("go", mockFactory("go"))
	r.Register("java", mockFactory("java"))

	assert.Equal(t, []string{"go", "java", "swift"}, r.Languages())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	// Test: Concurrent registration and lookup is safe
	r := NewRegistry()
	r.Register("mock", mockFactory("mock"))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = r.Get("mock", Options{})
		}()
		go func() {
			defer wg.Done()
			r.Alias("m", "mock")
			_ = r.Languages()
		}()
	}
	wg.Wait()
}

func TestDefaultRegistry(t *testing.T) {
	// Test: Every built-in target is registered and its profile spells every legal triple
	expected := []string{"csharp", "go", "java", "java-legacy", "javascript", "kotlin", "protobuf", "swift", "typescript"}
	assert.Equal(t, expected, DefaultRegistry.Languages())

	for _, lang := range expected {
		t.Run(lang, func(t *testing.T) {
			g, err := DefaultRegistry.Get(lang, Options{})
			require.NoError(t, err)
			assert.Equal(t, lang, g.Language())
			assert.NoError(t, g.Profile().Validate())
		})
	}

	for alias, lang := range map[string]string{"kt": "kotlin", "cs": "csharp", "js": "javascript", "ts": "typescript", "golang": "go", "proto": "protobuf"} {
		g, err := DefaultRegistry.Get(alias, Options{})
		require.NoError(t, err)
		assert.Equal(t, lang, g.Language())
	}
}

func TestDefaultRegistry_Overrides(t *testing.T) {
	// Test: Overrides reach the profile, and invalid ones fail the lookup
	g, err := DefaultRegistry.Get("java", Options{Overrides: profile.Overrides{AccessorCasing: "title", BooleanAccessorPrefix: "get"}})
	require.NoError(t, err)
	assert.Equal(t, profile.CasingTitle, g.Profile().AccessorCasing)
	assert.Equal(t, "get", g.Profile().BooleanAccessorPrefix)

	_, err = DefaultRegistry.Get("java", Options{Overrides: profile.Overrides{AccessorCasing: "shouting"}})
	assert.Error(t, err)

	_, err = DefaultRegistry.Get("java", Options{Overrides: profile.Overrides{BooleanAccessorPrefix: "has"}})
	assert.Error(t, err)
}
