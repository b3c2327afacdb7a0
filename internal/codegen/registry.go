package codegen

import (
	"fmt"
	"slices"
	"sync"
)

// Factory builds a generator from options
type Factory func(opts Options) (Generator, error)

// Registry manages available code generators
type Registry struct {
	mu         sync.RWMutex
	generators map[string]Factory
	aliases    map[string]string
}

// NewRegistry creates a new generator registry
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Factory),
		aliases:    make(map[string]string),
	}
}

// Register adds a new generator factory to the registry
func (r *Registry) Register(language string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[language] = factory
}

// Alias makes alias resolve to an already registered language
func (r *Registry) Alias(alias, language string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = language
}

// Get returns a generator for the specified language
func (r *Registry) Get(language string, opts Options) (Generator, error) {
	r.mu.RLock()
	if target, ok := r.aliases[language]; ok {
		language = target
	}
	factory, exists := r.generators[language]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported language: %s", language)
	}
	g, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to configure %s generator: %w", language, err)
	}
	return g, nil
}

// Languages returns the registered languages in sorted order, without aliases
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	languages := make([]string, 0, len(r.generators))
	for lang := range r.generators {
		languages = append(languages, lang)
	}
	slices.Sort(languages)
	return languages
}
