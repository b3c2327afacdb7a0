// Package loader reads declaration files from disk and hands the core
// in-memory declarations.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar"

	"github.com/okra-platform/modelgen/internal/schema"
)

// Kind is the syntax of a declaration file
type Kind string

const (
	KindDocument Kind = "document" // YAML or JSON declaration set
	KindSDL      Kind = "sdl"      // GraphQL-style model types
)

// KindOf picks the syntax of a file from its extension
func KindOf(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return KindDocument, nil
	case ".gql", ".graphql", ".graphqls":
		return KindSDL, nil
	}
	return "", fmt.Errorf("unsupported declaration file %s", path)
}

// Decode parses the content of one declaration file
func Decode(kind Kind, data []byte) ([]schema.Declaration, error) {
	switch kind {
	case KindDocument:
		set, err := schema.DecodeDeclarations(data)
		if err != nil {
			return nil, err
		}
		return set.Entities, nil
	case KindSDL:
		return schema.ParseSDL(string(data))
	}
	return nil, fmt.Errorf("unknown declaration kind %q", kind)
}

// LoadFile reads one declaration file
func LoadFile(path string) ([]schema.Declaration, error) {
	kind, err := KindOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	decls, err := Decode(kind, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return decls, nil
}

// Load reads every file in order and concatenates their declarations.
// Declaration order across files is the order of paths.
func Load(paths []string) ([]schema.Declaration, error) {
	var all []schema.Declaration
	for _, path := range paths {
		decls, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, decls...)
	}
	return all, nil
}

// Expand resolves glob patterns relative to root. Patterns may use **.
// Each pattern's matches are sorted, and a file matched twice is kept at
// its first position.
func Expand(root string, patterns []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(root, pattern)
		}
		matches, err := doublestar.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		slices.Sort(matches)
		for _, m := range matches {
			if info, err := os.Stat(m); err != nil || info.IsDir() {
				continue
			}
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	return paths, nil
}
