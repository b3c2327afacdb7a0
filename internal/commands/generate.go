package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okra-platform/modelgen/internal/config"
	"github.com/okra-platform/modelgen/internal/schema"
)

// outputFile is one file a run produces
type outputFile struct {
	Path    string
	Content []byte
}

type generateResult struct {
	Files     []outputFile
	Written   []string
	Unchanged []string
}

// Generate renders every configured target and writes the files
func (c *Controller) Generate(ctx context.Context) error {
	p, err := c.loadProject()
	if err != nil {
		return err
	}
	_, err = c.generate(ctx, p)
	return report(c.out(), err)
}

// generate runs the whole project. Nothing is written unless every unit of
// every target rendered.
func (c *Controller) generate(ctx context.Context, p *project) (*generateResult, error) {
	logger := c.logger()
	generators, err := p.generators()
	if err != nil {
		return nil, err
	}
	s, err := p.extract(ctx, logger)
	if err != nil {
		return nil, err
	}
	outputs, err := p.pipeline(logger).Render(ctx, s, generators)
	if err != nil {
		return nil, err
	}

	var files []outputFile
	for gi, o := range outputs {
		dir := config.Resolve(p.root, p.config.Targets[gi].Output)
		for _, u := range o.Units {
			files = append(files, outputFile{Path: filepath.Join(dir, u.Filename), Content: u.Content})
		}
	}
	if p.config.Schema.Path != "" {
		doc, err := encodeDocument(s, p.config.Schema.Format)
		if err != nil {
			return nil, err
		}
		files = append(files, outputFile{Path: config.Resolve(p.root, p.config.Schema.Path), Content: doc})
	}

	result := &generateResult{Files: files}
	out := c.out()
	if c.flags().DryRun {
		for _, f := range files {
			fmt.Fprintf(out, "%s %s (%d bytes)\n", yellow("would write"), relative(p.root, f.Path), len(f.Content))
		}
		return result, nil
	}

	for _, f := range files {
		written, err := writeIfChanged(f)
		if err != nil {
			return nil, err
		}
		if written {
			result.Written = append(result.Written, f.Path)
		} else {
			result.Unchanged = append(result.Unchanged, f.Path)
		}
	}
	logger.Info().Int("written", len(result.Written)).Int("unchanged", len(result.Unchanged)).Msg("generation complete")
	fmt.Fprintf(out, "%s generated %s for %s (%d written, %d unchanged)\n",
		green("✓"), plural(s.Len(), "entity", "entities"), plural(len(outputs), "target"), len(result.Written), len(result.Unchanged))
	return result, nil
}

func encodeDocument(s *schema.Schema, format string) ([]byte, error) {
	f, err := schema.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return schema.NewDocument(s).Encode(f)
}

// writeIfChanged writes f unless the file already holds the same content
func writeIfChanged(f outputFile) (bool, error) {
	if existing, err := os.ReadFile(f.Path); err == nil && bytes.Equal(existing, f.Content) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(f.Path, f.Content, 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", f.Path, err)
	}
	return true, nil
}

func relative(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
