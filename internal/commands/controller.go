// Package commands contains the CLI commands for the application
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/okra-platform/modelgen/internal/codegen"
	"github.com/okra-platform/modelgen/internal/config"
	"github.com/okra-platform/modelgen/internal/loader"
	"github.com/okra-platform/modelgen/internal/pipeline"
	"github.com/okra-platform/modelgen/internal/schema"
)

// Flags are the command line values shared by the commands. Zero values
// keep what the config file says.
type Flags struct {
	LogLevel string
	Config   string
	Output   string
	Targets  []string
	Package  string
	Format   string
	Workers  int
	DryRun   bool
}

// Controller runs the CLI commands
type Controller struct {
	Flags *Flags

	// Out receives command output; nil means stdout
	Out io.Writer
	// Dir is the directory the config search starts in; empty means the
	// working directory
	Dir string
}

func (c *Controller) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Controller) flags() *Flags {
	if c.Flags == nil {
		return &Flags{}
	}
	return c.Flags
}

func (c *Controller) logger() zerolog.Logger {
	return log.Logger
}

// project is a loaded config and the directory its relative paths start from
type project struct {
	config *config.Config
	root   string
}

// loadProject reads the config named by the flags, or searches for one.
// Without a config file the defaults apply in the start directory.
func (c *Controller) loadProject() (*project, error) {
	f := c.flags()
	start := c.Dir
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		start = wd
	}

	var (
		cfg  *config.Config
		root string
		err  error
	)
	if f.Config != "" {
		path := config.Resolve(start, f.Config)
		cfg, err = config.LoadConfigFromPath(path)
		root = filepath.Dir(path)
	} else {
		cfg, root, err = config.LoadConfigFromDir(start)
		if errors.Is(err, config.ErrNotFound) {
			logger := c.logger()
			logger.Debug().Str("dir", start).Msg("no config file, using defaults")
			cfg, root, err = config.Default(), start, nil
		}
	}
	if err != nil {
		return nil, err
	}

	if f.Output != "" {
		cfg.Output = f.Output
		for i := range cfg.Targets {
			cfg.Targets[i].Output = filepath.Join(f.Output, cfg.Targets[i].Language)
		}
	}
	if len(f.Targets) > 0 {
		cfg.SetTargets(f.Targets, f.Package)
	} else if f.Package != "" {
		for i := range cfg.Targets {
			cfg.Targets[i].Package = f.Package
		}
	}
	if f.Workers > 0 {
		cfg.Workers = f.Workers
	}
	if f.Format != "" {
		cfg.Schema.Format = f.Format
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &project{config: cfg, root: root}, nil
}

func (p *project) pipeline(logger zerolog.Logger) *pipeline.Pipeline {
	return pipeline.New(pipeline.WithWorkers(p.config.Workers), pipeline.WithLogger(logger))
}

// declarations expands the declaration patterns and loads every file
func (p *project) declarations() ([]schema.Declaration, []string, error) {
	paths, err := loader.Expand(p.root, p.config.Declarations)
	if err != nil {
		return nil, nil, err
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no declaration files match %v in %s", p.config.Declarations, p.root)
	}
	decls, err := loader.Load(paths)
	if err != nil {
		return nil, nil, err
	}
	return decls, paths, nil
}

// extract loads the declarations and builds the schema
func (p *project) extract(ctx context.Context, logger zerolog.Logger) (*schema.Schema, error) {
	decls, paths, err := p.declarations()
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("files", len(paths)).Int("declarations", len(decls)).Msg("loaded declarations")
	return p.pipeline(logger).Extract(ctx, decls)
}

// generators creates a generator per configured target
func (p *project) generators() ([]codegen.Generator, error) {
	if len(p.config.Targets) == 0 {
		return nil, fmt.Errorf("no targets configured; add targets to the config file or pass --target")
	}
	generators := make([]codegen.Generator, 0, len(p.config.Targets))
	for _, t := range p.config.Targets {
		g, err := codegen.DefaultRegistry.Get(t.Language, codegen.Options{
			PackageName: t.Package,
			Overrides:   t.Overrides(),
		})
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", t.Language, err)
		}
		generators = append(generators, g)
	}
	return generators, nil
}
