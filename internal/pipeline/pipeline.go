// Package pipeline runs parse, build and render over a worker pool. Results
// are stored by declaration index, so output order never depends on which
// task finishes first.
package pipeline

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/okra-platform/modelgen/internal/codegen"
	"github.com/okra-platform/modelgen/internal/schema"
)

// Pipeline turns declarations into rendered units
type Pipeline struct {
	workers int
	logger  zerolog.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithWorkers limits the number of concurrent tasks. Values below one
// select the number of CPUs.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a pipeline
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		workers: runtime.NumCPU(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Workers returns the concurrency limit
func (p *Pipeline) Workers() int {
	return p.workers
}

// Output is the rendered units of one target
type Output struct {
	Language string
	Units    []codegen.Unit
}

// Extract parses every declaration and builds the schema. If any entity
// fails to parse, every parse error is returned in declaration order and
// nothing is built.
func (p *Pipeline) Extract(ctx context.Context, decls []schema.Declaration) (*schema.Schema, error) {
	start := time.Now()
	entities := make([]schema.Entity, len(decls))
	failures := make([]error, len(decls))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.workers)
	for i, d := range decls {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			e, err := schema.Parse(d)
			if err != nil {
				failures[i] = err
				return nil
			}
			entities[i] = *e
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if errs := collect(failures); len(errs) > 0 {
		p.logger.Debug().Int("entities", len(decls)).Int("errors", len(errs)).Msg("parse failed")
		return nil, errs
	}
	p.logger.Debug().Int("entities", len(decls)).Dur("elapsed", time.Since(start)).Msg("parsed declarations")

	s, err := schema.Build(entities)
	if err != nil {
		return nil, err
	}
	p.logger.Debug().Strs("entities", s.Names()).Msg("built schema")
	return s, nil
}

// Render renders every entity of the schema for every generator. Each
// (generator, entity) pair is one task. All failing tasks are reported;
// on error no output is returned.
func (p *Pipeline) Render(ctx context.Context, s *schema.Schema, generators []codegen.Generator) ([]Output, error) {
	start := time.Now()
	n := s.Len()
	units := make([][]codegen.Unit, len(generators))
	failures := make([]error, len(generators)*n)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.workers)
	for gi, g := range generators {
		units[gi] = make([]codegen.Unit, n)
		for i := range n {
			eg.Go(func() error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				u, err := codegen.RenderEntity(s, g, i)
				if err != nil {
					failures[gi*n+i] = err
					return nil
				}
				units[gi][i] = u
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if errs := collect(failures); len(errs) > 0 {
		return nil, errs
	}

	out := make([]Output, len(generators))
	for gi, g := range generators {
		out[gi] = Output{Language: g.Language(), Units: units[gi]}
		p.logger.Debug().Str("language", g.Language()).Int("units", n).Msg("rendered target")
	}
	p.logger.Debug().Int("targets", len(generators)).Dur("elapsed", time.Since(start)).Msg("render complete")
	return out, nil
}

// Run extracts the schema and renders it
func (p *Pipeline) Run(ctx context.Context, decls []schema.Declaration, generators []codegen.Generator) (*schema.Schema, []Output, error) {
	s, err := p.Extract(ctx, decls)
	if err != nil {
		return nil, nil, err
	}
	out, err := p.Render(ctx, s, generators)
	if err != nil {
		return s, nil, err
	}
	return s, out, nil
}

func collect(failures []error) schema.Errors {
	var errs schema.Errors
	for _, err := range failures {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
