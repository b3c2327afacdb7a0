package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/okra-platform/modelgen/internal/config"
	"github.com/okra-platform/modelgen/internal/watch"
)

const changeOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watch generates once, then regenerates whenever a declaration or the
// config file changes. Failures are reported and watching continues.
func (c *Controller) Watch(ctx context.Context) error {
	p, err := c.loadProject()
	if err != nil {
		return err
	}
	logger := c.logger()
	out := c.out()

	regenerate := func() {
		if _, err := c.generate(ctx, p); err != nil {
			if err := report(out, err); !errors.Is(err, ErrInvalidModels) {
				fmt.Fprintf(out, "%s %v\n", red("✗"), err)
			}
		}
	}
	regenerate()

	debouncer := watch.NewDebouncer(time.Duration(p.config.Watch.DebounceMs)*time.Millisecond, func(paths []string) {
		logger.Debug().Strs("paths", paths).Msg("changes detected")
		if slices.ContainsFunc(paths, isConfigFile) {
			reloaded, err := c.loadProject()
			if err != nil {
				fmt.Fprintf(out, "%s config not reloaded: %v\n", red("✗"), err)
				return
			}
			p = reloaded
			logger.Info().Msg("config reloaded")
		}
		regenerate()
	})
	defer debouncer.Stop()

	fw, err := watch.NewFileWatcher(p.root, p.config.Watch.Patterns, p.config.Watch.Exclude, func(path string, op fsnotify.Op) {
		if op&changeOps != 0 {
			debouncer.Trigger(path)
		}
	}, watch.WithLogger(logger))
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.AddDirectory(p.root); err != nil {
		return err
	}
	fmt.Fprintf(out, "watching %s for changes\n", p.root)

	if err := fw.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func isConfigFile(path string) bool {
	return slices.Contains(config.FileNames, filepath.Base(path))
}
