package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/okra-platform/modelgen/internal/commands"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	ctrl := &commands.Controller{
		Flags: &commands.Flags{},
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	projectFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to the config file (default: search modelgen.yaml upwards)",
			Sources: cli.EnvVars("MODELGEN_CONFIG"),
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "number of concurrent parse and render tasks (default: number of CPUs)",
		},
	}
	targetFlags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "target",
			Aliases: []string{"t"},
			Usage:   "target language, repeatable; replaces the configured targets",
		},
		&cli.StringFlag{
			Name:  "package",
			Usage: "package or namespace of the generated code",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output directory; each target writes into a subdirectory",
		},
	}

	// bind copies the command line values into the controller flags
	bind := func(c *cli.Command) {
		ctrl.Flags.Config = c.String("config")
		ctrl.Flags.Workers = int(c.Int("workers"))
		ctrl.Flags.Targets = c.StringSlice("target")
		ctrl.Flags.Package = c.String("package")
		ctrl.Flags.Output = c.String("output")
		ctrl.Flags.Format = c.String("format")
		ctrl.Flags.DryRun = c.Bool("dry-run")
	}

	app := &cli.Command{
		Name:    "modelgen",
		Usage:   `Extract a canonical schema from annotated model declarations and generate model classes for Java, Kotlin, C#, Swift, JavaScript, TypeScript, Go and protobuf.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "warn",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)
			ctrl.Flags.LogLevel = level.String()

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Create a modelgen config file in the current directory",
				Flags: targetFlags,
				Action: func(ctx context.Context, c *cli.Command) error {
					bind(c)
					return ctrl.Init(ctx)
				},
			},
			{
				Name:    "generate",
				Aliases: []string{"gen"},
				Usage:   "Generate model classes for every target",
				Flags: append(append([]cli.Flag{}, projectFlags...), append(targetFlags,
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "list the files that would be written",
					},
				)...),
				Action: func(ctx context.Context, c *cli.Command) error {
					bind(c)
					return ctrl.Generate(ctx)
				},
			},
			{
				Name:  "schema",
				Usage: "Print the canonical schema document",
				Flags: append(append([]cli.Flag{}, projectFlags...),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "document format (json, yaml, proto)",
					},
				),
				Action: func(ctx context.Context, c *cli.Command) error {
					bind(c)
					return ctrl.Schema(ctx)
				},
			},
			{
				Name:  "validate",
				Usage: "Check the declarations and targets without writing files",
				Flags: append(append([]cli.Flag{}, projectFlags...), targetFlags...),
				Action: func(ctx context.Context, c *cli.Command) error {
					bind(c)
					return ctrl.Validate(ctx)
				},
			},
			{
				Name:  "watch",
				Usage: "Regenerate model classes whenever declarations change",
				Flags: append(append([]cli.Flag{}, projectFlags...), targetFlags...),
				Action: func(ctx context.Context, c *cli.Command) error {
					bind(c)
					return ctrl.Watch(ctx)
				},
			},
			{
				Name:  "targets",
				Usage: "List the supported target languages",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Targets(ctx)
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run modelgen")
	}
}
