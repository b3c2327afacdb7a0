package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/okra-platform/modelgen/internal/codegen"
	"github.com/okra-platform/modelgen/internal/config"
)

type InitOptions struct {
	Targets []string
	Output  string
	Package string
	Format  string
}

type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(name string, data []byte, perm os.FileMode) error
}

type osFileSystem struct{}

func (fs *osFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (fs *osFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (fs *osFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

type InitCommand struct {
	filesystem FileSystem
	dir        string
	out        io.Writer
	// If set, skip prompting
	testOptions *InitOptions
}

func NewInitCommand(dir string, out io.Writer) *InitCommand {
	return &InitCommand{
		filesystem: &osFileSystem{},
		dir:        dir,
		out:        out,
	}
}

// Init writes a new config file into the working directory
func (c *Controller) Init(ctx context.Context) error {
	dir := c.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = wd
	}
	cmd := NewInitCommand(dir, c.out())
	if f := c.flags(); len(f.Targets) > 0 {
		// Targets on the command line skip the form
		cmd.testOptions = &InitOptions{Targets: f.Targets, Output: f.Output, Package: f.Package, Format: f.Format}
	}
	return cmd.Run(ctx)
}

func (ic *InitCommand) Run(ctx context.Context) error {
	return ic.RunWithOptions(ctx)
}

func (ic *InitCommand) RunWithOptions(ctx context.Context, opts ...tea.ProgramOption) error {
	if existing, ok := ic.existingConfig(); ok {
		return fmt.Errorf("config file %s already exists", existing)
	}

	var options *InitOptions
	var err error

	if ic.testOptions != nil {
		options = ic.testOptions
	} else {
		options, err = ic.promptInitOptions(opts...)
		if err != nil {
			return fmt.Errorf("failed to get init options: %w", err)
		}
	}

	path, err := ic.writeConfig(options)
	if err != nil {
		return err
	}

	fmt.Fprintf(ic.out, "%s created %s for %s\n", green("✓"), filepath.Base(path), plural(len(options.Targets), "target"))
	return nil
}

func (ic *InitCommand) existingConfig() (string, bool) {
	for _, name := range config.FileNames {
		path := filepath.Join(ic.dir, name)
		if _, err := ic.filesystem.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// writeConfig builds the config for options and writes it next to the
// declarations
func (ic *InitCommand) writeConfig(options *InitOptions) (string, error) {
	if len(options.Targets) == 0 {
		return "", fmt.Errorf("at least one target language is required")
	}
	for _, lang := range options.Targets {
		if _, err := codegen.DefaultRegistry.Get(lang, codegen.Options{}); err != nil {
			return "", err
		}
	}
	cfg := &config.Config{Output: options.Output}
	cfg.ApplyDefaults()
	cfg.SetTargets(options.Targets, options.Package)
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	name := "modelgen.yaml"
	if options.Format == "json" {
		name = "modelgen.json"
	}
	path := filepath.Join(ic.dir, name)
	data, err := cfg.Encode(path)
	if err != nil {
		return "", err
	}
	if err := ic.filesystem.MkdirAll(ic.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := ic.filesystem.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

func (ic *InitCommand) promptInitOptions(opts ...tea.ProgramOption) (*InitOptions, error) {
	options := &InitOptions{Output: "generated", Format: "yaml"}

	form := ic.createInitForm(options)

	if len(opts) > 0 {
		// For testing: run with provided options
		program := tea.NewProgram(form, opts...)
		if _, err := program.Run(); err != nil {
			return nil, err
		}
	} else {
		if err := form.Run(); err != nil {
			return nil, err
		}
	}

	return options, nil
}

func (ic *InitCommand) createInitForm(options *InitOptions) *huh.Form {
	languages := make([]huh.Option[string], 0)
	for _, lang := range codegen.DefaultRegistry.Languages() {
		languages = append(languages, huh.NewOption(lang, lang))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Target languages").
				Description("Model classes are generated for each selected language").
				Options(languages...).
				Value(&options.Targets).
				Validate(func(s []string) error {
					if len(s) == 0 {
						return fmt.Errorf("select at least one target language")
					}
					return nil
				}),

			huh.NewInput().
				Title("Output directory").
				Description("Each target writes into a subdirectory named after its language").
				Value(&options.Output).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("output directory cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Title("Package").
				Description("Package or namespace of the generated code, empty for the language default").
				Value(&options.Package),

			huh.NewSelect[string]().
				Title("Config format").
				Options(
					huh.NewOption("YAML", "yaml"),
					huh.NewOption("JSON", "json"),
				).
				Value(&options.Format),
		),
	)
}
