package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okra-platform/modelgen/internal/codegen/profile"
	"github.com/okra-platform/modelgen/internal/schema"
)

// FileNames are the config file names searched in each directory, in order
var FileNames = []string{"modelgen.yaml", "modelgen.yml", "modelgen.json"}

// ErrNotFound is returned when no config file exists in a directory or its parents
var ErrNotFound = errors.New("config file not found")

// Config represents the modelgen configuration file
type Config struct {
	// Declarations are glob patterns of model files, relative to the config directory
	Declarations []string       `json:"declarations" yaml:"declarations"`
	Output       string         `json:"output" yaml:"output"`
	Workers      int            `json:"workers,omitempty" yaml:"workers,omitempty"`
	Targets      []TargetConfig `json:"targets" yaml:"targets"`
	Schema       SchemaConfig   `json:"schema" yaml:"schema"`
	Watch        WatchConfig    `json:"watch" yaml:"watch"`
}

// TargetConfig selects a target language and its overrides
type TargetConfig struct {
	Language              string `json:"language" yaml:"language"`
	Package               string `json:"package,omitempty" yaml:"package,omitempty"`
	Output                string `json:"output,omitempty" yaml:"output,omitempty"`
	AccessorCasing        string `json:"accessorCasing,omitempty" yaml:"accessorCasing,omitempty"`
	BooleanAccessorPrefix string `json:"booleanAccessorPrefix,omitempty" yaml:"booleanAccessorPrefix,omitempty"`
}

// Overrides returns the profile overrides of the target
func (t TargetConfig) Overrides() profile.Overrides {
	return profile.Overrides{
		AccessorCasing:        t.AccessorCasing,
		BooleanAccessorPrefix: t.BooleanAccessorPrefix,
	}
}

// SchemaConfig controls where the canonical schema document is written.
// An empty path disables it.
type SchemaConfig struct {
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// WatchConfig contains watch mode configuration
type WatchConfig struct {
	Patterns   []string `json:"patterns" yaml:"patterns"`
	Exclude    []string `json:"exclude" yaml:"exclude"`
	DebounceMs int      `json:"debounceMs,omitempty" yaml:"debounceMs,omitempty"`
}

// Default returns a config with every default applied
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills every unset field. Derived defaults such as target
// outputs and watch excludes follow Output.
func (c *Config) ApplyDefaults() {
	if len(c.Declarations) == 0 {
		c.Declarations = []string{"**/*.graphql", "**/*.gql"}
	}
	if c.Output == "" {
		c.Output = "generated"
	}
	for i := range c.Targets {
		if c.Targets[i].Output == "" {
			c.Targets[i].Output = filepath.Join(c.Output, c.Targets[i].Language)
		}
	}
	if c.Schema.Format == "" {
		c.Schema.Format = string(schema.FormatJSON)
	}
	if len(c.Watch.Patterns) == 0 {
		c.Watch.Patterns = append(append([]string{}, c.Declarations...), FileNames...)
	}
	if len(c.Watch.Exclude) == 0 {
		c.Watch.Exclude = []string{".git/**", "node_modules/**", filepath.ToSlash(c.Output) + "/**"}
	}
	if c.Watch.DebounceMs == 0 {
		c.Watch.DebounceMs = 200
	}
}

// Validate checks the config for values no command could use
func (c *Config) Validate() error {
	var errs []error
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.Watch.DebounceMs < 0 {
		errs = append(errs, fmt.Errorf("watch.debounceMs must not be negative, got %d", c.Watch.DebounceMs))
	}
	if _, err := schema.ParseFormat(c.Schema.Format); err != nil {
		errs = append(errs, fmt.Errorf("schema.format: %w", err))
	}
	outputs := make(map[string]string)
	for i, t := range c.Targets {
		if t.Language == "" {
			errs = append(errs, fmt.Errorf("targets[%d]: language is required", i))
			continue
		}
		if err := t.Overrides().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("targets[%d] (%s): %w", i, t.Language, err))
		}
		out := filepath.Clean(t.Output)
		if prev, ok := outputs[out]; ok {
			errs = append(errs, fmt.Errorf("targets[%d] (%s): output %s already used by %s", i, t.Language, out, prev))
			continue
		}
		outputs[out] = t.Language
	}
	return errors.Join(errs...)
}

// LoadConfig loads the config from the current directory or a parent directory.
// It returns the config and the directory it was found in.
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfigFromDir(dir)
}

// LoadConfigFromDir searches for a config file in the given directory and its parents
func LoadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range FileNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				config, err := LoadConfigFromPath(configPath)
				if err != nil {
					return nil, "", err
				}
				return config, dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("%w: no %s in %s or any parent directory", ErrNotFound, strings.Join(FileNames, ", "), startDir)
}

// LoadConfigFromPath loads a config file; the extension selects JSON or YAML
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if isJSON(path) {
		err = json.Unmarshal(data, &config)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&config); errors.Is(err, io.EOF) {
			err = nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &config, nil
}

// Encode serializes the config; the extension of path selects JSON or YAML
func (c *Config) Encode(path string) ([]byte, error) {
	if isJSON(path) {
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode config: %w", err)
		}
		return append(data, '\n'), nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the config to path
func (c *Config) Save(path string) error {
	data, err := c.Encode(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SetTargets replaces the targets with one per language, using the
// default output directory of each
func (c *Config) SetTargets(languages []string, pkg string) {
	c.Targets = make([]TargetConfig, len(languages))
	for i, lang := range languages {
		c.Targets[i] = TargetConfig{
			Language: lang,
			Package:  pkg,
			Output:   filepath.Join(c.Output, lang),
		}
	}
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Resolve makes a config-relative path absolute against the config directory
func Resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
