package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/okra-platform/modelgen/internal/config"
)

// Test plan:
// 1. Test refusing to overwrite an existing config file
// 2. Test successful config creation flow in YAML and JSON
// 3. Test unknown target languages and missing targets
// 4. Test filesystem write errors
// 5. Test Controller.Init with targets from flags, on disk
// 6. Test form input with tea.WithInput

type mockFileSystem struct {
	statCalls    []string
	mkdirAllErr  error
	writeFileErr error
	files        map[string]bool
	written      map[string][]byte
}

func (m *mockFileSystem) Stat(name string) (os.FileInfo, error) {
	m.statCalls = append(m.statCalls, name)
	if m.files != nil && m.files[name] {
		return nil, nil
	}
	return nil, os.ErrNotExist
}

func (m *mockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return m.mkdirAllErr
}

func (m *mockFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	if m.writeFileErr != nil {
		return m.writeFileErr
	}
	if m.written == nil {
		m.written = make(map[string][]byte)
	}
	m.written[name] = data
	return nil
}

func TestInitCommand_Run_ConfigExists(t *testing.T) {
	// Test: an existing config file of any supported name is never overwritten
	for _, name := range config.FileNames {
		t.Run(name, func(t *testing.T) {
			mockFS := &mockFileSystem{files: map[string]bool{filepath.Join("/project", name): true}}
			cmd := &InitCommand{
				filesystem:  mockFS,
				dir:         "/project",
				out:         &bytes.Buffer{},
				testOptions: &InitOptions{Targets: []string{"java"}},
			}

			err := cmd.Run(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "already exists")
			assert.Empty(t, mockFS.written)
		})
	}
}

func TestInitCommand_Run_FullFlow(t *testing.T) {
	// Test: complete successful flow with test options
	mockFS := &mockFileSystem{}
	var out bytes.Buffer
	cmd := &InitCommand{
		filesystem: mockFS,
		dir:        "/project",
		out:        &out,
		testOptions: &InitOptions{
			Targets: []string{"kotlin", "swift"},
			Output:  "models",
			Package: "com.example.models",
			Format:  "yaml",
		},
	}

	err := cmd.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "created modelgen.yaml for 2 targets")

	data, ok := mockFS.written["/project/modelgen.yaml"]
	require.True(t, ok)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, "models", cfg.Output)
	require.Len(t, cfg.Targets, 2)
	assert.Equal(t, config.TargetConfig{Language: "kotlin", Package: "com.example.models", Output: filepath.Join("models", "kotlin")}, cfg.Targets[0])
	assert.Equal(t, "swift", cfg.Targets[1].Language)
	// Test: derived defaults follow the chosen output directory
	assert.Contains(t, cfg.Watch.Exclude, "models/**")
}

func TestInitCommand_Run_JSON(t *testing.T) {
	mockFS := &mockFileSystem{}
	cmd := &InitCommand{
		filesystem:  mockFS,
		dir:         "/project",
		out:         &bytes.Buffer{},
		testOptions: &InitOptions{Targets: []string{"ts"}, Format: "json"},
	}

	require.NoError(t, cmd.Run(context.Background()))
	data, ok := mockFS.written["/project/modelgen.json"]
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(string(data), "{\n"))
	// Test: an empty output falls back to the default directory
	assert.Contains(t, string(data), `"output": "generated"`)
}

func TestInitCommand_Run_InvalidTargets(t *testing.T) {
	tests := []struct {
		name    string
		targets []string
		wantErr string
	}{
		{name: "no targets", targets: nil, wantErr: "at least one target language"},
		{name: "unknown language", targets: []string{"java", "cobol"}, wantErr: "unsupported language: cobol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockFS := &mockFileSystem{}
			cmd := &InitCommand{
				filesystem:  mockFS,
				dir:         "/project",
				out:         &bytes.Buffer{},
				testOptions: &InitOptions{Targets: tt.targets},
			}
			err := cmd.Run(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, mockFS.written)
		})
	}
}

func TestInitCommand_Run_WriteError(t *testing.T) {
	// Test: filesystem failures are wrapped
	cmd := &InitCommand{
		filesystem:  &mockFileSystem{writeFileErr: errors.New("disk full")},
		dir:         "/project",
		out:         &bytes.Buffer{},
		testOptions: &InitOptions{Targets: []string{"java"}},
	}

	err := cmd.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write config file")
	assert.Contains(t, err.Error(), "disk full")
}

func TestController_Init_FromFlags(t *testing.T) {
	// Test: targets on the command line skip the form and the file loads back
	dir := t.TempDir()
	var out bytes.Buffer
	ctrl := &Controller{
		Flags: &Flags{Targets: []string{"go", "protobuf"}, Package: "shop"},
		Out:   &out,
		Dir:   dir,
	}

	require.NoError(t, ctrl.Init(context.Background()))

	cfg, err := config.LoadConfigFromPath(filepath.Join(dir, "modelgen.yaml"))
	require.NoError(t, err)
	require.Len(t, cfg.Targets, 2)
	assert.Equal(t, "shop", cfg.Targets[1].Package)
	assert.Equal(t, filepath.Join("generated", "protobuf"), cfg.Targets[1].Output)

	// Test: running init twice fails
	err = ctrl.Init(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_createInitForm(t *testing.T) {
	cmd := &InitCommand{filesystem: &mockFileSystem{}}
	form := cmd.createInitForm(&InitOptions{})
	assert.NotNil(t, form)
}

// Integration test for the form - skip in CI but useful for local development
func TestInitCommand_promptInitOptions_Interactive(t *testing.T) {
	// Always skip this test in automated runs to prevent deadlocks
	if os.Getenv("INTERACTIVE_TEST") != "true" {
		t.Skip("Skipping interactive test. Set INTERACTIVE_TEST=true to run")
	}

	// Test: form accepts input via tea.WithInput
	cmd := &InitCommand{filesystem: &mockFileSystem{}}

	// Select the first language, accept the defaults, pick JSON
	input := strings.NewReader(" \n\n\n\x1b[B\n")

	options, err := cmd.promptInitOptions(
		tea.WithInput(input),
		tea.WithoutRenderer(),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"csharp"}, options.Targets)
	assert.Equal(t, "generated", options.Output)
	assert.Equal(t, "json", options.Format)
}
