package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/powerlora/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// loraDir creates a LoRA folder holding names.
func loraDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}
	root := NewRootCmd(logs)
	root.SetOut(out)
	root.SetErr(logs)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func TestResolve(t *testing.T) {
	dir := loraDir(t, "style/anime.safetensors", "detail.safetensors")

	out, _, err := execute(t, "resolve", "anime", "--lora-dir", dir, "-o", "json")
	require.NoError(t, err)

	var res app.Resolution
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "style/anime.safetensors", res.Found)
	assert.Equal(t, filepath.Join(dir, "style", "anime.safetensors"), res.Path)
}

func TestResolve_NotFound(t *testing.T) {
	dir := loraDir(t, "detail.safetensors")

	_, logs, err := execute(t, "resolve", "detial", "--lora-dir", dir)
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, exitErr.Error(), "did you mean detail.safetensors?")
	assert.Contains(t, logs, "Could not find lora.")
}

func TestList_Table(t *testing.T) {
	dir := loraDir(t, "b.safetensors", "a.safetensors")

	out, _, err := execute(t, "list", "--lora-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "a.safetensors")
	assert.Contains(t, out, "b.safetensors")
}

func TestList_UnknownCategory(t *testing.T) {
	_, _, err := execute(t, "list", "vae", "-o", "json")
	assert.ErrorContains(t, err, "unknown category")
}

func TestRun_YAML(t *testing.T) {
	dir := loraDir(t, "anime.safetensors")
	grid := filepath.Join(t.TempDir(), "grid.hcl")
	require.NoError(t, os.WriteFile(grid, []byte(`
node "WanVideoPowerLoraLoader" "base" {
  lora_1 = { on = true, lora = "anime", strength = 0.123456789 }
}
`), 0o644))

	out, _, err := execute(t, "run", grid, "--lora-dir", dir, "--output", "yaml")
	require.NoError(t, err)

	var got []app.NodeLoras
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	require.Len(t, got[0].Loras, 1)
	assert.Equal(t, "anime", got[0].Loras[0].Name)
	assert.Equal(t, 0.1235, got[0].Loras[0].Strength)
	assert.True(t, got[0].Loras[0].MergeLoras)
}

func TestRun_NodeFilter(t *testing.T) {
	dir := loraDir(t, "anime.safetensors")
	grid := filepath.Join(t.TempDir(), "grid.hcl")
	require.NoError(t, os.WriteFile(grid, []byte(`
node "WanVideoPowerLoraLoader" "base" {
  lora_1 = { on = true, lora = "anime", strength = 1 }
}
node "WanVideoPowerLoraLoader" "top" {
  prev_lora = node.WanVideoPowerLoraLoader.base.lora
}
`), 0o644))

	out, _, err := execute(t, "run", grid, "--lora-dir", dir, "-o", "json", "--node", "node.WanVideoPowerLoraLoader.top")
	require.NoError(t, err)

	var got []app.NodeLoras
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "node.WanVideoPowerLoraLoader.top", got[0].Node)
	assert.Len(t, got[0].Loras, 1)

	_, _, err = execute(t, "run", grid, "--node", "step.x")
	assert.ErrorContains(t, err, "--node: invalid node address")
}

func TestInspect_Table(t *testing.T) {
	dir := loraDir(t, "anime.safetensors")
	prompt := filepath.Join(t.TempDir(), "prompt.json")
	require.NoError(t, os.WriteFile(prompt, []byte(`{
  "5": {"class_type": "WanVideoPowerLoraLoader", "inputs": {
    "lora_1": {"on": true, "lora": "anime", "strength": 0.7}
  }}
}`), 0o644))

	out, _, err := execute(t, "inspect", prompt, "--lora-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "anime")
	assert.Contains(t, out, "0.7")
}

func TestFlagErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad output", []string{"list", "-o", "xml"}, `invalid output format "xml"`},
		{"bad log level", []string{"list", "--log-level", "loud"}, `invalid log level "loud"`},
		{"missing argument", []string{"resolve"}, "accepts 1 arg(s)"},
		{"missing config", []string{"list", "--config", "/does/not/exist.yaml"}, "failed to read config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFlagErrors_ExitCode(t *testing.T) {
	_, _, err := execute(t, "list", "-o", "xml")
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.Code)
}

func TestLogsGoToLogWriter(t *testing.T) {
	dir := loraDir(t, "anime.safetensors")
	out, logs, err := execute(t, "resolve", "anim", "--lora-dir", dir, "--log-format", "json", "-o", "json")
	require.NoError(t, err)
	assert.NotContains(t, out, "Found lora by")
	assert.Contains(t, logs, `"tier":"fuzzy match"`)
}
