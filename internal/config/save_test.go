package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSaveLayout_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	layout := LayoutConfig{Width: 12, Fill: ".", Align: "center", Ellipsis: "~"}
	require.NoError(t, SaveLayout(path, layout))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got struct {
		Layout LayoutConfig `yaml:"layout"`
	}
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, layout, got.Layout)
}

func TestSaveLayout_PreservesOtherSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	initial := `# my settings
debug: true # keep me
log_path: custom.log
layout:
  width: 3
  fill: " "
`
	require.NoError(t, os.WriteFile(path, []byte(initial), 0o600))

	require.NoError(t, SaveLayout(path, LayoutConfig{Width: 40, Fill: "-", Align: "right"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "# my settings")
	assert.Contains(t, content, "# keep me")
	assert.Contains(t, content, "log_path: custom.log")
	assert.Contains(t, content, "width: 40")
	assert.Contains(t, content, "align: right")
	assert.NotContains(t, content, "width: 3\n")
}

func TestSaveLayout_AppendsMissingSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: false\n"), 0o600))

	require.NoError(t, SaveLayout(path, LayoutConfig{Width: 5, Fill: " "}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug: false")
	assert.Contains(t, string(data), "layout:")
	assert.Contains(t, string(data), "width: 5")
}

func TestSaveLayout_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout: [unclosed\n"), 0o600))

	err := SaveLayout(path, Defaults().Layout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestSaveLayout_NonMappingRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o600))

	err := SaveLayout(path, Defaults().Layout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top level must be a mapping")
}

func TestSaveLayout_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	require.NoError(t, SaveLayout(path, Defaults().Layout))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.yaml", entries[0].Name())
}
