package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOptionsReadsToolFlowfmtTable(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pyproject.toml", `
[tool.flowfmt]
line_length = 100
include = ["*.smk"]
check = true
`)
	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, 100, opts.LineLength)
	assert.Equal(t, []string{"*.smk"}, opts.Include)
	assert.True(t, opts.Check)
}

func TestLoadOptionsMissingTableReturnsZeroValue(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pyproject.toml", "[tool.other]\nx = 1\n")
	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, Options{}, opts)
}

func TestLoadOptionsMalformedTomlIsReported(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pyproject.toml", "not [ valid toml")
	_, err := LoadOptions(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed TOML")
}

func TestLoadScriptFormatterOptionsInvertsSkipBooleans(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pyproject.toml", `
[tool.flowscript]
line-length = 100
skip-string-normalization = true
`)
	opts, err := LoadScriptFormatterOptions(path)
	require.NoError(t, err)
	assert.Equal(t, 100, opts.LineLength)
	assert.False(t, opts.StringNormalization)
	assert.True(t, opts.MagicTrailingComma)
}

func TestLoadScriptFormatterOptionsRejectsUnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pyproject.toml", `
[tool.flowscript]
not-a-real-option = true
`)
	_, err := LoadScriptFormatterOptions(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-real-option")
}

func TestLoadScriptFormatterOptionsRejectsWrongTypeValue(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pyproject.toml", `
[tool.flowscript]
line-length = "wide"
`)
	_, err := LoadScriptFormatterOptions(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "integer")
}

func TestFindUpwardStopsAtGitBoundary(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	writeFile(t, root, "pyproject.toml", "[tool.flowfmt]\n")

	found, ok := FindUpward(nested, "pyproject.toml")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "pyproject.toml"), found)
}

func TestFindUpwardReturnsFalseWhenNotFound(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	_, ok := FindUpward(root, "pyproject.toml")
	assert.False(t, ok)
}
