package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/tabv/pkg/discovery"
	"github.com/oakwood-commons/tabv/pkg/logger"
)

// isolateConfig points XDG_CONFIG_HOME at an empty directory so the user's
// own config never leaks into a test.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func peopleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "people.csv", "id,name,age\n1,ada,36\n2,bob,30\n3,cy,30\n")
	writeFile(t, dir, "nested/cities.tsv", "city\tcountry\nOslo\tNO\n")
	writeFile(t, dir, "notes.txt", "ignored")
	return dir
}

func TestSnapshot(t *testing.T) {
	isolateConfig(t)
	dir := peopleDir(t)

	out, err := execute(t, dir, "--snapshot", "--no-color", "--width", "80", "--height", "12")
	require.NoError(t, err)

	// Files are sorted by path, so nested/cities comes first.
	for _, want := range []string{"Files (2)", "▸ nested/cities", "people", "city", "country", "Oslo", "file 1/2"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "notes")
	assert.NotContains(t, out, "ada", "only the first file is shown")
}

func TestSnapshotWithStartupKeys(t *testing.T) {
	isolateConfig(t)
	dir := peopleDir(t)

	out, err := execute(t, dir, "--snapshot", "--no-color", "--width", "80", "--height", "12",
		"--press", ";people<enter>")
	require.NoError(t, err)
	assert.Contains(t, out, "ada")
	assert.Contains(t, out, "file 2/2")
}

func TestWhereFiltersRows(t *testing.T) {
	isolateConfig(t)
	dir := peopleDir(t)

	out, err := execute(t, filepath.Join(dir, "people.csv"), "--snapshot", "--no-color",
		"--width", "80", "--height", "12", "--where", `row["age"] == "30"`)
	require.NoError(t, err)
	assert.Contains(t, out, "bob")
	assert.Contains(t, out, "cy")
	assert.NotContains(t, out, "ada")
}

func TestLimitFlags(t *testing.T) {
	isolateConfig(t)
	dir := peopleDir(t)
	file := filepath.Join(dir, "people.csv")

	out, err := execute(t, file, "--snapshot", "--no-color", "--width", "80", "--height", "12", "--tail", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "cy")
	assert.NotContains(t, out, "bob")

	out, err = execute(t, file, "--snapshot", "--no-color", "--width", "80", "--height", "12",
		"--where", `row["age"] == "30"`, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "bob")
	assert.NotContains(t, out, "cy")

	_, err = execute(t, file, "--snapshot", "--limit", "1", "--tail", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestInvalidWhere(t *testing.T) {
	isolateConfig(t)
	_, err := execute(t, peopleDir(t), "--snapshot", "--where", "row[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--where")
}

func TestNoFiles(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	_, err := execute(t, dir, "--snapshot")
	require.Error(t, err)
	assert.True(t, errors.Is(err, discovery.ErrNoFiles))
	assert.Equal(t, "no tabular files found under "+dir, err.Error())
}

func TestPatternFlag(t *testing.T) {
	isolateConfig(t)
	out, err := execute(t, peopleDir(t), "-p", "*.tsv", "--snapshot", "--no-color", "--width", "80", "--height", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Files (1)")
	assert.Contains(t, out, "Oslo")
}

func TestInvalidNames(t *testing.T) {
	isolateConfig(t)
	dir := peopleDir(t)

	_, err := execute(t, dir, "--snapshot", "--keymap", "function")
	require.Error(t, err)
	assert.Equal(t, `invalid keymap "function" (expected vim or emacs)`, err.Error())

	_, err = execute(t, dir, "--snapshot", "--theme", "neon")
	var themeErr themeSelectionError
	require.ErrorAs(t, err, &themeErr)
	assert.Equal(t, "neon", themeErr.Selected)
	assert.Equal(t, []string{"dark", "light"}, themeErr.Available)
}

func TestConfigFileIsApplied(t *testing.T) {
	isolateConfig(t)
	dir := peopleDir(t)
	cfg := writeFile(t, t.TempDir(), "config.yaml", "patterns: ['*.tsv']\nno_color: true\n")

	out, err := execute(t, dir, "--config-file", cfg, "--snapshot", "--width", "80", "--height", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Files (1)")
	assert.NotContains(t, out, "\x1b[", "no_color from config disables styling")
}

func TestBadConfigFile(t *testing.T) {
	isolateConfig(t)
	cfg := writeFile(t, t.TempDir(), "config.yaml", "colour: blue\n")
	_, err := execute(t, peopleDir(t), "--config-file", cfg, "--snapshot")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLogFile(t *testing.T) {
	isolateConfig(t)
	logPath := filepath.Join(t.TempDir(), "tabv.log")
	t.Cleanup(logger.Sync)

	_, err := execute(t, peopleDir(t), "--snapshot", "--debug", "--log-file", logPath)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"discovered files"`)
	assert.Contains(t, string(data), `"root_command":"tabv"`)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "tabv "), out)
	assert.Contains(t, out, "commit")
}

func TestThemesCommand(t *testing.T) {
	out, err := execute(t, "themes")
	require.NoError(t, err)
	assert.Equal(t, "* dark\n  light\n", out)
}

func TestTooManyArgs(t *testing.T) {
	_, err := execute(t, "a", "b")
	require.Error(t, err)
}
