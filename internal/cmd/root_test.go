package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxcd/templater/internal/manifest"
	"github.com/mxcd/templater/internal/render"
)

const greetingManifest = `files:
  - destination: out/greeting.txt
    template: greeting
    values:
      name: World
`

func TestRootCmd_Structure(t *testing.T) {
	rootCmd := NewRootCmd()

	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "validate")
	assert.Contains(t, names, "templates")

	for _, flag := range []string{"manifest", "stdin", "dry-run", "console"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(flag), flag)
	}
	for _, flag := range []string{"verbose", "engine"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRootCmd_Help(t *testing.T) {
	res, err := executeCmd(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "templater")
	assert.Contains(t, res.stdout, "MANIFEST SOURCES")
}

func TestRootCmd_Version(t *testing.T) {
	res, err := executeCmd(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, "templater version "+version+"\n", res.stdout)
}

func TestRootCmd_Generate(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"manifest.yml":      greetingManifest,
		"greeting.mustache": "Hello {{name}}!",
	})

	_, err := executeCmd(t, "", dir)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "out", "greeting.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Hello World!", string(got))
}

func TestRootCmd_DryRunConsole(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"manifest.yml":      greetingManifest,
		"greeting.mustache": "Hello {{name}}!",
	})

	res, err := executeCmd(t, "", dir, "--dry-run", "--console")
	require.NoError(t, err)

	assert.Equal(t, "# From template 'greeting'\nHello World!\n", res.stdout)
	assert.NoDirExists(t, filepath.Join(dir, "out"))
}

func TestRootCmd_Stdin(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"greeting.mustache": "Hi {{name}}",
	})

	_, err := executeCmd(t, greetingManifest, dir, "--stdin")
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "out", "greeting.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Hi World", string(got))
}

func TestRootCmd_StdinMissingFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCmd(t, "other: value\n", dir, "--stdin")
	assert.ErrorIs(t, err, manifest.ErrMissingFiles)
}

func TestRootCmd_ExplicitManifestMissing(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"manifest.yml":      greetingManifest,
		"greeting.mustache": "Hello",
	})

	_, err := executeCmd(t, "", dir, "--manifest", filepath.Join(dir, "missing.yml"))
	assert.ErrorIs(t, err, manifest.ErrManifestNotFound)
	assert.NoDirExists(t, filepath.Join(dir, "out"))
}

func TestRootCmd_ManifestAndStdinExclusive(t *testing.T) {
	_, err := executeCmd(t, "", t.TempDir(), "--manifest", "m.yml", "--stdin")
	assert.Error(t, err)
}

func TestRootCmd_MissingTemplate(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"manifest.yml": greetingManifest})

	_, err := executeCmd(t, "", dir)
	assert.ErrorIs(t, err, render.ErrTemplateNotFound)
	assert.True(t, manifest.IsConfigurationError(err))
}

func TestRootCmd_GoTemplateEngine(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"manifest.yml":  greetingManifest,
		"greeting.tmpl": `Hello {{ .name | upper }}`,
	})

	_, err := executeCmd(t, "", dir, "--engine", "gotmpl")
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "out", "greeting.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Hello WORLD", string(got))
}

func TestRootCmd_VerboseLogsToStderr(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"manifest.yml":      greetingManifest,
		"greeting.mustache": "Hello",
	})

	res, err := executeCmd(t, "", dir, "--verbose", "--dry-run")
	require.NoError(t, err)

	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "found template")
}

func TestRootCmd_TooManyArgs(t *testing.T) {
	_, err := executeCmd(t, "", "a", "b")
	assert.Error(t, err)
}
