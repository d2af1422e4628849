package config_test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/expressgen/internal/config"
)

const confDir = "/home/dev/.config/expressgen"

func writeConfig(t *testing.T, fsys afero.Fs, path string, values map[string]any) {
	t.Helper()
	data, err := yaml.Marshal(values)
	require.NoError(t, err)
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fsys, path, data, 0644))
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("express", pflag.ContinueOnError)
	fs.String("view", "", "")
	fs.String("css", "", "")
	fs.Bool("git", false, "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	s, err := config.Load(config.LoadOptions{Fs: afero.NewMemMapFs(), SearchPaths: []string{confDir}})
	require.NoError(t, err)

	assert.Equal(t, "jade", s.View)
	assert.Equal(t, "css", s.CSS)
	assert.False(t, s.Git)
	assert.Empty(t, s.File)
}

func TestLoad_File(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeConfig(t, fsys, filepath.Join(confDir, "expressgen.yml"), map[string]any{
		"view": "hbs",
		"css":  "less",
		"git":  true,
	})

	s, err := config.Load(config.LoadOptions{Fs: fsys, SearchPaths: []string{confDir}})
	require.NoError(t, err)

	assert.Equal(t, "hbs", s.View)
	assert.Equal(t, "less", s.CSS)
	assert.True(t, s.Git)
	assert.Equal(t, filepath.Join(confDir, "expressgen.yml"), s.File)
}

func TestLoad_ExplicitFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeConfig(t, fsys, "/etc/express.yaml", map[string]any{"css": "stylus"})

	s, err := config.Load(config.LoadOptions{Fs: fsys, File: "/etc/express.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "stylus", s.CSS)
	assert.Equal(t, "jade", s.View)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := config.Load(config.LoadOptions{Fs: afero.NewMemMapFs(), File: "/nope.yml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nope.yml")
}

func TestLoad_BrokenFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(confDir, "expressgen.yml"), []byte("view: [unclosed"), 0644))

	_, err := config.Load(config.LoadOptions{Fs: fsys, SearchPaths: []string{confDir}})
	require.Error(t, err)
}

func TestLoad_Precedence(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeConfig(t, fsys, filepath.Join(confDir, "expressgen.yml"), map[string]any{
		"view": "hbs",
		"css":  "less",
	})
	t.Setenv("EXPRESSGEN_CSS", "sass")
	t.Setenv("EXPRESSGEN_GIT", "true")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--view", "pug"}))

	s, err := config.Load(config.LoadOptions{Fs: fsys, Flags: flags, SearchPaths: []string{confDir}})
	require.NoError(t, err)

	assert.Equal(t, "pug", s.View, "flag beats file")
	assert.Equal(t, "sass", s.CSS, "env beats file")
	assert.True(t, s.Git)
}

func TestLoad_UnsetFlagsKeepDefaults(t *testing.T) {
	s, err := config.Load(config.LoadOptions{Fs: afero.NewMemMapFs(), Flags: testFlags(), SearchPaths: []string{confDir}})
	require.NoError(t, err)

	assert.Equal(t, "jade", s.View)
	assert.Equal(t, "css", s.CSS)
}

func TestDirs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	dirs := config.Dirs()
	require.NotEmpty(t, dirs)
	assert.Equal(t, filepath.Join("/xdg", "expressgen"), dirs[0])
}
