// Package config loads user defaults for generation from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/simonhull/expressgen/internal/catalog"
	"github.com/simonhull/expressgen/internal/output"
)

const (
	fileName  = "expressgen"
	fileType  = "yaml"
	envPrefix = "EXPRESSGEN"

	KeyView = "view"
	KeyCSS  = "css"
	KeyGit  = "git"
)

// Settings are the generation defaults a user can configure.
type Settings struct {
	View string
	CSS  string
	Git  bool

	// File is the config file that was read, empty when none was found.
	File string
}

// LoadOptions controls where settings are read from.
type LoadOptions struct {
	// File is an explicit config file. It must exist when set.
	File string

	// Flags are bound so that explicitly set flags take precedence.
	Flags *pflag.FlagSet

	// Fs is the filesystem config files are read from (OS by default).
	Fs afero.Fs

	// SearchPaths overrides the default config directories.
	SearchPaths []string
}

// Dirs returns the directories searched for expressgen.yml, most specific
// first.
func Dirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, fileName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", fileName))
	}
	return dirs
}

// Load merges, from lowest to highest precedence, built-in defaults, the
// config file, EXPRESSGEN_* environment variables and explicitly set flags.
// A missing default config file is not an error; an unreadable one is.
func Load(opts LoadOptions) (Settings, error) {
	v := viper.New()
	if opts.Fs != nil {
		v.SetFs(opts.Fs)
	}

	v.SetDefault(KeyView, catalog.DefaultView)
	v.SetDefault(KeyCSS, catalog.DefaultCSS)
	v.SetDefault(KeyGit, false)

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{KeyView, KeyCSS, KeyGit} {
		if err := v.BindEnv(key); err != nil {
			return Settings{}, fmt.Errorf("binding %s environment: %w", key, err)
		}
		if opts.Flags == nil {
			continue
		}
		if f := opts.Flags.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return Settings{}, fmt.Errorf("binding --%s: %w", key, err)
			}
		}
	}

	if err := readConfig(v, opts); err != nil {
		return Settings{}, err
	}

	s := Settings{
		View: v.GetString(KeyView),
		CSS:  v.GetString(KeyCSS),
		Git:  v.GetBool(KeyGit),
		File: v.ConfigFileUsed(),
	}
	output.Debug("settings loaded", "view", s.View, "css", s.CSS, "git", s.Git, "file", s.File)
	return s, nil
}

func readConfig(v *viper.Viper, opts LoadOptions) error {
	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", opts.File, err)
		}
		return nil
	}

	paths := opts.SearchPaths
	if paths == nil {
		paths = Dirs()
	}
	if len(paths) == 0 {
		return nil
	}

	v.SetConfigName(fileName)
	v.SetConfigType(fileType)
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}
