// Package config loads run settings from flags and the environment.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mxcd/templater/internal/templates"
)

// EnvPrefix prefixes every environment variable, e.g. TEMPLATER_DRY_RUN.
const EnvPrefix = "TEMPLATER"

// Setting keys. Flag names match the keys.
const (
	KeyWorkingDirectory = "working-directory"
	KeyManifest         = "manifest"
	KeyStdin            = "stdin"
	KeyDryRun           = "dry-run"
	KeyConsole          = "console"
	KeyVerbose          = "verbose"
	KeyEngine           = "engine"
)

// ErrConflictingSources indicates both an explicit manifest and stdin
// were requested.
var ErrConflictingSources = errors.New("--manifest and --stdin are mutually exclusive")

// Settings holds the resolved configuration for one invocation.
type Settings struct {
	// WorkingDirectory is the absolute directory holding templates.
	WorkingDirectory string

	// Manifest is an explicit manifest path, or empty for discovery.
	Manifest string

	// Stdin reads the manifest content from standard input.
	Stdin bool

	DryRun  bool
	Console bool
	Verbose bool

	// Engine is the template engine name.
	Engine string
}

// New returns a viper instance reading TEMPLATER_* environment variables.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyWorkingDirectory, ".")
	v.SetDefault(KeyEngine, templates.Engines[0])
	return v
}

// Load binds flags into v and resolves Settings. A positional working
// directory in args takes precedence over the environment. Stdin is only
// honored when flags defines the stdin flag.
func Load(v *viper.Viper, flags *pflag.FlagSet, args []string) (*Settings, error) {
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if len(args) > 0 && args[0] != "" {
		v.Set(KeyWorkingDirectory, args[0])
	}

	workDir, err := filepath.Abs(v.GetString(KeyWorkingDirectory))
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	s := &Settings{
		WorkingDirectory: workDir,
		Manifest:         v.GetString(KeyManifest),
		Stdin:            v.GetBool(KeyStdin),
		DryRun:           v.GetBool(KeyDryRun),
		Console:          v.GetBool(KeyConsole),
		Verbose:          v.GetBool(KeyVerbose),
		Engine:           v.GetString(KeyEngine),
	}

	// Commands without a stdin flag never read the manifest from stdin.
	if flags != nil && flags.Lookup(KeyStdin) == nil {
		s.Stdin = false
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks settings that cannot be combined.
func (s *Settings) Validate() error {
	if s.Stdin && s.Manifest != "" {
		return ErrConflictingSources
	}
	if _, err := templates.NewRenderer(s.Engine); err != nil {
		return err
	}
	return nil
}
