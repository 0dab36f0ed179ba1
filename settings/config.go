package settings

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for settings configuration.
type Flags struct {
	Path  string
	Mode  string
	Watch string
}

// Config holds CLI flag values for settings configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.Load] to obtain a snapshot.
type Config struct {
	Flags Flags
	Path  string
	Mode  string
	Watch bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			Path:  "settings",
			Mode:  "mode",
			Watch: "watch",
		},
	}
}

// RegisterFlags adds settings flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Path, c.Flags.Path, "s", "",
		"settings file (yaml, json, or toml); built-in defaults when empty")
	flags.StringVarP(&c.Mode, c.Flags.Mode, "m", "",
		fmt.Sprintf("override the settings mode, one of: %s", modeStrings()))
	flags.BoolVar(&c.Watch, c.Flags.Watch, false,
		"reload the settings file when it changes")
}

// RegisterCompletions registers shell completions for settings flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Mode,
		cobra.FixedCompletions(modeStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Mode, err)
	}

	err = cmd.MarkFlagFilename(c.Flags.Path, "yaml", "yml", "json", "toml")
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Path, err)
	}

	return nil
}

// Load compiles the configured settings file from fs, or the defaults when
// no path is set, and applies the mode override.
func (c *Config) Load(fs afero.Fs) (*Compiled, error) {
	if c.Path == "" {
		compiled, err := Compile(Settings{})
		if err != nil {
			return nil, err
		}

		return c.Override(compiled)
	}

	compiled, err := NewLoader(fs).LoadCompiled(c.Path)
	if err != nil {
		return nil, err
	}

	return c.Override(compiled)
}

// Override applies the mode flag, if set, to s.
func (c *Config) Override(s *Compiled) (*Compiled, error) {
	if c.Mode == "" {
		return s, nil
	}

	m := Mode(strings.ToLower(c.Mode))
	if !m.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidSettings, c.Mode)
	}

	return s.WithMode(m), nil
}

func modeStrings() []string {
	modes := Modes()

	out := make([]string, len(modes))
	for i, m := range modes {
		out[i] = string(m)
	}

	return out
}
