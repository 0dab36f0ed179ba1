package profile

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for profiling configuration.
type Flags struct {
	CPUProfile     string
	HeapProfile    string
	AllocsProfile  string
	MemProfileRate string
}

// Config holds profile output paths. An empty path disables that profile.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags].
type Config struct {
	Flags          Flags
	CPUProfile     string
	HeapProfile    string
	AllocsProfile  string
	MemProfileRate int
}

// NewConfig returns a new [Config] with default flag names and every profile
// disabled.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			CPUProfile:     "cpu-profile",
			HeapProfile:    "heap-profile",
			AllocsProfile:  "allocs-profile",
			MemProfileRate: "mem-profile-rate",
		},
	}
}

// RegisterFlags adds profiling flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPUProfile, c.Flags.CPUProfile, "", "write a CPU profile to file")
	flags.StringVar(&c.HeapProfile, c.Flags.HeapProfile, "", "write a heap profile to file")
	flags.StringVar(&c.AllocsProfile, c.Flags.AllocsProfile, "", "write an allocs profile to file")
	flags.IntVar(&c.MemProfileRate, c.Flags.MemProfileRate, 0,
		"memory profile rate in bytes per sample; 0 keeps the runtime default")
}

// RegisterCompletions registers shell completions for profile flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.MemProfileRate, cobra.NoFileCompletions)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.MemProfileRate, err)
	}

	for _, name := range []string{c.Flags.CPUProfile, c.Flags.HeapProfile, c.Flags.AllocsProfile} {
		err := cmd.MarkFlagFilename(name, "prof", "pprof")
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", name, err)
		}
	}

	return nil
}

// Enabled reports whether any profile is requested.
func (c *Config) Enabled() bool {
	return c.CPUProfile != "" || c.HeapProfile != "" || c.AllocsProfile != ""
}

// NewProfiler creates a [Profiler] that writes to fs.
func (c *Config) NewProfiler(fs afero.Fs) *Profiler {
	return &Profiler{config: *c, fs: fs}
}
