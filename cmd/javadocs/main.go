// Command javadocs generates and updates Javadoc comments for declarations.
//
// Declarations are read as a YAML or JSON list (see [decl.Declaration]),
// each optionally carrying its existing comment text. Comments are generated
// from template rules in a settings file and printed as YAML results, plain
// comments, or a diff against the existing text.
//
// # Usage
//
//	javadocs generate [flags] <declarations.yaml|-> ...
//	javadocs schema
//	javadocs defaults
//	javadocs version
//
// Every flag can also be set through a JAVADOCS_* environment variable, for
// example JAVADOCS_USER or JAVADOCS_LOG_LEVEL.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"go.jacobcolvin.com/javadocs/log"
	"go.jacobcolvin.com/javadocs/profile"
)

const envPrefix = "JAVADOCS"

// app holds the process dependencies commands use, so tests can replace
// them.
type app struct {
	fs       afero.Fs
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	now      func() time.Time
	profiler *profile.Profiler
	color    bool
}

func main() {
	a := &app{
		fs:     afero.NewOsFs(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		now:    time.Now,
		color:  term.IsTerminal(int(os.Stdout.Fd())), //nolint:gosec // File descriptors fit in int.
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, a, os.Args[1:])

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run executes the command line args and writes any requested profiles,
// even when the command fails.
func run(ctx context.Context, a *app, args []string) error {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)

	if a.profiler != nil {
		stopErr := a.profiler.Stop()
		if stopErr != nil {
			err = errors.Join(err, fmt.Errorf("profile: %w", stopErr))
		}
	}

	return err //nolint:wrapcheck // Command errors are returned as-is.
}

func newRootCmd(a *app) *cobra.Command {
	logCfg := log.NewConfig()
	profileCfg := profile.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "javadocs",
		Short: "Generate and update Javadoc comments",
		Long: `javadocs synthesizes Javadoc comments for type, constructor, method, and
field declarations from configurable templates, and merges them with existing
comments without losing hand-written text.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			err := applyEnv(cmd.Flags())
			if err != nil {
				return err
			}

			handler, err := logCfg.NewHandler(a.stderr)
			if err != nil {
				return err //nolint:wrapcheck // Already wraps log.ErrInvalidArgument.
			}

			slog.SetDefault(slog.New(handler))

			if !profileCfg.Enabled() {
				return nil
			}

			a.profiler = profileCfg.NewProfiler(a.fs)

			return a.profiler.Start() //nolint:wrapcheck // Already wrapped.
		},
	}

	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profileCfg.RegisterFlags(rootCmd.PersistentFlags())

	for _, register := range []func(*cobra.Command) error{
		logCfg.RegisterCompletions,
		profileCfg.RegisterCompletions,
	} {
		err := register(rootCmd)
		if err != nil {
			fmt.Fprintf(a.stderr, "register completions: %v\n", err)
		}
	}

	rootCmd.AddCommand(
		newGenerateCmd(a),
		newSchemaCmd(a),
		newDefaultsCmd(a),
		newVersionCmd(a),
	)

	return rootCmd
}

// applyEnv sets every flag not given on the command line from its
// JAVADOCS_* environment variable, if present. Flag names map to variables
// by upper-casing and replacing '-' with '_'.
func applyEnv(flags *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	var errs []error

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}

		err := v.BindEnv(f.Name)
		if err != nil {
			errs = append(errs, err)

			return
		}

		if !v.IsSet(f.Name) {
			return
		}

		err = flags.Set(f.Name, v.GetString(f.Name))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s_%s: %w",
				envPrefix, strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_")), err))
		}
	})

	if len(errs) > 0 {
		return fmt.Errorf("environment: %w", errors.Join(errs...))
	}

	return nil
}
