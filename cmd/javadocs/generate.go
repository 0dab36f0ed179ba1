package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"go.jacobcolvin.com/javadocs/decl"
	"go.jacobcolvin.com/javadocs/generator"
	"go.jacobcolvin.com/javadocs/settings"
)

var (
	errReadInput   = errors.New("read declarations")
	errWriteOutput = errors.New("write output")
	errUsage       = errors.New("usage")
)

const (
	outputYAML = "yaml"
	outputText = "text"
)

type generateConfig struct {
	settings  *settings.Config
	generator *generator.Config
	output    string
	diff      bool
}

// result is one generated entry in YAML output. Comment is null when there
// is nothing to emit.
type result struct {
	Comment *string          `json:"comment"`
	Name    string           `json:"name"`
	Kind    decl.Kind        `json:"kind"`
	Action  generator.Action `json:"action,omitempty"`
}

func newGenerateCmd(a *app) *cobra.Command {
	cfg := &generateConfig{
		settings:  settings.NewConfig(),
		generator: generator.NewConfig(),
	}

	cmd := &cobra.Command{
		Use:   "generate [flags] <declarations.yaml|-> ...",
		Short: "Generate comments for declarations",
		Long: `generate reads YAML or JSON lists of declarations and prints the comment
each one should carry under the configured mode. Use "-" to read from stdin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), a, cfg, args)
		},
	}

	flags := cmd.Flags()
	cfg.settings.RegisterFlags(flags)
	cfg.generator.RegisterFlags(flags)
	flags.StringVarP(&cfg.output, "output", "o", outputYAML,
		fmt.Sprintf("output format, one of: %s", strings.Join([]string{outputYAML, outputText}, ", ")))
	flags.BoolVarP(&cfg.diff, "diff", "d", false,
		"print a diff against existing comments instead of the results")

	for _, register := range []func(*cobra.Command) error{
		cfg.settings.RegisterCompletions,
		cfg.generator.RegisterCompletions,
	} {
		err := register(cmd)
		if err != nil {
			fmt.Fprintf(a.stderr, "register completions: %v\n", err)
		}
	}

	err := cmd.RegisterFlagCompletionFunc("output",
		cobra.FixedCompletions([]string{outputYAML, outputText}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		fmt.Fprintf(a.stderr, "register completions: %v\n", err)
	}

	return cmd
}

func runGenerate(ctx context.Context, a *app, cfg *generateConfig, args []string) error {
	if !slices.Contains([]string{outputYAML, outputText}, cfg.output) {
		return fmt.Errorf("%w: unknown output format %q", errUsage, cfg.output)
	}

	decls, err := readDeclarations(a, args)
	if err != nil {
		return err
	}

	gen := cfg.generator.NewGenerator()

	once := func(s *settings.Compiled) error {
		s, err := cfg.settings.Override(s)
		if err != nil {
			return err //nolint:wrapcheck // Wraps settings.ErrInvalidSettings.
		}

		results, err := gen.GenerateAll(ctx, generator.Batch{
			Declarations: decls,
			Settings:     s,
			Now:          a.now(),
			Environment:  cfg.generator.Environment(),
		})
		if err != nil {
			return err //nolint:wrapcheck // Errors are wrapped per declaration.
		}

		return writeResults(a, cfg, decls, results)
	}

	if !cfg.settings.Watch {
		s, err := cfg.settings.Load(a.fs)
		if err != nil {
			return err //nolint:wrapcheck // Wraps settings errors.
		}

		return once(s)
	}

	return watch(ctx, a, cfg, once)
}

// watch runs once with the current settings, then again after every
// successful reload of the settings file until ctx is done.
func watch(ctx context.Context, a *app, cfg *generateConfig, once func(*settings.Compiled) error) error {
	if cfg.settings.Path == "" {
		return fmt.Errorf("%w: --%s requires --%s", errUsage, cfg.settings.Flags.Watch, cfg.settings.Flags.Path)
	}

	reloads := make(chan struct{}, 1)

	w, err := settings.NewWatcher(settings.NewLoader(a.fs), cfg.settings.Path,
		settings.WithReloadHook(func(_ *settings.Compiled, err error) {
			if err != nil {
				return
			}

			select {
			case reloads <- struct{}{}:
			default:
			}
		}),
	)
	if err != nil {
		return err //nolint:wrapcheck // Wraps settings errors.
	}

	err = w.Start(ctx)
	if err != nil {
		return err //nolint:wrapcheck // Already wrapped.
	}

	defer func() {
		err := w.Close()
		if err != nil {
			slog.Warn("close settings watcher", slog.Any("error", err))
		}
	}()

	for {
		err := once(w.Snapshot())
		if err != nil {
			fmt.Fprintf(a.stderr, "%v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-reloads:
		}
	}
}

func readDeclarations(a *app, args []string) ([]decl.Declaration, error) {
	var all []decl.Declaration

	for _, arg := range args {
		var (
			data []byte
			err  error
		)

		if arg == "-" {
			data, err = io.ReadAll(a.stdin)
		} else {
			data, err = afero.ReadFile(a.fs, arg)
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", errReadInput, arg, err)
		}

		var decls []decl.Declaration

		err = yaml.Unmarshal(data, &decls)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", errReadInput, arg, err)
		}

		all = append(all, decls...)
	}

	return all, nil
}

func writeResults(a *app, cfg *generateConfig, decls []decl.Declaration, results []*generator.Result) error {
	if cfg.diff {
		d := newDiffer(a.stdout, a.color)

		for i, res := range results {
			if res == nil || res.Action == generator.ActionKeep {
				continue
			}

			existing := ""
			if decls[i].Existing != nil {
				existing = *decls[i].Existing
			}

			if existing == res.Text {
				continue
			}

			d.header(decls[i].Name, res.Action)
			d.print(existing, res.Text)
		}

		return nil
	}

	if cfg.output == outputText {
		var texts []string

		for _, res := range results {
			if res != nil {
				texts = append(texts, res.Text)
			}
		}

		if len(texts) == 0 {
			return nil
		}

		_, err := fmt.Fprintln(a.stdout, strings.Join(texts, "\n\n"))
		if err != nil {
			return fmt.Errorf("%w: %w", errWriteOutput, err)
		}

		return nil
	}

	out := make([]result, len(results))
	for i, res := range results {
		out[i] = result{Name: decls[i].Name, Kind: decls[i].Kind}
		if res != nil {
			out[i].Action = res.Action
			out[i].Comment = &res.Text
		}
	}

	data, err := yaml.MarshalWithOptions(out, yaml.UseLiteralStyleIfMultiline(true))
	if err != nil {
		return fmt.Errorf("%w: %w", errWriteOutput, err)
	}

	_, err = a.stdout.Write(data)
	if err != nil {
		return fmt.Errorf("%w: %w", errWriteOutput, err)
	}

	return nil
}
