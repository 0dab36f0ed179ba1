package main

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"go.jacobcolvin.com/javadocs/settings"
	"go.jacobcolvin.com/javadocs/version"
)

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for settings files",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := settings.Schema()
			if err != nil {
				return err //nolint:wrapcheck // Schema errors are descriptive.
			}

			out, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return fmt.Errorf("%w: %w", errWriteOutput, err)
			}

			_, err = fmt.Fprintf(a.stdout, "%s\n", out)
			if err != nil {
				return fmt.Errorf("%w: %w", errWriteOutput, err)
			}

			return nil
		},
	}
}

func newDefaultsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the default settings as YAML",
		Long: `defaults prints the built-in settings, including every default template
rule, as a YAML document that can be used as a starting point for a settings
file.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			out, err := settings.Marshal(settings.Defaults())
			if err != nil {
				return fmt.Errorf("%w: %w", errWriteOutput, err)
			}

			_, err = a.stdout.Write(out)
			if err != nil {
				return fmt.Errorf("%w: %w", errWriteOutput, err)
			}

			return nil
		},
	}
}

func newVersionCmd(a *app) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			info := version.Info()

			if !asYAML {
				_, err := fmt.Fprintln(a.stdout, info.String())
				if err != nil {
					return fmt.Errorf("%w: %w", errWriteOutput, err)
				}

				return nil
			}

			out, err := yaml.Marshal(info)
			if err != nil {
				return fmt.Errorf("%w: %w", errWriteOutput, err)
			}

			_, err = a.stdout.Write(out)
			if err != nil {
				return fmt.Errorf("%w: %w", errWriteOutput, err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print build information as YAML")

	return cmd
}
