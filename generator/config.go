package generator

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/javadocs/javadoc"
	"go.jacobcolvin.com/javadocs/tmplctx"
	"go.jacobcolvin.com/javadocs/version"
)

// Flags holds CLI flag names for generator configuration.
type Flags struct {
	Jobs        string
	Width       string
	Indent      string
	User        string
	ProductName string
	ProjectName string
}

// Config holds CLI flag values for generator configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags].
type Config struct {
	Flags       Flags
	Indent      string
	User        string
	ProductName string
	ProjectName string
	Jobs        int
	Width       int
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			Jobs:        "jobs",
			Width:       "width",
			Indent:      "indent",
			User:        "user",
			ProductName: "product-name",
			ProjectName: "project-name",
		},
	}
}

// RegisterFlags adds generator flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.IntVarP(&c.Jobs, c.Flags.Jobs, "j", runtime.GOMAXPROCS(0),
		"number of declarations to generate in parallel")
	flags.IntVar(&c.Width, c.Flags.Width, 0,
		"wrap tag bodies to this many columns; 0 disables wrapping")
	flags.StringVar(&c.Indent, c.Flags.Indent, "",
		"prefix for every line of generated comments")
	flags.StringVar(&c.User, c.Flags.User, "",
		"value of the USER and AUTHOR variables")
	flags.StringVar(&c.ProductName, c.Flags.ProductName, version.ProductName,
		"value of the PRODUCT_NAME variable")
	flags.StringVar(&c.ProjectName, c.Flags.ProjectName, "",
		"value of the PROJECT_NAME variable")
}

// RegisterCompletions registers shell completions for generator flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	for _, name := range []string{
		c.Flags.Jobs,
		c.Flags.Width,
		c.Flags.Indent,
		c.Flags.User,
		c.Flags.ProductName,
		c.Flags.ProjectName,
	} {
		err := cmd.RegisterFlagCompletionFunc(name, cobra.NoFileCompletions)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", name, err)
		}
	}

	return nil
}

// Environment returns the host values for template variables.
func (c *Config) Environment() tmplctx.Environment {
	return tmplctx.Environment{
		User:        c.User,
		ProductName: c.ProductName,
		ProjectName: c.ProjectName,
	}
}

// NewGenerator creates a [Generator] from the configured values.
func (c *Config) NewGenerator() *Generator {
	return New(
		WithJobs(c.Jobs),
		WithFormatOptions(
			javadoc.WithIndent(c.Indent),
			javadoc.WithWidth(c.Width),
		),
	)
}
