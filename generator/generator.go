// Package generator produces documentation comments for declarations.
//
// A [Generator] dispatches each [Request] on the settings mode:
//
//   - [settings.ModeKeep] returns an existing comment untouched, and
//     otherwise generates one.
//   - [settings.ModeReplace] always generates a fresh comment.
//   - [settings.ModeUpdate] generates a fresh comment and merges it into the
//     existing one with [javadoc.Merge].
//
// Each request carries its own settings snapshot and timestamp, so a
// [Generator] holds no per-request state and is safe for concurrent use.
// [Generator.GenerateAll] runs a batch in parallel with one shared timestamp.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"go.jacobcolvin.com/javadocs/decl"
	"go.jacobcolvin.com/javadocs/javadoc"
	"go.jacobcolvin.com/javadocs/settings"
	"go.jacobcolvin.com/javadocs/synth"
	"go.jacobcolvin.com/javadocs/tmplctx"
)

// ErrInvalidRequest indicates a [Request] is missing required values.
var ErrInvalidRequest = errors.New("invalid request")

// Action describes what produced a [Result].
type Action string

const (
	// ActionKeep means the existing comment was returned untouched.
	ActionKeep Action = "keep"
	// ActionCreate means a comment was generated where none existed.
	ActionCreate Action = "create"
	// ActionReplace means a generated comment replaces the existing one.
	ActionReplace Action = "replace"
	// ActionUpdate means a generated comment was merged into the existing one.
	ActionUpdate Action = "update"
)

// Request is one generation request.
type Request struct {
	Settings    *settings.Compiled
	Now         time.Time
	Environment tmplctx.Environment
	Declaration decl.Declaration
}

// Result is the outcome of a [Request] that has something to emit.
type Result struct {
	// Comment is the structured comment. For [ActionKeep] it is the parsed
	// existing comment.
	Comment *javadoc.Comment
	// Text is the comment to write. For [ActionKeep] it is the existing text,
	// byte for byte.
	Text   string
	Action Action
}

// Option configures a [Generator].
type Option func(*Generator)

// WithFormatOptions sets the options used to serialize generated comments.
func WithFormatOptions(opts ...javadoc.FormatOption) Option {
	return func(g *Generator) {
		g.format = opts
	}
}

// WithJobs limits how many declarations [Generator.GenerateAll] processes at
// once. Values below one mean no limit.
func WithJobs(n int) Option {
	return func(g *Generator) {
		g.jobs = n
	}
}

// Generator generates comments. Create instances with [New].
type Generator struct {
	format []javadoc.FormatOption
	jobs   int
}

// New creates a new [Generator].
func New(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate runs one request. It returns a nil [*Result] when there is nothing
// to emit: the declaration is filtered out by the settings, or no template
// rule applies to it.
func (g *Generator) Generate(req Request) (*Result, error) {
	if req.Settings == nil {
		return nil, fmt.Errorf("%w: no settings", ErrInvalidRequest)
	}

	d := req.Declaration

	err := d.Validate()
	if err != nil {
		return nil, err
	}

	existing, hasExisting := existingText(d)
	mode := req.Settings.Mode()

	slog.Debug("generate",
		slog.String("name", d.Name),
		slog.String("kind", string(d.Kind)),
		slog.String("mode", string(mode)),
		slog.Bool("existing", hasExisting),
	)

	if mode == settings.ModeKeep && hasExisting {
		return &Result{
			Comment: javadoc.Parse(existing),
			Text:    existing,
			Action:  ActionKeep,
		}, nil
	}

	ctx := tmplctx.Resolve(d, req.Now, req.Environment, req.Settings.Variables(),
		tmplctx.WithRawTypeName(!req.Settings.SplittedClassName()))

	generated, err := synth.Synthesize(d, ctx, req.Settings)
	if err != nil {
		return nil, err
	}

	if generated == nil {
		return nil, nil
	}

	action := ActionCreate

	switch {
	case !hasExisting:
	case mode == settings.ModeUpdate:
		action = ActionUpdate
		generated = javadoc.Merge(javadoc.Parse(existing), generated)
	default:
		action = ActionReplace
	}

	return &Result{
		Comment: generated,
		Text:    javadoc.Format(generated, g.format...),
		Action:  action,
	}, nil
}

// GenerateText runs one request and returns only the comment text. The
// boolean is false when there is nothing to emit.
func (g *Generator) GenerateText(req Request) (string, bool, error) {
	res, err := g.Generate(req)
	if err != nil || res == nil {
		return "", false, err
	}

	return res.Text, true, nil
}

// Batch is a set of declarations generated with one settings snapshot and
// one timestamp.
type Batch struct {
	Settings     *settings.Compiled
	Now          time.Time
	Environment  tmplctx.Environment
	Declarations []decl.Declaration
}

// GenerateAll generates every declaration in b in parallel. Results are in
// declaration order, with nil entries for declarations that produced
// nothing. Cancelling ctx stops before the next declaration starts; the
// first error cancels the rest of the batch.
func (g *Generator) GenerateAll(ctx context.Context, b Batch) ([]*Result, error) {
	results := make([]*Result, len(b.Declarations))

	eg, ctx := errgroup.WithContext(ctx)
	if g.jobs > 0 {
		eg.SetLimit(g.jobs)
	}

	for i, d := range b.Declarations {
		eg.Go(func() error {
			err := ctx.Err()
			if err != nil {
				return err //nolint:wrapcheck // Context errors are returned as-is.
			}

			res, err := g.Generate(Request{
				Declaration: d,
				Settings:    b.Settings,
				Now:         b.Now,
				Environment: b.Environment,
			})
			if err != nil {
				return fmt.Errorf("declaration %d (%s): %w", i, d.Name, err)
			}

			results[i] = res

			return nil
		})
	}

	err := eg.Wait()
	if err != nil {
		return nil, err //nolint:wrapcheck // Errors are wrapped per declaration.
	}

	return results, nil
}

// existingText returns the existing comment, treating blank text as absent.
func existingText(d decl.Declaration) (string, bool) {
	if !d.HasExisting() || strings.TrimSpace(*d.Existing) == "" {
		return "", false
	}

	return *d.Existing, true
}
