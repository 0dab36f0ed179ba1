// Package synth builds fresh documentation comments from a declaration's
// structural shape and the template rules in a settings snapshot.
//
// Synthesis never looks at an existing comment; combining with one is the
// job of [javadoc.Merge].
package synth

import (
	"fmt"
	"log/slog"
	"strings"

	"go.jacobcolvin.com/javadocs/decl"
	"go.jacobcolvin.com/javadocs/javadoc"
	"go.jacobcolvin.com/javadocs/naming"
	"go.jacobcolvin.com/javadocs/render"
	"go.jacobcolvin.com/javadocs/settings"
	"go.jacobcolvin.com/javadocs/tmplctx"
)

// shape lists which structural tags a declaration kind carries.
type shape struct {
	typeParams bool
	params     bool
	returns    bool
	throws     bool
}

var shapes = map[decl.Kind]shape{
	decl.KindType:        {typeParams: true},
	decl.KindConstructor: {typeParams: true, params: true, throws: true},
	decl.KindMethod:      {typeParams: true, params: true, returns: true, throws: true},
	decl.KindField:       {},
}

// optionalKinds are unkeyed tags added only when their fragment is set.
var optionalKinds = []javadoc.TagKind{
	javadoc.KindAuthor,
	javadoc.KindSince,
	javadoc.KindVersion,
}

// ShouldGenerate reports whether a declaration with the given visibility and
// level is enabled in s.
func ShouldGenerate(vis decl.Visibility, level decl.Level, s *settings.Compiled) bool {
	return s.HasLevel(level) && s.HasVisibility(vis)
}

// Synthesize builds a new comment for d.
//
// It returns nil without error when d is filtered out by s, when d overrides
// a supertype method and s does not document those, or when no rule for d's
// kind matches its signature. Tag bodies are rendered from the matching
// rule's fragments; a structural tag whose fragment is unset gets an empty
// body. Render failures, including unresolved variables, abort synthesis.
func Synthesize(d decl.Declaration, ctx tmplctx.Context, s *settings.Compiled) (*javadoc.Comment, error) {
	if !ShouldGenerate(d.Visibility, d.Level(), s) {
		slog.Debug("declaration filtered",
			slog.String("name", d.Name),
			slog.String("visibility", string(d.Visibility)),
			slog.String("level", string(d.Level())),
		)

		return nil, nil
	}

	if d.Kind == decl.KindMethod && d.Overrides && !s.OverriddenMethods() {
		slog.Debug("overriding method skipped", slog.String("name", d.Name))

		return nil, nil
	}

	signature := d.SignatureText()

	rule, ok := s.Rule(d.Kind, signature)
	if !ok {
		slog.Debug("no template rule matches",
			slog.String("kind", string(d.Kind)),
			slog.String("signature", signature),
		)

		return nil, nil
	}

	slog.Debug("template rule matched",
		slog.String("kind", string(d.Kind)),
		slog.String("signature", signature),
		slog.String("match", rule.Match()),
	)

	c, err := build(d, ctx, rule)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", d.Kind, d.Name, err)
	}

	return c, nil
}

func build(d decl.Declaration, ctx tmplctx.Context, rule *settings.CompiledRule) (*javadoc.Comment, error) {
	description, err := execute(rule.Description(), ctx)
	if err != nil {
		return nil, err
	}

	sh := shapes[d.Kind]

	var tags []javadoc.Tag

	keyed := func(kind javadoc.TagKind, keys []string, mk func(key, body string) javadoc.Tag) error {
		for _, key := range keys {
			body, err := execute(rule.Fragment(kind), ctx.
				With(tmplctx.KeyKey, key).
				With(tmplctx.KeyKeyName, naming.Phrase(key)))
			if err != nil {
				return fmt.Errorf("%s %s: %w", kind, key, err)
			}

			tags = append(tags, mk(key, body))
		}

		return nil
	}

	if sh.typeParams {
		err := keyed(javadoc.KindTypeParam, typeParamNames(d.TypeParameters), javadoc.TypeParam)
		if err != nil {
			return nil, err
		}
	}

	if sh.params {
		err := keyed(javadoc.KindParam, d.Parameters, javadoc.Param)
		if err != nil {
			return nil, err
		}
	}

	if sh.returns && d.HasReturn() {
		body, err := execute(rule.Fragment(javadoc.KindReturn), ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", javadoc.KindReturn, err)
		}

		tags = append(tags, javadoc.Return(body))
	}

	if sh.throws {
		err := keyed(javadoc.KindThrows, d.Throws, javadoc.Throws)
		if err != nil {
			return nil, err
		}
	}

	for _, kind := range optionalKinds {
		t := rule.Fragment(kind)
		if t == nil {
			continue
		}

		body, err := execute(t, ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}

		tags = append(tags, javadoc.Tag{Kind: kind, Body: body})
	}

	for _, name := range rule.CustomNames() {
		body, err := execute(rule.Custom(name), ctx)
		if err != nil {
			return nil, fmt.Errorf("@%s: %w", name, err)
		}

		tags = append(tags, javadoc.Custom(name, body))
	}

	return javadoc.New(strings.Split(description, "\n"), tags...), nil
}

// execute renders t, treating a nil template as an empty body.
func execute(t *render.Template, ctx tmplctx.Context) (string, error) {
	if t == nil {
		return "", nil
	}

	return t.Execute(ctx)
}

// typeParamNames strips bounds, so "T extends Number" documents as "T".
func typeParamNames(params []string) []string {
	names := make([]string, 0, len(params))
	for _, p := range params {
		fields := strings.Fields(p)
		if len(fields) == 0 {
			continue
		}

		names = append(names, fields[0])
	}

	return names
}
