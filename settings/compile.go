package settings

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"

	"go.jacobcolvin.com/javadocs/decl"
	"go.jacobcolvin.com/javadocs/javadoc"
	"go.jacobcolvin.com/javadocs/render"
)

// Compiled is an immutable, ready-to-use settings snapshot. Create one with
// [Compile]. It is safe for concurrent use.
type Compiled struct {
	levels       map[decl.Level]bool
	visibilities map[decl.Visibility]bool
	rules        map[decl.Kind][]*CompiledRule
	variables    map[string]string
	mode         Mode
	overridden   bool
	splitNames   bool
}

// CompiledRule is a [Rule] with its pattern and templates compiled.
type CompiledRule struct {
	match       *regexp.Regexp
	description *render.Template
	fragments   map[javadoc.TagKind]*render.Template
	custom      map[string]*render.Template
}

// Compile fills unset fields of s from [Defaults], then compiles every rule
// pattern and template. All failures are reported together in one error
// wrapping [ErrInvalidTemplate]; an invalid mode, level, or visibility
// yields [ErrInvalidSettings].
func Compile(s Settings) (*Compiled, error) {
	s = s.WithDefaults()

	if !s.Mode.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidSettings, s.Mode)
	}

	c := &Compiled{
		mode:         s.Mode,
		overridden:   *s.OverriddenMethods,
		splitNames:   *s.SplittedClassName,
		variables:    s.Variables,
		levels:       map[decl.Level]bool{},
		visibilities: map[decl.Visibility]bool{},
		rules:        map[decl.Kind][]*CompiledRule{},
	}

	for _, l := range s.Levels {
		if !slices.Contains(decl.Levels(), l) {
			return nil, fmt.Errorf("%w: unknown level %q", ErrInvalidSettings, l)
		}

		c.levels[l] = true
	}

	for _, v := range s.Visibilities {
		if !slices.Contains(decl.Visibilities(), v) {
			return nil, fmt.Errorf("%w: unknown visibility %q", ErrInvalidSettings, v)
		}

		c.visibilities[v] = true
	}

	var errs []error

	for _, kind := range decl.Kinds() {
		for i, rule := range s.Templates.ForKind(kind) {
			cr, err := compileRule(fmt.Sprintf("%s[%d]", kind, i), rule)
			if err != nil {
				errs = append(errs, err)

				continue
			}

			c.rules[kind] = append(c.rules[kind], cr)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTemplate, errors.Join(errs...))
	}

	return c, nil
}

// MustCompile is like [Compile] but panics on error.
func MustCompile(s Settings) *Compiled {
	c, err := Compile(s)
	if err != nil {
		panic(err)
	}

	return c
}

func compileRule(name string, rule Rule) (*CompiledRule, error) {
	var errs []error

	cr := &CompiledRule{
		fragments: map[javadoc.TagKind]*render.Template{},
		custom:    map[string]*render.Template{},
	}

	re, err := regexp.Compile(rule.Match)
	if err != nil {
		errs = append(errs, fmt.Errorf("%s.match: %w", name, err))
	}

	cr.match = re

	compile := func(field, text string) *render.Template {
		t, err := render.Compile(name+"."+field, text)
		if err != nil {
			errs = append(errs, err)

			return nil
		}

		return t
	}

	cr.description = compile("description", rule.Description)

	fragments := []struct {
		text string
		kind javadoc.TagKind
	}{
		{rule.Tags.TypeParam, javadoc.KindTypeParam},
		{rule.Tags.Param, javadoc.KindParam},
		{rule.Tags.Return, javadoc.KindReturn},
		{rule.Tags.Throws, javadoc.KindThrows},
		{rule.Tags.Author, javadoc.KindAuthor},
		{rule.Tags.Since, javadoc.KindSince},
		{rule.Tags.Version, javadoc.KindVersion},
	}

	for _, f := range fragments {
		if f.text == "" {
			continue
		}

		cr.fragments[f.kind] = compile("tags."+f.kind.String(), f.text)
	}

	for _, tag := range slices.Sorted(maps.Keys(rule.Tags.Custom)) {
		cr.custom[tag] = compile("tags.custom."+tag, rule.Tags.Custom[tag])
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return cr, nil
}

// Mode returns the merge mode.
func (c *Compiled) Mode() Mode {
	return c.mode
}

// WithMode returns a copy of c using mode m. It panics if m is not valid.
func (c *Compiled) WithMode(m Mode) *Compiled {
	if !m.Valid() {
		panic(fmt.Sprintf("settings: invalid mode %q", m))
	}

	out := *c
	out.mode = m

	return &out
}

// HasLevel reports whether l is enabled.
func (c *Compiled) HasLevel(l decl.Level) bool {
	return c.levels[l]
}

// HasVisibility reports whether v is enabled.
func (c *Compiled) HasVisibility(v decl.Visibility) bool {
	return c.visibilities[v]
}

// OverriddenMethods reports whether methods overriding a supertype method
// are documented.
func (c *Compiled) OverriddenMethods() bool {
	return c.overridden
}

// SplittedClassName reports whether type names are split into words for the
// name variable.
func (c *Compiled) SplittedClassName() bool {
	return c.splitNames
}

// Variables returns a copy of the user-defined variables.
func (c *Compiled) Variables() map[string]string {
	return maps.Clone(c.variables)
}

// Rule returns the first rule for kind whose pattern matches signature.
func (c *Compiled) Rule(kind decl.Kind, signature string) (*CompiledRule, bool) {
	for _, r := range c.rules[kind] {
		if r.match.MatchString(signature) {
			return r, true
		}
	}

	return nil, false
}

// Match returns the rule's pattern source.
func (r *CompiledRule) Match() string {
	return r.match.String()
}

// Description returns the description template.
func (r *CompiledRule) Description() *render.Template {
	return r.description
}

// Fragment returns the tag body template for kind, or nil when none is
// configured. Custom tags are returned by [CompiledRule.Custom].
func (r *CompiledRule) Fragment(kind javadoc.TagKind) *render.Template {
	return r.fragments[kind]
}

// CustomNames returns the configured custom tag names in sorted order.
func (r *CompiledRule) CustomNames() []string {
	return slices.Sorted(maps.Keys(r.custom))
}

// Custom returns the template for the named custom tag.
func (r *CompiledRule) Custom(name string) *render.Template {
	return r.custom[name]
}
