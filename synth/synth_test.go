package synth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/javadocs/decl"
	"go.jacobcolvin.com/javadocs/javadoc"
	"go.jacobcolvin.com/javadocs/render"
	"go.jacobcolvin.com/javadocs/settings"
	"go.jacobcolvin.com/javadocs/stringtest"
	"go.jacobcolvin.com/javadocs/synth"
	"go.jacobcolvin.com/javadocs/tmplctx"
)

var now = time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

func synthesize(t *testing.T, d decl.Declaration, s *settings.Compiled) (*javadoc.Comment, error) {
	t.Helper()

	ctx := tmplctx.Resolve(d, now, tmplctx.Environment{User: "jdoe"}, s.Variables(),
		tmplctx.WithRawTypeName(!s.SplittedClassName()))

	return synth.Synthesize(d, ctx, s)
}

func TestShouldGenerate(t *testing.T) {
	t.Parallel()

	s := settings.MustCompile(settings.Settings{
		Levels:       []decl.Level{decl.LevelMethod},
		Visibilities: []decl.Visibility{decl.VisibilityPublic, decl.VisibilityProtected},
	})

	tcs := map[string]struct {
		vis   decl.Visibility
		level decl.Level
		want  bool
	}{
		"enabled":            {vis: decl.VisibilityPublic, level: decl.LevelMethod, want: true},
		"protected":          {vis: decl.VisibilityProtected, level: decl.LevelMethod, want: true},
		"disabled level":     {vis: decl.VisibilityPublic, level: decl.LevelField},
		"disabled vis":       {vis: decl.VisibilityPrivate, level: decl.LevelMethod},
		"both disabled":      {vis: decl.VisibilityDefault, level: decl.LevelType},
		"unknown visibility": {vis: "internal", level: decl.LevelMethod},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, synth.ShouldGenerate(tc.vis, tc.level, s))
		})
	}
}

func TestSynthesizeDefaults(t *testing.T) {
	t.Parallel()

	s := settings.MustCompile(settings.Settings{})

	tcs := map[string]struct {
		decl decl.Declaration
		want string
	}{
		"getter": {
			decl: decl.Declaration{
				Kind:       decl.KindMethod,
				Visibility: decl.VisibilityPublic,
				Modifiers:  []string{"static"},
				Name:       "getEnv",
				Type:       "String",
			},
			want: stringtest.Javadoc(
				"Gets env.",
				"",
				"@return the env",
			),
		},
		"main": {
			decl: decl.Declaration{
				Kind:       decl.KindMethod,
				Visibility: decl.VisibilityPublic,
				Modifiers:  []string{"static"},
				Name:       "main",
				Type:       "void",
				Parameters: []string{"args"},
				Throws:     []string{"Exception"},
			},
			want: stringtest.Javadoc(
				"The entry point of application.",
				"",
				"@param args the input arguments",
				"@throws Exception the exception",
			),
		},
		"general method": {
			decl: decl.Declaration{
				Kind:           decl.KindMethod,
				Visibility:     decl.VisibilityPrivate,
				Name:           "test",
				Type:           "String",
				Parameters:     []string{"a", "userName"},
				TypeParameters: []string{"T extends Number"},
			},
			want: stringtest.Javadoc(
				"Test string.",
				"",
				"@param <T> the type parameter",
				"@param a the a",
				"@param userName the user name",
				"@return the string",
			),
		},
		"setter": {
			decl: decl.Declaration{
				Kind:       decl.KindMethod,
				Visibility: decl.VisibilityPublic,
				Name:       "setName",
				Type:       "void",
				Parameters: []string{"name"},
			},
			want: stringtest.Javadoc(
				"Sets name.",
				"",
				"@param name the name",
			),
		},
		"boolean getter": {
			decl: decl.Declaration{
				Kind:       decl.KindMethod,
				Visibility: decl.VisibilityPublic,
				Name:       "isReadOnly",
				Type:       "boolean",
			},
			want: stringtest.Javadoc(
				"Is read only boolean.",
				"",
				"@return the boolean",
			),
		},
		"constructor": {
			decl: decl.Declaration{
				Kind:       decl.KindConstructor,
				Visibility: decl.VisibilityPublic,
				Name:       "Main",
				Parameters: []string{"a"},
				Throws:     []string{"IOException"},
			},
			want: stringtest.Javadoc(
				"Instantiates a new Main.",
				"",
				"@param a the a",
				"@throws IOException the io exception",
			),
		},
		"constant": {
			decl: decl.Declaration{
				Kind:       decl.KindField,
				Visibility: decl.VisibilityPrivate,
				Modifiers:  []string{"static"},
				Name:       "AAA",
				Type:       "String",
			},
			want: stringtest.Javadoc("The constant AAA."),
		},
		"field": {
			decl: decl.Declaration{
				Kind:       decl.KindField,
				Visibility: decl.VisibilityPublic,
				Name:       "isBool",
				Type:       "boolean",
			},
			want: stringtest.Javadoc("The Is bool."),
		},
		"class": {
			decl: decl.Declaration{
				Kind:           decl.KindType,
				Visibility:     decl.VisibilityPublic,
				Name:           "HttpClient",
				TypeParameters: []string{"T"},
			},
			want: stringtest.Javadoc(
				"The type Http client.",
				"",
				"@param <T> the type parameter",
			),
		},
		"interface": {
			decl: decl.Declaration{
				Kind:       decl.KindType,
				Visibility: decl.VisibilityPublic,
				Name:       "Testintf",
				Signature:  "public interface Testintf",
			},
			want: stringtest.Javadoc("The interface Testintf."),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := synthesize(t, tc.decl, s)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestSynthesizeRawTypeName(t *testing.T) {
	t.Parallel()

	split := false
	s := settings.MustCompile(settings.Settings{SplittedClassName: &split})

	got, err := synthesize(t, decl.Declaration{
		Kind:       decl.KindType,
		Visibility: decl.VisibilityPublic,
		Name:       "HttpClient",
	}, s)
	require.NoError(t, err)
	assert.Equal(t, "The type HttpClient.", got.DescriptionText())
}

func TestSynthesizeFiltered(t *testing.T) {
	t.Parallel()

	s := settings.MustCompile(settings.Settings{
		Levels:       []decl.Level{decl.LevelMethod},
		Visibilities: []decl.Visibility{decl.VisibilityPublic},
		Templates: settings.Templates{
			Method: []settings.Rule{{Match: `\bvoid\b`, Description: "Does it."}},
		},
	})

	tcs := map[string]decl.Declaration{
		"level disabled": {
			Kind:       decl.KindField,
			Visibility: decl.VisibilityPublic,
			Name:       "count",
			Type:       "int",
		},
		"visibility disabled": {
			Kind:       decl.KindMethod,
			Visibility: decl.VisibilityPrivate,
			Name:       "run",
		},
		"overriding method": {
			Kind:       decl.KindMethod,
			Visibility: decl.VisibilityPublic,
			Name:       "run",
			Overrides:  true,
		},
		"no matching rule": {
			Kind:       decl.KindMethod,
			Visibility: decl.VisibilityPublic,
			Name:       "count",
			Type:       "int",
		},
	}

	for name, d := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := synthesize(t, d, s)
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestSynthesizeOverriddenMethods(t *testing.T) {
	t.Parallel()

	overridden := true
	s := settings.MustCompile(settings.Settings{OverriddenMethods: &overridden})

	got, err := synthesize(t, decl.Declaration{
		Kind:       decl.KindMethod,
		Visibility: decl.VisibilityPublic,
		Name:       "toString",
		Type:       "String",
		Overrides:  true,
	}, s)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "To string string.", got.DescriptionText())
}

func TestSynthesizeFragments(t *testing.T) {
	t.Parallel()

	s := settings.MustCompile(settings.Settings{
		Variables: map[string]string{"VERSION": "2.0"},
		Templates: settings.Templates{
			Method: []settings.Rule{{
				Match:       ".*",
				Description: "Runs {{.partName}}.\nSecond line.",
				Tags: settings.Fragments{
					Throws:  "if {{.key}} happens",
					Author:  "{{.AUTHOR}}",
					Since:   "{{.VERSION}}",
					Version: "{{.BASE_VERSION}}",
					Custom:  map[string]string{"see": "Other", "apiNote": "generated on {{.DATE}}"},
				},
			}},
		},
	})

	got, err := synthesize(t, decl.Declaration{
		Kind:       decl.KindMethod,
		Visibility: decl.VisibilityPublic,
		Name:       "runTask",
		Type:       "int",
		Parameters: []string{"id"},
		Throws:     []string{"IOException"},
	}, s)
	require.NoError(t, err)

	want := stringtest.Javadoc(
		"Runs task.",
		"Second line.",
		"",
		"@param id",
		"@return",
		"@throws IOException if IOException happens",
		"@author jdoe",
		"@since 2.0",
		"@version 2.0",
		"@apiNote generated on 2024-03-05",
		"@see Other",
	)
	assert.Equal(t, want, got.String())
}

func TestSynthesizeUnresolvedVariable(t *testing.T) {
	t.Parallel()

	tcs := map[string]settings.Rule{
		"description": {Match: ".*", Description: "{{.MISSING}}"},
		"keyed":       {Match: ".*", Description: "ok", Tags: settings.Fragments{Param: "{{.MISSING}} {{.key}}"}},
		"return":      {Match: ".*", Description: "ok", Tags: settings.Fragments{Return: "{{.keyName}}"}},
		"custom":      {Match: ".*", Description: "ok", Tags: settings.Fragments{Custom: map[string]string{"see": "{{.MISSING}}"}}},
	}

	for name, rule := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := settings.MustCompile(settings.Settings{
				Templates: settings.Templates{Method: []settings.Rule{rule}},
			})

			got, err := synthesize(t, decl.Declaration{
				Kind:       decl.KindMethod,
				Visibility: decl.VisibilityPublic,
				Name:       "run",
				Type:       "int",
				Parameters: []string{"id"},
			}, s)
			require.ErrorIs(t, err, render.ErrUnresolvedVariable)
			assert.Nil(t, got)
		})
	}
}
