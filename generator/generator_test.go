package generator_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/javadocs/decl"
	"go.jacobcolvin.com/javadocs/generator"
	"go.jacobcolvin.com/javadocs/javadoc"
	"go.jacobcolvin.com/javadocs/render"
	"go.jacobcolvin.com/javadocs/settings"
	"go.jacobcolvin.com/javadocs/stringtest"
)

var now = time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

func compiled(mode settings.Mode) *settings.Compiled {
	return settings.MustCompile(settings.Settings{Mode: mode})
}

func request(d decl.Declaration, s *settings.Compiled) generator.Request {
	return generator.Request{Declaration: d, Settings: s, Now: now}
}

func process(existing *string) decl.Declaration {
	return decl.Declaration{
		Kind:       decl.KindMethod,
		Visibility: decl.VisibilityPublic,
		Name:       "process",
		Type:       "String",
		Parameters: []string{"input", "limit"},
		Throws:     []string{"IOException"},
		Existing:   existing,
	}
}

var handWritten = stringtest.Javadoc(
	"Processes the input.",
	"",
	"@param input the raw input, never null",
	"@param stale no longer here",
	"@return the processed value",
	"@author someone",
	"@see Other",
)

var fresh = stringtest.Javadoc(
	"Process string.",
	"",
	"@param input the input",
	"@param limit the limit",
	"@return the string",
	"@throws IOException the io exception",
)

func TestGenerateModes(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		existing   *string
		mode       settings.Mode
		wantText   string
		wantAction generator.Action
	}{
		"keep without existing": {
			mode:       settings.ModeKeep,
			wantText:   fresh,
			wantAction: generator.ActionCreate,
		},
		"keep with existing": {
			mode:       settings.ModeKeep,
			existing:   decl.Ptr("/** hand   written */"),
			wantText:   "/** hand   written */",
			wantAction: generator.ActionKeep,
		},
		"keep with blank existing": {
			mode:       settings.ModeKeep,
			existing:   decl.Ptr("  \n"),
			wantText:   fresh,
			wantAction: generator.ActionCreate,
		},
		"replace without existing": {
			mode:       settings.ModeReplace,
			wantText:   fresh,
			wantAction: generator.ActionCreate,
		},
		"replace with existing": {
			mode:       settings.ModeReplace,
			existing:   decl.Ptr(handWritten),
			wantText:   fresh,
			wantAction: generator.ActionReplace,
		},
		"update without existing": {
			mode:       settings.ModeUpdate,
			wantText:   fresh,
			wantAction: generator.ActionCreate,
		},
		"update with existing": {
			mode:     settings.ModeUpdate,
			existing: decl.Ptr(handWritten),
			wantText: stringtest.Javadoc(
				"Processes the input.",
				"",
				"@param input the raw input, never null",
				"@param limit the limit",
				"@return the processed value",
				"@throws IOException the io exception",
				"@author someone",
				"@see Other",
			),
			wantAction: generator.ActionUpdate,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res, err := generator.New().Generate(request(process(tc.existing), compiled(tc.mode)))
			require.NoError(t, err)
			require.NotNil(t, res)

			assert.Equal(t, tc.wantAction, res.Action)
			assert.Equal(t, tc.wantText, res.Text)
			require.NotNil(t, res.Comment)
		})
	}
}

func TestGenerateKeepWithoutExistingMatchesReplace(t *testing.T) {
	t.Parallel()

	g := generator.New(generator.WithFormatOptions(javadoc.WithWidth(30)))

	decls := []decl.Declaration{
		process(nil),
		{Kind: decl.KindType, Visibility: decl.VisibilityPublic, Name: "HttpClient", TypeParameters: []string{"T"}},
		{Kind: decl.KindConstructor, Visibility: decl.VisibilityProtected, Name: "Main", Parameters: []string{"userName"}},
		{Kind: decl.KindField, Visibility: decl.VisibilityPrivate, Name: "MAX_SIZE", Modifiers: []string{"static"}},
	}

	for _, d := range decls {
		keep, err := g.Generate(request(d, compiled(settings.ModeKeep)))
		require.NoError(t, err)

		replace, err := g.Generate(request(d, compiled(settings.ModeReplace)))
		require.NoError(t, err)

		assert.Equal(t, replace.Text, keep.Text, d.Name)
	}
}

func TestGenerateUpdateIsIdempotent(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		opts     []javadoc.FormatOption
		existing string
	}{
		"defaults": {
			existing: handWritten,
		},
		"indented and wrapped": {
			opts:     []javadoc.FormatOption{javadoc.WithIndent("    "), javadoc.WithWidth(40)},
			existing: handWritten,
		},
		"malformed existing": {
			existing: "/**\n * @param input\n * dangling text\n * @throws\n @return x */",
		},
		"description only": {
			existing: "/** Does things. */",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			g := generator.New(generator.WithFormatOptions(tc.opts...))
			s := compiled(settings.ModeUpdate)

			first, err := g.Generate(request(process(decl.Ptr(tc.existing)), s))
			require.NoError(t, err)
			require.NotNil(t, first)

			second, err := g.Generate(request(process(decl.Ptr(first.Text)), s))
			require.NoError(t, err)
			require.NotNil(t, second)

			assert.Equal(t, first.Text, second.Text)
		})
	}
}

func TestGenerateFiltered(t *testing.T) {
	t.Parallel()

	for _, mode := range []settings.Mode{settings.ModeReplace, settings.ModeUpdate, settings.ModeKeep} {
		t.Run(string(mode), func(t *testing.T) {
			t.Parallel()

			s := settings.MustCompile(settings.Settings{
				Mode:         mode,
				Visibilities: []decl.Visibility{decl.VisibilityPublic},
			})

			d := process(nil)
			d.Visibility = decl.VisibilityPrivate

			res, err := generator.New().Generate(request(d, s))
			require.NoError(t, err)
			assert.Nil(t, res)

			text, ok, err := generator.New().GenerateText(request(d, s))
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, text)
		})
	}
}

func TestGenerateFilteredWithExisting(t *testing.T) {
	t.Parallel()

	for _, mode := range []settings.Mode{settings.ModeReplace, settings.ModeUpdate} {
		t.Run(string(mode), func(t *testing.T) {
			t.Parallel()

			s := settings.MustCompile(settings.Settings{
				Mode:   mode,
				Levels: []decl.Level{decl.LevelType},
			})

			res, err := generator.New().Generate(request(process(decl.Ptr(handWritten)), s))
			require.NoError(t, err)
			assert.Nil(t, res)
		})
	}
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()

	broken := settings.MustCompile(settings.Settings{
		Templates: settings.Templates{
			Method: []settings.Rule{{Match: ".*", Description: "{{.UNSET}}"}},
		},
	})

	tcs := map[string]struct {
		req     generator.Request
		wantErr error
	}{
		"no settings": {
			req:     generator.Request{Declaration: process(nil), Now: now},
			wantErr: generator.ErrInvalidRequest,
		},
		"invalid declaration": {
			req:     request(decl.Declaration{Kind: "package", Name: "x"}, compiled(settings.ModeKeep)),
			wantErr: decl.ErrInvalidDeclaration,
		},
		"unresolved variable": {
			req:     request(process(nil), broken),
			wantErr: render.ErrUnresolvedVariable,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res, err := generator.New().Generate(tc.req)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, res)
		})
	}
}

func TestGenerateText(t *testing.T) {
	t.Parallel()

	text, ok, err := generator.New().GenerateText(request(process(nil), compiled(settings.ModeKeep)))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, fresh, text)
}

func TestGenerateAll(t *testing.T) {
	t.Parallel()

	s := settings.MustCompile(settings.Settings{
		Mode:   settings.ModeReplace,
		Levels: []decl.Level{decl.LevelMethod},
		Variables: map[string]string{
			"VERSION": "3.1",
		},
		Templates: settings.Templates{
			Method: []settings.Rule{{
				Match:       ".*",
				Description: "{{.name}} at {{.TIME}}.",
				Tags:        settings.Fragments{Since: "{{.VERSION}}"},
			}},
		},
	})

	var decls []decl.Declaration
	for _, name := range []string{"alpha", "beta", "gamma", "delta", "epsilon"} {
		decls = append(decls, decl.Declaration{Kind: decl.KindMethod, Visibility: decl.VisibilityPublic, Name: name})
	}

	decls = append(decls, decl.Declaration{Kind: decl.KindField, Visibility: decl.VisibilityPublic, Name: "skipped"})

	results, err := generator.New(generator.WithJobs(2)).GenerateAll(t.Context(), generator.Batch{
		Declarations: decls,
		Settings:     s,
		Now:          now,
	})
	require.NoError(t, err)
	require.Len(t, results, len(decls))

	for i, name := range []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon"} {
		require.NotNil(t, results[i])
		assert.Equal(t, stringtest.Javadoc(name+" at 14:30:00.", "", "@since 3.1"), results[i].Text)
	}

	assert.Nil(t, results[len(decls)-1])
}

func TestGenerateAllError(t *testing.T) {
	t.Parallel()

	decls := []decl.Declaration{
		process(nil),
		{Kind: decl.KindMethod, Name: "noVisibility"},
	}

	_, err := generator.New().GenerateAll(t.Context(), generator.Batch{
		Declarations: decls,
		Settings:     compiled(settings.ModeKeep),
		Now:          now,
	})
	require.ErrorIs(t, err, decl.ErrInvalidDeclaration)
	assert.ErrorContains(t, err, "noVisibility")
}

func TestGenerateAllCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := generator.New().GenerateAll(ctx, generator.Batch{
		Declarations: []decl.Declaration{process(nil)},
		Settings:     compiled(settings.ModeKeep),
		Now:          now,
	})
	require.ErrorIs(t, err, context.Canceled)
}
