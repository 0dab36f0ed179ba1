package decl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/javadocs/decl"
)

func TestKindLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		kind decl.Kind
		want decl.Level
	}{
		"type":        {kind: decl.KindType, want: decl.LevelType},
		"constructor": {kind: decl.KindConstructor, want: decl.LevelMethod},
		"method":      {kind: decl.KindMethod, want: decl.LevelMethod},
		"field":       {kind: decl.KindField, want: decl.LevelField},
		"unknown":     {kind: decl.Kind("package"), want: ""},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.kind.Level())
		})
	}
}

func TestHasReturn(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		d    decl.Declaration
		want bool
	}{
		"method with return": {
			d:    decl.Declaration{Kind: decl.KindMethod, Type: "String"},
			want: true,
		},
		"void method": {
			d:    decl.Declaration{Kind: decl.KindMethod, Type: "void"},
			want: false,
		},
		"method without type": {
			d:    decl.Declaration{Kind: decl.KindMethod},
			want: false,
		},
		"field type is not a return": {
			d:    decl.Declaration{Kind: decl.KindField, Type: "int"},
			want: false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.d.HasReturn())
		})
	}
}

func TestSignatureText(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		d    decl.Declaration
		want string
	}{
		"explicit signature wins": {
			d:    decl.Declaration{Kind: decl.KindMethod, Name: "run", Signature: "public void run()"},
			want: "public void run()",
		},
		"method": {
			d: decl.Declaration{
				Kind:       decl.KindMethod,
				Visibility: decl.VisibilityPublic,
				Modifiers:  []string{"static"},
				Type:       "String",
				Name:       "getEnv",
			},
			want: "public static String getEnv()",
		},
		"void method with parameters": {
			d: decl.Declaration{
				Kind:       decl.KindMethod,
				Visibility: decl.VisibilityDefault,
				Name:       "setName",
				Parameters: []string{"name", "force"},
			},
			want: "void setName(name, force)",
		},
		"generic type": {
			d: decl.Declaration{
				Kind:           decl.KindType,
				Visibility:     decl.VisibilityPublic,
				Name:           "Box",
				TypeParameters: []string{"T", "U"},
			},
			want: "public class Box<T, U>",
		},
		"constructor": {
			d: decl.Declaration{
				Kind:       decl.KindConstructor,
				Visibility: decl.VisibilityProtected,
				Name:       "Main",
				Parameters: []string{"a"},
			},
			want: "protected Main(a)",
		},
		"field": {
			d: decl.Declaration{
				Kind:       decl.KindField,
				Visibility: decl.VisibilityPrivate,
				Modifiers:  []string{"static", "final"},
				Type:       "String",
				Name:       "AAA",
			},
			want: "private static final String AAA",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.d.SignatureText())
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		d       decl.Declaration
		wantErr bool
	}{
		"valid method": {
			d: decl.Declaration{
				Kind:       decl.KindMethod,
				Visibility: decl.VisibilityPublic,
				Name:       "run",
				Parameters: []string{"a"},
			},
		},
		"missing name": {
			d:       decl.Declaration{Kind: decl.KindMethod, Visibility: decl.VisibilityPublic},
			wantErr: true,
		},
		"unknown kind": {
			d:       decl.Declaration{Kind: "package", Visibility: decl.VisibilityPublic, Name: "x"},
			wantErr: true,
		},
		"unknown visibility": {
			d:       decl.Declaration{Kind: decl.KindField, Visibility: "internal", Name: "x"},
			wantErr: true,
		},
		"empty parameter name": {
			d: decl.Declaration{
				Kind:       decl.KindMethod,
				Visibility: decl.VisibilityPublic,
				Name:       "run",
				Parameters: []string{"a", ""},
			},
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tc.d.Validate()
			if tc.wantErr {
				require.ErrorIs(t, err, decl.ErrInvalidDeclaration)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestHasExisting(t *testing.T) {
	t.Parallel()

	d := decl.Declaration{}
	assert.False(t, d.HasExisting())

	d.Existing = decl.Ptr("")
	assert.True(t, d.HasExisting())
}
