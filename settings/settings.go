// Package settings holds the configuration that drives documentation
// generation: the merge [Mode], which declaration levels and visibilities to
// document, the per-kind template rules, and user-defined variables.
//
// [Settings] is the plain, serializable form. It is loaded with a [Loader]
// (YAML, JSON, or TOML), validated against [Schema], and compiled with
// [Compile] into an immutable [*Compiled] snapshot that generation requests
// consume. A [Watcher] recompiles the snapshot when the file changes.
package settings

import (
	"errors"
	"maps"
	"slices"

	"go.jacobcolvin.com/javadocs/decl"
)

var (
	// ErrInvalidSettings indicates settings failed validation.
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrInvalidTemplate indicates one or more template rules failed to
	// compile.
	ErrInvalidTemplate = errors.New("invalid template rules")

	// ErrReadSettings indicates a settings file could not be read.
	ErrReadSettings = errors.New("read settings")

	// ErrUnsupportedFormat indicates a settings file extension is not
	// recognized.
	ErrUnsupportedFormat = errors.New("unsupported settings format")
)

// Mode selects how existing comments are treated.
type Mode string

const (
	// ModeKeep leaves existing comments untouched and generates missing ones.
	ModeKeep Mode = "keep"
	// ModeReplace discards existing comments and generates fresh ones.
	ModeReplace Mode = "replace"
	// ModeUpdate merges generated comments into existing ones.
	ModeUpdate Mode = "update"
)

// Modes returns all modes in a stable order.
func Modes() []Mode {
	return []Mode{ModeKeep, ModeReplace, ModeUpdate}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return slices.Contains(Modes(), m)
}

// Settings is the serializable generation configuration. Unset fields take
// their values from [Defaults] when compiled.
type Settings struct {
	OverriddenMethods *bool             `json:"overriddenMethods,omitempty" jsonschema:"generate comments for methods that override a supertype method"`
	SplittedClassName *bool             `json:"splittedClassName,omitempty" jsonschema:"split type names into words for the name variable"`
	Variables         map[string]string `json:"variables,omitempty"         jsonschema:"user-defined template variables"`
	Mode              Mode              `json:"mode,omitempty"              jsonschema:"how existing comments are treated"`
	Levels            []decl.Level      `json:"levels,omitempty"            jsonschema:"declaration levels to document"`
	Visibilities      []decl.Visibility `json:"visibilities,omitempty"      jsonschema:"declaration visibilities to document"`
	Templates         Templates         `json:"templates,omitzero"          jsonschema:"template rules per declaration kind"`
}

// Templates holds the ordered template rules for each declaration kind. The
// first rule whose pattern matches a declaration's signature is used.
type Templates struct {
	Type        []Rule `json:"type,omitempty"        jsonschema:"rules for types"`
	Constructor []Rule `json:"constructor,omitempty" jsonschema:"rules for constructors"`
	Method      []Rule `json:"method,omitempty"      jsonschema:"rules for methods"`
	Field       []Rule `json:"field,omitempty"       jsonschema:"rules for fields"`
}

// ForKind returns the rules for kind.
func (t Templates) ForKind(kind decl.Kind) []Rule {
	switch kind {
	case decl.KindType:
		return t.Type
	case decl.KindConstructor:
		return t.Constructor
	case decl.KindMethod:
		return t.Method
	case decl.KindField:
		return t.Field
	}

	return nil
}

// Rule is one template rule. Match is a regular expression tested against
// the declaration's signature text.
type Rule struct {
	Match       string    `json:"match"                 jsonschema:"regular expression matched against the declaration signature"`
	Description string    `json:"description,omitempty" jsonschema:"template for the description"`
	Tags        Fragments `json:"tags,omitzero"         jsonschema:"templates for block tag bodies"`
}

// Fragments holds templates for tag bodies. Keyed fragments (Param,
// TypeParam, Throws) are rendered once per key with the key and keyName
// variables set. Author, Since, Version, and Custom fragments add tags only
// when set.
type Fragments struct {
	Custom    map[string]string `json:"custom,omitempty"    jsonschema:"templates for other tags, by tag name"`
	TypeParam string            `json:"typeParam,omitempty" jsonschema:"template for each type parameter"`
	Param     string            `json:"param,omitempty"     jsonschema:"template for each parameter"`
	Return    string            `json:"return,omitempty"    jsonschema:"template for the return value"`
	Throws    string            `json:"throws,omitempty"    jsonschema:"template for each declared exception"`
	Author    string            `json:"author,omitempty"    jsonschema:"template for the author tag"`
	Since     string            `json:"since,omitempty"     jsonschema:"template for the since tag"`
	Version   string            `json:"version,omitempty"   jsonschema:"template for the version tag"`
}

func ptr[T any](v T) *T {
	return &v
}

// Defaults returns the default settings: keep mode, types, methods, and
// fields of every visibility, overriding methods skipped, split type names,
// and the built-in template rules.
func Defaults() Settings {
	return Settings{
		Mode:              ModeKeep,
		Levels:            decl.Levels(),
		Visibilities:      decl.Visibilities(),
		OverriddenMethods: ptr(false),
		SplittedClassName: ptr(true),
		Templates:         defaultTemplates(),
	}
}

func defaultTemplates() Templates {
	return Templates{
		Type: []Rule{
			{
				Match:       `\binterface\s`,
				Description: "The interface {{.name}}.",
				Tags:        Fragments{TypeParam: "the type parameter"},
			},
			{
				Match:       `\benum\s`,
				Description: "The enum {{.name}}.",
			},
			{
				Match:       `.*`,
				Description: "The type {{.name}}.",
				Tags:        Fragments{TypeParam: "the type parameter"},
			},
		},
		Constructor: []Rule{
			{
				Match:       `.*`,
				Description: "Instantiates a new {{.name}}.",
				Tags: Fragments{
					TypeParam: "the type parameter",
					Param:     "the {{.keyName}}",
					Throws:    "the {{.keyName}}",
				},
			},
		},
		Method: []Rule{
			{
				Match:       `\bstatic\s.*\bvoid\s+main\s*\(`,
				Description: "The entry point of application.",
				Tags: Fragments{
					Param:  "the input arguments",
					Throws: "the {{.keyName}}",
				},
			},
			{
				Match:       `\bget[A-Z_]\w*\s*\(\s*\)`,
				Description: "Gets {{.partName}}.",
				Tags: Fragments{
					TypeParam: "the type parameter",
					Return:    "the {{.partName}}",
					Throws:    "the {{.keyName}}",
				},
			},
			{
				Match:       `\bset[A-Z_]\w*\s*\(`,
				Description: "Sets {{.partName}}.",
				Tags: Fragments{
					TypeParam: "the type parameter",
					Param:     "the {{.keyName}}",
					Return:    "the {{.returnName}}",
					Throws:    "the {{.keyName}}",
				},
			},
			{
				Match:       `\bis[A-Z_]\w*\s*\(\s*\)`,
				Description: "Is {{.partName}} boolean.",
				Tags: Fragments{
					TypeParam: "the type parameter",
					Return:    "the boolean",
					Throws:    "the {{.keyName}}",
				},
			},
			{
				Match:       `.*`,
				Description: "{{.name}}{{with .returnName}} {{.}}{{end}}.",
				Tags: Fragments{
					TypeParam: "the type parameter",
					Param:     "the {{.keyName}}",
					Return:    "the {{.returnName}}",
					Throws:    "the {{.keyName}}",
				},
			},
		},
		Field: []Rule{
			{
				Match:       `\bstatic\s`,
				Description: "The constant {{.element.Name}}.",
			},
			{
				Match:       `.*`,
				Description: "The {{.name}}.",
			},
		},
	}
}

// WithDefaults returns a copy of s with every unset field taken from
// [Defaults]. Rule lists are replaced per kind, not merged: setting any
// method rule replaces all default method rules. An explicitly empty Levels
// or Visibilities list is kept and disables generation.
func (s Settings) WithDefaults() Settings {
	d := Defaults()

	if s.Mode == "" {
		s.Mode = d.Mode
	}

	if s.Levels == nil {
		s.Levels = d.Levels
	}

	if s.Visibilities == nil {
		s.Visibilities = d.Visibilities
	}

	if s.OverriddenMethods == nil {
		s.OverriddenMethods = d.OverriddenMethods
	}

	if s.SplittedClassName == nil {
		s.SplittedClassName = d.SplittedClassName
	}

	if s.Templates.Type == nil {
		s.Templates.Type = d.Templates.Type
	}

	if s.Templates.Constructor == nil {
		s.Templates.Constructor = d.Templates.Constructor
	}

	if s.Templates.Method == nil {
		s.Templates.Method = d.Templates.Method
	}

	if s.Templates.Field == nil {
		s.Templates.Field = d.Templates.Field
	}

	s.Variables = maps.Clone(s.Variables)

	return s
}
