// Package decl describes source declarations as flat, read-only values.
//
// A [Declaration] carries everything the documentation engine needs to know
// about one type, constructor, method, or field: its visibility, simple name,
// formal and generic type parameters, declared exceptions, and any existing
// comment text. Callers build declarations from whatever syntax tree they
// own; nothing in this module reads source files.
package decl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidDeclaration indicates a [Declaration] failed validation.
var ErrInvalidDeclaration = errors.New("invalid declaration")

// Kind is the structural kind of a declaration.
type Kind string

const (
	// KindType is a class, interface, enum, or record.
	KindType Kind = "type"
	// KindConstructor is a constructor.
	KindConstructor Kind = "constructor"
	// KindMethod is a method.
	KindMethod Kind = "method"
	// KindField is a field or enum constant.
	KindField Kind = "field"
)

// Kinds returns all declaration kinds in a stable order.
func Kinds() []Kind {
	return []Kind{KindType, KindConstructor, KindMethod, KindField}
}

// Level returns the generation level a declaration of this kind belongs to.
// Constructors share the method level.
func (k Kind) Level() Level {
	switch k {
	case KindType:
		return LevelType
	case KindConstructor, KindMethod:
		return LevelMethod
	case KindField:
		return LevelField
	}

	return ""
}

// Level is a structural level that can be enabled or disabled as a whole.
type Level string

const (
	// LevelType covers type declarations.
	LevelType Level = "type"
	// LevelMethod covers methods and constructors.
	LevelMethod Level = "method"
	// LevelField covers fields.
	LevelField Level = "field"
)

// Levels returns all levels in a stable order.
func Levels() []Level {
	return []Level{LevelType, LevelMethod, LevelField}
}

// Visibility is the access level of a declaration.
type Visibility string

const (
	// VisibilityPublic is public access.
	VisibilityPublic Visibility = "public"
	// VisibilityProtected is protected access.
	VisibilityProtected Visibility = "protected"
	// VisibilityDefault is package-private access.
	VisibilityDefault Visibility = "default"
	// VisibilityPrivate is private access.
	VisibilityPrivate Visibility = "private"
)

// Visibilities returns all visibilities in a stable order.
func Visibilities() []Visibility {
	return []Visibility{VisibilityPublic, VisibilityProtected, VisibilityDefault, VisibilityPrivate}
}

// Declaration is the flattened descriptor of one source declaration.
//
// Type holds the return type for methods and the value type for fields; it is
// ignored for other kinds. Existing is nil when the declaration has no
// comment, and points at the raw comment text otherwise.
type Declaration struct {
	Existing       *string    `json:"existing,omitempty"`
	Kind           Kind       `json:"kind"                     validate:"required,oneof=type constructor method field"`
	Visibility     Visibility `json:"visibility"               validate:"required,oneof=public protected default private"`
	Name           string     `json:"name"                     validate:"required"`
	Signature      string     `json:"signature,omitempty"`
	Type           string     `json:"type,omitempty"`
	Modifiers      []string   `json:"modifiers,omitempty"      validate:"dive,required"`
	Parameters     []string   `json:"parameters,omitempty"     validate:"dive,required"`
	TypeParameters []string   `json:"typeParameters,omitempty" validate:"dive,required"`
	Throws         []string   `json:"throws,omitempty"         validate:"dive,required"`
	Overrides      bool       `json:"overrides,omitempty"`
}

var validate = validator.New()

// Validate reports whether d is well formed. Errors wrap
// [ErrInvalidDeclaration].
func (d Declaration) Validate() error {
	err := validate.Struct(d)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidDeclaration, d.Name, err)
	}

	return nil
}

// Level returns the generation level of the declaration.
func (d Declaration) Level() Level {
	return d.Kind.Level()
}

// HasReturn reports whether d is a method with a non-void return type.
func (d Declaration) HasReturn() bool {
	if d.Kind != KindMethod {
		return false
	}

	t := strings.TrimSpace(d.Type)

	return t != "" && t != "void"
}

// HasExisting reports whether d carries existing comment text.
func (d Declaration) HasExisting() bool {
	return d.Existing != nil
}

// SignatureText returns the declaration's signature. When Signature is empty,
// a best-effort signature is assembled from the other fields so template
// rules that match on signature shape still apply, e.g.
// "public static String getName(id)".
func (d Declaration) SignatureText() string {
	if d.Signature != "" {
		return d.Signature
	}

	var parts []string

	if d.Visibility != "" && d.Visibility != VisibilityDefault {
		parts = append(parts, string(d.Visibility))
	}

	parts = append(parts, d.Modifiers...)

	switch d.Kind {
	case KindType:
		parts = append(parts, "class", d.Name+typeParamSuffix(d.TypeParameters))

	case KindConstructor:
		parts = append(parts, d.Name+"("+strings.Join(d.Parameters, ", ")+")")

	case KindMethod:
		ret := d.Type
		if strings.TrimSpace(ret) == "" {
			ret = "void"
		}

		parts = append(parts, ret, d.Name+"("+strings.Join(d.Parameters, ", ")+")")

	case KindField:
		if d.Type != "" {
			parts = append(parts, d.Type)
		}

		parts = append(parts, d.Name)
	}

	return strings.Join(parts, " ")
}

func typeParamSuffix(params []string) string {
	if len(params) == 0 {
		return ""
	}

	return "<" + strings.Join(params, ", ") + ">"
}

// Ptr returns a pointer to s. It is a convenience for setting
// [Declaration.Existing].
func Ptr(s string) *string {
	return &s
}
