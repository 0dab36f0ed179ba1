// Package render expands documentation templates against a [tmplctx.Context].
//
// Templates use [text/template] syntax. Variables are referenced as fields of
// the root context, for example:
//
//	Gets {{.partName}}.
//	Created by {{.USER}} on {{.DATE}}.
//	The constant {{.element.Name}}.
//
// A template that references a variable absent from the context fails with
// an [*UnresolvedVariableError] instead of rendering an empty string.
package render

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"text/template"
	"text/template/parse"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"go.jacobcolvin.com/javadocs/tmplctx"
)

var (
	// ErrUnresolvedVariable indicates a template referenced a variable that is
	// not set in the context.
	ErrUnresolvedVariable = errors.New("unresolved variable")

	// ErrInvalidTemplate indicates template text failed to parse.
	ErrInvalidTemplate = errors.New("invalid template")

	// ErrRender indicates template execution failed for a reason other than
	// an unresolved variable.
	ErrRender = errors.New("render template")

	errIndex = errors.New("index")
)

// missingKey matches the execution error text/template reports for a map
// lookup of an absent key under missingkey=error.
var missingKey = regexp.MustCompile(`map has no entry for key ("(?:[^"\\]|\\.)*")`)

// UnresolvedVariableError reports a template variable missing from the
// context. It wraps [ErrUnresolvedVariable].
type UnresolvedVariableError struct {
	Name     string
	Template string
}

func (e *UnresolvedVariableError) Error() string {
	return fmt.Sprintf("%s: %q in template %q", ErrUnresolvedVariable, e.Name, e.Template)
}

func (e *UnresolvedVariableError) Unwrap() error {
	return ErrUnresolvedVariable
}

// Funcs returns the functions available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"lower": func(s string) string {
			return cases.Lower(language.Und).String(s)
		},
		"upper": func(s string) string {
			return cases.Upper(language.Und).String(s)
		},
		"title": func(s string) string {
			return cases.Title(language.Und).String(s)
		},
		"capitalize": capitalize,
		"join": func(sep string, elems []string) string {
			return strings.Join(elems, sep)
		},
		"trim":  strings.TrimSpace,
		"index": index,
	}
}

// index replaces the builtin of the same name, which yields the zero value
// for a missing map key regardless of the missingkey option.
func index(item any, keys ...any) (any, error) {
	v := reflect.ValueOf(item)

	for _, key := range keys {
		for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return nil, fmt.Errorf("%w: nil value", errIndex)
			}

			v = v.Elem()
		}

		switch v.Kind() {
		case reflect.Map:
			k := reflect.ValueOf(key)
			if !k.IsValid() || !k.Type().AssignableTo(v.Type().Key()) {
				return nil, fmt.Errorf("%w: key %v has wrong type for %s", errIndex, key, v.Type())
			}

			elem := v.MapIndex(k)
			if !elem.IsValid() {
				return nil, &UnresolvedVariableError{Name: fmt.Sprint(key)}
			}

			v = elem

		case reflect.Slice, reflect.Array, reflect.String:
			i, ok := key.(int)
			if !ok {
				return nil, fmt.Errorf("%w: non-integer index %v for %s", errIndex, key, v.Type())
			}

			if i < 0 || i >= v.Len() {
				return nil, fmt.Errorf("%w: index %d out of range for length %d", errIndex, i, v.Len())
			}

			v = v.Index(i)

		default:
			return nil, fmt.Errorf("%w: cannot index %s", errIndex, v.Kind())
		}
	}

	if !v.IsValid() {
		return nil, nil //nolint:nilnil // Indexing nil with no keys yields nil.
	}

	return v.Interface(), nil
}

// Template is a parsed template. It is safe for concurrent use.
type Template struct {
	tmpl *template.Template
	vars []string
	text string
}

// Compile parses text as a template called name. Errors wrap
// [ErrInvalidTemplate].
func Compile(name, text string) (*Template, error) {
	tmpl, err := template.New(name).
		Funcs(Funcs()).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}

	var root *parse.ListNode
	if tmpl.Tree != nil {
		root = tmpl.Root
	}

	return &Template{
		tmpl: tmpl,
		text: text,
		vars: referencedVariables(root),
	}, nil
}

// MustCompile is like [Compile] but panics on error. It is intended for
// templates defined in code.
func MustCompile(name, text string) *Template {
	t, err := Compile(name, text)
	if err != nil {
		panic(err)
	}

	return t
}

// Name returns the template name.
func (t *Template) Name() string {
	return t.tmpl.Name()
}

// Text returns the template source.
func (t *Template) Text() string {
	return t.text
}

// Variables returns the root context variables the template references, in
// order of first use.
func (t *Template) Variables() []string {
	return append([]string(nil), t.vars...)
}

// Execute renders the template against ctx. Root variables are checked
// before rendering. Lookups the check cannot see, such as through a local
// variable, a defined template, or index, fail during execution. Either way a
// missing key yields an [*UnresolvedVariableError] and no partial output.
func (t *Template) Execute(ctx tmplctx.Context) (string, error) {
	for _, name := range t.vars {
		if !ctx.Has(name) {
			return "", &UnresolvedVariableError{Name: name, Template: t.Name()}
		}
	}

	var sb strings.Builder

	err := t.tmpl.Execute(&sb, ctx.Map())
	if err != nil {
		return "", t.execError(err)
	}

	return sb.String(), nil
}

func (t *Template) execError(err error) error {
	var uve *UnresolvedVariableError
	if errors.As(err, &uve) {
		return &UnresolvedVariableError{Name: uve.Name, Template: t.Name()}
	}

	m := missingKey.FindStringSubmatch(err.Error())
	if m != nil {
		name, unquoteErr := strconv.Unquote(m[1])
		if unquoteErr == nil {
			return &UnresolvedVariableError{Name: name, Template: t.Name()}
		}
	}

	return fmt.Errorf("%w: %w", ErrRender, err)
}

// Render compiles and executes text in one step.
func Render(text string, ctx tmplctx.Context) (string, error) {
	t, err := Compile("inline", text)
	if err != nil {
		return "", err
	}

	return t.Execute(ctx)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// referencedVariables lists the root fields a template references, either
// as ".name" where dot is the root or as "$.name" anywhere.
func referencedVariables(root *parse.ListNode) []string {
	var (
		names []string
		seen  = map[string]bool{}
	)

	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	var (
		walk     func(n parse.Node, atRoot bool)
		walkPipe func(p *parse.PipeNode, atRoot bool)
	)

	walkArg := func(arg parse.Node, atRoot bool) {
		switch a := arg.(type) {
		case *parse.FieldNode:
			if atRoot {
				add(a.Ident[0])
			}

		case *parse.VariableNode:
			if len(a.Ident) > 1 && a.Ident[0] == "$" {
				add(a.Ident[1])
			}

		case *parse.ChainNode:
			if p, ok := a.Node.(*parse.PipeNode); ok {
				walkPipe(p, atRoot)
			}

		case *parse.PipeNode:
			walkPipe(a, atRoot)
		}
	}

	walkPipe = func(p *parse.PipeNode, atRoot bool) {
		if p == nil {
			return
		}

		for _, cmd := range p.Cmds {
			for _, arg := range cmd.Args {
				walkArg(arg, atRoot)
			}
		}
	}

	walk = func(n parse.Node, atRoot bool) {
		switch n := n.(type) {
		case *parse.ListNode:
			if n == nil {
				return
			}

			for _, child := range n.Nodes {
				walk(child, atRoot)
			}

		case *parse.ActionNode:
			walkPipe(n.Pipe, atRoot)

		case *parse.IfNode:
			walkPipe(n.Pipe, atRoot)
			walk(n.List, atRoot)
			walk(n.ElseList, atRoot)

		case *parse.RangeNode:
			walkPipe(n.Pipe, atRoot)
			walk(n.List, false)
			walk(n.ElseList, atRoot)

		case *parse.WithNode:
			walkPipe(n.Pipe, atRoot)
			walk(n.List, false)
			walk(n.ElseList, atRoot)

		case *parse.TemplateNode:
			walkPipe(n.Pipe, atRoot)
		}
	}

	walk(root, true)

	return names
}
