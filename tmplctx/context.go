// Package tmplctx builds the variables available to documentation templates.
//
// [Resolve] captures everything a template may reference for one declaration:
// date and time fields derived from a single timestamp, environment values,
// names derived from the declaration, and user-defined variables. The result
// is an immutable [Context].
package tmplctx

import (
	"maps"
	"slices"
)

// Context is an immutable mapping from variable name to value.
// The zero value is an empty context.
type Context struct {
	values map[string]any
}

// Get returns the value of the named variable.
func (c Context) Get(name string) (any, bool) {
	v, ok := c.values[name]

	return v, ok
}

// String returns the named variable if it holds a string, or "".
func (c Context) String(name string) string {
	s, _ := c.values[name].(string)

	return s
}

// Has reports whether the named variable is set.
func (c Context) Has(name string) bool {
	_, ok := c.values[name]

	return ok
}

// Keys returns the variable names in sorted order.
func (c Context) Keys() []string {
	return slices.Sorted(maps.Keys(c.values))
}

// Len returns the number of variables.
func (c Context) Len() int {
	return len(c.values)
}

// With returns a copy of c with name set to value. c is unchanged.
func (c Context) With(name string, value any) Context {
	values := make(map[string]any, len(c.values)+1)
	maps.Copy(values, c.values)
	values[name] = value

	return Context{values: values}
}

// Map returns a copy of the variables, suitable as template data.
func (c Context) Map() map[string]any {
	return maps.Clone(c.values)
}
