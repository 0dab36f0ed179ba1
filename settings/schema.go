package settings

import (
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/javadocs/decl"
)

var resolvedSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	s, err := Schema()
	if err != nil {
		return nil, err
	}

	return s.Resolve(nil)
})

// Schema returns the JSON Schema describing [Settings] documents. Unknown
// properties are rejected, and mode, levels, and visibilities are limited to
// their known values.
func Schema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[Settings](nil)
	if err != nil {
		return nil, fmt.Errorf("generate settings schema: %w", err)
	}

	s.Title = "javadocs settings"

	if p := s.Properties["mode"]; p != nil {
		p.Enum = enum(Modes())
	}

	if p := s.Properties["levels"]; p != nil && p.Items != nil {
		p.Items.Enum = enum(decl.Levels())
	}

	if p := s.Properties["visibilities"]; p != nil && p.Items != nil {
		p.Items.Enum = enum(decl.Visibilities())
	}

	return s, nil
}

func enum[T ~string](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = string(v)
	}

	return out
}

// validateDocument checks a decoded JSON document against [Schema].
func validateDocument(doc any) error {
	rs, err := resolvedSchema()
	if err != nil {
		return err
	}

	err = rs.Validate(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	return nil
}
