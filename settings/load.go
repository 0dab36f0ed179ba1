package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

// Format is a settings document encoding.
type Format string

const (
	// FormatYAML is YAML. JSON documents are also accepted as YAML.
	FormatYAML Format = "yaml"
	// FormatJSON is JSON.
	FormatJSON Format = "json"
	// FormatTOML is TOML.
	FormatTOML Format = "toml"
)

// FormatForPath returns the [Format] implied by path's extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// Loader reads settings files from an [afero.Fs]. Use [afero.NewOsFs] for
// real files and [afero.NewMemMapFs] in tests.
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a [Loader] reading from fs.
func NewLoader(fs afero.Fs) *Loader {
	return &Loader{fs: fs}
}

// NewOsLoader creates a [Loader] reading from the operating system.
func NewOsLoader() *Loader {
	return NewLoader(afero.NewOsFs())
}

// Load reads, validates, and decodes the settings file at path. The format
// is chosen by extension. Defaults are not applied.
func (l *Loader) Load(path string) (*Settings, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSettings, err)
	}

	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// LoadCompiled loads the file at path and compiles it.
func (l *Loader) LoadCompiled(path string) (*Compiled, error) {
	s, err := l.Load(path)
	if err != nil {
		return nil, err
	}

	return Compile(*s)
}

// Parse decodes a settings document. The document is converted to JSON,
// validated against [Schema], and decoded into [Settings]. An empty document
// yields zero settings.
func Parse(data []byte, format Format) (*Settings, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Settings{}, nil
	}

	jsonData, err := toJSON(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	var doc any

	err = json.Unmarshal(jsonData, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	err = validateDocument(doc)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.DisallowUnknownFields()

	s := &Settings{}

	err = dec.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	return s, nil
}

func toJSON(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatYAML, FormatJSON:
		out, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", format, err)
		}

		return out, nil

	case FormatTOML:
		var doc map[string]any

		err := toml.Unmarshal(data, &doc)
		if err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}

		out, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode toml document: %w", err)
		}

		return out, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Marshal encodes s as YAML.
func Marshal(s Settings) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(s, yaml.Indent(2), yaml.UseLiteralStyleIfMultiline(true))
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}

	return out, nil
}
