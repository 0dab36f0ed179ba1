package tmplctx

import (
	"log/slog"
	"strings"
	"time"

	"go.jacobcolvin.com/javadocs/decl"
	"go.jacobcolvin.com/javadocs/naming"
)

// Well-known variable names.
const (
	KeyDate           = "DATE"
	KeyTime           = "TIME"
	KeyYear           = "YEAR"
	KeyMonth          = "MONTH"
	KeyMonthNameShort = "MONTH_NAME_SHORT"
	KeyMonthNameFull  = "MONTH_NAME_FULL"
	KeyDay            = "DAY"
	KeyDayNameShort   = "DAY_NAME_SHORT"
	KeyDayNameFull    = "DAY_NAME_FULL"
	KeyHour           = "HOUR"
	KeyMinute         = "MINUTE"
	KeySecond         = "SECOND"
	KeyUser           = "USER"
	KeyAuthor         = "AUTHOR"
	KeyProductName    = "PRODUCT_NAME"
	KeyProjectName    = "PROJECT_NAME"
	KeyDollarSign     = "DS"
	KeyNow            = "NOW"
	KeyVersion        = "VERSION"
	KeyBaseVersion    = "BASE_VERSION"
)

// Declaration-derived variable names. User variables cannot override these.
const (
	// KeyName is the declaration name as a sentence fragment, e.g. "Get env".
	KeyName = "name"
	// KeyPartName is the name without its first word, e.g. "env".
	KeyPartName = "partName"
	// KeySplitNames is the name split into fragments, as a []string.
	KeySplitNames = "splitNames"
	// KeyElement is the [decl.Declaration] itself.
	KeyElement = "element"
	// KeyReturnType is the raw return type of a method, or "".
	KeyReturnType = "returnType"
	// KeyReturnName is the return type as lower-case words, e.g. "string".
	KeyReturnName = "returnName"
	// KeyKey is the name a tag body is keyed by: a parameter, type parameter,
	// or exception type. It is set while rendering keyed tag bodies.
	KeyKey = "key"
	// KeyKeyName is [KeyKey] as lower-case words.
	KeyKeyName = "keyName"
)

// DefaultVersion is used when no VERSION variable is set.
const DefaultVersion = "1.0"

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
	nowLayout  = "2006/01/02"
)

var reserved = map[string]bool{
	KeyName:       true,
	KeyPartName:   true,
	KeySplitNames: true,
	KeyElement:    true,
	KeyReturnType: true,
	KeyReturnName: true,
	KeyKey:        true,
	KeyKeyName:    true,
}

// IsReserved reports whether name is a declaration-derived variable that user
// variables cannot override.
func IsReserved(name string) bool {
	return reserved[name]
}

// Environment holds values supplied by the host rather than derived from the
// declaration.
type Environment struct {
	User        string `json:"user,omitempty"`
	ProductName string `json:"productName,omitempty"`
	ProjectName string `json:"projectName,omitempty"`
}

type resolveOptions struct {
	rawTypeName bool
}

// Option configures [Resolve].
type Option func(*resolveOptions)

// WithRawTypeName sets the name variable of type declarations to the plain
// simple name ("HttpClient") instead of a sentence fragment ("Http client").
func WithRawTypeName(raw bool) Option {
	return func(o *resolveOptions) {
		o.rawTypeName = raw
	}
}

// Resolve builds the template [Context] for d.
//
// All date and time variables derive from now, so they agree with each other.
// User variables in vars are applied after the environment values and may
// override them, but never declaration-derived variables (see [IsReserved]);
// those are skipped with a warning. VERSION then defaults to
// [DefaultVersion] when unset or empty, and BASE_VERSION defaults to the
// resolved VERSION.
func Resolve(d decl.Declaration, now time.Time, env Environment, vars map[string]string, opts ...Option) Context {
	o := resolveOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	values := map[string]any{
		KeyDate:           now.Format(dateLayout),
		KeyTime:           now.Format(timeLayout),
		KeyYear:           now.Format("2006"),
		KeyMonth:          now.Format("01"),
		KeyMonthNameShort: now.Format("Jan"),
		KeyMonthNameFull:  now.Format("January"),
		KeyDay:            now.Format("02"),
		KeyDayNameShort:   now.Format("Mon"),
		KeyDayNameFull:    now.Format("Monday"),
		KeyHour:           now.Format("15"),
		KeyMinute:         now.Format("04"),
		KeySecond:         now.Format("05"),
		KeyNow:            now.Format(nowLayout),
		KeyUser:           env.User,
		KeyAuthor:         env.User,
		KeyProductName:    env.ProductName,
		KeyProjectName:    env.ProjectName,
		KeyDollarSign:     "$",
	}

	simple := naming.Simple(d.Name)

	name := naming.Describe(d.Name)
	if d.Kind == decl.KindType && o.rawTypeName {
		name = simple
	}

	splitNames := naming.Split(simple)
	if splitNames == nil {
		splitNames = []string{}
	}

	returnType := ""
	if d.HasReturn() {
		returnType = strings.TrimSpace(d.Type)
	}

	values[KeyName] = name
	values[KeyPartName] = naming.Partial(d.Name)
	values[KeySplitNames] = splitNames
	values[KeyElement] = d
	values[KeyReturnType] = returnType
	values[KeyReturnName] = naming.Phrase(returnType)

	for k, v := range vars {
		if reserved[k] {
			slog.Warn("ignoring variable that shadows a declaration value",
				slog.String("variable", k),
				slog.String("declaration", d.Name),
			)

			continue
		}

		values[k] = v
	}

	if s, _ := values[KeyVersion].(string); s == "" {
		values[KeyVersion] = DefaultVersion
	}

	if s, _ := values[KeyBaseVersion].(string); s == "" {
		values[KeyBaseVersion] = values[KeyVersion]
	}

	return Context{values: values}
}
