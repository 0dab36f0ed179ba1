package javadoc

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	// continuationIndent prefixes tag body lines after the first.
	continuationIndent = "    "

	// literalAt replaces an "@" at the start of a text line, where Parse
	// would otherwise read a block tag.
	literalAt = "{@literal @}"
)

type formatOptions struct {
	indent string
	width  int
}

// FormatOption configures [Format].
type FormatOption func(*formatOptions)

// WithIndent prefixes every emitted line with indent, typically the
// indentation of the declaration the comment belongs to.
func WithIndent(indent string) FormatOption {
	return func(o *formatOptions) {
		o.indent = indent
	}
}

// WithWidth wraps tag bodies so lines, including the indent and the " * "
// prefix, fit within width display columns where possible. Words longer than
// the width are never broken. Zero disables wrapping.
func WithWidth(width int) FormatOption {
	return func(o *formatOptions) {
		o.width = width
	}
}

// Format serializes c as a block comment:
//
//	/**
//	 * Description.
//	 *
//	 * @param name the name
//	 * @return the result
//	 */
//
// Tags are written in canonical order, one per line group. Multi-line bodies
// continue on following lines with extra indentation. A description or
// continuation line starting with "@" is written as "{@literal @}", which
// [Parse] reads back as "@". The result has no trailing newline.
func Format(c *Comment, opts ...FormatOption) string {
	o := formatOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	lines := []string{"/**"}

	for _, line := range c.Description() {
		lines = append(lines, starLine(escapeLine(line)))
	}

	tags := c.Tags()
	if c.HasDescription() && len(tags) > 0 {
		lines = append(lines, " *")
	}

	for _, t := range tags {
		for _, line := range formatTag(t, o) {
			lines = append(lines, starLine(line))
		}
	}

	lines = append(lines, " */")

	if o.indent != "" {
		for i, line := range lines {
			lines[i] = o.indent + line
		}
	}

	return strings.Join(lines, "\n")
}

func starLine(line string) string {
	if line == "" {
		return " *"
	}

	return " * " + line
}

func formatTag(t Tag, o formatOptions) []string {
	head := "@" + t.Word()

	switch t.Kind {
	case KindTypeParam:
		head += " <" + t.Key + ">"
	case KindParam, KindThrows:
		head += " " + t.Key
	}

	body := t.Lines()
	if len(body) == 0 {
		return []string{head}
	}

	avail := 0
	if o.width > 0 {
		avail = o.width - runewidth.StringWidth(o.indent+" * ")
	}

	var out []string

	for i, line := range body {
		prefix := continuationIndent
		if i == 0 {
			prefix = head + " "
		} else {
			line = escapeLine(line)
		}

		if line == "" {
			out = append(out, "")

			continue
		}

		out = append(out, wrapLine(prefix, line, avail)...)
	}

	return out
}

// wrapLine wraps words onto lines no wider than width, the first line starting
// with prefix and the rest with [continuationIndent]. A width of zero or less
// disables wrapping.
func wrapLine(prefix, text string, width int) []string {
	if width <= 0 {
		return []string{prefix + text}
	}

	var (
		lines []string
		buf   strings.Builder
	)

	buf.WriteString(prefix)

	lineLen := runewidth.StringWidth(prefix)
	empty := true

	for _, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)

		switch {
		case empty:
			buf.WriteString(word)

			lineLen += w
			empty = false

		case lineLen+1+w > width:
			word = escapeLine(word)

			lines = append(lines, buf.String())
			buf.Reset()
			buf.WriteString(continuationIndent)
			buf.WriteString(word)

			lineLen = runewidth.StringWidth(continuationIndent + word)

		default:
			buf.WriteString(" ")
			buf.WriteString(word)

			lineLen += 1 + w
		}
	}

	return append(lines, buf.String())
}

func escapeLine(line string) string {
	text := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(text, "@") {
		return line
	}

	return line[:len(line)-len(text)] + literalAt + text[1:]
}

func unescapeLine(line string) string {
	text := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(text, literalAt) {
		return line
	}

	return line[:len(line)-len(text)] + "@" + text[len(literalAt):]
}
