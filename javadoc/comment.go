package javadoc

import (
	"slices"
	"strings"
)

// Comment is a parsed documentation comment: description lines followed by
// block tags.
//
// A Comment is immutable once constructed. Tags are always held in canonical
// order (see [TagKind]) and carry at most one tag per kind and key, except for
// [KindCustom] tags, which may repeat.
type Comment struct {
	description []string
	tags        []Tag
}

// New returns a [Comment] with the given description lines and tags.
//
// Description lines lose trailing whitespace, and leading and trailing blank
// lines are dropped. Tag bodies are trimmed line by line. A tag repeating the
// kind and key of an earlier one has its body appended to the earlier tag, so
// no text is lost. Tags are then stably sorted into canonical order.
func New(description []string, tags ...Tag) *Comment {
	c := &Comment{description: normalizeDescription(description)}

	seen := map[identity]int{}

	for _, t := range tags {
		t.Body = normalizeBody(t.Body)
		if t.Kind != KindCustom {
			t.Name = ""
		}

		if !t.Kind.Keyed() {
			t.Key = ""
		}

		if t.Kind == KindCustom {
			c.tags = append(c.tags, t)

			continue
		}

		id := t.identity()
		if i, ok := seen[id]; ok {
			c.tags[i].Body = joinBodies(c.tags[i].Body, t.Body)

			continue
		}

		seen[id] = len(c.tags)
		c.tags = append(c.tags, t)
	}

	slices.SortStableFunc(c.tags, func(a, b Tag) int {
		return int(a.Kind) - int(b.Kind)
	})

	return c
}

// Description returns a copy of the description lines.
func (c *Comment) Description() []string {
	if c == nil {
		return nil
	}

	return slices.Clone(c.description)
}

// DescriptionText returns the description lines joined with "\n".
func (c *Comment) DescriptionText() string {
	return strings.Join(c.Description(), "\n")
}

// HasDescription reports whether the description has any non-blank line.
func (c *Comment) HasDescription() bool {
	return c != nil && len(c.description) > 0
}

// Tags returns a copy of the tags in canonical order.
func (c *Comment) Tags() []Tag {
	if c == nil {
		return nil
	}

	return slices.Clone(c.tags)
}

// TagsOf returns the tags of the given kind, in order.
func (c *Comment) TagsOf(kind TagKind) []Tag {
	var out []Tag

	for _, t := range c.Tags() {
		if t.Kind == kind {
			out = append(out, t)
		}
	}

	return out
}

// Tag returns the tag with the given kind and key. The key is ignored for
// unkeyed kinds, and [KindThrows] keys match on the simple type name. For
// [KindCustom], key is matched against the tag name and the first match is
// returned.
func (c *Comment) Tag(kind TagKind, key string) (Tag, bool) {
	if c == nil {
		return Tag{}, false
	}

	for _, t := range c.tags {
		if t.Kind != kind {
			continue
		}

		switch {
		case kind == KindCustom && t.Name != key:
			continue
		case kind.Keyed() && matchKey(kind, t.Key) != matchKey(kind, key):
			continue
		}

		return t, true
	}

	return Tag{}, false
}

// IsEmpty reports whether c has neither description nor tags.
func (c *Comment) IsEmpty() bool {
	return c == nil || (len(c.description) == 0 && len(c.tags) == 0)
}

// Equal reports whether c and other have the same description and tags.
func (c *Comment) Equal(other *Comment) bool {
	return slices.Equal(c.Description(), other.Description()) &&
		slices.Equal(c.Tags(), other.Tags())
}

// String returns the comment formatted with default options.
func (c *Comment) String() string {
	return Format(c)
}

func normalizeDescription(lines []string) []string {
	var out []string

	for _, line := range lines {
		for part := range strings.SplitSeq(line, "\n") {
			out = append(out, strings.TrimRight(part, " \t\r"))
		}
	}

	return trimBlankEdges(out)
}

func normalizeBody(body string) string {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	return strings.Join(trimBlankEdges(lines), "\n")
}

func trimBlankEdges(lines []string) []string {
	start, end := 0, len(lines)

	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}

	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}

	if start == end {
		return nil
	}

	return lines[start:end]
}

func joinBodies(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}

	return a + "\n" + b
}
