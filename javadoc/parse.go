package javadoc

import (
	"strings"
	"unicode"
)

// Parse reads raw comment text into a [Comment].
//
// The comment delimiters ("/**", "*/") and each line's leading "*" are
// optional. A line starts a tag when it begins with "@" followed by a letter
// and, for "@param", "@throws", and "@exception", a key. Every other line is
// appended to the open section: the description, or the body of the last
// tag. Such a line starting with "{@literal @}" has it read as "@", undoing
// the escape [Format] writes. Parse never fails; unrecognized content is kept
// as text.
func Parse(raw string) *Comment {
	var (
		description []string
		tags        []Tag
		open        *Tag
		bodyLines   []string
	)

	closeTag := func() {
		if open == nil {
			return
		}

		open.Body = strings.Join(bodyLines, "\n")
		tags = append(tags, *open)
		open = nil
		bodyLines = nil
	}

	for _, line := range commentLines(raw) {
		if t, ok := parseTagStart(line); ok {
			closeTag()

			open = &t
			bodyLines = []string{t.Body}

			continue
		}

		line = unescapeLine(line)

		if open != nil {
			bodyLines = append(bodyLines, strings.TrimSpace(line))

			continue
		}

		description = append(description, line)
	}

	closeTag()

	return New(description, tags...)
}

// commentLines strips comment delimiters and line prefixes from raw.
func commentLines(raw string) []string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.TrimSpace(text)

	switch {
	case strings.HasPrefix(text, "/**"):
		text = text[len("/**"):]
	case strings.HasPrefix(text, "/*"):
		text = text[len("/*"):]
	}

	text = strings.TrimSuffix(text, "*/")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = stripLinePrefix(line)
	}

	return lines
}

func stripLinePrefix(line string) string {
	trimmed := strings.TrimLeft(line, " \t")

	rest, ok := strings.CutPrefix(trimmed, "*")
	if !ok {
		return strings.TrimRight(trimmed, " \t")
	}

	rest = strings.TrimPrefix(rest, " ")

	return strings.TrimRight(rest, " \t")
}

// parseTagStart reports whether line opens a block tag, and returns the tag
// with its first body line.
func parseTagStart(line string) (Tag, bool) {
	s := strings.TrimSpace(line)
	if len(s) < 2 || s[0] != '@' {
		return Tag{}, false
	}

	word, rest := splitWord(s[1:])
	if word == "" || !unicode.IsLetter(rune(word[0])) {
		return Tag{}, false
	}

	kind := kindForWord(word)

	switch kind {
	case KindParam:
		key, body := splitToken(rest)
		if key == "" {
			return Tag{}, false
		}

		if name, ok := typeParamName(key); ok {
			return TypeParam(name, body), true
		}

		return Param(key, body), true

	case KindThrows:
		key, body := splitToken(rest)
		if key == "" {
			return Tag{}, false
		}

		return Throws(key, body), true

	case KindCustom:
		return Custom(word, rest), true
	}

	return Tag{Kind: kind, Body: rest}, true
}

// splitWord splits s after the tag word, which ends at the first rune that is
// not a letter, digit, '-', or '.'.
func splitWord(s string) (string, string) {
	end := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '.'
	})
	if end < 0 {
		return s, ""
	}

	return s[:end], strings.TrimSpace(s[end:])
}

// splitToken splits s at its first run of whitespace.
func splitToken(s string) (string, string) {
	s = strings.TrimSpace(s)

	end := strings.IndexFunc(s, unicode.IsSpace)
	if end < 0 {
		return s, ""
	}

	return s[:end], strings.TrimSpace(s[end:])
}

func typeParamName(key string) (string, bool) {
	if len(key) < 3 || key[0] != '<' || key[len(key)-1] != '>' {
		return "", false
	}

	return key[1 : len(key)-1], true
}
