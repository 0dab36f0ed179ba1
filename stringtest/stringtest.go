// Package stringtest builds multi-line strings for test expectations.
package stringtest

import "strings"

// Input dedents a raw string literal so test inputs can be written indented
// alongside the test code. One leading and one trailing newline are removed,
// the indentation common to all non-blank lines is stripped, and
// whitespace-only lines become empty.
//
// Example:
//
//	in := stringtest.Input(`
//		/**
//		 * The type Main.
//		 */`) // -> "/**\n * The type Main.\n */"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	indent := -1

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		if indent > 0 {
			lines[i] = line[indent:]
		}
	}

	return strings.Join(lines, "\n")
}

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"line1",
//		"line2",
//	) // -> "line1\nline2"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// JoinCRLF joins multiple strings with CRLF line endings, for inputs written
// on Windows.
func JoinCRLF(ss ...string) string {
	return strings.Join(ss, "\r\n")
}

// Javadoc wraps body lines in a block comment the way a formatter emits one:
// "/**", then " * " before each line (" *" for empty lines), then " */".
//
// Example:
//
//	want := stringtest.Javadoc(
//		"The type Main.",
//		"",
//		"@param args the args",
//	)
func Javadoc(lines ...string) string {
	out := make([]string, 0, len(lines)+2)
	out = append(out, "/**")

	for _, line := range lines {
		if line == "" {
			out = append(out, " *")

			continue
		}

		out = append(out, " * "+line)
	}

	out = append(out, " */")

	return JoinLF(out...)
}
