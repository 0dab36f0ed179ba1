// Package naming turns identifiers into the word fragments and short phrases
// used by documentation templates.
//
// [Split] breaks an identifier on character-type transitions, so
// "getHTTPResponseCode2" becomes "get", "HTTP", "Response", "Code", "2".
// [Describe] and [Partial] build the sentence-style phrases exposed to
// templates as name and partName.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type runeClass int

const (
	classUpper runeClass = iota
	classLower
	classTitle
	classDigit
	classLetter
	classSpace
	classConnector
	classDash
	classCurrency
	classOther
)

func classify(r rune) runeClass {
	switch {
	case unicode.IsUpper(r):
		return classUpper
	case unicode.IsLower(r):
		return classLower
	case unicode.IsTitle(r):
		return classTitle
	case unicode.IsDigit(r):
		return classDigit
	case unicode.IsLetter(r):
		return classLetter
	case unicode.IsSpace(r):
		return classSpace
	case unicode.Is(unicode.Pc, r):
		return classConnector
	case unicode.Is(unicode.Pd, r):
		return classDash
	case unicode.Is(unicode.Sc, r):
		return classCurrency
	}

	return classOther
}

// Split breaks name into fragments at every change of character class.
// An upper-case run followed by a lower-case letter gives its last letter to
// the following fragment, so acronyms stay whole: "HTTPResponse" splits into
// "HTTP" and "Response". Fragment order follows name; empty fragments are
// never produced.
func Split(name string) []string {
	runes := []rune(name)
	if len(runes) == 0 {
		return nil
	}

	var (
		fragments []string
		start     int
	)

	current := classify(runes[0])

	for pos := 1; pos < len(runes); pos++ {
		class := classify(runes[pos])
		if class == current {
			continue
		}

		if class == classLower && current == classUpper {
			split := pos - 1
			if split != start {
				fragments = append(fragments, string(runes[start:split]))
				start = split
			}
		} else {
			fragments = append(fragments, string(runes[start:pos]))
			start = pos
		}

		current = class
	}

	return append(fragments, string(runes[start:]))
}

// Simple strips generic arguments, array brackets, and package qualifiers
// from a type or declaration name: "java.util.List<String>[]" becomes "List".
func Simple(name string) string {
	name = strings.TrimSpace(name)

	if i := strings.IndexByte(name, '<'); i >= 0 {
		name = name[:i]
	}

	name = strings.TrimRight(name, "[] .")

	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}

	return name
}

// Describe returns name as a sentence fragment: the first word capitalized,
// the rest lower case, separated by spaces. "getHTTPResponseCode2" becomes
// "Get http response code 2".
func Describe(name string) string {
	fragments := Split(Simple(name))
	if len(fragments) == 0 {
		return ""
	}

	title := cases.Title(language.Und)
	lower := cases.Lower(language.Und)

	words := make([]string, len(fragments))
	for i, f := range fragments {
		if i == 0 {
			words[i] = title.String(f)

			continue
		}

		words[i] = lower.String(f)
	}

	return strings.Join(words, " ")
}

// Partial returns every fragment after the first, lower case, separated by
// spaces. It drops a leading verb: "getEnv" becomes "env" and
// "isReadOnly" becomes "read only". Single-fragment names yield "".
func Partial(name string) string {
	fragments := Split(Simple(name))
	if len(fragments) < 2 {
		return ""
	}

	lower := cases.Lower(language.Und)

	return lower.String(strings.Join(fragments[1:], " "))
}

// Phrase returns name as lower-case words: "IOException" becomes
// "io exception".
func Phrase(name string) string {
	fragments := Split(Simple(name))
	if len(fragments) == 0 {
		return ""
	}

	lower := cases.Lower(language.Und)

	return lower.String(strings.Join(fragments, " "))
}
