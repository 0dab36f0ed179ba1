package javadoc

import (
	"strings"

	"go.jacobcolvin.com/javadocs/naming"
)

// TagKind identifies the meaning of a block tag. The numeric order of the
// constants is the canonical order in which tags are emitted.
type TagKind int

const (
	// KindTypeParam is "@param <T>", keyed by type parameter name.
	KindTypeParam TagKind = iota
	// KindParam is "@param name", keyed by parameter name.
	KindParam
	// KindReturn is "@return".
	KindReturn
	// KindThrows is "@throws Type" (or "@exception Type"), keyed by type name.
	KindThrows
	// KindAuthor is "@author".
	KindAuthor
	// KindSince is "@since".
	KindSince
	// KindVersion is "@version".
	KindVersion
	// KindCustom is any other block tag, such as "@see" or "@deprecated".
	KindCustom
)

var kindNames = map[TagKind]string{
	KindTypeParam: "TYPE_PARAM",
	KindParam:     "PARAM",
	KindReturn:    "RETURN",
	KindThrows:    "THROWS",
	KindAuthor:    "AUTHOR",
	KindSince:     "SINCE",
	KindVersion:   "VERSION",
	KindCustom:    "CUSTOM",
}

// String implements [fmt.Stringer].
func (k TagKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return "UNKNOWN"
}

// Keyed reports whether tags of this kind are identified by a key.
func (k TagKind) Keyed() bool {
	return k == KindTypeParam || k == KindParam || k == KindThrows
}

// Structural reports whether the presence of tags of this kind is dictated by
// the declaration's shape rather than by templates or authors.
func (k TagKind) Structural() bool {
	return k.Keyed() || k == KindReturn
}

// Tag is one block tag of a [Comment].
//
// Key is set for keyed kinds only. Name is set for [KindCustom] only and holds
// the tag word without "@". Body is opaque text; multi-line bodies use "\n".
type Tag struct {
	Name string
	Key  string
	Body string
	Kind TagKind
}

// Param returns a [KindParam] tag.
func Param(name, body string) Tag {
	return Tag{Kind: KindParam, Key: name, Body: body}
}

// TypeParam returns a [KindTypeParam] tag.
func TypeParam(name, body string) Tag {
	return Tag{Kind: KindTypeParam, Key: name, Body: body}
}

// Return returns a [KindReturn] tag.
func Return(body string) Tag {
	return Tag{Kind: KindReturn, Body: body}
}

// Throws returns a [KindThrows] tag.
func Throws(typeName, body string) Tag {
	return Tag{Kind: KindThrows, Key: typeName, Body: body}
}

// Custom returns a [KindCustom] tag for the tag word name (without "@").
func Custom(name, body string) Tag {
	return Tag{Kind: KindCustom, Name: strings.TrimPrefix(name, "@"), Body: body}
}

// Word returns the tag word as written after "@".
func (t Tag) Word() string {
	switch t.Kind {
	case KindTypeParam, KindParam:
		return "param"
	case KindReturn:
		return "return"
	case KindThrows:
		return "throws"
	case KindAuthor:
		return "author"
	case KindSince:
		return "since"
	case KindVersion:
		return "version"
	case KindCustom:
		return t.Name
	}

	return ""
}

// Lines returns the body split into lines.
func (t Tag) Lines() []string {
	if t.Body == "" {
		return nil
	}

	return strings.Split(t.Body, "\n")
}

// identity is the uniqueness key of a tag within a comment.
type identity struct {
	key  string
	kind TagKind
}

func (t Tag) identity() identity {
	if t.Kind.Keyed() {
		return identity{kind: t.Kind, key: matchKey(t.Kind, t.Key)}
	}

	return identity{kind: t.Kind}
}

// matchKey returns the form of key used to compare tags of kind. Exception
// types compare by simple name, so "IOException" and "java.io.IOException"
// refer to the same tag.
func matchKey(kind TagKind, key string) string {
	if kind == KindThrows {
		return naming.Simple(key)
	}

	return key
}

// kindForWord maps a tag word to its kind. Unknown words are custom.
func kindForWord(word string) TagKind {
	switch word {
	case "param":
		return KindParam
	case "return", "returns":
		return KindReturn
	case "throws", "exception":
		return KindThrows
	case "author":
		return KindAuthor
	case "since":
		return KindSince
	case "version":
		return KindVersion
	}

	return KindCustom
}
