package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/javadocs/stringtest"
)

func TestDifferPrint(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		a, b string
		want string
	}{
		"identical": {
			a:    stringtest.JoinLF("a", "b"),
			b:    stringtest.JoinLF("a", "b"),
			want: stringtest.JoinLF(" a", " b", ""),
		},
		"from nothing": {
			b:    stringtest.JoinLF("a", "b"),
			want: stringtest.JoinLF("+a", "+b", ""),
		},
		"removed line": {
			a:    stringtest.JoinLF("a", "x", "b"),
			b:    stringtest.JoinLF("a", "b"),
			want: stringtest.JoinLF(" a", "-x", " b", ""),
		},
		"added lines": {
			a:    stringtest.JoinLF("a", "b"),
			b:    stringtest.JoinLF("a", "x", "y", "b"),
			want: stringtest.JoinLF(" a", "+x", "+y", " b", ""),
		},
		"changed line": {
			a:    stringtest.JoinLF("a", "old", "b"),
			b:    stringtest.JoinLF("a", "new", "b"),
			want: stringtest.JoinLF(" a", "-old", "+new", " b", ""),
		},
		"trailing removal": {
			a:    stringtest.JoinLF("a", "b", "c"),
			b:    "a",
			want: stringtest.JoinLF(" a", "-b", "-c", ""),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			newDiffer(&buf, false).print(tc.a, tc.b)
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestDifferColor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	newDiffer(&buf, true).print("", "a")
	assert.True(t, strings.HasPrefix(buf.String(), "\x1b[32m+a"), buf.String())
}
