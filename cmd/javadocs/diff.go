package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"go.jacobcolvin.com/javadocs/generator"
)

// lookahead bounds how far the diff searches for a resynchronizing line.
const lookahead = 5

// differ prints line diffs between existing and generated comments.
type differ struct {
	w    io.Writer
	bold func(a ...any) string
	add  func(a ...any) string
	del  func(a ...any) string
}

func newDiffer(w io.Writer, colored bool) *differ {
	styles := []*color.Color{
		color.New(color.Bold),
		color.New(color.FgGreen),
		color.New(color.FgRed),
	}

	for _, c := range styles {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return &differ{
		w:    w,
		bold: styles[0].SprintFunc(),
		add:  styles[1].SprintFunc(),
		del:  styles[2].SprintFunc(),
	}
}

func (d *differ) header(name string, action generator.Action) {
	fmt.Fprintln(d.w, d.bold("--- "+name))
	fmt.Fprintln(d.w, d.bold(fmt.Sprintf("+++ %s (%s)", name, action)))
}

func (d *differ) line(prefix, text string) {
	switch prefix {
	case "+":
		fmt.Fprintln(d.w, d.add(prefix+text))
	case "-":
		fmt.Fprintln(d.w, d.del(prefix+text))
	default:
		fmt.Fprintln(d.w, prefix+text)
	}
}

// print writes a simple line diff of a and b. An empty a is treated as no
// lines at all.
func (d *differ) print(a, b string) {
	var aLines []string
	if a != "" {
		aLines = strings.Split(a, "\n")
	}

	bLines := strings.Split(b, "\n")

	ai, bi := 0, 0
	for ai < len(aLines) || bi < len(bLines) {
		switch {
		case ai >= len(aLines):
			d.line("+", bLines[bi])

			bi++

		case bi >= len(bLines):
			d.line("-", aLines[ai])

			ai++

		case aLines[ai] == bLines[bi]:
			d.line(" ", aLines[ai])

			ai++
			bi++

		default:
			n, ok := resync(aLines[ai+1:], bLines[bi])
			if ok {
				for j := range n {
					d.line("-", aLines[ai+j])
				}

				ai += n

				continue
			}

			n, ok = resync(bLines[bi+1:], aLines[ai])
			if ok {
				for j := range n {
					d.line("+", bLines[bi+j])
				}

				bi += n

				continue
			}

			d.line("-", aLines[ai])
			d.line("+", bLines[bi])

			ai++
			bi++
		}
	}
}

// resync returns how many lines to skip before target reappears within the
// first lines of rest, counting the current line.
func resync(rest []string, target string) (int, bool) {
	for i := 0; i < len(rest) && i < lookahead-1; i++ {
		if rest[i] == target {
			return i + 1, true
		}
	}

	return 0, false
}
