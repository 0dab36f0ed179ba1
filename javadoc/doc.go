// Package javadoc models Javadoc-style documentation comments.
//
// A [Comment] holds description lines and block tags. Tags are typed by
// [TagKind] and, for parameters, type parameters, and exceptions, keyed by
// name. Comments are immutable and always keep their tags in canonical order:
//
//	@param <T>, @param, @return, @throws, @author, @since, @version, others
//
// [Parse] reads comment text tolerantly and never fails, [Format] writes it
// back, and [Merge] reconciles a hand-edited comment with a generated one:
//
//	merged := javadoc.Merge(javadoc.Parse(existing), generated)
//	fmt.Println(javadoc.Format(merged, javadoc.WithIndent("    ")))
//
// Tag bodies are opaque. They are trimmed and re-indented but never rewritten.
package javadoc
