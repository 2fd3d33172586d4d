// Package patch holds the text rewrites applied to generated build scripts.
//
// The rewrites are pattern based, not lexer based: a "//" inside a string
// literal is treated as the start of a comment.
package patch

import "regexp"

var (
	lineComment = regexp.MustCompile(`//.*`)
	blankRun    = regexp.MustCompile(`\n\s*\n+`)
)

// StripCommentsAndBlankRuns removes every line comment and collapses runs of
// blank lines into a single newline. It is idempotent.
func StripCommentsAndBlankRuns(source string) string {
	out := lineComment.ReplaceAllString(source, "")
	return blankRun.ReplaceAllString(out, "\n")
}
