// Package markup rewrites a model's raw markdown-ish output into the small
// HTML subset the clients accept.
package markup

import "regexp"

// stage is one pure rewrite step. Stages run in a fixed order and later
// stages depend on earlier output: bold runs before emphasis so doubled
// asterisks are already consumed, list wrapping runs before the newline
// substitution so breaks inside lists do not survive as <br>.
type stage struct {
	name string
	re   *regexp.Regexp
	repl string
}

var pipeline = []stage{
	{"bold", regexp.MustCompile(`\*\*(.+?)\*\*`), "<strong>$1</strong>"},
	{"emphasis", regexp.MustCompile(`\*([^\s*][^*]*?)\*`), "<em>$1</em>"},
	{"list-item", regexp.MustCompile(`(?m)^\* (.*)$`), "<li>$1</li>"},
	{"list-wrap", regexp.MustCompile(`(?m)^(<li>.*</li>)$`), "<ul>$1</ul>"},
	{"list-merge", regexp.MustCompile(`</ul>\s*<ul>`), ""},
	{"line-break", regexp.MustCompile(`\n`), "<br>"},
}

// Render applies the full pipeline. Plain text without trigger characters
// passes through untouched except for newline substitution.
func Render(raw string) string {
	out := raw
	for _, s := range pipeline {
		out = s.re.ReplaceAllString(out, s.repl)
	}
	return out
}
