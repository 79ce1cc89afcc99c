package extraction

import (
	"regexp"
	"strings"
)

var (
	nonASCII     = regexp.MustCompile(`[^\x00-\x7F]+`)
	whitespace   = regexp.MustCompile(`\s+`)
	nonPrintable = regexp.MustCompile(`[^\x20-\x7E]+`)
)

type replacement struct {
	re   *regexp.Regexp
	with string
}

var decorations = []replacement{
	{regexp.MustCompile(`\|`), "-"},
	{regexp.MustCompile(`_{3,}`), ""},
	{regexp.MustCompile(`={3,}`), ""},
	{regexp.MustCompile(`#{3,}`), ""},
	{regexp.MustCompile(`\*{3,}`), ""},
	{regexp.MustCompile(`[<>]{3,}`), ""},
	{regexp.MustCompile(`\.{3,}`), "."},
}

// Flatten reduces text to a single line of printable ASCII. Tabs and line
// breaks become single spaces.
func Flatten(text string) string {
	text = nonASCII.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, " ")
	text = nonPrintable.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// CleanText flattens résumé text and strips decorative separator runs before
// it is sent for parsing.
func CleanText(text string) string {
	text = Flatten(text)
	for _, r := range decorations {
		text = r.re.ReplaceAllString(text, r.with)
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}
