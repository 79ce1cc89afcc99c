package rubric

import (
	"regexp"
	"strings"

	"github.com/spigell/ats-scorer/internal/extraction"
)

const maxSentences = 20

var sentenceBreak = regexp.MustCompile(`[.!?]+`)

func flatten(text string) string {
	return extraction.Flatten(text)
}

// SplitSentences flattens text and returns up to twenty sentences whose
// trimmed length exceeds ten characters.
func SplitSentences(text string) []string {
	var out []string
	for _, s := range sentenceBreak.Split(flatten(text), -1) {
		s = strings.TrimSpace(s)
		if len(s) <= minHighlightLength {
			continue
		}
		out = append(out, s)
		if len(out) == maxSentences {
			break
		}
	}
	return out
}
