package scoring

import (
	"regexp"
	"slices"
	"strings"
)

// Clean-formatting limits.
const (
	cleanFormattingMax       = 3
	problemPenalty           = 1.5
	inconsistencyPenalty     = 1
	sectionPenalty           = 0.5
	maxLineLengthDelta       = 100
	minExperienceEntryLength = 20
)

// problemPatterns are looked for after normalization, so most of them are
// already rewritten away by then.
var problemPatterns = []string{
	"\uFFFD", "‾", "\t\t", "|||", "___", "===", "```", "###", "***", "<<<", ">>>", "...", "   ", "\n\n\n",
}

type rewrite struct {
	re   *regexp.Regexp
	with string
}

// decorations rewrite exotic punctuation runs once whitespace is settled.
var decorations = []rewrite{
	{regexp.MustCompile(`[|─═]`), "-"},
	{regexp.MustCompile(`[•●]`), "-"},
	{regexp.MustCompile(`‾+`), ""},
	{regexp.MustCompile(`_{3,}`), ""},
	{regexp.MustCompile(`={3,}`), ""},
	{regexp.MustCompile(`#{3,}`), ""},
	{regexp.MustCompile(`\*{3,}`), ""},
	{regexp.MustCompile(`[<>]{3,}`), ""},
	{regexp.MustCompile(`\.{3,}`), "."},
}

var (
	flatNormalizers = slices.Concat([]rewrite{
		{regexp.MustCompile(`[\x{0080}-\x{10FFFF}]`), ""},
		{regexp.MustCompile(`\s+`), " "},
		{regexp.MustCompile(`[^\x20-\x7E]`), ""},
	}, decorations)

	lineNormalizers = slices.Concat([]rewrite{
		{regexp.MustCompile(`[\x{0080}-\x{10FFFF}]`), ""},
		{regexp.MustCompile(`[^\x20-\x7E\n]`), ""},
		{regexp.MustCompile(`[ \t\f\v\r]+`), " "},
	}, decorations, []rewrite{
		{regexp.MustCompile(`\n{3,}`), "\n\n"},
	})
)

// FormatOptions tunes the clean-formatting checks.
type FormatOptions struct {
	// KeepLines preserves line breaks during normalization so the
	// adjacent-line and section checks see individual lines. When off, the
	// text is flattened to a single line and only the pattern check applies.
	KeepLines bool
}

var (
	yearPattern   = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	schoolPattern = regexp.MustCompile(`(?i)university|college|institute|school`)
	degreePattern = regexp.MustCompile(`(?i)bachelor|master|phd|bs|ba|ms|ma|degree`)
	titlePattern  = regexp.MustCompile(`(?i)engineer|developer|manager|analyst|specialist|coordinator`)
)

// Normalize strips non-ASCII text, collapses all whitespace including line
// breaks and rewrites decorative punctuation runs.
func Normalize(text string) string {
	return NormalizeWith(text, FormatOptions{})
}

// NormalizeWith is Normalize with explicit options.
func NormalizeWith(text string, opts FormatOptions) string {
	chain := flatNormalizers
	if opts.KeepLines {
		chain = lineNormalizers
	}
	for _, n := range chain {
		text = n.re.ReplaceAllString(text, n.with)
	}
	return strings.TrimSpace(text)
}

type section int

const (
	sectionNone section = iota
	sectionEducation
	sectionExperience
)

// next returns the section a trimmed, lowercased line switches to.
func (s section) next(line string) section {
	switch {
	case strings.Contains(line, "education"):
		return sectionEducation
	case strings.Contains(line, "experience"), strings.Contains(line, "work history"):
		return sectionExperience
	default:
		return s
	}
}

func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•")
}

func mixedBullets(prev, cur string) bool {
	return (strings.HasPrefix(cur, "-") && strings.HasPrefix(prev, "•")) ||
		(strings.HasPrefix(cur, "•") && strings.HasPrefix(prev, "-"))
}

func educationLineOK(line string) bool {
	return yearPattern.MatchString(line) || schoolPattern.MatchString(line) || degreePattern.MatchString(line)
}

func experienceLineOK(line string) bool {
	return yearPattern.MatchString(line) || titlePattern.MatchString(line) || len(line) > minExperienceEntryLength
}

// FormattingIssues records which clean-formatting deductions apply.
type FormattingIssues struct {
	ProblemPatterns bool
	Inconsistent    bool
	PoorEducation   bool
	PoorExperience  bool
}

// Score is the clean-formatting score for the issues, floored at zero.
func (f FormattingIssues) Score() float64 {
	score := float64(cleanFormattingMax)
	if f.ProblemPatterns {
		score -= problemPenalty
	}
	if f.Inconsistent {
		score -= inconsistencyPenalty
	}
	if f.PoorEducation {
		score -= sectionPenalty
	}
	if f.PoorExperience {
		score -= sectionPenalty
	}
	return max(0, score)
}

// InspectFormatting runs the clean-formatting checks with default options.
func InspectFormatting(text string) FormattingIssues {
	return InspectFormattingWith(text, FormatOptions{})
}

// InspectFormattingWith runs the clean-formatting checks over the normalized
// text. The first line is only ever compared against, never checked on its own.
func InspectFormattingWith(text string, opts FormatOptions) FormattingIssues {
	normalized := NormalizeWith(text, opts)
	lines := strings.Split(normalized, "\n")

	issues := FormattingIssues{ProblemPatterns: containsAny(normalized, problemPatterns)}

	current := sectionNone
	for i := 1; i < len(lines); i++ {
		line := strings.ToLower(strings.TrimSpace(lines[i]))
		prev := strings.ToLower(strings.TrimSpace(lines[i-1]))

		current = current.next(line)

		if mixedBullets(prev, line) || abs(len(line)-len(prev)) > maxLineLengthDelta {
			issues.Inconsistent = true
		}

		if line == "" || isBulletLine(line) {
			continue
		}
		switch current {
		case sectionEducation:
			if !educationLineOK(line) {
				issues.PoorEducation = true
			}
		case sectionExperience:
			if !experienceLineOK(line) {
				issues.PoorExperience = true
			}
		}
	}
	return issues
}

// CleanFormattingScore returns the 0-3 clean-formatting score of text.
func CleanFormattingScore(text string, opts FormatOptions) float64 {
	return InspectFormattingWith(text, opts).Score()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
