package extraction

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed prompts/*.md
var promptFS embed.FS

// Template names under prompts/.
const (
	promptResume     = "resume"
	promptJob        = "job"
	promptKeywords   = "keywords"
	promptSentence   = "sentence"
	promptMistakes   = "mistakes"
	promptSuggestion = "suggestion"
	promptComparison = "comparison"
)

// System messages sent with each operation.
const (
	systemResume     = "You are a precise resume parser. Extract information EXACTLY as it appears and return ONLY valid JSON. Handle any formatting issues gracefully and always return valid JSON structure."
	systemKeywords   = "You are a precise resume keyword analyzer. Your primary goal is to identify ineffective language. You must follow all rules strictly. CRITICAL: Never flag job titles (like Intern, Associate, Manager) as weak verbs. Focus only on action words in sentences."
	systemSentence   = "You are a resume expert that strictly follows the provided scoring rules. You must be consistent in applying these rules across all sentences."
	systemMistakes   = "You are a resume expert focused on identifying exactly what is missing in resume sentences. Be specific and actionable about missing elements."
	systemSuggestion = "You are a resume expert focused on creating perfect-scoring bullet points. Every suggestion must meet ALL criteria for a 50/50 score."
	systemComparison = "You are an expert ATS system and resume-job matching analyst. Provide detailed, specific analysis with exact skill names and actionable recommendations. Return valid JSON only."
	systemJob        = "You are an expert at comprehensive job description analysis for ATS systems. Extract all relevant information for resume matching and return valid JSON only."
)

// renderPrompt fills the {{KEY}} placeholders of the named template.
func renderPrompt(name string, values map[string]string) (string, error) {
	raw, err := promptFS.ReadFile("prompts/" + name + ".md")
	if err != nil {
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	prompt := string(raw)
	for key, value := range values {
		placeholder := "{{" + key + "}}"
		if !strings.Contains(prompt, placeholder) {
			return "", fmt.Errorf("prompt %q has no placeholder %s", name, placeholder)
		}
		prompt = strings.ReplaceAll(prompt, placeholder, value)
	}
	return prompt, nil
}
