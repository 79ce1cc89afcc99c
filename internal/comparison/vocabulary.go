package comparison

import (
	"strings"

	"github.com/spigell/ats-scorer/internal/types"
)

// SoftSkills is the vocabulary soft-skill recommendations must draw from.
var SoftSkills = []string{
	"Communication",
	"Problem Solving",
	"Teamwork",
	"Leadership",
	"Adaptability",
	"Time Management",
	"Critical Thinking",
	"Customer Focus",
	"Innovation",
	"Attention to Detail",
}

// ProjectArchetype is one of the project types a recommendation may propose.
type ProjectArchetype struct {
	Name    string
	Summary string
}

// ProjectArchetypes is the catalog project recommendations must draw from.
var ProjectArchetypes = []ProjectArchetype{
	{"Real-time AI System", "Build a real-time AI chat application with WebSocket integration and streaming responses"},
	{"Multimodal Interaction", "Create an audio+text chatbot that processes voice input and responds with both speech and text"},
	{"Desktop AI Tool", "Develop a desktop AI assistant application using Electron with local LLM integration"},
	{"AI Data Pipeline", "Build an AI-powered data processing pipeline with automated model training and deployment"},
	{"Computer Vision Project", "Create an AI image recognition system with real-time object detection capabilities"},
	{"NLP Application", "Develop a text analysis tool with sentiment analysis, summarization, and keyword extraction"},
}

// archetypeMarkers are lowercase phrases that identify each archetype when
// a recommendation paraphrases it.
var archetypeMarkers = [][]string{
	{"real-time ai", "websocket", "streaming responses"},
	{"multimodal", "audio+text", "voice input"},
	{"desktop ai", "electron"},
	{"ai data pipeline", "data processing pipeline", "model training"},
	{"computer vision", "image recognition", "object detection"},
	{"nlp", "sentiment analysis", "text analysis"},
}

// NamesSoftSkill reports whether rec names a vocabulary soft skill.
func NamesSoftSkill(rec string) bool {
	lower := strings.ToLower(rec)
	for _, s := range SoftSkills {
		if strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

// NamesProjectArchetype reports whether rec proposes a catalog project.
func NamesProjectArchetype(rec string) bool {
	lower := strings.ToLower(rec)
	for i, a := range ProjectArchetypes {
		if strings.Contains(lower, strings.ToLower(a.Name)) {
			return true
		}
		for _, marker := range archetypeMarkers[i] {
			if strings.Contains(lower, marker) {
				return true
			}
		}
	}
	return false
}

// GenericRecommendations returns the soft-skill and project recommendations
// that name neither a vocabulary skill nor a catalog project.
func GenericRecommendations(r types.Recommendations) []string {
	var out []string
	for _, rec := range r.All() {
		lower := strings.ToLower(rec)
		switch {
		case strings.Contains(lower, "soft skill") && !NamesSoftSkill(rec):
			out = append(out, rec)
		case isProjectSuggestion(lower) && !NamesProjectArchetype(rec):
			out = append(out, rec)
		}
	}
	return out
}

func isProjectSuggestion(lower string) bool {
	if !strings.Contains(lower, "project") {
		return false
	}
	for _, verb := range []string{"build", "create", "develop"} {
		if strings.Contains(lower, verb) {
			return true
		}
	}
	return false
}
