package types

import "strings"

// ContactInfo holds the candidate's contact block as extracted from the résumé.
type ContactInfo struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Location        string `json:"location"`
	LinkedIn        string `json:"linkedin"`
	GitHub          string `json:"github"`
	PersonalWebsite string `json:"personal_website"`
}

// RequiredFields is the number of contact fields an ATS must be able to parse.
const RequiredFields = 3

// RequiredPresent counts non-blank name, email and phone fields.
func (c ContactInfo) RequiredPresent() int {
	n := 0
	for _, v := range []string{c.Name, c.Email, c.Phone} {
		if !isBlank(v) {
			n++
		}
	}
	return n
}

// TechnicalSkills groups technical skills the same way the extraction prompt does.
type TechnicalSkills struct {
	Languages              []string `json:"languages"`
	FrameworksAndLibraries []string `json:"frameworks_and_libraries"`
	Databases              []string `json:"databases"`
	CloudTechnologies      []string `json:"cloud_technologies"`
	OtherTools             []string `json:"other_tools"`
}

// Count returns the number of technical skills across all groups.
func (t TechnicalSkills) Count() int {
	return len(t.Languages) + len(t.FrameworksAndLibraries) + len(t.Databases) +
		len(t.CloudTechnologies) + len(t.OtherTools)
}

type Skills struct {
	Technical TechnicalSkills `json:"technical"`
	Soft      []string        `json:"soft"`
}

type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link"`
	Highlights   []string `json:"highlights"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Duration     string   `json:"duration"`
}

type Experience struct {
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	Location   string   `json:"location"`
	Dates      string   `json:"dates"`
	Highlights []string `json:"highlights"`
}

type Education struct {
	School          string   `json:"school"`
	Degree          string   `json:"degree"`
	Location        string   `json:"location"`
	GraduationDate  string   `json:"graduation_date"`
	GPA             string   `json:"gpa"`
	RelevantCourses []string `json:"relevant_courses"`
}

// ResumeProfile is the structured form of a résumé. Field names match the
// extraction contract exactly.
type ResumeProfile struct {
	ContactInfo         ContactInfo     `json:"contact_info"`
	ProfessionalSummary string          `json:"professional_summary"`
	Skills              Skills          `json:"skills"`
	Certifications      []Certification `json:"certifications"`
	Projects            []Project       `json:"projects"`
	Experience          []Experience    `json:"experience"`
	Education           []Education     `json:"education"`
	Achievements        []string        `json:"achievements"`
	Languages           []string        `json:"languages"`
	Interests           []string        `json:"interests"`
	Honors              []string        `json:"honors"`
	ExtraCurricular     []string        `json:"extra_curricular"`
}

// EmptyResumeProfile returns the profile used when extraction fails. Every list
// is non-nil so the JSON form keeps its shape.
func EmptyResumeProfile() ResumeProfile {
	var p ResumeProfile
	p.Normalize()
	return p
}

// Normalize replaces nil lists with empty ones.
func (r *ResumeProfile) Normalize() {
	nonNil(&r.Skills.Technical.Languages)
	nonNil(&r.Skills.Technical.FrameworksAndLibraries)
	nonNil(&r.Skills.Technical.Databases)
	nonNil(&r.Skills.Technical.CloudTechnologies)
	nonNil(&r.Skills.Technical.OtherTools)
	nonNil(&r.Skills.Soft)
	nonNil(&r.Achievements)
	nonNil(&r.Languages)
	nonNil(&r.Interests)
	nonNil(&r.Honors)
	nonNil(&r.ExtraCurricular)

	if r.Certifications == nil {
		r.Certifications = []Certification{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}

	for i := range r.Projects {
		nonNil(&r.Projects[i].Technologies)
		nonNil(&r.Projects[i].Highlights)
	}
	for i := range r.Experience {
		nonNil(&r.Experience[i].Highlights)
	}
	for i := range r.Education {
		nonNil(&r.Education[i].RelevantCourses)
	}
}

// Highlights returns experience bullets followed by project bullets, in résumé order.
func (r *ResumeProfile) Highlights() []string {
	var out []string
	for _, exp := range r.Experience {
		out = append(out, exp.Highlights...)
	}
	for _, proj := range r.Projects {
		out = append(out, proj.Highlights...)
	}
	return out
}

// ExperienceHighlights returns the bullets of all experience entries.
func (r *ResumeProfile) ExperienceHighlights() []string {
	var out []string
	for _, exp := range r.Experience {
		out = append(out, exp.Highlights...)
	}
	return out
}

func nonNil(s *[]string) {
	if *s == nil {
		*s = []string{}
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
