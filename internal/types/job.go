package types

import "time"

type JobSummary struct {
	Overview    string   `json:"overview"`
	Objectives  []string `json:"objectives"`
	ImpactGoals []string `json:"impact_goals"`
}

type JobTitle struct {
	PrimaryTitle           string   `json:"primary_title"`
	AlternativeTitles      []string `json:"alternative_titles"`
	SeniorityLevel         string   `json:"seniority_level"`
	SeniorityMatchRequired bool     `json:"seniority_match_required"`
}

// SkillGroups mirrors the technical categories of a job posting.
type SkillGroups struct {
	ProgrammingLanguages []string `json:"programming_languages"`
	FrameworksLibraries  []string `json:"frameworks_libraries"`
	Databases            []string `json:"databases"`
	CloudTechnologies    []string `json:"cloud_technologies"`
	ToolsSoftware        []string `json:"tools_software"`
	OperatingSystems     []string `json:"operating_systems"`
	Methodologies        []string `json:"methodologies"`
	APIs                 []string `json:"apis"`
	VersionControl       []string `json:"version_control"`
}

// All returns every skill in the groups, in declaration order.
func (g SkillGroups) All() []string {
	var out []string
	for _, group := range [][]string{
		g.ProgrammingLanguages, g.FrameworksLibraries, g.Databases, g.CloudTechnologies,
		g.ToolsSoftware, g.OperatingSystems, g.Methodologies, g.APIs, g.VersionControl,
	} {
		out = append(out, group...)
	}
	return out
}

type ExperienceRequirements struct {
	YearsRequired               *float64 `json:"years_required"`
	YearsPreferred              *float64 `json:"years_preferred"`
	ExperienceLevel             string   `json:"experience_level"`
	SpecificExperience          []string `json:"specific_experience"`
	InternshipExperience        bool     `json:"internship_experience"`
	OverqualificationAcceptable bool     `json:"overqualification_acceptable"`
}

type EducationRequirements struct {
	DegreeLevel             string   `json:"degree_level"`
	DegreeFields            []string `json:"degree_fields"`
	PreferredSchools        []string `json:"preferred_schools"`
	CertificationsRequired  []string `json:"certifications_required"`
	CertificationsPreferred []string `json:"certifications_preferred"`
}

type SoftSkillRequirements struct {
	Required  []string `json:"required"`
	Preferred []string `json:"preferred"`
}

type CompanyInfo struct {
	CompanySize     string   `json:"company_size"`
	Industry        string   `json:"industry"`
	WorkEnvironment []string `json:"work_environment"`
	CultureKeywords []string `json:"culture_keywords"`
}

type JobDetails struct {
	EmploymentType  string   `json:"employment_type"`
	Location        string   `json:"location"`
	RemotePolicy    string   `json:"remote_policy"`
	VisaSponsorship *bool    `json:"visa_sponsorship"`
	SalaryRange     string   `json:"salary_range"`
	DurationMonths  *float64 `json:"duration_months"`
	StartDate       string   `json:"start_date"`
}

type JobScoringWeights struct {
	TechnicalSkills  int `json:"technical_skills"`
	ExperienceMatch  int `json:"experience_match"`
	EducationFit     int `json:"education_fit"`
	SoftSkills       int `json:"soft_skills"`
	ProjectRelevance int `json:"project_relevance"`
}

type FormattingRequirements struct {
	PDFPreferred        bool     `json:"pdf_preferred"`
	MaxPages            int      `json:"max_pages"`
	FontRequirements    []string `json:"font_requirements"`
	SectionRequirements []string `json:"section_requirements"`
}

type JobMetadata struct {
	ScoringWeights         JobScoringWeights      `json:"scoring_weights"`
	ExtractionDate         string                 `json:"extraction_date"`
	JobPostingSource       string                 `json:"job_posting_source"`
	ATSComplianceRequired  bool                   `json:"ats_compliance_required"`
	FormattingRequirements FormattingRequirements `json:"formatting_requirements"`
}

// JobProfile is the structured form of a job description.
type JobProfile struct {
	JobID                  *string                `json:"job_id"`
	JobSummary             JobSummary             `json:"job_summary"`
	JobPostingURL          *string                `json:"job_posting_url"`
	JobTitle               JobTitle               `json:"job_title"`
	RequiredSkills         SkillGroups            `json:"required_skills"`
	PreferredSkills        SkillGroups            `json:"preferred_skills"`
	ExperienceRequirements ExperienceRequirements `json:"experience_requirements"`
	EducationRequirements  EducationRequirements  `json:"education_requirements"`
	SoftSkills             SoftSkillRequirements  `json:"soft_skills"`
	Responsibilities       []string               `json:"responsibilities"`
	IndustryKeywords       []string               `json:"industry_keywords"`
	CompanyInfo            CompanyInfo            `json:"company_info"`
	JobDetails             JobDetails             `json:"job_details"`
	Metadata               JobMetadata            `json:"metadata"`
}

// DefaultJobProfile returns the job profile used when extraction fails.
func DefaultJobProfile(now time.Time) JobProfile {
	p := JobProfile{
		JobTitle: JobTitle{SeniorityMatchRequired: true},
		ExperienceRequirements: ExperienceRequirements{
			OverqualificationAcceptable: true,
		},
		EducationRequirements: EducationRequirements{DegreeLevel: "Any"},
		JobDetails:            JobDetails{StartDate: "TBD"},
	}
	p.Metadata = DefaultJobMetadata(now)
	p.Normalize()
	return p
}

// DefaultJobMetadata carries the fixed scoring weights and formatting
// requirements attached to every extracted job.
func DefaultJobMetadata(now time.Time) JobMetadata {
	return JobMetadata{
		ScoringWeights: JobScoringWeights{
			TechnicalSkills:  30,
			ExperienceMatch:  25,
			EducationFit:     15,
			SoftSkills:       15,
			ProjectRelevance: 15,
		},
		ExtractionDate:        now.UTC().Format(time.RFC3339),
		JobPostingSource:      "Manual Input",
		ATSComplianceRequired: true,
		FormattingRequirements: FormattingRequirements{
			PDFPreferred:        true,
			MaxPages:            2,
			FontRequirements:    []string{"Arial", "Calibri", "Times New Roman"},
			SectionRequirements: []string{"Contact Info", "Experience", "Education", "Skills"},
		},
	}
}

// Normalize replaces nil lists with empty ones.
func (j *JobProfile) Normalize() {
	for _, s := range []*[]string{
		&j.JobSummary.Objectives, &j.JobSummary.ImpactGoals,
		&j.JobTitle.AlternativeTitles,
		&j.ExperienceRequirements.SpecificExperience,
		&j.EducationRequirements.DegreeFields, &j.EducationRequirements.PreferredSchools,
		&j.EducationRequirements.CertificationsRequired, &j.EducationRequirements.CertificationsPreferred,
		&j.SoftSkills.Required, &j.SoftSkills.Preferred,
		&j.Responsibilities, &j.IndustryKeywords,
		&j.CompanyInfo.WorkEnvironment, &j.CompanyInfo.CultureKeywords,
		&j.Metadata.FormattingRequirements.FontRequirements,
		&j.Metadata.FormattingRequirements.SectionRequirements,
	} {
		nonNil(s)
	}
	j.RequiredSkills.normalize()
	j.PreferredSkills.normalize()
}

func (g *SkillGroups) normalize() {
	for _, s := range []*[]string{
		&g.ProgrammingLanguages, &g.FrameworksLibraries, &g.Databases, &g.CloudTechnologies,
		&g.ToolsSoftware, &g.OperatingSystems, &g.Methodologies, &g.APIs, &g.VersionControl,
	} {
		nonNil(s)
	}
}
