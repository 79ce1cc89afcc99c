package scoring

import (
	"fmt"

	"github.com/spigell/ats-scorer/internal/types"
)

// degreeTier awards points when a degree contains one of the terms.
type degreeTier struct {
	terms  []string
	points float64
}

// profile holds everything that differs between industries.
type profile struct {
	industry Industry
	focus    string
	max      types.Breakdown

	technicalSkills bands

	// degrees is walked per education entry; the first matching tier ends the
	// walk. An entry with an unmatched non-blank degree adds degreeFallback
	// and the walk continues.
	degrees        []degreeTier
	degreeFallback float64

	schoolBonus func(school string) float64
	gpaBonus    func(gpa string) float64

	educationFloor float64
}

var eliteSchools = []string{
	"harvard", "wharton", "stanford", "mit", "columbia", "chicago", "nyu", "berkeley", "yale", "princeton",
}

var strongGPAs = []string{"3.5", "3.6", "3.7", "3.8", "3.9", "4.0"}

var financeProfile = profile{
	industry: IndustryFinance,
	focus:    "finance_credentials",
	max: types.Breakdown{
		types.CategoryKeywordMatch:        45,
		types.CategoryFormatting:          15,
		types.CategoryExperienceAlignment: 15,
		types.CategoryImpactMetrics:       10,
		types.CategoryEducation:           15,
	},
	technicalSkills: bands{{8, 25}, {6, 20}, {4, 15}, {2, 10}, {1, 5}},
	degrees: []degreeTier{
		{terms: []string{"mba", "finance", "economics", "business", "accounting", "mathematics", "statistics"}, points: 10},
		{terms: []string{"master", "phd", "doctorate", "ms", "ma"}, points: 9},
		{terms: []string{"bachelor", "bs", "ba", "be", "degree"}, points: 7},
		{terms: []string{"associate", "diploma", "certificate"}, points: 5},
	},
	degreeFallback: 4,
	schoolBonus: func(school string) float64 {
		switch {
		case containsAny(lowerTrim(school), eliteSchools):
			return 3
		case !blank(school):
			return 2
		default:
			return 0
		}
	},
	gpaBonus: func(gpa string) float64 {
		switch {
		case blank(gpa):
			return 0
		case containsAny(gpa, strongGPAs):
			return 2
		default:
			return 1
		}
	},
	educationFloor: 3,
}

var softwareProfile = profile{
	industry: IndustrySoftware,
	focus:    "technical_skills",
	max: types.Breakdown{
		types.CategoryKeywordMatch:        55,
		types.CategoryFormatting:          15,
		types.CategoryExperienceAlignment: 12,
		types.CategoryImpactMetrics:       8,
		types.CategoryEducation:           10,
	},
	technicalSkills: bands{{15, 25}, {10, 20}, {7, 15}, {5, 10}, {3, 5}},
	degrees: []degreeTier{
		{terms: []string{"master", "phd", "doctorate", "ms", "ma", "computer science", "software engineering", "engineering"}, points: 6},
		{terms: []string{"bachelor", "bs", "ba", "be", "degree"}, points: 5},
		{terms: []string{"associate", "diploma", "certificate", "bootcamp"}, points: 3},
	},
	degreeFallback: 2,
	schoolBonus: func(school string) float64 {
		if blank(school) {
			return 0
		}
		return 2
	},
	gpaBonus: func(gpa string) float64 {
		if blank(gpa) {
			return 0
		}
		return 2
	},
	educationFloor: 2,
}

func profileFor(industry Industry) profile {
	if industry == IndustryFinance {
		return financeProfile
	}
	return softwareProfile
}

// MaxPoints returns the per-category ceilings used for an industry.
func MaxPoints(industry Industry) types.Breakdown {
	p := profileFor(industry)
	out := make(types.Breakdown, len(p.max))
	for k, v := range p.max {
		out[k] = v
	}
	return out
}

// weights renders the category ceilings as methodology percentages.
func (p profile) weights() map[string]string {
	out := make(map[string]string, len(p.max))
	for _, c := range types.Categories {
		out[c.WeightKey()] = fmt.Sprintf("%g%%", p.max[c])
	}
	return out
}
