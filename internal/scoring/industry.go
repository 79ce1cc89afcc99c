package scoring

import "strings"

// Industry is the professional domain a résumé is scored against.
type Industry string

const (
	IndustrySoftware Industry = "software"
	IndustryFinance  Industry = "finance"
	IndustryUnknown  Industry = "unknown"
)

// Confidence of an industry classification. Always ConfidenceHigh for a
// successful classification; the vote margin is not used.
const (
	ConfidenceHigh = "high"
	ConfidenceLow  = "low"
)

// minIndustryVotes is the number of distinct domain terms needed before a
// non-default industry is chosen.
const minIndustryVotes = 3

var financeTerms = []string{
	"analyst", "investment", "banking", "finance", "accounting", "audit", "risk", "compliance",
	"portfolio", "trader", "financial", "credit", "equity", "derivatives", "hedge fund",
	"bloomberg", "excel", "vba", "sql", "tableau", "powerbi", "sas", "stata",
	"goldman sachs", "morgan stanley", "jp morgan", "blackrock", "citadel",
}

var softwareTerms = []string{
	"developer", "engineer", "programmer", "architect", "devops", "sre", "full stack",
	"python", "java", "javascript", "typescript", "c++", "c#", "go", "rust",
	"react", "angular", "vue", "node.js", "django", "flask", "spring",
	"kubernetes", "docker", "aws", "azure", "gcp", "terraform", "jenkins",
}

// Classification is the detected industry of a résumé.
type Classification struct {
	Industry   Industry
	Confidence string
	Finance    int
	Software   int
}

// DetectIndustry counts how many finance and software terms occur in text.
// Each term votes once no matter how often it appears. Finance wins only with
// at least three votes and strictly more votes than software.
func DetectIndustry(text string) Classification {
	lower := strings.ToLower(text)
	c := Classification{
		Industry:   IndustrySoftware,
		Confidence: ConfidenceHigh,
		Finance:    countTerms(lower, financeTerms),
		Software:   countTerms(lower, softwareTerms),
	}

	if c.Finance > c.Software && c.Finance >= minIndustryVotes {
		c.Industry = IndustryFinance
	}
	return c
}

func countTerms(text string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			n++
		}
	}
	return n
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
