package analysis

import (
	"strings"
	"time"
)

// Canonical resume section names. The parser folds provider spellings onto
// these before validation.
const (
	SectionContact    = "Contact"
	SectionSummary    = "Summary"
	SectionExperience = "Experience"
	SectionEducation  = "Education"
	SectionSkills     = "Skills"
)

// CanonicalSections lists the section names in display order.
var CanonicalSections = []string{
	SectionContact,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
}

var sectionAliases = map[string]string{
	"contact":              SectionContact,
	"contact_info":         SectionContact,
	"summary":              SectionSummary,
	"professional_summary": SectionSummary,
	"experience":           SectionExperience,
	"work_experience":      SectionExperience,
	"education":            SectionEducation,
	"skills":               SectionSkills,
}

// CanonicalSection resolves a section name from model or client input onto
// the canonical set. Returns false when the name is not recognized.
func CanonicalSection(name string) (string, bool) {
	canonical, ok := sectionAliases[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}

// SectionAnalysis is the model's verdict on one resume section.
type SectionAnalysis struct {
	Section         string   `json:"-"`
	Score           int      `json:"score"`
	Feedback        string   `json:"feedback"`
	MissingKeywords []string `json:"missingKeywords"`
	Suggestions     []string `json:"suggestions"`
}

// ResumeAnalysis is one complete analysis of the current resume.
type ResumeAnalysis struct {
	OverallScore int                        `json:"overallScore"`
	Sections     map[string]SectionAnalysis `json:"sections"`
	GeneratedAt  time.Time                  `json:"generatedAt"`
}

// FixResult is the outcome of one section auto-fix.
type FixResult struct {
	SectionName  string `json:"sectionName"`
	OriginalText string `json:"originalText"`
	ImprovedText string `json:"improvedText"`
}
