package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

type sectionWire struct {
	Score           *int     `json:"score"`
	Feedback        string   `json:"feedback"`
	MissingKeywords []string `json:"missingKeywords"`
	Suggestions     []string `json:"suggestions"`
}

type analysisWire struct {
	OverallScore *int                   `json:"overallScore"`
	Sections     map[string]sectionWire `json:"sections"`
}

// ParseAnalysis decodes raw model output into a validated ResumeAnalysis.
// The model may wrap its JSON in prose or code fences, so the outermost
// object span is located first. The model is an untrusted producer: unknown
// fields, unknown section names and out-of-range scores are all rejected
// with ErrMalformedResponse. The parser is pure: parsing the same input
// twice yields structurally equal results, and GeneratedAt is left for the
// caller to stamp.
func ParseAnalysis(raw string) (*ResumeAnalysis, error) {
	span, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(strings.NewReader(span))
	dec.DisallowUnknownFields()
	var wire analysisWire
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if wire.OverallScore == nil {
		return nil, fmt.Errorf("%w: missing overallScore", ErrMalformedResponse)
	}
	if err := validateScore(*wire.OverallScore); err != nil {
		return nil, fmt.Errorf("%w: overallScore: %v", ErrMalformedResponse, err)
	}
	if len(wire.Sections) == 0 {
		return nil, fmt.Errorf("%w: no sections", ErrMalformedResponse)
	}

	sections := make(map[string]SectionAnalysis, len(wire.Sections))
	for name, sec := range wire.Sections {
		canonical, ok := CanonicalSection(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown section %q", ErrMalformedResponse, name)
		}
		if _, dup := sections[canonical]; dup {
			return nil, fmt.Errorf("%w: duplicate section %q", ErrMalformedResponse, name)
		}
		if sec.Score == nil {
			return nil, fmt.Errorf("%w: section %q missing score", ErrMalformedResponse, name)
		}
		if err := validateScore(*sec.Score); err != nil {
			return nil, fmt.Errorf("%w: section %q: %v", ErrMalformedResponse, name, err)
		}
		sections[canonical] = SectionAnalysis{
			Section:         canonical,
			Score:           *sec.Score,
			Feedback:        strings.TrimSpace(sec.Feedback),
			MissingKeywords: normalizeList(sec.MissingKeywords),
			Suggestions:     normalizeList(sec.Suggestions),
		}
	}

	return &ResumeAnalysis{
		OverallScore: *wire.OverallScore,
		Sections:     sections,
	}, nil
}

func validateScore(score int) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("score %d out of range", score)
	}
	return nil
}

func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// extractJSONObject returns the substring from the first '{' to the last
// '}'. That is enough to strip code fences and surrounding prose without
// attempting to balance braces inside string values.
func extractJSONObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("%w: no JSON object found", ErrMalformedResponse)
	}
	return raw[start : end+1], nil
}
