package analysis

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestParseAnalysisValid(t *testing.T) {
	raw := `{"overallScore":72,"sections":{"Summary":{"score":60,"feedback":"Add metrics","missingKeywords":["leadership"],"suggestions":["Quantify impact"]}}}`

	got, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.OverallScore != 72 {
		t.Fatalf("overall score = %d, want 72", got.OverallScore)
	}
	sec, ok := got.Sections[SectionSummary]
	if !ok {
		t.Fatalf("missing Summary section: %+v", got.Sections)
	}
	if sec.Score != 60 || sec.Feedback != "Add metrics" {
		t.Fatalf("unexpected section: %+v", sec)
	}
	if len(sec.MissingKeywords) != 1 || sec.MissingKeywords[0] != "leadership" {
		t.Fatalf("unexpected keywords: %v", sec.MissingKeywords)
	}
	if len(sec.Suggestions) != 1 || sec.Suggestions[0] != "Quantify impact" {
		t.Fatalf("unexpected suggestions: %v", sec.Suggestions)
	}
	if !got.GeneratedAt.IsZero() {
		t.Fatal("parser must not stamp GeneratedAt")
	}
}

func TestParseAnalysisCodeFence(t *testing.T) {
	raw := "Here is the analysis:\n```json\n{\"overallScore\":80,\"sections\":{\"Skills\":{\"score\":75,\"feedback\":\"ok\",\"missingKeywords\":[],\"suggestions\":[]}}}\n```\nLet me know if you need more."

	got, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("parse fenced: %v", err)
	}
	if got.OverallScore != 80 {
		t.Fatalf("overall score = %d, want 80", got.OverallScore)
	}
}

func TestParseAnalysisAliasCanonicalized(t *testing.T) {
	raw := `{"overallScore":50,"sections":{"work_experience":{"score":40,"feedback":"thin","missingKeywords":[],"suggestions":[]},"contact_info":{"score":90,"feedback":"","missingKeywords":[],"suggestions":[]}}}`

	got, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := got.Sections[SectionExperience]; !ok {
		t.Fatalf("work_experience not canonicalized: %+v", got.Sections)
	}
	if _, ok := got.Sections[SectionContact]; !ok {
		t.Fatalf("contact_info not canonicalized: %+v", got.Sections)
	}
}

func TestParseAnalysisRejectsOutOfRangeScore(t *testing.T) {
	cases := []string{
		`{"overallScore":150,"sections":{"Summary":{"score":60,"feedback":"","missingKeywords":[],"suggestions":[]}}}`,
		`{"overallScore":-1,"sections":{"Summary":{"score":60,"feedback":"","missingKeywords":[],"suggestions":[]}}}`,
		`{"overallScore":72,"sections":{"Summary":{"score":101,"feedback":"","missingKeywords":[],"suggestions":[]}}}`,
	}
	for _, raw := range cases {
		if _, err := ParseAnalysis(raw); !errors.Is(err, ErrMalformedResponse) {
			t.Fatalf("expected ErrMalformedResponse for %s, got %v", raw, err)
		}
	}
}

func TestParseAnalysisRejectsUnknownField(t *testing.T) {
	raw := `{"overallScore":72,"verdict":"good","sections":{"Summary":{"score":60,"feedback":"","missingKeywords":[],"suggestions":[]}}}`
	if _, err := ParseAnalysis(raw); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestParseAnalysisRejectsUnknownSection(t *testing.T) {
	raw := `{"overallScore":72,"sections":{"Hobbies":{"score":60,"feedback":"","missingKeywords":[],"suggestions":[]}}}`
	if _, err := ParseAnalysis(raw); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestParseAnalysisRejectsMissingScore(t *testing.T) {
	raw := `{"overallScore":72,"sections":{"Summary":{"feedback":"no score here","missingKeywords":[],"suggestions":[]}}}`
	if _, err := ParseAnalysis(raw); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestParseAnalysisNoObject(t *testing.T) {
	if _, err := ParseAnalysis("the model refused to answer"); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestParseAnalysisIdempotent(t *testing.T) {
	raw := `{"overallScore":72,"sections":{"Summary":{"score":60,"feedback":"Add metrics","missingKeywords":["leadership"],"suggestions":["Quantify impact"]}}}`
	first, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	repeat, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("repeat parse: %v", err)
	}
	if !reflect.DeepEqual(first, repeat) {
		t.Fatalf("same input parsed differently: %+v != %+v", first, repeat)
	}

	reencoded, err := json.Marshal(map[string]any{
		"overallScore": first.OverallScore,
		"sections": map[string]any{
			"Summary": first.Sections[SectionSummary],
		},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := ParseAnalysis(string(reencoded))
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reparse of reencoded output diverged: %+v != %+v", first, second)
	}
}
