package analysis

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildAnalysisPromptEmptyInput(t *testing.T) {
	if _, err := BuildAnalysisPrompt("   \n\t ", ""); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestBuildAnalysisPromptEmbedsResume(t *testing.T) {
	prompt, err := BuildAnalysisPrompt("John Doe\nSenior Engineer at Acme", "")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(prompt, "Senior Engineer at Acme") {
		t.Fatal("resume text not embedded")
	}
	if !strings.Contains(prompt, `"overallScore"`) {
		t.Fatal("schema shape not described")
	}
	for _, name := range CanonicalSections {
		if !strings.Contains(prompt, name) {
			t.Fatalf("section %s missing from prompt", name)
		}
	}
	if strings.Contains(prompt, "job description") {
		t.Fatal("job description block present without one")
	}
}

func TestBuildAnalysisPromptWithJobDescription(t *testing.T) {
	prompt, err := BuildAnalysisPrompt("John Doe", "Looking for a Go engineer with Kubernetes experience")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(prompt, "Kubernetes experience") {
		t.Fatal("job description not embedded")
	}
}

func TestBuildFixPromptEmptySection(t *testing.T) {
	if _, err := BuildFixPrompt(SectionSummary, "  ", "feedback", nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestBuildFixPromptEmbedsAllParts(t *testing.T) {
	prompt, err := BuildFixPrompt(SectionSummary, "Did some coding.", "Too vague", []string{"Quantify impact", "Name technologies"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, want := range []string{"Did some coding.", "Too vague", "Quantify impact", "Name technologies"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
	if !strings.Contains(prompt, "rewritten section text only") {
		t.Fatal("plain-text output contract missing")
	}
}
