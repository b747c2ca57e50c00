package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubClient struct {
	reply string
	err   error
}

func (s *stubClient) Complete(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestGenerateFixCleanOutput(t *testing.T) {
	client := &stubClient{reply: "Led a team of 5 engineers, cutting deploy time by 40%."}

	got, err := GenerateFix(context.Background(), client, SectionExperience, "Worked on deploys.", "Too vague", []string{"Quantify impact"})
	if err != nil {
		t.Fatalf("generate fix: %v", err)
	}
	if got.SectionName != SectionExperience {
		t.Fatalf("section name = %s", got.SectionName)
	}
	if got.OriginalText != "Worked on deploys." {
		t.Fatalf("original text = %q", got.OriginalText)
	}
	if got.ImprovedText != client.reply {
		t.Fatalf("improved text = %q", got.ImprovedText)
	}
}

func TestGenerateFixStripsFenceAndQuotes(t *testing.T) {
	client := &stubClient{reply: "```text\n\"Led a team of 5 engineers.\"\n```"}

	got, err := GenerateFix(context.Background(), client, SectionSummary, "Did stuff.", "", nil)
	if err != nil {
		t.Fatalf("generate fix: %v", err)
	}
	if got.ImprovedText != "Led a team of 5 engineers." {
		t.Fatalf("residual formatting: %q", got.ImprovedText)
	}
	if strings.Contains(got.ImprovedText, "```") || strings.HasPrefix(got.ImprovedText, "\"") {
		t.Fatalf("fence or quote left over: %q", got.ImprovedText)
	}
}

func TestGenerateFixRejectsJSONOutput(t *testing.T) {
	client := &stubClient{reply: `{"improved":"text in the wrong shape"}`}

	_, err := GenerateFix(context.Background(), client, SectionSummary, "Did stuff.", "", nil)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestGenerateFixEmptyRewrite(t *testing.T) {
	client := &stubClient{reply: "``` ```"}

	_, err := GenerateFix(context.Background(), client, SectionSummary, "Did stuff.", "", nil)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestGenerateFixPropagatesClientError(t *testing.T) {
	wantErr := errors.New("boom")
	client := &stubClient{err: wantErr}

	_, err := GenerateFix(context.Background(), client, SectionSummary, "Did stuff.", "", nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected client error, got %v", err)
	}
}

func TestCleanFixOutputIdempotent(t *testing.T) {
	once := CleanFixOutput("```\nPlain rewritten text.\n```")
	twice := CleanFixOutput(once)
	if once != twice {
		t.Fatalf("not idempotent: %q != %q", once, twice)
	}
}
