package analysis

import (
	"context"
	"fmt"
	"strings"

	"atscheck-backend/internal/llm"
)

// GenerateFix rewrites one section through the model and returns the
// cleaned result alongside the original text. The model output is treated
// as plain prose: code fences, stray formatting and wrapping quotes are
// stripped, and an output that still looks like JSON is rejected.
func GenerateFix(ctx context.Context, client llm.Client, sectionName, sectionText, feedback string, suggestions []string) (*FixResult, error) {
	prompt, err := BuildFixPrompt(sectionName, sectionText, feedback, suggestions)
	if err != nil {
		return nil, err
	}

	raw, err := client.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	improved := CleanFixOutput(raw)
	if improved == "" {
		return nil, fmt.Errorf("%w: empty rewrite", ErrMalformedResponse)
	}
	if strings.HasPrefix(improved, "{") || strings.HasPrefix(improved, "[") {
		return nil, fmt.Errorf("%w: rewrite is not plain text", ErrMalformedResponse)
	}

	return &FixResult{
		SectionName:  sectionName,
		OriginalText: sectionText,
		ImprovedText: improved,
	}, nil
}

// CleanFixOutput strips code fences and wrapping quotes from a model
// rewrite. Applying it to already-clean text is a no-op.
func CleanFixOutput(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// drop a language tag on the fence line
		if idx := strings.Index(text, "\n"); idx >= 0 && !strings.ContainsAny(text[:idx], " \t") {
			text = text[idx+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	for _, quote := range []string{`"`, "'"} {
		if len(text) >= 2 && strings.HasPrefix(text, quote) && strings.HasSuffix(text, quote) {
			text = strings.TrimSpace(text[1 : len(text)-1])
		}
	}

	return text
}
