package analysis

import (
	"fmt"
	"strings"
)

// BuildAnalysisPrompt composes the full-resume analysis prompt. The job
// description is optional; when present the model is asked to score keyword
// alignment against it. Returns ErrEmptyInput when the resume text is blank.
func BuildAnalysisPrompt(resumeText, jobDescription string) (string, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return "", ErrEmptyInput
	}

	var b strings.Builder
	b.WriteString("You are an expert resume reviewer and ATS (Applicant Tracking System) specialist.\n")
	b.WriteString("Analyze the resume below and score each section for ATS compatibility and impact.\n\n")

	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription != "" {
		b.WriteString("Target job description:\n")
		b.WriteString(jobDescription)
		b.WriteString("\n\nScore keyword alignment against this job description.\n\n")
	}

	b.WriteString("Resume:\n")
	b.WriteString(resumeText)
	b.WriteString("\n\n")

	b.WriteString("Respond with a single JSON object and nothing else. No markdown, no commentary.\n")
	b.WriteString("Use exactly this shape, with every score an integer from 0 to 100:\n")
	b.WriteString("{\n")
	b.WriteString("  \"overallScore\": 0,\n")
	b.WriteString("  \"sections\": {\n")
	for i, name := range CanonicalSections {
		fmt.Fprintf(&b, "    %q: {\"score\": 0, \"feedback\": \"\", \"missingKeywords\": [], \"suggestions\": []}", name)
		if i < len(CanonicalSections)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("  }\n")
	b.WriteString("}\n")
	b.WriteString("Only include sections that actually appear in the resume. Feedback must be specific and actionable.\n")

	return b.String(), nil
}

// BuildFixPrompt composes the prompt that rewrites one resume section. The
// output contract is plain rewritten text only.
func BuildFixPrompt(sectionName, sectionText, feedback string, suggestions []string) (string, error) {
	sectionText = strings.TrimSpace(sectionText)
	if sectionText == "" {
		return "", ErrEmptyInput
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert resume writer. Rewrite the %s section of a resume to address the reviewer feedback below.\n\n", sectionName)
	fmt.Fprintf(&b, "Current %s section:\n%s\n\n", sectionName, sectionText)
	if feedback = strings.TrimSpace(feedback); feedback != "" {
		fmt.Fprintf(&b, "Reviewer feedback:\n%s\n\n", feedback)
	}
	if len(suggestions) > 0 {
		b.WriteString("Apply these suggestions:\n")
		for _, s := range suggestions {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}
	b.WriteString("Keep all facts, names, dates and employers unchanged. Do not invent experience.\n")
	b.WriteString("Respond with the rewritten section text only. No JSON, no markdown formatting, no surrounding quotes, no explanation.\n")

	return b.String(), nil
}
