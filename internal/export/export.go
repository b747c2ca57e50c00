package export

import (
	"fmt"
	"strings"
	"time"

	"atscheck-backend/internal/analysis"
	"atscheck-backend/internal/session"
)

// Build assembles the improved resume as plain text. Sections the user has
// fixed appear in canonical order; when nothing has been fixed yet the
// original extracted text is exported as-is.
func Build(sess session.Session, now time.Time) (string, error) {
	if sess.DocumentID == "" || strings.TrimSpace(sess.ResumeText) == "" {
		return "", session.ErrNoDocument
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Improved Resume (%s)\n", sess.FileName)
	fmt.Fprintf(&b, "Generated %s\n\n", now.UTC().Format("2006-01-02 15:04 UTC"))

	if len(sess.Improved) == 0 {
		b.WriteString(sess.ResumeText)
		b.WriteString("\n")
		return b.String(), nil
	}

	for _, name := range analysis.CanonicalSections {
		improved, ok := sess.Improved[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "== %s ==\n%s\n\n", strings.ToUpper(name), strings.TrimSpace(improved))
	}

	b.WriteString("== ORIGINAL TEXT ==\n")
	b.WriteString(strings.TrimSpace(sess.ResumeText))
	b.WriteString("\n")
	return b.String(), nil
}
