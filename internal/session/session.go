package session

import (
	"errors"
	"time"

	"atscheck-backend/internal/analysis"
)

// Session is one user's interactive state. It is created on first action,
// replaced when a new document is uploaded and never persisted.
type Session struct {
	UserID         string
	DocumentID     string
	FileName       string
	ResumeText     string
	JobDescription string
	Analysis       *analysis.ResumeAnalysis
	Improved       map[string]string
	UpdatedAt      time.Time
}

var (
	// ErrNoDocument indicates the action needs an uploaded document first.
	ErrNoDocument = errors.New("no document in session")
	// ErrNoAnalysis indicates the action needs a completed analysis first.
	ErrNoAnalysis = errors.New("no analysis in session")
	// ErrUnknownSection indicates the requested section name is not one of
	// the recognized resume sections.
	ErrUnknownSection = errors.New("unknown section")
	// ErrSectionNotAnalyzed indicates the section is valid but absent from
	// the current analysis.
	ErrSectionNotAnalyzed = errors.New("section not in current analysis")
)
