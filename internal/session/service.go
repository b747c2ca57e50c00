package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"atscheck-backend/internal/analysis"
	"atscheck-backend/internal/llm"
	"atscheck-backend/internal/shared/metrics"
	"atscheck-backend/internal/shared/telemetry"
	"atscheck-backend/internal/shared/util"
)

// Quota meters analyses per user.
type Quota interface {
	Consume(ctx context.Context, userID string) error
}

// Service orchestrates the session lifecycle: analyze the current document,
// fix individual sections, track improvements for export. All work is
// synchronous; each request performs at most one model call.
type Service struct {
	store  *Store
	client llm.Client
	quota  Quota
}

// NewService wires the session service.
func NewService(store *Store, client llm.Client, quota Quota) *Service {
	return &Service{store: store, client: client, quota: quota}
}

// StartDocument replaces the user's session with a fresh one for the newly
// uploaded document. Any previous analysis and fixes are discarded; the job
// description survives since it is independent user input.
func (s *Service) StartDocument(userID, documentID, fileName, resumeText string) Session {
	jobDescription := ""
	if prev, ok := s.store.Get(userID); ok {
		jobDescription = prev.JobDescription
	}
	sess := Session{
		UserID:         userID,
		DocumentID:     documentID,
		FileName:       fileName,
		ResumeText:     resumeText,
		JobDescription: jobDescription,
	}
	s.store.Save(sess)
	sess, _ = s.store.Get(userID)
	return sess
}

// Current returns the user's session, if any.
func (s *Service) Current(userID string) (Session, bool) {
	return s.store.Get(userID)
}

// SetJobDescription stores the target job description. A session is created
// on first use so the description can be set before uploading.
func (s *Service) SetJobDescription(userID, jobDescription string) Session {
	sess, ok := s.store.Get(userID)
	if !ok {
		sess = Session{UserID: userID}
	}
	sess.JobDescription = strings.TrimSpace(jobDescription)
	s.store.Save(sess)
	sess, _ = s.store.Get(userID)
	return sess
}

// Analyze runs one full-resume analysis against the model and stores the
// result in the session. A new analysis invalidates previous section fixes.
func (s *Service) Analyze(ctx context.Context, userID string) (*analysis.ResumeAnalysis, error) {
	sess, ok := s.store.Get(userID)
	if !ok || sess.DocumentID == "" {
		return nil, ErrNoDocument
	}
	if strings.TrimSpace(sess.ResumeText) == "" {
		return nil, analysis.ErrEmptyInput
	}

	if err := s.quota.Consume(ctx, userID); err != nil {
		return nil, err
	}

	prompt, err := analysis.BuildAnalysisPrompt(sess.ResumeText, sess.JobDescription)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.Complete(ctx, prompt)
	if err != nil {
		metrics.IncAnalysisFailed()
		return nil, fmt.Errorf("analyze: %w", err)
	}

	result, err := analysis.ParseAnalysis(raw)
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Warn("analysis.malformed", map[string]any{
			"user_id":     userID,
			"document_id": sess.DocumentID,
			"output_len":  len(raw),
		})
		return nil, err
	}

	result.GeneratedAt = time.Now().UTC()

	metrics.IncAnalysisCompleted()
	telemetry.Info("analysis.completed", map[string]any{
		"user_id":       userID,
		"document_id":   sess.DocumentID,
		"content_hash":  util.HashContent(sess.ResumeText)[:12],
		"overall_score": result.OverallScore,
		"sections":      len(result.Sections),
	})

	sess.Analysis = result
	sess.Improved = nil
	s.store.Save(sess)
	return result, nil
}

// CurrentAnalysis returns the stored analysis for the user.
func (s *Service) CurrentAnalysis(userID string) (*analysis.ResumeAnalysis, error) {
	sess, ok := s.store.Get(userID)
	if !ok || sess.Analysis == nil {
		return nil, ErrNoAnalysis
	}
	return sess.Analysis, nil
}

// FixSection rewrites one analyzed section through the model. When the
// caller supplies no section text the full resume text is used as the
// rewrite source, matching how the analysis itself saw the document.
func (s *Service) FixSection(ctx context.Context, userID, name, sectionText string) (*analysis.FixResult, error) {
	canonical, ok := analysis.CanonicalSection(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}

	sess, found := s.store.Get(userID)
	if !found || sess.DocumentID == "" {
		return nil, ErrNoDocument
	}
	if sess.Analysis == nil {
		return nil, ErrNoAnalysis
	}
	sec, analyzed := sess.Analysis.Sections[canonical]
	if !analyzed {
		return nil, fmt.Errorf("%w: %q", ErrSectionNotAnalyzed, canonical)
	}

	sectionText = strings.TrimSpace(sectionText)
	if sectionText == "" {
		sectionText = sess.ResumeText
	}

	fix, err := analysis.GenerateFix(ctx, s.client, canonical, sectionText, sec.Feedback, sec.Suggestions)
	if err != nil {
		metrics.IncFixFailed()
		return nil, err
	}

	metrics.IncFixCompleted()
	telemetry.Info("fix.completed", map[string]any{
		"user_id":      userID,
		"document_id":  sess.DocumentID,
		"section_name": canonical,
	})

	if sess.Improved == nil {
		sess.Improved = make(map[string]string)
	}
	sess.Improved[canonical] = fix.ImprovedText
	s.store.Save(sess)
	return fix, nil
}
