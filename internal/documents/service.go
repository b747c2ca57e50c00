package documents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"atscheck-backend/internal/extract"
	"atscheck-backend/internal/session"
	"atscheck-backend/internal/shared/storage/object"
	"atscheck-backend/internal/shared/telemetry"
	"atscheck-backend/internal/shared/util"
)

// Service handles the upload boundary: validate, store, extract, and hand
// the extracted text to the session.
type Service struct {
	repo     *Repo
	store    object.ObjectStore
	sessions *session.Service
}

// NewService wires the document service.
func NewService(repo *Repo, store object.ObjectStore, sessions *session.Service) *Service {
	return &Service{repo: repo, store: store, sessions: sessions}
}

// Upload validates and stores a new resume document, extracts its text and
// resets the user's session around it. The previous document's objects are
// deleted; only one document exists per user at a time.
func (s *Service) Upload(ctx context.Context, userID, fileName, mimeType string, data []byte) (*Document, error) {
	if int64(len(data)) > MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}

	cleanName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFileName, err)
	}

	normalized := extract.NormalizeMimeType(mimeType, cleanName, data)
	if !extract.Supported(normalized, cleanName, data) {
		return nil, fmt.Errorf("%w: %s", extract.ErrUnsupportedFormat, mimeType)
	}

	text, err := extract.Text(ctx, data, normalized, cleanName)
	if err != nil {
		return nil, err
	}

	storageKey, size, _, err := s.store.Save(ctx, userID, cleanName, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	textKey := storageKey + ".extracted.txt"
	if _, err := s.store.SaveWithKey(ctx, textKey, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return nil, fmt.Errorf("store extracted text: %w", err)
	}

	doc := Document{
		ID:               uuid.NewString(),
		UserID:           userID,
		FileName:         cleanName,
		MimeType:         normalized,
		SizeBytes:        size,
		TextLength:       len(text),
		StorageKey:       storageKey,
		ExtractedTextKey: textKey,
		CreatedAt:        time.Now().UTC(),
	}

	prev, had := s.repo.Replace(doc)
	if had {
		s.deleteObjects(ctx, prev)
	}

	s.sessions.StartDocument(userID, doc.ID, doc.FileName, text)

	telemetry.Info("document.uploaded", map[string]any{
		"user_id":     userID,
		"document_id": doc.ID,
		"mime_type":   doc.MimeType,
		"size_bytes":  doc.SizeBytes,
		"text_length": doc.TextLength,
	})
	return &doc, nil
}

// Current returns the user's current document.
func (s *Service) Current(userID string) (*Document, error) {
	doc, ok := s.repo.Current(userID)
	if !ok {
		return nil, ErrNotFound
	}
	return &doc, nil
}

// OpenFile streams the originally uploaded bytes of the current document.
func (s *Service) OpenFile(ctx context.Context, userID string) (io.ReadCloser, *Document, error) {
	doc, ok := s.repo.Current(userID)
	if !ok {
		return nil, nil, ErrNotFound
	}
	rc, err := s.store.Open(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("open document: %w", err)
	}
	return rc, &doc, nil
}

func (s *Service) deleteObjects(ctx context.Context, doc Document) {
	for _, key := range []string{doc.StorageKey, doc.ExtractedTextKey} {
		if key == "" {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			telemetry.Warn("document.delete_failed", map[string]any{
				"document_id": doc.ID,
				"key":         key,
				"error":       err.Error(),
			})
		}
	}
}
