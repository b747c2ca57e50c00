package documents

import (
	"errors"
	"time"
)

// Document is the user's current uploaded resume. One document per user; a
// new upload replaces it.
type Document struct {
	ID               string    `json:"id"`
	UserID           string    `json:"-"`
	FileName         string    `json:"fileName"`
	MimeType         string    `json:"mimeType"`
	SizeBytes        int64     `json:"sizeBytes"`
	TextLength       int       `json:"textLength"`
	StorageKey       string    `json:"-"`
	ExtractedTextKey string    `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
}

var (
	// ErrTooLarge indicates the upload exceeds the size cap.
	ErrTooLarge = errors.New("file too large")
	// ErrNotFound indicates the user has no current document.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidFileName indicates an empty or traversal-prone file name.
	ErrInvalidFileName = errors.New("invalid file name")
)

// MaxUploadBytes caps uploads at 10 MB.
const MaxUploadBytes = 10 << 20
