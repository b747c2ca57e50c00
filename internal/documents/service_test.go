package documents

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"atscheck-backend/internal/extract"
	"atscheck-backend/internal/session"
	"atscheck-backend/internal/shared/storage/object/local"
	"atscheck-backend/internal/usage"
)

type noopClient struct{}

func (noopClient) Complete(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("not used")
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	quota := usage.NewService(usage.NewMemoryStore(), 10)
	sessions := session.NewService(session.NewStore(), noopClient{}, quota)
	return NewService(NewRepo(), local.New(t.TempDir()), sessions)
}

func TestUploadRejectsUnsupportedFormat(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Upload(context.Background(), "guest:u1", "resume.txt", "text/plain", []byte("plain text"))
	if !errors.Is(err, extract.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestUploadRejectsZeroByteFile(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Upload(context.Background(), "guest:u1", "resume.pdf", "application/pdf", nil)
	if !errors.Is(err, extract.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestUploadRejectsCorruptPDF(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Upload(context.Background(), "guest:u1", "resume.pdf", "application/pdf", []byte("%PDF-1.7 garbage"))
	if !errors.Is(err, extract.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := newTestService(t)

	data := make([]byte, MaxUploadBytes+1)
	_, err := svc.Upload(context.Background(), "guest:u1", "resume.pdf", "application/pdf", data)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestUploadRejectsTraversalFileName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Upload(context.Background(), "guest:u1", "../../etc/passwd.pdf", "application/pdf", []byte("%PDF-1.7"))
	if !errors.Is(err, ErrInvalidFileName) {
		t.Fatalf("expected ErrInvalidFileName, got %v", err)
	}
}

func TestCurrentWithoutUpload(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Current("guest:u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenFileWithoutUpload(t *testing.T) {
	svc := newTestService(t)

	if _, _, err := svc.OpenFile(context.Background(), "guest:u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenFileRoundTrip(t *testing.T) {
	store := local.New(t.TempDir())
	quota := usage.NewService(usage.NewMemoryStore(), 10)
	sessions := session.NewService(session.NewStore(), noopClient{}, quota)
	svc := NewService(NewRepo(), store, sessions)

	payload := "%PDF-1.4 fake resume bytes"
	key, size, _, err := store.Save(context.Background(), "guest:u1", "resume.pdf", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	svc.repo.Replace(Document{
		ID:         "doc-1",
		UserID:     "guest:u1",
		FileName:   "resume.pdf",
		MimeType:   "application/pdf",
		SizeBytes:  size,
		StorageKey: key,
	})

	rc, doc, err := svc.OpenFile(context.Background(), "guest:u1")
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	defer rc.Close()

	if doc.ID != "doc-1" {
		t.Fatalf("document id = %s", doc.ID)
	}
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != payload {
		t.Fatalf("stored bytes changed: %q", data)
	}
}

func TestRepoReplaceReturnsPrevious(t *testing.T) {
	repo := NewRepo()

	first := Document{ID: "doc-1", UserID: "guest:u1", StorageKey: "k1"}
	if _, had := repo.Replace(first); had {
		t.Fatal("unexpected previous document")
	}

	second := Document{ID: "doc-2", UserID: "guest:u1", StorageKey: "k2"}
	prev, had := repo.Replace(second)
	if !had || prev.ID != "doc-1" {
		t.Fatalf("previous = %+v had=%v", prev, had)
	}

	cur, ok := repo.Current("guest:u1")
	if !ok || cur.ID != "doc-2" {
		t.Fatalf("current = %+v", cur)
	}
	if !strings.HasPrefix(cur.StorageKey, "k") {
		t.Fatalf("storage key = %s", cur.StorageKey)
	}
}
