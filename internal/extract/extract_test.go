package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTextEmptyDocument(t *testing.T) {
	_, err := Text(context.Background(), nil, MimePDF, "resume.pdf")
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected ErrExtraction for empty payload, got %v", err)
	}
}

func TestTextUnsupportedFormat(t *testing.T) {
	_, err := Text(context.Background(), []byte("plain text resume"), "text/plain", "resume.txt")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestTextCorruptPDF(t *testing.T) {
	_, err := Text(context.Background(), []byte("%PDF-1.7 garbage"), MimePDF, "resume.pdf")
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected ErrExtraction for corrupt pdf, got %v", err)
	}
}

func TestNormalizeMimeTypeZipDocx(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("<w:document/>")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	got := NormalizeMimeType("application/zip", "resume.docx", buf.Bytes())
	if got != MimeDOCX {
		t.Fatalf("expected docx mime, got %s", got)
	}
}

func TestNormalizeMimeTypePlainZipStaysZip(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	if got := NormalizeMimeType("application/zip", "notes.zip", buf.Bytes()); got != "application/zip" {
		t.Fatalf("expected zip to stay unsupported, got %s", got)
	}
}

func TestNormalizeMimeTypeSniffsPDF(t *testing.T) {
	if got := NormalizeMimeType("application/octet-stream", "resume", []byte("%PDF-1.4\n")); got != MimePDF {
		t.Fatalf("expected pdf mime, got %s", got)
	}
}

func TestStripDocxXML(t *testing.T) {
	raw := `<w:document><w:body><w:p><w:r><w:t>John Doe</w:t></w:r></w:p><w:p><w:r><w:t>Engineer</w:t></w:r></w:p></w:body></w:document>`
	got := stripDocxXML(raw)
	if !strings.Contains(got, "John Doe") || !strings.Contains(got, "Engineer") {
		t.Fatalf("missing text content: %q", got)
	}
	if !strings.Contains(got, "\n") {
		t.Fatalf("expected paragraph break, got %q", got)
	}
}
