package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	// MimePDF is the declared MIME type for PDF uploads.
	MimePDF = "application/pdf"
	// MimeDOCX is the declared MIME type for DOCX uploads.
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	// ErrUnsupportedFormat indicates a document that is neither PDF nor DOCX.
	// It is raised before any parsing happens.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrExtraction indicates a corrupt, empty, or unreadable document.
	ErrExtraction = errors.New("document extraction failed")
)

// Text extracts plain text from an in-memory PDF or DOCX payload.
// A structurally valid document with no text (e.g. an image-only PDF) yields
// an empty string and no error; callers treat empty text as "no extractable
// text" rather than a failure.
func Text(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty document", ErrExtraction)
	}
	switch NormalizeMimeType(mimeType, fileName, data) {
	case MimePDF:
		return extractPDF(data)
	case MimeDOCX:
		return extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}
}

// Supported reports whether the declared MIME type maps to PDF or DOCX.
func Supported(mimeType string, fileName string, data []byte) bool {
	switch NormalizeMimeType(mimeType, fileName, data) {
	case MimePDF, MimeDOCX:
		return true
	default:
		return false
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: read pdf: %v", ErrExtraction, err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: pdf text: %v", ErrExtraction, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: pdf text: %v", ErrExtraction, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func extractDOCX(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	doc, err := docx.ReadDocxFromMemory(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: read docx: %v", ErrExtraction, err)
	}
	defer doc.Close()

	// GetContent returns the raw word/document.xml; flatten to plain text.
	return stripDocxXML(doc.Editable().GetContent()), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return strings.TrimSpace(raw)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// NormalizeMimeType maps browser-reported MIME types onto the two supported
// formats. OOXML files often arrive as application/zip; fall back to the file
// extension and the zip contents to disambiguate.
func NormalizeMimeType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean == "application/zip" || clean == "application/octet-stream" || clean == "" {
		if looksLikeDocx(data) {
			return MimeDOCX
		}
		if looksLikePDF(data) {
			return MimePDF
		}
		switch strings.ToLower(filepath.Ext(fileName)) {
		case ".docx":
			return MimeDOCX
		case ".pdf":
			return MimePDF
		}
	}
	return clean
}

func looksLikePDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

func looksLikeDocx(data []byte) bool {
	if !bytes.HasPrefix(data, []byte("PK")) {
		return false
	}
	// DOCX archives always carry word/document.xml; a cheap substring probe
	// avoids unpacking the zip just to classify it.
	return bytes.Contains(data, []byte("word/document.xml"))
}
