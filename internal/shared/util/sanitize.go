package util

import (
	"errors"
	"strings"
)

// SanitizeFileName makes an uploaded resume's name safe to embed in a
// storage key: path separators are flattened and traversal sequences are
// rejected outright.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}
