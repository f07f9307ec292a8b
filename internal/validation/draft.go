// Package validation contains input validation rules shared by services and handlers.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxDraftTextLines and MaxDraftTextChars bound caption size. Both limits
	// are checked on set and re-checked at publish.
	MaxDraftTextLines = 10
	MaxDraftTextChars = 500
)

var lineBreakRegex = regexp.MustCompile(`\r?\n`)

// ValidateDraftText checks caption constraints. Empty text is valid; a draft
// with neither text nor image simply cannot be published.
func ValidateDraftText(text string) error {
	if text == "" {
		return nil
	}
	if lines := len(lineBreakRegex.Split(text, -1)); lines > MaxDraftTextLines {
		return fmt.Errorf("text must be at most %d lines", MaxDraftTextLines)
	}
	if utf8.RuneCountInString(text) > MaxDraftTextChars {
		return fmt.Errorf("text must be at most %d characters", MaxDraftTextChars)
	}
	return nil
}

// ValidateDraftImage checks the declared content type and size of a pending
// image against the configured ceiling.
func ValidateDraftImage(contentType string, size, maxBytes int64) error {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/") {
		return fmt.Errorf("file must be an image")
	}
	if size <= 0 {
		return fmt.Errorf("image file is empty")
	}
	if size > maxBytes {
		return fmt.Errorf("image too large (max %dMB)", maxBytes>>20)
	}
	return nil
}
