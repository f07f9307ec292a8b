// Package storage provides pluggable object storage for uploaded media.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when the requested object does not exist.
var ErrNotFound = errors.New("object not found")

// Store is the object storage abstraction used for meme images. Save returns
// the public URL for the stored object; the path passed in is the canonical
// identifier used for later reads and deletes.
type Store interface {
	Save(ctx context.Context, path string, data []byte) (url string, err error)
	Read(ctx context.Context, path string) ([]byte, error)
	Delete(ctx context.Context, path string) error
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename replaces every run of characters outside [A-Za-z0-9._-]
// with a single underscore, so user-supplied names are safe as path segments.
func SanitizeFilename(name string) string {
	s := unsafeFilenameChars.ReplaceAllString(name, "_")
	if s == "" {
		s = "file"
	}
	return s
}

// ObjectPath builds the permanent path for a published image. The millisecond
// timestamp prefix keeps names unique and roughly chronological.
func ObjectPath(filename string, now time.Time) string {
	return fmt.Sprintf("memes/%d_%s", now.UnixMilli(), SanitizeFilename(filename))
}

// StagingPath builds the path for a draft's pending image. UUID rather than
// timestamp so repeated re-uploads of the same file never collide.
func StagingPath(filename string) string {
	return fmt.Sprintf("staging/%s_%s", uuid.NewString(), SanitizeFilename(filename))
}
