package models

import (
	"strings"
	"time"
)

// Draft is the durable compose state for one user: at most one pending image
// and one pending text blob. It is cleared on successful publish and survives
// reloads in the meantime.
type Draft struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	UserID uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	Text   string `gorm:"type:text" json:"text"`
	// Pending image metadata; the bytes live in the object store under StagedPath.
	ImageName string    `json:"image_name,omitempty"`
	ImageType string    `json:"image_type,omitempty"`
	ImageSize int64     `json:"image_size,omitempty"`
	StagedPath string   `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasImage reports whether an image is staged for this draft.
func (d *Draft) HasImage() bool {
	return d.StagedPath != ""
}

// CanPublish reports whether the draft has anything worth publishing:
// a staged image or non-whitespace text.
func (d *Draft) CanPublish() bool {
	return d.HasImage() || strings.TrimSpace(d.Text) != ""
}
