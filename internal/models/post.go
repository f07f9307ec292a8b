// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a published meme: optional text, optional image, at least one of
// the two. Likes and Dislikes are aggregate counters only; who reacted is
// tracked per caller in the reaction store, never on the post row.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text" json:"text"`
	ImageURL string `json:"image_url,omitempty"`
	// ImagePath and ThumbPath are object-store keys, kept so deletion can
	// remove the blobs; clients only ever see the URLs.
	ImagePath string `json:"-"`
	ThumbURL  string `json:"thumb_url,omitempty"`
	ThumbPath string `json:"-"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	User      User   `gorm:"foreignKey:UserID" json:"user"`
	Likes     int    `gorm:"not null;default:0;index:idx_posts_likes,sort:desc" json:"likes"`
	Dislikes  int    `gorm:"not null;default:0;index:idx_posts_dislikes,sort:desc" json:"dislikes"`
	// MyReaction is the requesting caller's own reaction, overlaid per
	// request; it is never persisted with the post.
	MyReaction Reaction       `gorm:"-" json:"my_reaction,omitempty"`
	CreatedAt  time.Time      `gorm:"index:idx_posts_created,sort:desc" json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasImage reports whether the post carries an image.
func (p *Post) HasImage() bool {
	return p.ImagePath != ""
}
