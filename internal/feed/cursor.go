// Package feed defines feed sort modes, opaque pagination cursors, and a
// client-side page loading session.
package feed

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Sort is a feed ordering mode.
type Sort string

const (
	// SortMine lists the caller's own posts, newest first. Requires identity.
	SortMine Sort = "mine"
	// SortNewest lists all posts, newest first.
	SortNewest Sort = "newest"
	// SortLiked orders by like count descending, then recency.
	SortLiked Sort = "liked"
	// SortDisliked orders by dislike count descending, then recency.
	SortDisliked Sort = "disliked"
)

// ParseSort maps a wire value to a Sort, defaulting to newest when empty.
func ParseSort(s string) (Sort, error) {
	switch Sort(s) {
	case SortMine, SortNewest, SortLiked, SortDisliked:
		return Sort(s), nil
	case "":
		return SortNewest, nil
	default:
		return "", fmt.Errorf("unknown sort %q", s)
	}
}

// RequiresIdentity reports whether this sort only makes sense for a
// signed-in caller.
func (s Sort) RequiresIdentity() bool {
	return s == SortMine
}

// Cursor marks a position in a sorted feed. It carries the full sort key of
// the last delivered post so the next page starts strictly after it, plus the
// sort mode and owner scope it was issued for. A cursor presented under a
// different mode or identity is invalid and forces a reset.
type Cursor struct {
	Sort      Sort      `json:"s"`
	UserID    uint      `json:"u,omitempty"`
	CreatedAt time.Time `json:"c"`
	Likes     int       `json:"l"`
	Dislikes  int       `json:"d"`
	ID        uint      `json:"i"`
}

// Encode serializes the cursor to an opaque URL-safe token.
func (c Cursor) Encode() string {
	b, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeCursor parses a token and checks it belongs to the given sort and
// identity scope. An empty token means "from the top" and returns nil.
func DecodeCursor(token string, sort Sort, userID uint) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", err)
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", err)
	}
	if c.Sort != sort {
		return nil, fmt.Errorf("cursor issued for sort %q, not %q", c.Sort, sort)
	}
	if c.Sort.RequiresIdentity() && c.UserID != userID {
		return nil, fmt.Errorf("cursor issued for a different user")
	}
	if c.ID == 0 {
		return nil, fmt.Errorf("malformed cursor: missing position")
	}
	return &c, nil
}
