package feed

import (
	"context"

	"memeboard/internal/models"
)

// Page is one loaded slice of a feed.
type Page struct {
	Posts []models.Post `json:"posts"`
	// NextCursor resumes after the last post of this page. Empty when the
	// feed is exhausted.
	NextCursor string `json:"next_cursor,omitempty"`
	Exhausted  bool   `json:"exhausted"`
}

// Fetcher loads one page of a feed. The server-side implementation queries
// the database; the client-side implementation calls the HTTP API.
type Fetcher interface {
	FetchPage(ctx context.Context, sort Sort, cursor string) (*Page, error)
}
