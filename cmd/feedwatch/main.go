// Command feedwatch pages through a running Memeboard server's feed from the
// terminal, exercising the same pagination session a client app would use.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"memeboard/internal/feed"
)

// httpFetcher loads feed pages over the HTTP API.
type httpFetcher struct {
	baseURL string
	token   string
	client  *http.Client
}

func (f *httpFetcher) FetchPage(ctx context.Context, sort feed.Sort, cursor string) (*feed.Page, error) {
	q := url.Values{}
	q.Set("sort", string(sort))
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/api/feed?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, fmt.Errorf("feed request failed (%d): %s", resp.StatusCode, apiErr.Error)
	}

	var page feed.Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, err
	}
	return &page, nil
}

func main() {
	baseURL := flag.String("url", "http://localhost:8375", "server base URL")
	sortFlag := flag.String("sort", "newest", "feed sort: newest, liked, disliked, or mine")
	token := flag.String("token", "", "bearer token (required for the mine sort)")
	pages := flag.Int("pages", 0, "stop after this many pages (0 = until exhausted)")
	delay := flag.Duration("delay", 500*time.Millisecond, "pause between page loads")
	flag.Parse()

	sort, err := feed.ParseSort(*sortFlag)
	if err != nil {
		log.Fatalf("Invalid sort: %v", err)
	}

	fetcher := &httpFetcher{
		baseURL: *baseURL,
		token:   *token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	session := feed.NewSession(fetcher, sort)
	ctx := context.Background()

	loaded := 0
	for session.State() != feed.StateExhausted {
		posts, err := session.LoadNextPage(ctx)
		if err != nil {
			log.Fatalf("Failed to load page: %v", err)
		}
		loaded++

		for _, post := range posts {
			caption := post.Text
			if caption == "" {
				caption = "(image only)"
			}
			fmt.Printf("#%-6d %-12s +%-4d -%-4d %s\n",
				post.ID, post.CreatedAt.Format("Jan 02 15:04"), post.Likes, post.Dislikes, caption)
		}

		if *pages > 0 && loaded >= *pages {
			break
		}
		if session.State() != feed.StateExhausted {
			time.Sleep(*delay)
		}
	}

	fmt.Printf("-- %d posts across %d pages (%s) --\n", len(session.Items()), loaded, sort)
}
