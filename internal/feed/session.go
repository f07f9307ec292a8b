package feed

import (
	"context"
	"sync"

	"memeboard/internal/models"
)

// State is the lifecycle state of a Session.
type State int

const (
	// StateIdle means no load is in flight and more pages may exist.
	StateIdle State = iota
	// StateLoading means a page request is in flight.
	StateLoading
	// StateExhausted means the feed has been fully consumed for this sort.
	StateExhausted
)

// Session accumulates feed pages for one sort mode on behalf of a consumer
// (the feedwatch CLI, or any embedding client). It guards against the two
// classic pagination races: overlapping loads, and a response from before a
// reset or sort switch landing after it.
type Session struct {
	fetcher Fetcher

	mu     sync.Mutex
	sort   Sort
	cursor string
	items  []models.Post
	state  State
	// epoch increments on every reset; responses stamped with an older
	// epoch are discarded.
	epoch uint64
}

// NewSession returns an idle session for the given sort.
func NewSession(fetcher Fetcher, sort Sort) *Session {
	return &Session{fetcher: fetcher, sort: sort}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Items returns a copy of all posts accumulated so far, in feed order.
func (s *Session) Items() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Post, len(s.items))
	copy(out, s.items)
	return out
}

// Sort returns the session's sort mode.
func (s *Session) Sort() Sort {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sort
}

// SwitchSort resets the session onto a different sort mode. Accumulated items
// and the cursor are discarded; any in-flight response will be dropped.
func (s *Session) SwitchSort(sort Sort) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = sort
	s.resetLocked()
}

// Reset discards accumulated items and the cursor, keeping the sort mode.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.epoch++
	s.cursor = ""
	s.items = nil
	s.state = StateIdle
}

// LoadNextPage fetches the next page and appends it to the session.
// Returns the newly appended posts.
//
// A call while a load is already in flight, or after exhaustion, is a no-op
// returning nil. A fetch error leaves the cursor and state untouched so the
// caller can simply retry.
func (s *Session) LoadNextPage(ctx context.Context) ([]models.Post, error) {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return nil, nil
	}
	s.state = StateLoading
	epoch := s.epoch
	sort := s.sort
	cursor := s.cursor
	s.mu.Unlock()

	page, err := s.fetcher.FetchPage(ctx, sort, cursor)

	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		// A reset or sort switch happened while this request was in
		// flight; its result no longer belongs to the session.
		return nil, nil
	}

	if err != nil {
		s.state = StateIdle
		return nil, err
	}

	s.items = append(s.items, page.Posts...)
	s.cursor = page.NextCursor
	if page.Exhausted {
		s.state = StateExhausted
	} else {
		s.state = StateIdle
	}
	return page.Posts, nil
}
