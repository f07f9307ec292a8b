package service

import (
	"context"

	"memeboard/internal/feed"
	"memeboard/internal/models"
	"memeboard/internal/observability"
	"memeboard/internal/repository"
)

// FeedService builds sorted, cursor-paginated feed pages and overlays the
// caller's own reactions.
type FeedService struct {
	posts     repository.PostRepository
	reactions repository.ReactionStore
	pageSize  int
}

type LoadPageInput struct {
	Sort   feed.Sort
	Cursor string
	// UserID is the caller's identity; zero for anonymous browsing.
	UserID uint
}

func NewFeedService(posts repository.PostRepository, reactions repository.ReactionStore, pageSize int) *FeedService {
	return &FeedService{posts: posts, reactions: reactions, pageSize: pageSize}
}

// LoadPage fetches one feed page. The returned cursor resumes strictly after
// the last post; Exhausted is set when the page came back short, so a full
// final page costs one extra empty fetch.
func (s *FeedService) LoadPage(ctx context.Context, in LoadPageInput) (*feed.Page, error) {
	if in.Sort.RequiresIdentity() && in.UserID == 0 {
		return nil, models.NewAuthRequiredError("the mine feed")
	}

	cursor, err := feed.DecodeCursor(in.Cursor, in.Sort, in.UserID)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	posts, err := s.posts.FeedPage(ctx, repository.FeedQuery{
		Sort:    in.Sort,
		Cursor:  cursor,
		Limit:   s.pageSize,
		OwnerID: in.UserID,
	})
	if err != nil {
		return nil, err
	}

	s.overlayReactions(ctx, in.UserID, posts)

	page := &feed.Page{
		Posts:     posts,
		Exhausted: len(posts) < s.pageSize,
	}
	if !page.Exhausted && len(posts) > 0 {
		last := posts[len(posts)-1]
		next := feed.Cursor{
			Sort:      in.Sort,
			CreatedAt: last.CreatedAt,
			Likes:     last.Likes,
			Dislikes:  last.Dislikes,
			ID:        last.ID,
		}
		if in.Sort.RequiresIdentity() {
			next.UserID = in.UserID
		}
		page.NextCursor = next.Encode()
	}

	observability.FeedPagesTotal.WithLabelValues(string(in.Sort)).Inc()
	return page, nil
}

func (s *FeedService) overlayReactions(ctx context.Context, userID uint, posts []models.Post) {
	if userID == 0 || len(posts) == 0 {
		return
	}
	ids := make([]uint, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	mine := s.reactions.GetMany(ctx, userID, ids)
	for i := range posts {
		posts[i].MyReaction = mine[posts[i].ID]
	}
}
