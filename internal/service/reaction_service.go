package service

import (
	"context"

	"memeboard/internal/models"
	"memeboard/internal/observability"
	"memeboard/internal/repository"
)

// ReactionService reconciles a user's requested reaction against their
// recorded one: it derives counter deltas from the transition, applies them
// atomically to the post, and only then updates the user's reaction store.
type ReactionService struct {
	posts     repository.PostRepository
	reactions repository.ReactionStore
}

type ApplyReactionInput struct {
	UserID   uint
	PostID   uint
	Reaction models.Reaction
}

// ApplyResult reports the outcome of a reaction change. The deltas let a
// client adjust its displayed counters without refetching the post.
type ApplyResult struct {
	Reaction     models.Reaction `json:"reaction"`
	LikeDelta    int             `json:"like_delta"`
	DislikeDelta int             `json:"dislike_delta"`
}

func NewReactionService(posts repository.PostRepository, reactions repository.ReactionStore) *ReactionService {
	return &ReactionService{posts: posts, reactions: reactions}
}

// Apply transitions the user's reaction on a post. Requesting the reaction
// already recorded toggles it off. Each counter moves by at most one per
// call; a like-to-dislike switch adjusts both in a single atomic update.
func (s *ReactionService) Apply(ctx context.Context, in ApplyReactionInput) (*ApplyResult, error) {
	if in.UserID == 0 {
		return nil, models.NewAuthRequiredError("reactions")
	}
	if !in.Reaction.Valid() {
		return nil, models.NewValidationError("Invalid reaction")
	}

	current := s.reactions.Get(ctx, in.UserID, in.PostID)
	next := in.Reaction
	if next != models.ReactionNone && next == current {
		// Clicking the active reaction again clears it.
		next = models.ReactionNone
	}

	likeDelta, dislikeDelta := models.ReactionDeltas(current, next)
	if likeDelta == 0 && dislikeDelta == 0 {
		return &ApplyResult{Reaction: current}, nil
	}

	if err := s.posts.ApplyReactionDeltas(ctx, in.PostID, likeDelta, dislikeDelta); err != nil {
		// Counters unchanged, so the recorded reaction must stay too.
		return nil, err
	}

	if err := s.reactions.Set(ctx, in.UserID, in.PostID, next); err != nil {
		// Counters moved but the personal record did not. The next click
		// reconciles from the stale state.
		return &ApplyResult{Reaction: next, LikeDelta: likeDelta, DislikeDelta: dislikeDelta}, nil
	}

	observability.ReactionsTotal.WithLabelValues(transitionLabel(current, next)).Inc()
	return &ApplyResult{Reaction: next, LikeDelta: likeDelta, DislikeDelta: dislikeDelta}, nil
}

func transitionLabel(current, next models.Reaction) string {
	switch {
	case next == models.ReactionNone:
		return "clear"
	case current == models.ReactionNone:
		return string(next)
	default:
		return "switch"
	}
}
