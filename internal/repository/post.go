package repository

import (
	"context"
	"errors"

	"memeboard/internal/cache"
	"memeboard/internal/feed"
	"memeboard/internal/models"
	"memeboard/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	FeedPage(ctx context.Context, q FeedQuery) ([]models.Post, error)
	Delete(ctx context.Context, id uint) error
	// ApplyReactionDeltas atomically adjusts both counters, flooring at zero.
	ApplyReactionDeltas(ctx context.Context, postID uint, likeDelta, dislikeDelta int) error
}

// FeedQuery describes one page of a sorted feed. Cursor nil means start from
// the top. OwnerID scopes the "mine" sort and is ignored otherwise.
type FeedQuery struct {
	Sort    feed.Sort
	Cursor  *feed.Cursor
	Limit   int
	OwnerID uint
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) FeedPage(ctx context.Context, q FeedQuery) ([]models.Post, error) {
	defer observability.TrackQuery("feed_page", "posts")()

	db := r.db.WithContext(ctx).Preload("User")

	if q.Sort == feed.SortMine {
		db = db.Where("user_id = ?", q.OwnerID)
	}
	db = r.applyCursor(db, q.Sort, q.Cursor)
	db = r.applySort(db, q.Sort)

	var posts []models.Post
	if err := db.Limit(q.Limit).Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// applySort appends the ORDER BY clause for the requested sort. Post ID is
// always the final tiebreak so the ordering is total and cursors are stable.
func (r *postRepository) applySort(db *gorm.DB, sort feed.Sort) *gorm.DB {
	switch sort {
	case feed.SortLiked:
		return db.Order("likes DESC, created_at DESC, id DESC")
	case feed.SortDisliked:
		return db.Order("dislikes DESC, created_at DESC, id DESC")
	default: // newest, mine
		return db.Order("created_at DESC, id DESC")
	}
}

// applyCursor appends the keyset predicate selecting rows strictly after the
// cursor position. Written as expanded OR chains rather than row-value
// comparisons so the same query runs on PostgreSQL and sqlite.
func (r *postRepository) applyCursor(db *gorm.DB, sort feed.Sort, c *feed.Cursor) *gorm.DB {
	if c == nil {
		return db
	}
	switch sort {
	case feed.SortLiked:
		return db.Where(
			"likes < ? OR (likes = ? AND created_at < ?) OR (likes = ? AND created_at = ? AND id < ?)",
			c.Likes, c.Likes, c.CreatedAt, c.Likes, c.CreatedAt, c.ID,
		)
	case feed.SortDisliked:
		return db.Where(
			"dislikes < ? OR (dislikes = ? AND created_at < ?) OR (dislikes = ? AND created_at = ? AND id < ?)",
			c.Dislikes, c.Dislikes, c.CreatedAt, c.Dislikes, c.CreatedAt, c.ID,
		)
	default: // newest, mine
		return db.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			c.CreatedAt, c.CreatedAt, c.ID,
		)
	}
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

func (r *postRepository) ApplyReactionDeltas(ctx context.Context, postID uint, likeDelta, dislikeDelta int) error {
	if likeDelta == 0 && dislikeDelta == 0 {
		return nil
	}
	defer observability.TrackQuery("reaction_deltas", "posts")()

	// Single UPDATE so concurrent reactions never lose increments. Counters
	// are floored at zero; a stale clear can otherwise drive them negative.
	floor := "GREATEST"
	if r.db.Dialector.Name() == "sqlite" {
		floor = "MAX"
	}
	result := r.db.WithContext(ctx).Exec(
		"UPDATE posts SET likes = "+floor+"(0, likes + ?), dislikes = "+floor+"(0, dislikes + ?), updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL",
		likeDelta, dislikeDelta, postID,
	)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", postID)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}
