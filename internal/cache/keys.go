package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache key builders and TTLs. Post pages are never cached; cursors make
// every page request cheap and personalization (my_reaction) is per caller.
const (
	UserTTL = 5 * time.Minute
	PostTTL = 30 * time.Second
)

// UserKey returns the cache key for a user profile.
func UserKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// PostKey returns the cache key for a single post.
func PostKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

// ReactionsKey returns the Redis hash key holding one user's reactions.
func ReactionsKey(userID uint) string {
	return fmt.Sprintf("reactions:%d", userID)
}

// InvalidateUser drops the cached user profile.
func InvalidateUser(ctx context.Context, id uint) {
	Delete(ctx, UserKey(id))
}

// InvalidatePost drops the cached post.
func InvalidatePost(ctx context.Context, id uint) {
	Delete(ctx, PostKey(id))
}
