package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"

	"memeboard/internal/cache"
	"memeboard/internal/middleware"
	"memeboard/internal/models"

	"github.com/redis/go-redis/v9"
)

// ReactionStore holds each user's personal reaction map. Reads are fail-open:
// a missing backend, missing entry, or unparsable value all come back as
// ReactionNone, never as an error. Reaction state is advisory; losing it only
// costs the highlight on the client, the counters live on the post row.
type ReactionStore interface {
	Get(ctx context.Context, userID, postID uint) models.Reaction
	GetMany(ctx context.Context, userID uint, postIDs []uint) map[uint]models.Reaction
	// Set records the reaction; ReactionNone removes the entry.
	Set(ctx context.Context, userID, postID uint, reaction models.Reaction) error
	// Clear removes a single post's entry for the user.
	Clear(ctx context.Context, userID, postID uint)
}

// redisReactionStore keeps one Redis hash per user, field = post ID,
// value = JSON-encoded reaction.
type redisReactionStore struct {
	client *redis.Client
}

// NewRedisReactionStore returns a ReactionStore backed by the given client.
func NewRedisReactionStore(client *redis.Client) ReactionStore {
	return &redisReactionStore{client: client}
}

func parseStoredReaction(raw string) models.Reaction {
	var s string
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		// Corrupt entry reads as no reaction.
		return models.ReactionNone
	}
	reaction, err := models.ParseReaction(s)
	if err != nil {
		return models.ReactionNone
	}
	return reaction
}

func (s *redisReactionStore) Get(ctx context.Context, userID, postID uint) models.Reaction {
	if s.client == nil {
		return models.ReactionNone
	}
	raw, err := s.client.HGet(ctx, cache.ReactionsKey(userID), strconv.FormatUint(uint64(postID), 10)).Result()
	if err != nil {
		return models.ReactionNone
	}
	return parseStoredReaction(raw)
}

func (s *redisReactionStore) GetMany(ctx context.Context, userID uint, postIDs []uint) map[uint]models.Reaction {
	out := make(map[uint]models.Reaction, len(postIDs))
	if s.client == nil || len(postIDs) == 0 {
		return out
	}

	fields := make([]string, len(postIDs))
	for i, id := range postIDs {
		fields[i] = strconv.FormatUint(uint64(id), 10)
	}
	values, err := s.client.HMGet(ctx, cache.ReactionsKey(userID), fields...).Result()
	if err != nil {
		return out
	}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		if reaction := parseStoredReaction(raw); reaction != models.ReactionNone {
			out[postIDs[i]] = reaction
		}
	}
	return out
}

func (s *redisReactionStore) Set(ctx context.Context, userID, postID uint, reaction models.Reaction) error {
	if s.client == nil {
		return nil
	}
	key := cache.ReactionsKey(userID)
	field := strconv.FormatUint(uint64(postID), 10)

	if reaction == models.ReactionNone {
		return s.client.HDel(ctx, key, field).Err()
	}
	value, _ := json.Marshal(string(reaction))
	return s.client.HSet(ctx, key, field, value).Err()
}

func (s *redisReactionStore) Clear(ctx context.Context, userID, postID uint) {
	if err := s.Set(ctx, userID, postID, models.ReactionNone); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to clear reaction entry",
			slog.Any("user_id", userID),
			slog.Any("post_id", postID),
			slog.String("error", err.Error()),
		)
	}
}

// memoryReactionStore is the fallback when Redis is unavailable, and the
// backend used in handler tests. State is per process.
type memoryReactionStore struct {
	mu sync.RWMutex
	m  map[uint]map[uint]models.Reaction
}

// NewMemoryReactionStore returns an in-process ReactionStore.
func NewMemoryReactionStore() ReactionStore {
	return &memoryReactionStore{m: make(map[uint]map[uint]models.Reaction)}
}

func (s *memoryReactionStore) Get(_ context.Context, userID, postID uint) models.Reaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[userID][postID]
}

func (s *memoryReactionStore) GetMany(_ context.Context, userID uint, postIDs []uint) map[uint]models.Reaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[uint]models.Reaction, len(postIDs))
	userMap := s.m[userID]
	for _, id := range postIDs {
		if r, ok := userMap[id]; ok && r != models.ReactionNone {
			out[id] = r
		}
	}
	return out
}

func (s *memoryReactionStore) Set(_ context.Context, userID, postID uint, reaction models.Reaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reaction == models.ReactionNone {
		delete(s.m[userID], postID)
		return nil
	}
	if s.m[userID] == nil {
		s.m[userID] = make(map[uint]models.Reaction)
	}
	s.m[userID][postID] = reaction
	return nil
}

func (s *memoryReactionStore) Clear(ctx context.Context, userID, postID uint) {
	_ = s.Set(ctx, userID, postID, models.ReactionNone)
}

// NewReactionStore picks the Redis-backed store when a client is available
// and falls back to the in-process store otherwise.
func NewReactionStore(client *redis.Client) ReactionStore {
	if client == nil {
		middleware.Logger.Warn("redis unavailable, using in-process reaction store")
		return NewMemoryReactionStore()
	}
	return NewRedisReactionStore(client)
}
