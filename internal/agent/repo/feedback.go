package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trip-assistant-poc/server/internal/agent/model"
	errx "github.com/trip-assistant-poc/server/internal/core/error"
	logx "github.com/trip-assistant-poc/server/pkg/logger"
)

type RedisFeedbackRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisFeedbackRepository(rdb redis.Cmdable, ttl time.Duration) *RedisFeedbackRepository {
	return &RedisFeedbackRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisFeedbackRepository) feedbackKey(id string) string {
	return fmt.Sprintf("feedback:%s", id)
}

// messageFeedbackKey indexes feedback ids by the rated message.
func (r *RedisFeedbackRepository) messageFeedbackKey(messageID string) string {
	return fmt.Sprintf("message:%s:feedback", messageID)
}

func (r *RedisFeedbackRepository) StoreFeedback(ctx context.Context, fb *model.Feedback) error {
	if fb == nil || fb.ID == "" {
		return errx.Validation("feedback id must be set")
	}
	key := r.feedbackKey(fb.ID)

	fields := map[string]any{
		"id":              fb.ID,
		"created_at":      fb.CreatedAt.UTC().Format(time.RFC3339Nano),
		"message_id":      fb.MessageID,
		"message_preview": fb.MessagePreview,
		"rating":          fb.Rating,
		"comment":         fb.Comment,
	}

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fields)
		pipe.SAdd(ctx, r.messageFeedbackKey(fb.MessageID), fb.ID)
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
			pipe.Expire(ctx, r.messageFeedbackKey(fb.MessageID), r.ttl)
		}
		return nil
	})
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to store feedback in redis")
		return errx.WrapRedis(err)
	}
	logx.Info().Str("feedback_id", fb.ID).Str("rating", fb.Rating).Msg("Feedback stored")
	return nil
}

// ListFeedbackIDs returns the ids of all feedback stored for messageID.
func (r *RedisFeedbackRepository) ListFeedbackIDs(ctx context.Context, messageID string) ([]string, error) {
	ids, err := r.rdb.SMembers(ctx, r.messageFeedbackKey(messageID)).Result()
	if err != nil {
		return nil, errx.WrapRedis(err)
	}
	return ids, nil
}

var _ model.FeedbackRepository = (*RedisFeedbackRepository)(nil)
