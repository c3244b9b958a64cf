package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trip-assistant-poc/server/internal/agent/model"
	errx "github.com/trip-assistant-poc/server/internal/core/error"
	logx "github.com/trip-assistant-poc/server/pkg/logger"
)

type RedisMessageRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisMessageRepository(rdb redis.Cmdable, ttl time.Duration) *RedisMessageRepository {
	return &RedisMessageRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisMessageRepository) messageKey(id string) string {
	return fmt.Sprintf("message:%s", id)
}

func (r *RedisMessageRepository) StoreMessage(ctx context.Context, msg *model.Message) error {
	if msg == nil || msg.ID == "" {
		return errx.Validation("message id must be set")
	}
	key := r.messageKey(msg.ID)

	fields := map[string]any{
		"id":         msg.ID,
		"created_at": msg.CreatedAt.UTC().Format(time.RFC3339Nano),
		"question":   msg.Question,
		"answer":     msg.Answer,
		"category":   msg.Category,
		"confidence": strconv.FormatFloat(msg.Confidence, 'f', -1, 64),
	}
	if msg.Source != nil {
		fields["source"] = *msg.Source
	}

	if err := storeHash(ctx, r.rdb, key, fields, r.ttl); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to store message in redis")
		return errx.WrapRedis(err)
	}
	logx.Info().Str("message_id", msg.ID).Msg("Message stored")
	return nil
}

func (r *RedisMessageRepository) GetMessage(ctx context.Context, id string) (*model.Message, error) {
	key := r.messageKey(id)

	row, err := r.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load message from redis")
		return nil, errx.WrapRedis(err)
	}
	if len(row) == 0 {
		return nil, nil
	}

	msg := &model.Message{
		ID:       row["id"],
		Question: row["question"],
		Answer:   row["answer"],
		Category: row["category"],
	}
	if v, ok := row["source"]; ok {
		msg.Source = model.StringPtr(v)
	}
	if v := row["confidence"]; v != "" {
		if msg.Confidence, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("parse confidence of message %s: %w", id, err)
		}
	}
	if v := row["created_at"]; v != "" {
		if msg.CreatedAt, err = time.Parse(time.RFC3339Nano, v); err != nil {
			return nil, fmt.Errorf("parse created_at of message %s: %w", id, err)
		}
	}
	return msg, nil
}

// storeHash writes fields to key and sets its TTL in one transaction.
func storeHash(ctx context.Context, rdb redis.Cmdable, key string, fields map[string]any, ttl time.Duration) error {
	_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fields)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	return err
}

var _ model.MessageRepository = (*RedisMessageRepository)(nil)
