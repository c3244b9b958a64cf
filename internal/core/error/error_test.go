package errx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapRedis(t *testing.T) {
	assert.Nil(t, WrapRedis(nil))

	notFound := WrapRedis(redis.Nil)
	assert.Equal(t, http.StatusNotFound, StatusOf(notFound))
	assert.True(t, errors.Is(notFound, redis.Nil))

	other := WrapRedis(errors.New("connection refused"))
	assert.Equal(t, http.StatusBadGateway, StatusOf(other))
	assert.Contains(t, other.Error(), RedisErrorMessage)
}

func TestWrapProvider(t *testing.T) {
	assert.Nil(t, WrapProvider(nil))

	err := WrapProvider(fmt.Errorf("generate: %w", context.DeadlineExceeded))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
	assert.Equal(t, ProviderErrorMessage, appErr.Message)
}

func TestValidationAndStatusOf(t *testing.T) {
	err := Validation("question must not be empty")
	assert.Equal(t, "question must not be empty", err.Error())
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
	assert.Equal(t, http.StatusBadRequest, StatusOf(fmt.Errorf("wrapped: %w", err)))
}
