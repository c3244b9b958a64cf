package errx

import (
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// WrapRedis maps a Redis error to an AppError: a missing key is 404, anything else 502.
func WrapRedis(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.Nil):
		return New(err, http.StatusNotFound, RedisNotFoundMessage)
	default:
		return New(err, http.StatusBadGateway, RedisErrorMessage)
	}
}

// WrapProvider marks an LLM provider failure (timeout, rate limit, malformed output) as 502.
func WrapProvider(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, ProviderErrorMessage)
}
