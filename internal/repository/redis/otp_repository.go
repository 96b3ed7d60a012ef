package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// takeScript deletes KEYS[1] only if it holds ARGV[1].
var takeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// OTPRepository stores codes in redis so every instance sees the same state.
type OTPRepository struct {
	client *redis.Client
	prefix string
}

func NewOTPRepository(client *redis.Client) *OTPRepository {
	return &OTPRepository{
		client: client,
		prefix: "otp:",
	}
}

func (r *OTPRepository) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store otp in Redis: %w", err)
	}

	return nil
}

func (r *OTPRepository) Take(ctx context.Context, key, expected string) (bool, error) {
	n, err := takeScript.Run(ctx, r.client, []string{r.prefix + key}, expected).Int()
	if err != nil {
		return false, fmt.Errorf("failed to take otp from Redis: %w", err)
	}

	return n == 1, nil
}
