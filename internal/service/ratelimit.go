package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CheckAndSetRateLimit opens a rate-limit window for subject/action. Returns
// false when the window is still held. A nil client disables limiting.
func CheckAndSetRateLimit(ctx context.Context, rdb *redis.Client, subject, action string, limit time.Duration) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:%s:%s", action, subject)

	wasSet, err := rdb.SetNX(ctx, key, "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

func ClearRateLimit(ctx context.Context, rdb *redis.Client, subject, action string) error {
	if rdb == nil {
		return nil
	}
	key := fmt.Sprintf("rate_limit:%s:%s", action, subject)
	_, err := rdb.Del(ctx, key).Result()
	return err
}
