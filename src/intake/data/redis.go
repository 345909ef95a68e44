package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

const streamAccepted = "formgate.submissions"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// PublishAccepted appends one accepted submission to the event stream so
// downstream consumers (notifiers, CRM sync) can pick it up. Best-effort:
// callers ignore the error after logging.
func PublishAccepted(ctx context.Context, rdb *redis.Client, payload map[string]any) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamAccepted,
		Values: payload,
	}).Result()
	return err
}
