package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"squares-board/internal/domain"
)

// AnswerLoader fetches a player's answer records from the backend.
type AnswerLoader interface {
	Answers(ctx context.Context, identity string) ([]domain.AnswerRecord, error)
}

// AnswerCache keeps per-player answer records in Redis so multiple displays
// can share one backend lookup. Records are stored as a JSON blob under
// squares:answers:{identity} with a jittered TTL; cache misses fall through
// to the loader behind a singleflight gate.
type AnswerCache struct {
	client *redis.Client
	loader AnswerLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewAnswerCache(client *redis.Client, loader AnswerLoader, ttl time.Duration) *AnswerCache {
	return &AnswerCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *AnswerCache) Answers(ctx context.Context, identity string) ([]domain.AnswerRecord, error) {
	key := c.key(identity)

	if answers, ok := c.lookup(ctx, key); ok {
		return answers, nil
	}

	result, err, _ := c.sf.Do(identity, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if answers, ok := c.lookup(ctx, key); ok {
			return answers, nil
		}

		answers, err := c.loader.Answers(ctx, identity)
		if err != nil {
			return nil, err
		}

		if raw, err := json.Marshal(answers); err == nil {
			// best-effort fill; a failed write just means a reload next time
			_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
		}
		return answers, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.AnswerRecord), nil
}

func (c *AnswerCache) lookup(ctx context.Context, key string) ([]domain.AnswerRecord, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var answers []domain.AnswerRecord
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, false
	}
	return answers, true
}

func (c *AnswerCache) key(identity string) string {
	return "squares:answers:" + identity
}

func (c *AnswerCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
