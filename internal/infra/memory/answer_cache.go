package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"squares-board/internal/domain"
)

// AnswerLoader fetches a player's answer records from the backend.
type AnswerLoader interface {
	Answers(ctx context.Context, identity string) ([]domain.AnswerRecord, error)
}

// AnswerCache memoizes per-player answer lookups with a TTL so repeated
// what-if projections don't hammer the backend.
type AnswerCache struct {
	loader AnswerLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedAnswers
}

type cachedAnswers struct {
	answers   []domain.AnswerRecord
	expiresAt time.Time
}

func NewAnswerCache(loader AnswerLoader, ttl time.Duration) *AnswerCache {
	return NewAnswerCacheWithClock(loader, ttl, time.Now)
}

// NewAnswerCacheWithClock allows deterministic expiry in tests.
func NewAnswerCacheWithClock(loader AnswerLoader, ttl time.Duration, clock func() time.Time) *AnswerCache {
	return &AnswerCache{
		loader: loader,
		ttl:    ttl,
		clock:  clock,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedAnswers),
	}
}

func (c *AnswerCache) Answers(ctx context.Context, identity string) ([]domain.AnswerRecord, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[identity]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.answers, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(identity, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[identity]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.answers, nil
		}
		c.mu.RUnlock()

		answers, err := c.loader.Answers(ctx, identity)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache[identity] = cachedAnswers{
			answers:   answers,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return answers, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.AnswerRecord), nil
}

func (c *AnswerCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

// StaticAnswerLoader serves answers from an in-memory map (useful for
// tests/demos). Unknown identities resolve to no answers, mirroring the
// backend's 404 semantics.
type StaticAnswerLoader struct {
	answers map[string][]domain.AnswerRecord
}

func NewStaticAnswerLoader(answers map[string][]domain.AnswerRecord) *StaticAnswerLoader {
	return &StaticAnswerLoader{answers: answers}
}

func (l *StaticAnswerLoader) Answers(_ context.Context, identity string) ([]domain.AnswerRecord, error) {
	return l.answers[identity], nil
}
