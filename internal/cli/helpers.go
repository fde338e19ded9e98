package cli

import (
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"squares-board/internal/config"
	"squares-board/internal/domain"
	"squares-board/internal/infra/memory"
	redisinfra "squares-board/internal/infra/redis"
	"squares-board/internal/infra/rest"
	"squares-board/internal/infra/state"
)

// defaultAnswerTTL bounds staleness of cached answer lookups between pushes.
const defaultAnswerTTL = time.Minute

// answerSource is the lookup the what-if projection reads answers from.
type answerSource interface {
	memory.AnswerLoader
}

func loadConfig(configPath, apiBase string) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if apiBase != "" {
		cfg.API.BaseURL = apiBase
	}
	if cfg.API.BaseURL == "" {
		return cfg, fmt.Errorf("no API base URL configured (set api.baseUrl, API_BASE_URL, or --api)")
	}
	return cfg, nil
}

// newAnswerSource builds the answer cache: Redis-backed when configured so
// multiple displays share lookups, in-memory otherwise.
func newAnswerSource(cfg config.Config, client *rest.Client) answerSource {
	ttl := config.TTLDuration(cfg.Cache.TTL, defaultAnswerTTL)
	if cfg.Cache.RedisAddr != "" {
		rc := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		return redisinfra.NewAnswerCache(rc, client, ttl)
	}
	return memory.NewAnswerCache(client, ttl)
}

func selectionStore(cfg config.Config) (*state.SelectionStore, error) {
	path := cfg.State.Path
	if path == "" {
		var err error
		path, err = state.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return state.NewSelectionStore(path), nil
}

// findPlayer resolves an identity against the snapshot's player list.
func findPlayer(players []domain.Player, identity string) (domain.Player, error) {
	for _, p := range players {
		if p.Identity == identity {
			return p, nil
		}
	}
	return domain.Player{}, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, identity)
}
