package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API struct {
		BaseURL      string `yaml:"baseUrl"`
		WebsocketURL string `yaml:"websocketUrl"`
		Token        string `yaml:"token"`
	} `yaml:"api"`
	Auth struct {
		Domain   string `yaml:"domain"`
		ClientID string `yaml:"clientId"`
	} `yaml:"auth"`
	Cache struct {
		RedisAddr     string `yaml:"redisAddr"`
		RedisPassword string `yaml:"redisPassword"`
		RedisDB       int    `yaml:"redisDb"`
		TTL           string `yaml:"ttl"`
	} `yaml:"cache"`
	Push struct {
		InitialDelay string `yaml:"initialDelay"`
		MaxDelay     string `yaml:"maxDelay"`
		MaxRetries   uint64 `yaml:"maxRetries"`
	} `yaml:"push"`
	State struct {
		Path string `yaml:"path"`
	} `yaml:"state"`
}

// Load reads YAML config from path and applies environment overrides.
// A missing file is not an error; the environment alone can configure
// the client.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv lets the recognized environment options win over the file.
func applyEnv(cfg *Config) {
	setFromEnv(&cfg.API.BaseURL, "API_BASE_URL")
	setFromEnv(&cfg.API.WebsocketURL, "WEBSOCKET_URL")
	setFromEnv(&cfg.API.Token, "API_TOKEN")
	setFromEnv(&cfg.Auth.Domain, "AUTH_DOMAIN")
	setFromEnv(&cfg.Auth.ClientID, "AUTH_CLIENT_ID")
	setFromEnv(&cfg.Cache.RedisAddr, "REDIS_ADDR")
}

func setFromEnv(target *string, key string) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		*target = value
	}
}

// TTLDuration parses a duration string or returns the fallback if empty
// or invalid.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
