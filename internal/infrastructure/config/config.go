package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
}

type APIConfig struct {
	BaseURL string        `env:"ATM_API_URL,     default=http://localhost:8000"`
	Timeout time.Duration `env:"ATM_API_TIMEOUT, default=10s"`
}

type SessionConfig struct {
	// Backend selects where the session record persists: "file" or "redis".
	Backend string `env:"ATM_SESSION_BACKEND, default=file"`
	// Path is the state file used by the file backend. A relative path is
	// resolved against the user home directory.
	Path string `env:"ATM_SESSION_PATH, default=.atm/session.json"`
}

type RedisConfig struct {
	Addr string        `env:"REDIS_ADDR,      default=localhost:6379"`
	DB   int           `env:"REDIS_DB,        default=0"`
	TTL  time.Duration `env:"ATM_SESSION_TTL, default=24h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
