package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full runtime configuration, read from the environment.
type Config struct {
	// APIBaseURL is the parking service root, e.g. http://localhost:5000/api.
	APIBaseURL     string        `env:"PARKING_API_URL,     default=http://localhost:5000/api"`
	RequestTimeout time.Duration `env:"PARKING_API_TIMEOUT, default=15s"`

	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Store   StoreConfig
	Redis   RedisConfig
	Console ConsoleConfig
}

// StoreConfig selects and configures the credential store backend.
type StoreConfig struct {
	// Backend is "file" or "redis".
	Backend string `env:"CRED_STORE,      default=file"`
	// Path is the credential file location for the file backend.
	Path string `env:"CRED_FILE,       default=.parking/credentials.json"`
	// Passphrase, when set, encrypts the credential file at rest.
	Passphrase string `env:"CRED_PASSPHRASE"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// ConsoleConfig configures the local web console.
type ConsoleConfig struct {
	Addr string `env:"CONSOLE_ADDR, default=:8080"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
