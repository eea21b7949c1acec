package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	DatabaseURL string `env:"DATABASE_URL, required"`

	JWTSecret       string `env:"JWT_SECRET, required"`
	JWTAlgorithm    string `env:"JWT_ALGORITHM, default=HS256"`
	TokenTTLMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES, default=30"`
	BcryptCost      int    `env:"BCRYPT_COST, default=10"`

	Redis RedisConfig
	Admin AdminConfig
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD, default="`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// AdminConfig is the bootstrap admin account created by the one-shot seeding
// procedure at startup.
type AdminConfig struct {
	Username  string `env:"ADMIN_USERNAME, required"`
	Password  string `env:"ADMIN_PASSWORD, required"`
	Email     string `env:"ADMIN_EMAIL,    required"`
	FirstName string `env:"ADMIN_FNAME,    required"`
	LastName  string `env:"ADMIN_LNAME,    required"`
}

// Load reads configuration from environment variables using go-envconfig.
// A missing required value is a fatal startup error.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &cfg
}
