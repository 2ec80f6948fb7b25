package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Config is the server configuration assembled from .env and the environment
type Config struct {
	Port            string
	BaseURL         string
	Environment     string
	StorageDriver   string
	ShutdownTimeout time.Duration
	JWT             JWTConfig
	Argon2          Argon2Config
	Speech          SpeechConfig
	Snapshot        *SnapshotConfig
}

type JWTConfig struct {
	SecretKey   string
	ExpiryHours int
}

type Argon2Config struct {
	Time       uint32
	Memory     uint32
	Threads    uint8
	KeyLength  uint32
	SaltLength int
}

type SpeechConfig struct {
	Enabled bool
}

const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Init points viper at the .env file and binds the environment variables
// every package reads through viper.
func Init(path string) error {
	viper.SetConfigFile(path)
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	bindings := map[string]string{
		"server.port":             "PORT",
		"server.base_url":         "BASE_URL",
		"server.environment":      "ENVIRONMENT",
		"server.shutdown_timeout": "SHUTDOWN_TIMEOUT",
		"storage.driver":          "STORAGE_DRIVER",

		"database.host":     "DATABASE_HOST",
		"database.port":     "DATABASE_PORT",
		"database.user":     "DATABASE_USER",
		"database.password": "DATABASE_PASSWORD",
		"database.name":     "DATABASE_NAME",
		"database.ssl_mode": "DATABASE_SSL_MODE",

		"redis.host":     "REDIS_HOST",
		"redis.port":     "REDIS_PORT",
		"redis.password": "REDIS_PASSWORD",
		"redis.db":       "REDIS_DB",

		"jwt.secret_key":     "JWT_SECRET_KEY",
		"jwt.expiry_hours":   "JWT_EXPIRY_HOURS",
		"argon2.time":        "ARGON2_TIME",
		"argon2.memory":      "ARGON2_MEMORY",
		"argon2.threads":     "ARGON2_THREADS",
		"argon2.key_length":  "ARGON2_KEY_LENGTH",
		"argon2.salt_length": "ARGON2_SALT_LENGTH",
		"speech.enabled":     "SPEECH_ENABLED",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.base_url", "http://localhost:8080")
	viper.SetDefault("server.environment", "development")
	viper.SetDefault("server.shutdown_timeout", 30*time.Second)
	viper.SetDefault("storage.driver", StorageMemory)

	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("argon2.time", 1)
	viper.SetDefault("argon2.memory", 64*1024)
	viper.SetDefault("argon2.threads", 4)
	viper.SetDefault("argon2.key_length", 32)
	viper.SetDefault("argon2.salt_length", 16)
	viper.SetDefault("speech.enabled", false)
}

// Load reads the configuration, applying defaults for anything unset
func Load() (*Config, error) {
	setDefaults()

	cfg := &Config{
		Port:            viper.GetString("server.port"),
		BaseURL:         viper.GetString("server.base_url"),
		Environment:     viper.GetString("server.environment"),
		StorageDriver:   viper.GetString("storage.driver"),
		ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
		JWT: JWTConfig{
			SecretKey:   viper.GetString("jwt.secret_key"),
			ExpiryHours: viper.GetInt("jwt.expiry_hours"),
		},
		Argon2: Argon2Config{
			Time:       viper.GetUint32("argon2.time"),
			Memory:     viper.GetUint32("argon2.memory"),
			Threads:    uint8(viper.GetUint("argon2.threads")),
			KeyLength:  viper.GetUint32("argon2.key_length"),
			SaltLength: viper.GetInt("argon2.salt_length"),
		},
		Speech: SpeechConfig{
			Enabled: viper.GetBool("speech.enabled"),
		},
		Snapshot: LoadSnapshotConfig(),
	}

	switch cfg.StorageDriver {
	case StorageMemory, StorageRedis, StoragePostgres:
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if cfg.JWT.SecretKey == "" {
		if cfg.Environment == "production" {
			return nil, errors.New("JWT_SECRET_KEY is required in production")
		}
		cfg.JWT.SecretKey = "kampong-connect-dev-secret"
	}

	if cfg.Argon2.Time == 0 || cfg.Argon2.Threads == 0 || cfg.Argon2.KeyLength == 0 || cfg.Argon2.SaltLength <= 0 {
		return nil, errors.New("argon2 time, threads, key length and salt length must be positive")
	}

	return cfg, nil
}
