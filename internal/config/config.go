package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel   string        `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info"`
	HTTPPort   string        `yaml:"http-port" env:"TTT_HTTP_PORT" env-default:"9090"`
	SocketPort string        `yaml:"socket-port" env:"TTT_SOCKET_PORT" env-default:"9091"`
	Storage    string        `yaml:"storage" env:"TTT_STORAGE" env-default:"memory"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"TTT_SESSION_TTL" env-default:"24h"`
	Redis      Redis         `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"TTT_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"TTT_REDIS_PORT" env-default:"6379"`
}

// Load reads the config file at path, applies environment overrides and
// defaults. An empty path reads only the environment.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Storage {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("%w %q, expected %q or %q", apperror.ErrUnknownStorage, that.Storage, StorageMemory, StorageRedis)
	}

	if that.SessionTTL < 0 {
		return fmt.Errorf("session-ttl must not be negative, got %s", that.SessionTTL)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
