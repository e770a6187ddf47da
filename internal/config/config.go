package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	LeaderboardRedis  = "redis"
	LeaderboardSQLite = "sqlite"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort        string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"7777"`
	Redis             Redis  `yaml:"redis"`
	Leaderboard       string `yaml:"leaderboard-storage" env:"LEADERBOARD_STORAGE" env-default:"redis"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"leaderboard.db"`
	LeaderboardLimit  int    `yaml:"leaderboard-limit" env:"LEADERBOARD_LIMIT" env-default:"10"`
	Bot               Bot    `yaml:"bot"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Bot struct {
	ThinkingDelay time.Duration `yaml:"thinking-delay" env:"BOT_THINKING_DELAY" env-default:"500ms"`
	Difficulty    string        `yaml:"difficulty" env:"BOT_DIFFICULTY" env-default:"easy"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads path and applies environment overrides on top of it.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if config.Leaderboard != LeaderboardRedis && config.Leaderboard != LeaderboardSQLite {
		return nil, fmt.Errorf("unknown leaderboard storage %q", config.Leaderboard)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
