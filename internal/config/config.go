package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env:"GOMOKU_LOG_LEVEL" env-default:"info"`
	HTTPPort          string `yaml:"http-port" env:"GOMOKU_HTTP_PORT" env-default:"9090"`
	SocketPort        string `yaml:"socket-port" env:"GOMOKU_SOCKET_PORT" env-default:"9091"`
	Redis             Redis  `yaml:"redis"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env:"GOMOKU_SQLITE_STORAGE_PATH" env-default:"gomoku.db"`
	Game              Game   `yaml:"game"`
}

// Redis - store of live games.
type Redis struct {
	Host        string        `yaml:"host" env:"GOMOKU_REDIS_HOST" env-default:"localhost"`
	Port        string        `yaml:"port" env:"GOMOKU_REDIS_PORT" env-default:"6379"`
	DB          int           `yaml:"db" env:"GOMOKU_REDIS_DB" env-default:"0"`
	DialTimeout time.Duration `yaml:"dial-timeout" env:"GOMOKU_REDIS_DIAL_TIMEOUT" env-default:"5s"`
}

// Game - rules every new game is created with.
type Game struct {
	GridSize   int           `yaml:"grid-size" env:"GOMOKU_GAME_GRID_SIZE" env-default:"10"`
	WinLength  int           `yaml:"win-length" env:"GOMOKU_GAME_WIN_LENGTH" env-default:"5"`
	DetectDraw bool          `yaml:"detect-draw" env:"GOMOKU_GAME_DETECT_DRAW" env-default:"false"`
	TTL        time.Duration `yaml:"ttl" env:"GOMOKU_GAME_TTL" env-default:"24h"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Game.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Game) Validate() error {
	if that.GridSize < 1 {
		return fmt.Errorf("%w: grid-size must be positive, got %d", apperror.ErrInvalidConfig, that.GridSize)
	}

	if that.WinLength < 1 || that.WinLength > that.GridSize {
		return fmt.Errorf("%w: win-length must be in [1, %d], got %d", apperror.ErrInvalidConfig, that.GridSize, that.WinLength)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
