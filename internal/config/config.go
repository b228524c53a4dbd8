package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

var ErrUnknownStorage = errors.New("unknown record storage")

type Config struct {
	LogLevel          string  `yaml:"log-level" env:"MEHEN_LOG_LEVEL" env-default:"info"`
	HTTPPort          string  `yaml:"http-port" env:"MEHEN_HTTP_PORT" env-default:"9090"`
	BoardSize         float64 `yaml:"board-size" env:"MEHEN_BOARD_SIZE" env-default:"500"`
	DiceSeed          int64   `yaml:"dice-seed" env:"MEHEN_DICE_SEED" env-default:"0"`
	DisableAutoPass   bool    `yaml:"disable-auto-pass" env:"MEHEN_DISABLE_AUTO_PASS"`
	Record            Record  `yaml:"record"`
	Redis             Redis   `yaml:"redis"`
	SQLiteStoragePath string  `yaml:"sqlite-storage-path" env:"MEHEN_SQLITE_PATH" env-default:"mehen.db"`
}

type Record struct {
	Storage string `yaml:"storage" env:"MEHEN_RECORD_STORAGE" env-default:"memory"`
}

type Redis struct {
	Host string `yaml:"host" env:"MEHEN_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"MEHEN_REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err := config.Validate(); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	return config
}

func (that *Config) Validate() error {
	switch that.Record.Storage {
	case StorageMemory, StorageRedis, StorageSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, that.Record.Storage)
	}

	if !(that.BoardSize > 0) || math.IsInf(that.BoardSize, 1) {
		return fmt.Errorf("board-size must be positive, got %v", that.BoardSize)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
