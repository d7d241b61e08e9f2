package fanout

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/asynctask/pkg/logger"
)

// Config holds the fanout command settings. Flags override these values.
type Config struct {
	Timeout   time.Duration `env:"FANOUT_TIMEOUT" envDefault:"0s"`
	Env       string        `env:"FANOUT_ENV" envDefault:"development"`
	Service   string        `env:"FANOUT_SERVICE" envDefault:"fanout"`
	LogFormat string        `env:"FANOUT_LOG_FORMAT"`
	LogLevel  string        `env:"FANOUT_LOG_LEVEL"`
}

// LoadConfig loads the given .env files, if any, into the process
// environment and parses it into a Config. Variables already set in the
// environment win over values from the files.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return Config{}, errors.Join(ErrLoadingEnvFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// Logger builds the logger described by the config, writing to w.
// LogFormat and LogLevel override the environment defaults when set.
// Records logged within an Execute call carry its "run_id".
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(logger.ParseEnvironment(c.Env), c.Service),
		logger.WithOutput(w),
		logger.WithContextValue("run_id", runIDKey{}),
	}

	if c.LogFormat != "" {
		format, err := logger.ParseFormat(c.LogFormat)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithFormat(format))
	}

	if c.LogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidLevel, c.LogLevel, err)
		}
		opts = append(opts, logger.WithLevel(level))
	}

	return logger.New(opts...), nil
}
