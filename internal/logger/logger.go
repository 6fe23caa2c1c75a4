// Package logger configures the process-wide zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Rrens/assistant-cli/internal/config"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"
)

// New builds a logger from the logging config. Console format writes
// human-readable output to stderr; anything else emits JSON. When a log
// file is configured it rotates daily and keeps a week of history.
func New(cfg config.LoggingConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if cfg.File != "" {
		rotator, err := rotatelogs.New(
			cfg.File+".%Y%m%d",
			rotatelogs.WithLinkName(cfg.File),
			rotatelogs.WithRotationTime(24*time.Hour),
			rotatelogs.WithMaxAge(7*24*time.Hour),
		)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("failed to open log file: %w", err)
		}
		out = rotator
	}

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out}
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
