package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/fjaouad/notes-api/internal/config"
)

const logFilePermission = 0664

// New builds the process-wide zerolog logger from configuration. The logger
// is constructed once at startup and passed to the components that need it.
func New(cfg *config.Config) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var writers []io.Writer
	if cfg.LogConsole {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout})
	}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFilePermission)
		if err != nil {
			return zerolog.Nop(), err
		}
		writers = append(writers, zerolog.SyncWriter(f))
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = zerolog.MultiLevelWriter(writers...)
	}

	log := zerolog.New(w).Level(level).With().
		Timestamp().
		Str("app", cfg.AppName).
		Logger()

	return log, nil
}
