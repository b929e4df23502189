package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/wire"
	"github.com/nftmarket/nftm/internal/domain/config"
)

var LoggingSet = wire.NewSet(
	NewLogger,
)

// NewLogger creates a new logger based on runtime configuration.
// NFTM_LOG_LEVEL sets the level, --debug forces debug with source locations.
func NewLogger(cfg *config.RuntimeConfig) *slog.Logger {
	return newLogger(os.Stderr, os.Getenv("NFTM_LOG_LEVEL"), cfg.Debug)
}

func newLogger(w io.Writer, levelName string, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(levelName),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = shortPath(source.File)
				}
			}
			return a
		},
	}

	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// shortPath trims a source path to its package directory and file name
func shortPath(file string) string {
	if idx := strings.Index(file, "internal/"); idx != -1 {
		return file[idx:]
	}
	return filepath.Join(filepath.Base(filepath.Dir(file)), filepath.Base(file))
}
