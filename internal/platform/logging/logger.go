// internal/platform/logging/logger.go
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the zap profile and level.
type Config struct {
	Level       string // debug | info | warn | error
	Development bool
}

// New builds the process logger. Logs go to stderr so console progress
// lines on stdout stay readable.
func New(cfg Config) (*zap.Logger, error) {
	base := zap.NewProductionConfig()
	if cfg.Development {
		base = zap.NewDevelopmentConfig()
	}

	level, err := resolveLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	base.Level = level
	base.DisableStacktrace = true
	base.OutputPaths = []string{"stderr"}
	base.ErrorOutputPaths = []string{"stderr"}

	l, err := base.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return l, nil
}

func resolveLevel(s string) (zap.AtomicLevel, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
	}
	var lv zapcore.Level
	if err := lv.Set(s); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("logging: invalid level %q: %w", s, err)
	}
	return zap.NewAtomicLevelAt(lv), nil
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// MaskShort keeps the first and last four characters of long identifiers.
func MaskShort(s string) string {
	t := strings.TrimSpace(s)
	if len(t) <= 10 {
		return t
	}
	return t[:4] + "***" + t[len(t)-4:]
}
