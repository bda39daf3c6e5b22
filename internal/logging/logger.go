// Package logging builds the zap logger. The terminal belongs to the TUI,
// so logs go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config options used in creating the logger.
type Config struct {
	FilePath string // log file path
	Level    string // debug, info, warn, error or off
}

// New returns a JSON file logger, or a no-op logger when the level is
// "off" or the file path is empty. The returned close function syncs and
// closes the file.
func New(cfg Config) (*zap.Logger, func(), error) {
	level := strings.ToLower(strings.TrimSpace(cfg.Level))
	if level == "off" || cfg.FilePath == "" {
		return zap.NewNop(), func() {}, nil
	}
	lv, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	fd, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoder(func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format("2006-01-02T15:04:05.000Z"))
	})
	encoderConfig.TimeKey = "@timestamp"
	encoderConfig.MessageKey = "message"
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(fd), lv)

	logger := zap.New(core, zap.AddStacktrace(zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l > zap.WarnLevel
	})), zap.AddCaller())
	closeFn := func() {
		// Best-effort flush and close
		_ = logger.Sync()
		_ = fd.Close()
	}
	return logger, closeFn, nil
}

// ParseLevel maps a level name to a zap level. Empty means info and "off"
// maps to a level above fatal, which enables nothing.
func ParseLevel(level string) (zapcore.Level, error) {
	switch name := strings.ToLower(strings.TrimSpace(level)); name {
	case "":
		return zap.InfoLevel, nil
	case "off":
		return zapcore.InvalidLevel, nil
	default:
		lv, err := zapcore.ParseLevel(name)
		if err != nil {
			return zap.InfoLevel, fmt.Errorf("unknown logging level: %s", level)
		}
		return lv, nil
	}
}
