// Package logging builds the zap loggers used by both binaries. The TUI
// writes to a rotated file so it never draws over the screen; the server
// logs to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	// File receives JSON logs, rotated by size. "-" means stderr with a
	// console encoder; os.DevNull disables logging.
	File  string
	Level string
}

// ParseLevel maps a level name to its zap level. An empty name means info.
func ParseLevel(name string) (zapcore.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
	return lvl, nil
}

// New builds a logger from opts. The returned closer flushes and releases
// the log file.
func New(opts Options) (*zap.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	switch opts.File {
	case os.DevNull:
		return zap.NewNop(), nopCloser{}, nil

	case "", "-":
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), level)
		logger := zap.New(core)
		return logger, syncCloser{logger}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(rotator),
		level,
	)
	logger := zap.New(core, zap.AddCaller())
	return logger, fileCloser{logger: logger, file: rotator}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type syncCloser struct{ logger *zap.Logger }

func (c syncCloser) Close() error {
	_ = c.logger.Sync()
	return nil
}

type fileCloser struct {
	logger *zap.Logger
	file   *lumberjack.Logger
}

func (c fileCloser) Close() error {
	_ = c.logger.Sync()
	return c.file.Close()
}
