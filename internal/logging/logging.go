// Package logging builds the structured logger used across tofi.
//
// The renderer owns the terminal for the whole session, so logs never go to
// stdout or stderr. They are written as JSON lines to a file in the state
// directory instead.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FileName is the log file inside the state directory.
	FileName = "tofi.log"

	TimeStampKey = "timestamp"
	MessageKey   = "message"
)

type loggerContextKey struct{}

// ParseLevel maps a level name (debug, info, warn, error) to a zap level.
// An empty name means info.
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

// New returns a logger writing JSON lines to w at or above level, together
// with the zap logger behind it so the caller can Sync it.
func New(w io.Writer, level zapcore.Level) (logr.Logger, *zap.Logger) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(level),
	)
	zl := zap.New(core, zap.AddCaller())
	return zapr.NewLogger(zl), zl
}

// Open creates the log file under dir and returns a logger writing to it.
// The returned close function flushes and closes the file. When the file
// cannot be opened the logger discards everything and the error says why.
func Open(dir string, level zapcore.Level) (logr.Logger, func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("opening log file: %w", err)
	}

	log, zl := New(f, level)
	return log, func() {
		Sync(zl)
		f.Close()
	}, nil
}

// Sync flushes buffered entries, ignoring the errors files and terminals
// commonly return for fsync.
func Sync(zl *zap.Logger) {
	if zl == nil {
		return
	}
	if err := zl.Sync(); err != nil && !isIgnorableSyncError(err) {
		fmt.Fprintf(os.Stderr, "warning: flushing log: %v\n", err)
	}
}

func isIgnorableSyncError(err error) bool {
	return errors.Is(err, syscall.ENOTTY) ||
		errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.EBADF)
}

// WithLogger returns a context carrying log.
func WithLogger(ctx context.Context, log logr.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the logger stored by WithLogger, or a logger that
// discards everything.
func FromContext(ctx context.Context) logr.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(logr.Logger); ok {
		return log
	}
	return logr.Discard()
}
