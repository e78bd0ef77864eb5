package observability

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures NewLogger.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Format is "json" or "console". Empty means console.
	Format string
	// Output defaults to os.Stderr.
	Output io.Writer
}

// NewLogger builds a zap logger writing to opts.Output.
func NewLogger(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(opts.Level))); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	var format string
	switch strings.ToLower(opts.Format) {
	case "", "console":
		format = "console"
	case "json":
		format = "json"
	default:
		return nil, fmt.Errorf("invalid log format %q: must be json or console", opts.Format)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	core := zapcore.NewCore(newEncoder(format), zapcore.AddSync(out), level)
	return zap.New(core), nil
}

// newEncoder creates JSON or console encoder.
func newEncoder(format string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "console" {
		return zapcore.NewConsoleEncoder(encoderCfg)
	}
	return zapcore.NewJSONEncoder(encoderCfg)
}

// Sync flushes logger, ignoring the harmless errors returned when syncing a terminal.
func Sync(logger *zap.Logger) error {
	err := logger.Sync()
	if err != nil && isStdoutSyncError(err) {
		return nil
	}
	return err
}

func isStdoutSyncError(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EINVAL || errno == syscall.ENOTTY
	}
	return false
}
