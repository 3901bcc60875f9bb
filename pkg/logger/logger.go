// Package logger wires a zap JSON core behind a logr.Logger and carries it
// through context.Context.
//
// The terminal belongs to the viewer while it runs, so log output never goes
// to stderr: Setup writes to an explicit sink (usually the --log-file) and
// falls back to discarding everything when no sink is given.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oakwood-commons/tabv/pkg/settings"
)

type loggerContextKey struct{}

const (
	RootCommandKey = "root_command"
	SubCommandKey  = "sub_command"
	CommitKey      = "commit"
	VersionKey     = "version"
	GoVersionKey   = "go_version"
	TimeStampKey   = "timestamp"
	MessageKey     = "message"
)

var (
	mu sync.Mutex

	globalZapLogger  *zap.Logger
	globalLogrLogger *logr.Logger
	globalCloser     io.Closer

	defaultNoopLogger = logr.Discard()
)

// Setup builds the global logger at the given zap level writing JSON lines to
// sink. A nil sink installs the no-op logger. Calling Setup again replaces the
// previous logger after syncing it.
func Setup(logLevel int8, sink io.Writer) *logr.Logger {
	mu.Lock()
	defer mu.Unlock()

	syncLocked()
	if globalCloser != nil {
		_ = globalCloser.Close()
		globalCloser = nil
	}
	if sink == nil {
		globalZapLogger = nil
		globalLogrLogger = nil
		return &defaultNoopLogger
	}
	if c, ok := sink.(io.Closer); ok && sink != os.Stdout && sink != os.Stderr {
		globalCloser = c
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	goVersion := "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		goVersion = info.GoVersion
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(sink)),
		zap.NewAtomicLevelAt(zapcore.Level(logLevel)),
	).With([]zapcore.Field{
		zap.String(CommitKey, settings.VersionInformation.Commit),
		zap.String(VersionKey, settings.VersionInformation.BuildVersion),
		zap.String(GoVersionKey, goVersion),
	})

	globalZapLogger = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	gl := zapr.NewLogger(globalZapLogger)
	globalLogrLogger = &gl
	return globalLogrLogger
}

// OpenFile opens path for appending log lines, creating it when needed.
// An empty path returns a nil writer, which Setup treats as "discard".
func OpenFile(path string) (io.Writer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// WithLogger returns a context carrying log. The original context is returned
// when it already holds the same logger.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if lp, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && lp == log {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the context logger, then the global logger, then a
// no-op logger.
func FromContext(ctx context.Context) *logr.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
			return log
		}
	}
	return GetGlobalLogger()
}

// GetGlobalLogger returns the logger installed by Setup or the no-op logger.
func GetGlobalLogger() *logr.Logger {
	mu.Lock()
	defer mu.Unlock()
	if globalLogrLogger != nil {
		return globalLogrLogger
	}
	return &defaultNoopLogger
}

// GetNoopLogger returns the shared discarding logger.
func GetNoopLogger() *logr.Logger {
	return &defaultNoopLogger
}

// WithValues returns a copy of lgr with extra key/value pairs.
func WithValues(lgr *logr.Logger, keysAndValues ...any) *logr.Logger {
	nlgr := lgr.WithValues(keysAndValues...)
	return &nlgr
}

// Sync flushes buffered entries. When the sink is a file opened for the run it
// is closed and the global logger reverts to the no-op logger.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	syncLocked()
	if globalCloser != nil {
		_ = globalCloser.Close()
		globalCloser = nil
		globalZapLogger = nil
		globalLogrLogger = nil
	}
}

func syncLocked() {
	if globalZapLogger == nil {
		return
	}
	if err := globalZapLogger.Sync(); err != nil && !isIgnorableSyncError(err) {
		fmt.Fprintf(os.Stderr, "WARNING: failed to sync zap logger: %v\n", err)
	}
}

// isIgnorableSyncError reports the errors Sync returns for pipes and TTYs.
func isIgnorableSyncError(err error) bool {
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF) {
		return true
	}
	return strings.Contains(err.Error(), "The handle is invalid")
}
