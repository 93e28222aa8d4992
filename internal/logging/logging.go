// Package logging writes diagnostics to a rotating JSON log file. Output
// meant for the user goes through package ui instead.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rnwolfe/mates/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
	closer io.Closer
)

// Options configures Init.
type Options struct {
	Path    string
	Config  config.LogConfig
	Verbose bool      // tee debug output to Stderr
	Stderr  io.Writer // defaults to os.Stderr
}

// Init replaces the package logger. Calling it again closes the previous
// log file.
func Init(opts Options) error {
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return err
		}
	}

	var lj *lumberjack.Logger
	var file io.Writer
	if opts.Path != "" {
		lj = &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    nz(opts.Config.MaxSizeMB, 10), // megabytes
			MaxBackups: nz(opts.Config.MaxBackups, 3),
			MaxAge:     nz(opts.Config.MaxAgeDays, 28), // days
		}
		file = lj
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	var tee io.Writer
	if opts.Verbose {
		tee = stderr
	}

	l := New(file, tee, ParseLevel(opts.Config.Level))

	mu.Lock()
	old := closer
	logger = l
	closer = nil
	if lj != nil {
		closer = lj
	}
	mu.Unlock()

	if old != nil {
		return old.Close()
	}
	return nil
}

// New builds a logger writing JSON at level and above to file, and
// everything from debug up to console. Either writer may be nil.
func New(file, console io.Writer, level zapcore.Level) *zap.Logger {
	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     timeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var cores []zapcore.Core
	if file != nil {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(file), atLeast(level)))
	}
	if console != nil {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(console), atLeast(zapcore.DebugLevel)))
	}
	if len(cores) == 0 {
		return zap.NewNop()
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// L returns the current logger. It is a no-op logger until Init is called.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Named returns a child of the current logger.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Close flushes and closes the log file.
func Close() error {
	mu.Lock()
	l, c := logger, closer
	logger, closer = zap.NewNop(), nil
	mu.Unlock()

	_ = l.Sync()
	if c != nil {
		return c.Close()
	}
	return nil
}

// ParseLevel maps a config level name to a zap level, defaulting to info.
func ParseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func atLeast(level zapcore.Level) zapcore.LevelEnabler {
	return zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= level })
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
}

func nz(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
