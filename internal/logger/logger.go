// Package logger holds the process-wide zap logger. Packages take a child
// with Named; everything is discarded until Init runs.
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger.
var Log = zap.NewNop()

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Rotation controls how the log file is rotated.
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultRotation keeps three compressed 20 MB files for a week.
var DefaultRotation = Rotation{MaxSizeMB: 20, MaxBackups: 3, MaxAgeDays: 7, Compress: true}

// Options configures Init.
type Options struct {
	Level  string // debug, info, warn or error; empty means info
	Format string // console or json; empty means console
	// File also writes to a rotating log file when set.
	File     string
	Rotation Rotation
	// Quiet disables the stderr output.
	Quiet bool
	// Console replaces stderr as the console destination.
	Console io.Writer
}

// Init replaces the global logger.
func Init(opts Options) error {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}
	if opts.Format != "" && opts.Format != FormatConsole && opts.Format != FormatJSON {
		return fmt.Errorf("unknown log format %q", opts.Format)
	}

	var cores []zapcore.Core
	if !opts.Quiet {
		out := opts.Console
		if out == nil {
			out = os.Stderr
		}
		enc := encoder(opts.Format, zapcore.CapitalColorLevelEncoder, zapcore.TimeEncoderOfLayout("15:04:05.000"))
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(out), lvl))
	}
	if opts.File != "" {
		rot := opts.Rotation
		if rot == (Rotation{}) {
			rot = DefaultRotation
		}
		w := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    rot.MaxSizeMB,
			MaxBackups: rot.MaxBackups,
			MaxAge:     rot.MaxAgeDays,
			Compress:   rot.Compress,
			LocalTime:  true,
		}
		enc := encoder(opts.Format, zapcore.CapitalLevelEncoder, zapcore.ISO8601TimeEncoder)
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(w), lvl))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return nil
}

func encoder(format string, level zapcore.LevelEncoder, ts zapcore.TimeEncoder) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "component",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       ts,
		EncodeLevel:      level,
		EncodeName:       zapcore.FullNameEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	if format == FormatJSON {
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	return zapcore.NewConsoleEncoder(cfg)
}

// ParseLevel maps a config level name to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
}

// Named returns a child of the global logger tagged with a component name.
// The child is bound to the logger current at call time; call it after Init.
func Named(component string) *zap.Logger {
	return Log.Named(component)
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = Log.Sync()
}

func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}
