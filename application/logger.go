package application

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a wrapper for zap.SugaredLogger.
type Logger struct {
	zLogger *zap.SugaredLogger
}

// A LoggerConfig contains the running environment
// which is either "development" or "production",
// the path of file to write the logging output to,
// an option to explicitly enable stracktrace output,
// and the optional rotation settings of the log file.
type LoggerConfig struct {
	EnableStacktrace bool            `toml:"enable_stacktrace,omitempty"`
	Environment      string          `toml:"env"`
	Path             string          `toml:"path,omitempty"`
	Rotation         *RotationConfig `toml:"rotation,omitempty"`
}

// A RotationConfig bounds the size and age of the log file.
// Zero values select the defaults.
type RotationConfig struct {
	MaxSizeMB  int  `toml:"max_size_mb,omitempty"`
	MaxBackups int  `toml:"max_backups,omitempty"`
	MaxAgeDays int  `toml:"max_age_days,omitempty"`
	Compress   bool `toml:"compress,omitempty"`
}

const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	defaultMaxAgeDays = 28
)

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// NewLogger builds an instance of Logger with
// default configurations. This logger writes
// DebugLevel and above logs in development environment,
// InfoLevel and above logs in production environment
// to stderr and the file specified in conf,
// in a human-friendly format.
// If conf has rotation settings, the file is rotated once it grows
// past the configured size.
func NewLogger(conf *LoggerConfig) *Logger {
	zLevel := zap.NewAtomicLevel()
	switch {
	case strings.EqualFold("development", conf.Environment):
		zLevel.SetLevel(zap.DebugLevel)
	case strings.EqualFold("production", conf.Environment):
		zLevel.SetLevel(zap.InfoLevel)
	default:
		panic("Environment must be either development or production")
	}

	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "path",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	})

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zLevel),
	}
	if conf.Path != "" {
		cores = append(cores, zapcore.NewCore(encoder, fileSyncer(conf), zLevel))
	}

	var opts []zap.Option
	if conf.EnableStacktrace { // the developer needs to explicitly enable this
		opts = append(opts, zap.AddStacktrace(zap.ErrorLevel))
	}
	return WrapLogger(zap.New(zapcore.NewTee(cores...), opts...))
}

func fileSyncer(conf *LoggerConfig) zapcore.WriteSyncer {
	if r := conf.Rotation; r != nil {
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   conf.Path,
			MaxSize:    orDefault(r.MaxSizeMB, defaultMaxSizeMB),
			MaxBackups: orDefault(r.MaxBackups, defaultMaxBackups),
			MaxAge:     orDefault(r.MaxAgeDays, defaultMaxAgeDays),
			Compress:   r.Compress,
		})
	}
	ws, _, err := zap.Open(conf.Path)
	if err != nil {
		panic(err)
	}
	return ws
}

// WrapLogger returns a Logger writing to the given zap.Logger.
func WrapLogger(l *zap.Logger) *Logger {
	return &Logger{l.Sugar()}
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.zLogger.Sync()
}

// Debug logs a message that is most useful to debug,
// with some additional context addressed by key-value pairs.
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	if keysAndValues == nil {
		l.zLogger.Debug(msg)
	} else {
		l.zLogger.Debugw(msg, keysAndValues...)
	}
}

// Info logs a message that highlights the progress of the application
// and generally can be ignored under normal circumstances,
// with some additional context addressed by key-value pairs.
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	if keysAndValues == nil {
		l.zLogger.Info(msg)
	} else {
		l.zLogger.Infow(msg, keysAndValues...)
	}
}

// Warn logs a message that indicates potentially harmful situations,
// with some additional context addressed by key-value pairs.
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	if keysAndValues == nil {
		l.zLogger.Warn(msg)
	} else {
		l.zLogger.Warnw(msg, keysAndValues...)
	}
}

// Error logs a message that is fatal to the operation,
// but not the service or application, and forces admin intervention,
// with some additional context addressed by key-value pairs.
// This still allow the application to continue running.
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	if keysAndValues == nil {
		l.zLogger.Error(msg)
	} else {
		l.zLogger.Errorw(msg, keysAndValues...)
	}
}

// Panic logs a message that is a severe error event,
// leads the application to abort, with some additional
// context addressed by key-value pairs. It then panics.
func (l *Logger) Panic(msg string, keysAndValues ...interface{}) {
	if keysAndValues == nil {
		l.zLogger.Panic(msg)
	} else {
		l.zLogger.Panicw(msg, keysAndValues...)
	}
}

// Fatal is the same as Panic but it then calls os.Exit instead.
func (l *Logger) Fatal(msg string, keysAndValues ...interface{}) {
	if keysAndValues == nil {
		l.zLogger.Fatal(msg)
	} else {
		l.zLogger.Fatalw(msg, keysAndValues...)
	}
}
