package logger

import (
  "fmt"
  "os"

  "go.uber.org/zap"
  "go.uber.org/zap/zapcore"
  "gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a thin key/value wrapper around zap's SugaredLogger.
type Logger struct {
  sugar *zap.SugaredLogger
}

type Options struct {
  Mode        string
  FilePath    string
  FileMaxMB   int
}

func New(mode string) (*Logger, error) {
  return NewWithOptions(Options{Mode: mode})
}

func NewWithOptions(opts Options) (*Logger, error) {
  var encoderConfig zapcore.EncoderConfig
  var encoder zapcore.Encoder
  var level zapcore.Level
  switch opts.Mode {
  case "production":
    encoderConfig = zap.NewProductionEncoderConfig()
    encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
    encoder = zapcore.NewJSONEncoder(encoderConfig)
    level = zapcore.InfoLevel
  case "development", "":
    encoderConfig = zap.NewDevelopmentEncoderConfig()
    encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
    encoder = zapcore.NewConsoleEncoder(encoderConfig)
    level = zapcore.DebugLevel
  default:
    return nil, fmt.Errorf("unknown log mode %q, want 'development' or 'production'", opts.Mode)
  }

  cores := []zapcore.Core{
    zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
  }
  if opts.FilePath != "" {
    maxSize := opts.FileMaxMB
    if maxSize <= 0 {
      maxSize = 100
    }
    fileEncoderConfig := zap.NewProductionEncoderConfig()
    fileEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
    cores = append(cores, zapcore.NewCore(
      zapcore.NewJSONEncoder(fileEncoderConfig),
      zapcore.AddSync(&lumberjack.Logger{
        Filename:   opts.FilePath,
        MaxSize:    maxSize,
        MaxBackups: 30,
        MaxAge:     90,
      }),
      zapcore.InfoLevel,
    ))
  }

  z := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
  return &Logger{sugar: z.Sugar()}, nil
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
  return &Logger{sugar: zap.NewNop().Sugar()}
}

// FromZap wraps an existing zap logger, e.g. one built on an observer core.
func FromZap(z *zap.Logger) *Logger {
  return &Logger{sugar: z.Sugar()}
}

func (l *Logger) With(args ...interface{}) *Logger {
  return &Logger{sugar: l.sugar.With(args...)}
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
  l.sugar.Debugw(msg, keysAndValues...)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
  l.sugar.Infow(msg, keysAndValues...)
}

func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
  l.sugar.Warnw(msg, keysAndValues...)
}

func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
  l.sugar.Errorw(msg, keysAndValues...)
}

func (l *Logger) Sync() error {
  return l.sugar.Sync()
}
