// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var levelToZapLevel = map[Level]zapcore.Level{
	LevelDebug: zapcore.DebugLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelError: zapcore.ErrorLevel,
}

var zapLevelToLevel = map[zapcore.Level]Level{
	zapcore.DebugLevel: LevelDebug,
	zapcore.InfoLevel:  LevelInfo,
	zapcore.WarnLevel:  LevelWarn,
	zapcore.ErrorLevel: LevelError,
}

// NewZapLog creates a console Logger backed by zap writing to stderr.
func NewZapLog(level Level) Logger {
	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		CallerKey:      "C",
		MessageKey:     "M",
		StacktraceKey:  "S",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	lvl := zap.NewAtomicLevelAt(levelToZapLevel[level])
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		lvl,
	)
	return &zapLog{
		level:  lvl,
		logger: zap.New(core).Sugar(),
	}
}

// zapLog is the Logger implementation based on zap.
type zapLog struct {
	level  zap.AtomicLevel
	logger *zap.SugaredLogger
}

// Debug logs at debug level in the manner of fmt.Print.
func (l *zapLog) Debug(args ...interface{}) {
	l.logger.Debug(args...)
}

// Debugf logs at debug level in the manner of fmt.Printf.
func (l *zapLog) Debugf(format string, args ...interface{}) {
	l.logger.Debugf(format, args...)
}

// Info logs at info level in the manner of fmt.Print.
func (l *zapLog) Info(args ...interface{}) {
	l.logger.Info(args...)
}

// Infof logs at info level in the manner of fmt.Printf.
func (l *zapLog) Infof(format string, args ...interface{}) {
	l.logger.Infof(format, args...)
}

// Warn logs at warn level in the manner of fmt.Print.
func (l *zapLog) Warn(args ...interface{}) {
	l.logger.Warn(args...)
}

// Warnf logs at warn level in the manner of fmt.Printf.
func (l *zapLog) Warnf(format string, args ...interface{}) {
	l.logger.Warnf(format, args...)
}

// Error logs at error level in the manner of fmt.Print.
func (l *zapLog) Error(args ...interface{}) {
	l.logger.Error(args...)
}

// Errorf logs at error level in the manner of fmt.Printf.
func (l *zapLog) Errorf(format string, args ...interface{}) {
	l.logger.Errorf(format, args...)
}

// With returns a logger with the given fields bound.
func (l *zapLog) With(fields ...Field) Logger {
	kvs := make([]interface{}, 0, 2*len(fields))
	for _, f := range fields {
		kvs = append(kvs, f.Key, f.Value)
	}
	return &zapLog{
		level:  l.level,
		logger: l.logger.With(kvs...),
	}
}

// SetLevel sets the minimum output level.
func (l *zapLog) SetLevel(level Level) {
	zl, ok := levelToZapLevel[level]
	if !ok {
		return
	}
	l.level.SetLevel(zl)
}

// GetLevel returns the minimum output level.
func (l *zapLog) GetLevel() Level {
	return zapLevelToLevel[l.level.Level()]
}

// Sync flushes any buffered log entries.
func (l *zapLog) Sync() error {
	return l.logger.Sync()
}
