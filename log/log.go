// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

// Package log provides the tracing client's diagnostic log. The client never
// surfaces failures to the instrumented application's control flow; this log
// is the only place pipeline problems become visible, so it must itself never
// panic or block.
package log

import (
	"sync"

	"github.com/opendoor-labs/apmtrace/internal/env"
)

// Level is the log output level.
type Level int

// All available log levels.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// LevelNames maps the string form used in config and env to a Level.
var LevelNames = map[string]Level{
	"debug": LevelDebug,
	"info":  LevelInfo,
	"warn":  LevelWarn,
	"error": LevelError,
}

// Logger is the client's log interface.
type Logger interface {
	// Debug logs at debug level in the manner of fmt.Print.
	Debug(args ...interface{})
	// Debugf logs at debug level in the manner of fmt.Printf.
	Debugf(format string, args ...interface{})
	// Info logs at info level in the manner of fmt.Print.
	Info(args ...interface{})
	// Infof logs at info level in the manner of fmt.Printf.
	Infof(format string, args ...interface{})
	// Warn logs at warn level in the manner of fmt.Print.
	Warn(args ...interface{})
	// Warnf logs at warn level in the manner of fmt.Printf.
	Warnf(format string, args ...interface{})
	// Error logs at error level in the manner of fmt.Print.
	Error(args ...interface{})
	// Errorf logs at error level in the manner of fmt.Printf.
	Errorf(format string, args ...interface{})

	// With returns a logger with the given fields bound.
	With(fields ...Field) Logger
	// SetLevel sets the minimum output level.
	SetLevel(level Level)
	// GetLevel returns the minimum output level.
	GetLevel() Level
	// Sync flushes any buffered log entries.
	Sync() error
}

// Field is a key/value pair bound to a logger.
type Field struct {
	Key   string
	Value interface{}
}

var (
	defaultLoggerMutex sync.RWMutex
	defaultLogger      Logger = NewZapLog(levelFromEnv())
)

func levelFromEnv() Level {
	if lvl, ok := LevelNames[env.String(env.LogLevel, "")]; ok {
		return lvl
	}
	return LevelError
}

// SetDefaultLogger replaces the default logger. Passing nil is ignored.
func SetDefaultLogger(l Logger) {
	if l == nil {
		return
	}
	defaultLoggerMutex.Lock()
	defaultLogger = l
	defaultLoggerMutex.Unlock()
}

// GetDefaultLogger returns the default logger.
func GetDefaultLogger() Logger {
	defaultLoggerMutex.RLock()
	l := defaultLogger
	defaultLoggerMutex.RUnlock()
	return l
}

// SetLevel sets the default logger's minimum output level.
func SetLevel(level Level) {
	GetDefaultLogger().SetLevel(level)
}

// With adds user defined fields to the default logger.
func With(fields ...Field) Logger {
	return GetDefaultLogger().With(fields...)
}

// Debug logs to the default logger at debug level.
func Debug(args ...interface{}) {
	GetDefaultLogger().Debug(args...)
}

// Debugf logs to the default logger at debug level.
func Debugf(format string, args ...interface{}) {
	GetDefaultLogger().Debugf(format, args...)
}

// Info logs to the default logger at info level.
func Info(args ...interface{}) {
	GetDefaultLogger().Info(args...)
}

// Infof logs to the default logger at info level.
func Infof(format string, args ...interface{}) {
	GetDefaultLogger().Infof(format, args...)
}

// Warn logs to the default logger at warn level.
func Warn(args ...interface{}) {
	GetDefaultLogger().Warn(args...)
}

// Warnf logs to the default logger at warn level.
func Warnf(format string, args ...interface{}) {
	GetDefaultLogger().Warnf(format, args...)
}

// Error logs to the default logger at error level.
func Error(args ...interface{}) {
	GetDefaultLogger().Error(args...)
}

// Errorf logs to the default logger at error level.
func Errorf(format string, args ...interface{}) {
	GetDefaultLogger().Errorf(format, args...)
}
