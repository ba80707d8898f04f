// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

package log_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendoor-labs/apmtrace/log"
)

func TestZapLogLevels(t *testing.T) {
	l := log.NewZapLog(log.LevelWarn)
	assert.Equal(t, log.LevelWarn, l.GetLevel())
	l.SetLevel(log.LevelDebug)
	assert.Equal(t, log.LevelDebug, l.GetLevel())
}

func TestLevelNames(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
		ok   bool
	}{
		{"debug", log.LevelDebug, true},
		{"info", log.LevelInfo, true},
		{"warn", log.LevelWarn, true},
		{"error", log.LevelError, true},
		{"verbose", 0, false},
	}
	for _, tt := range tests {
		lvl, ok := log.LevelNames[tt.in]
		assert.Equal(t, tt.ok, ok, tt.in)
		if ok {
			assert.Equal(t, tt.want, lvl, tt.in)
		}
	}
}

// captureLogger records calls so tests can swap out the default logger.
type captureLogger struct {
	mu    sync.Mutex
	lines []string
	level log.Level
}

func (c *captureLogger) record(msg string) {
	c.mu.Lock()
	c.lines = append(c.lines, msg)
	c.mu.Unlock()
}

func (c *captureLogger) Debug(args ...interface{})          { c.record("debug") }
func (c *captureLogger) Debugf(string, ...interface{})      { c.record("debug") }
func (c *captureLogger) Info(args ...interface{})           { c.record("info") }
func (c *captureLogger) Infof(string, ...interface{})       { c.record("info") }
func (c *captureLogger) Warn(args ...interface{})           { c.record("warn") }
func (c *captureLogger) Warnf(string, ...interface{})       { c.record("warn") }
func (c *captureLogger) Error(args ...interface{})          { c.record("error") }
func (c *captureLogger) Errorf(string, ...interface{})      { c.record("error") }
func (c *captureLogger) With(...log.Field) log.Logger       { return c }
func (c *captureLogger) SetLevel(level log.Level)           { c.level = level }
func (c *captureLogger) GetLevel() log.Level                { return c.level }
func (c *captureLogger) Sync() error                        { return nil }

func TestDefaultLoggerSwap(t *testing.T) {
	orig := log.GetDefaultLogger()
	defer log.SetDefaultLogger(orig)

	cl := &captureLogger{}
	log.SetDefaultLogger(cl)
	log.Errorf("flush of %d traces failed", 3)
	log.Debug("drop")

	cl.mu.Lock()
	defer cl.mu.Unlock()
	require.Len(t, cl.lines, 2)
	assert.Equal(t, []string{"error", "debug"}, cl.lines)

	// nil is ignored, the previous logger stays.
	log.SetDefaultLogger(nil)
	assert.Equal(t, log.Logger(cl), log.GetDefaultLogger())
}
