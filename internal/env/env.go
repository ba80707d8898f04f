// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

// Package env defines the environment variables read by the tracing client
// and typed helpers for reading them.
package env

import (
	"os"
	"time"

	"github.com/spf13/cast"
)

// Defines all keys of the environment variables.
const (
	// AgentHost overrides the trace agent host, default "localhost".
	AgentHost = "APM_AGENT_HOST"
	// AgentPort overrides the trace agent port, default 8126.
	AgentPort = "APM_AGENT_PORT"
	// BufferSize overrides the writer's trace buffer capacity.
	BufferSize = "APM_TRACE_BUFFER_SIZE"
	// FlushInterval overrides the writer's flush interval, e.g. "500ms".
	FlushInterval = "APM_TRACE_FLUSH_INTERVAL"
	// LogLevel sets the client log level: debug, info, warn or error.
	LogLevel = "APM_TRACE_LOG_LEVEL"
	// Environment tags the deployment environment, e.g. "staging",
	// used when resolving per-service sampling rates.
	Environment = "APM_ENV"
)

// String reads key and falls back to def when unset or empty.
func String(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Int reads key as an integer, falling back to def when unset or malformed.
func Int(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return def
	}
	return n
}

// Duration reads key as a time.Duration ("1s", "500ms"), falling back to def
// when unset or malformed.
func Duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := cast.ToDurationE(v)
	if err != nil {
		return def
	}
	return d
}
