// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

package apmtrace

import (
	"errors"
	"os"
	"time"

	"github.com/opendoor-labs/apmtrace/internal/env"
	"github.com/opendoor-labs/apmtrace/transport"
)

// Writer defaults, overridable by environment and options.
const (
	// DefaultBufferSize is the trace buffer capacity.
	DefaultBufferSize = 1000
	// DefaultFlushInterval is the periodic flush interval.
	DefaultFlushInterval = time.Second
)

// Options are the writer construction options.
type Options struct {
	// BufferSize is the fixed capacity of the trace buffer; reaching it
	// triggers an immediate flush and further writes drop until drained.
	BufferSize int
	// FlushInterval is the period of timer-driven flushes.
	FlushInterval time.Duration
	// Transport ships batches to the agent. Defaults to an HTTP transport
	// speaking transport.DefaultVersion.
	Transport transport.Transport
	// Sampler receives rate-by-service updates from agent responses. When
	// set, Transport must carry sampling rates.
	Sampler RateUpdater
	// ProcessID reports the current process id; the writer compares it on
	// every write to detect forks. Replaced in tests.
	ProcessID func() int
}

// Option modifies the Options.
type Option func(*Options)

func newOptions(opts ...Option) (*Options, error) {
	o := &Options{
		BufferSize:    env.Int(env.BufferSize, DefaultBufferSize),
		FlushInterval: env.Duration(env.FlushInterval, DefaultFlushInterval),
		ProcessID:     os.Getpid,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.BufferSize <= 0 {
		return nil, errors.New("apmtrace: buffer size must be positive")
	}
	if o.FlushInterval <= 0 {
		return nil, errors.New("apmtrace: flush interval must be positive")
	}
	if o.ProcessID == nil {
		return nil, errors.New("apmtrace: process id source must not be nil")
	}
	if o.Transport == nil {
		t, err := transport.NewHTTPTransport(transport.DefaultVersion)
		if err != nil {
			return nil, err
		}
		o.Transport = t
	}
	return o, nil
}

// WithBufferSize sets the trace buffer capacity.
func WithBufferSize(n int) Option {
	return func(o *Options) {
		o.BufferSize = n
	}
}

// WithFlushInterval sets the periodic flush interval.
func WithFlushInterval(d time.Duration) Option {
	return func(o *Options) {
		o.FlushInterval = d
	}
}

// WithTransport sets the transport used to ship batches.
func WithTransport(t transport.Transport) Option {
	return func(o *Options) {
		o.Transport = t
	}
}

// WithSampler sets the sampler receiving rate-by-service feedback.
func WithSampler(s RateUpdater) Option {
	return func(o *Options) {
		o.Sampler = s
	}
}

// WithProcessID replaces the process id source used for fork detection.
// Intended for tests.
func WithProcessID(fn func() int) Option {
	return func(o *Options) {
		o.ProcessID = fn
	}
}
