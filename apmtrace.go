// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

// Package apmtrace is an APM tracing client. It moves completed traces from
// application goroutines to the trace agent through a bounded buffer and a
// single background flush worker, and routes the agent's per-service sampling
// rates back into the priority sampler.
//
// The writer is an explicit value: construct one, thread it to whatever
// produces traces, and stop it on shutdown.
//
//	w, err := apmtrace.NewWriter(
//		apmtrace.WithFlushInterval(time.Second),
//	)
//	if err != nil {
//		...
//	}
//	defer w.Stop()
//	w.Write(completedTrace)
//
// Nothing on the Write path ever blocks on the network or panics toward the
// caller: when the pipeline cannot keep up, traces are dropped and counted.
package apmtrace

import (
	"github.com/opendoor-labs/apmtrace/internal/version"
	"github.com/opendoor-labs/apmtrace/trace"
)

// Span is the alias of trace.Span.
type Span = trace.Span

// Trace is the alias of trace.Trace.
type Trace = trace.Trace

// Batch is the alias of trace.Batch.
type Batch = trace.Batch

// Version returns the client version string.
func Version() string {
	return version.Version()
}
