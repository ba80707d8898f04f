// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

// Package report names every metric emitted by the export pipeline.
// Every property starts with "apmtrace.".
package report

import (
	"github.com/opendoor-labs/apmtrace/metrics"
)

var (
	// a trace was rejected because the bounded buffer was full.
	TraceBufferDrop = metrics.Counter("apmtrace.TraceBufferDrop")
	// a trace was discarded because the writer had already been stopped.
	WriterStoppedDrop = metrics.Counter("apmtrace.WriterStoppedDrop")
	// a stale worker handle was discarded after a fork was detected.
	ForkDetected = metrics.Counter("apmtrace.ForkDetected")

	// a flush cycle completed with every batch accepted by the agent.
	FlushSuccess = metrics.Counter("apmtrace.FlushSuccess")
	// a flush cycle had at least one batch rejected by the agent.
	FlushFailure = metrics.Counter("apmtrace.FlushFailure")
	// traces accepted by the agent.
	FlushedTraces = metrics.Counter("apmtrace.FlushedTraces")

	// the request could not be built or completed client-side; not a delivery attempt.
	TransportInternalError = metrics.Counter("apmtrace.TransportInternalError")
	// the agent rejected or failed a batch.
	TransportServerError = metrics.Counter("apmtrace.TransportServerError")
	// encoded payload bytes handed to the network.
	TransportPayloadBytes = metrics.Counter("apmtrace.TransportPayloadBytes")

	// the priority sampler received a rate-by-service update.
	SamplerRateUpdate = metrics.Counter("apmtrace.SamplerRateUpdate")

	// current number of traces sitting in the buffer, sampled at flush time.
	TraceBufferLen = metrics.Gauge("apmtrace.TraceBufferLen")
)
