// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

package metrics

// NoopSinkName is the registered name of the noop sink.
const NoopSinkName = "noop"

// NewNoopSink creates a sink that discards every record. Useful for
// benchmarks that need sink fan-out enabled without side effects.
func NewNoopSink() Sink {
	return &noopSink{}
}

type noopSink struct{}

// Name returns the name of the noop sink.
func (*noopSink) Name() string {
	return NoopSinkName
}

// Report discards the record.
func (*noopSink) Report(Record) error {
	return nil
}
