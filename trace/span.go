// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

// Package trace defines the span and trace data model shared by the export
// pipeline, the transport layer and the sampler.
package trace

// Span is a single timed unit of work. Instrumentation mutates a span freely
// while it is open; once the enclosing trace has been handed to a Writer the
// pipeline treats it as read-only.
type Span struct {
	// Service is the name of the service that handled this span.
	Service string `json:"service" msgpack:"service"`
	// Name is the name of the operation this span represents.
	Name string `json:"name" msgpack:"name"`
	// Resource is the name of the resource this span operates on.
	Resource string `json:"resource" msgpack:"resource"`
	// TraceID is the ID of the trace to which this span belongs.
	TraceID uint64 `json:"trace_id" msgpack:"trace_id"`
	// SpanID is the ID of this span.
	SpanID uint64 `json:"span_id" msgpack:"span_id"`
	// ParentID is the ID of the parent span, zero for a root span.
	ParentID uint64 `json:"parent_id,omitempty" msgpack:"parent_id"`
	// Start is the start time in nanoseconds since the Unix epoch.
	Start int64 `json:"start" msgpack:"start"`
	// Duration is the duration in nanoseconds.
	Duration int64 `json:"duration" msgpack:"duration"`
	// Error is non-zero when the span finished in error.
	Error int32 `json:"error" msgpack:"error"`
	// Meta maps tag names to string tag values.
	Meta map[string]string `json:"meta,omitempty" msgpack:"meta"`
	// Metrics maps metric names to numeric tag values.
	Metrics map[string]float64 `json:"metrics,omitempty" msgpack:"metrics"`
	// Type is the span type, e.g. "web", "db" or "cache".
	Type string `json:"type" msgpack:"type"`
}

// SetTag sets a string tag on the span.
func (s *Span) SetTag(key, value string) {
	if s.Meta == nil {
		s.Meta = make(map[string]string)
	}
	s.Meta[key] = value
}

// SetMetric sets a numeric tag on the span.
func (s *Span) SetMetric(key string, value float64) {
	if s.Metrics == nil {
		s.Metrics = make(map[string]float64)
	}
	s.Metrics[key] = value
}

// SetError marks the span as errored and records the error message.
func (s *Span) SetError(err error) {
	if err == nil {
		return
	}
	s.Error = 1
	s.SetTag("error.msg", err.Error())
}

// Trace is an ordered sequence of spans sharing one trace ID. Insertion order
// is creation order, not necessarily temporal order.
type Trace []*Span

// Batch is a set of traces drained together for one send attempt. A batch is
// built by the flush worker and discarded after the transport returns; it is
// never resubmitted as the same object.
type Batch []Trace

// SpanCount returns the total number of spans across all traces in the batch.
func (b Batch) SpanCount() int {
	var n int
	for _, t := range b {
		n += len(t)
	}
	return n
}
