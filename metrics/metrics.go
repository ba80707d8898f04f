// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

// Package metrics provides counters and gauges for the tracing client's own
// health, decoupled from any particular monitoring system through the Sink
// interface. With no sink registered every report is a no-op, so the
// instrumented application pays nothing unless it opts in.
//
// Usage:
//
//	dropped := metrics.Counter("apmtrace.TraceBufferDrop")
//	dropped.Incr()
//
//	queueLen := metrics.Gauge("apmtrace.TraceBufferLen")
//	queueLen.Set(12)
package metrics

import "sync"

var (
	sinksMutex = sync.RWMutex{}
	sinks      = map[string]Sink{}

	countersMutex = sync.RWMutex{}
	counters      = map[string]ICounter{}

	gaugesMutex = sync.RWMutex{}
	gauges      = map[string]IGauge{}
)

// RegisterMetricsSink registers a Sink. Records reported after registration
// are fanned out to every registered sink.
func RegisterMetricsSink(sink Sink) {
	sinksMutex.Lock()
	sinks[sink.Name()] = sink
	sinksMutex.Unlock()
}

// GetMetricsSink gets a registered Sink by name.
func GetMetricsSink(name string) (Sink, bool) {
	sinksMutex.RLock()
	sink, ok := sinks[name]
	sinksMutex.RUnlock()
	return sink, ok
}

// Counter creates (or returns the existing) named counter.
func Counter(name string) ICounter {
	countersMutex.RLock()
	c, ok := counters[name]
	countersMutex.RUnlock()
	if ok {
		return c
	}
	countersMutex.Lock()
	defer countersMutex.Unlock()
	if c, ok := counters[name]; ok {
		return c
	}
	c = &counter{name: name}
	counters[name] = c
	return c
}

// Gauge creates (or returns the existing) named gauge.
func Gauge(name string) IGauge {
	gaugesMutex.RLock()
	g, ok := gauges[name]
	gaugesMutex.RUnlock()
	if ok {
		return g
	}
	gaugesMutex.Lock()
	defer gaugesMutex.Unlock()
	if g, ok := gauges[name]; ok {
		return g
	}
	g = &gauge{name: name}
	gauges[name] = g
	return g
}

// IncrCounter increases the named counter by value.
func IncrCounter(name string, value float64) {
	Counter(name).IncrBy(value)
}

// SetGauge sets the named gauge to value.
func SetGauge(name string, value float64) {
	Gauge(name).Set(value)
}

// Report reports a record to every registered sink.
func Report(rec Record) error {
	var err error
	sinksMutex.RLock()
	defer sinksMutex.RUnlock()
	for _, sink := range sinks {
		if e := sink.Report(rec); e != nil {
			err = e
		}
	}
	return err
}

func haveSinks() bool {
	sinksMutex.RLock()
	defer sinksMutex.RUnlock()
	return len(sinks) > 0
}
