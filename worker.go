// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

package apmtrace

import (
	"sync"
	"time"

	"github.com/opendoor-labs/apmtrace/internal/buffer"
	"github.com/opendoor-labs/apmtrace/internal/report"
	"github.com/opendoor-labs/apmtrace/log"
	"github.com/opendoor-labs/apmtrace/trace"
)

// flushWorker owns the trace buffer and the single background goroutine that
// drains it. Flushes are serialized by construction: the loop runs the send
// function inline, so a new flush cannot start while the previous one is
// still on the wire. Back-pressure lands in the buffer, never in a producer.
type flushWorker struct {
	buf      *buffer.Queue[trace.Trace]
	interval time.Duration
	send     func(trace.Batch) error

	flushCh  chan struct{}
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newFlushWorker(bufferSize int, interval time.Duration, send func(trace.Batch) error) *flushWorker {
	return &flushWorker{
		buf:      buffer.New[trace.Trace](bufferSize),
		interval: interval,
		send:     send,
		flushCh:  make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// start launches the background flush loop.
func (fw *flushWorker) start() {
	go fw.run()
}

func (fw *flushWorker) run() {
	defer close(fw.done)
	ticker := time.NewTicker(fw.interval)
	defer ticker.Stop()
	for {
		select {
		case <-fw.stopCh:
			// Final drain so a graceful stop loses nothing.
			fw.flush()
			return
		case <-ticker.C:
			fw.flush()
		case <-fw.flushCh:
			fw.flush()
		}
	}
}

// enqueue hands a trace to the buffer. A full buffer rejects the trace and
// the caller counts the drop; hitting capacity nudges the loop to flush now
// rather than waiting for the ticker.
func (fw *flushWorker) enqueue(t trace.Trace) bool {
	if !fw.buf.Put(t) {
		return false
	}
	if fw.buf.Full() {
		select {
		case fw.flushCh <- struct{}{}:
		default:
		}
	}
	return true
}

func (fw *flushWorker) flush() {
	report.TraceBufferLen.Set(float64(fw.buf.Len()))
	traces := fw.buf.Drain(fw.buf.Cap())
	if len(traces) == 0 {
		return
	}
	batch := trace.Batch(traces)
	if err := fw.send(batch); err != nil {
		report.FlushFailure.Incr()
		log.Errorf("apmtrace: flush of %d traces failed: %v", len(batch), err)
		return
	}
	report.FlushSuccess.Incr()
	log.Debugf("apmtrace: flushed %d traces", len(batch))
}

// stop requests termination, waits for the final drain and joins the loop.
// Idempotent; concurrent callers all block until the loop has exited.
func (fw *flushWorker) stop() {
	fw.stopOnce.Do(func() {
		close(fw.stopCh)
	})
	<-fw.done
}
