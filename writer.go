// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

package apmtrace

import (
	"context"
	"errors"
	"sync"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/atomic"

	"github.com/opendoor-labs/apmtrace/internal/report"
	"github.com/opendoor-labs/apmtrace/log"
	"github.com/opendoor-labs/apmtrace/trace"
	"github.com/opendoor-labs/apmtrace/transport"
)

// RateUpdater receives per-service sampling rates extracted from agent
// responses. The priority sampler implements it.
type RateUpdater interface {
	// Update replaces the rate-by-service table.
	Update(rates map[string]float64)
}

// WriterStats is a point-in-time snapshot of the writer's delivery counters.
type WriterStats struct {
	// FlushedTraces is the cumulative number of traces the agent accepted.
	FlushedTraces int64
	// DroppedTraces is the cumulative number of traces discarded by the
	// pipeline (buffer overflow or writes after stop).
	DroppedTraces int64
	// Transport is the transport's own opaque transfer snapshot.
	Transport transport.Stats
}

// Writer accepts completed traces from any goroutine and ships them through
// a background flush worker. Exactly one worker is live per process: the
// writer records the process id that owns the worker and discards the stale
// handle when it observes a different pid, because the worker goroutine does
// not survive a fork.
//
// Once stopped, a writer never restarts; later writes are counted, logged
// no-ops.
type Writer struct {
	opts *Options

	// mu guards worker creation and teardown. The worker handle and owner
	// pid are atomics so the Write hot path reads them without the lock.
	mu       sync.Mutex
	worker   atomic.Pointer[flushWorker]
	ownerPID atomic.Int64
	stopped  atomic.Bool

	flushed atomic.Int64
	dropped atomic.Int64
}

// NewWriter creates a writer. It fails when priority sampling is requested
// over a wire version that cannot return rates.
func NewWriter(opts ...Option) (*Writer, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	if o.Sampler != nil && !o.Transport.CarriesSamplingRates() {
		return nil, errors.New("apmtrace: priority sampling requires a transport version that carries per-service rates")
	}
	return &Writer{opts: o}, nil
}

// Start ensures a flush worker owned by the current process is running. It
// returns false once the writer has been stopped. Safe to call from any
// goroutine; overlapping calls result in exactly one worker.
func (w *Writer) Start() bool {
	if w.stopped.Load() {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped.Load() {
		return false
	}
	pid := w.opts.ProcessID()
	if w.worker.Load() != nil {
		if w.ownerPID.Load() == int64(pid) {
			return true
		}
		// Fork: the goroutine behind the old handle did not survive into
		// this process. Never resume it, just let the handle go.
		report.ForkDetected.Incr()
		log.Debugf("apmtrace: fork detected (pid %d -> %d), replacing flush worker", w.ownerPID.Load(), pid)
	}
	fw := newFlushWorker(w.opts.BufferSize, w.opts.FlushInterval, w.sendBatch)
	w.worker.Store(fw)
	w.ownerPID.Store(int64(pid))
	fw.start()
	return true
}

// Write hands a completed trace to the pipeline. It never blocks on I/O and
// never panics toward the caller: after Stop, or when the buffer is full,
// the trace is dropped and counted. The pid comparison runs on every call
// because a fork is otherwise unobservable here.
func (w *Writer) Write(t Trace) {
	if w.stopped.Load() {
		w.dropped.Inc()
		report.WriterStoppedDrop.Incr()
		log.Debugf("apmtrace: writer stopped, dropping trace of %d spans", len(t))
		return
	}
	fw := w.worker.Load()
	if fw == nil || w.ownerPID.Load() != int64(w.opts.ProcessID()) {
		if !w.Start() {
			w.dropped.Inc()
			report.WriterStoppedDrop.Incr()
			return
		}
		fw = w.worker.Load()
		if fw == nil { // stopped concurrently
			w.dropped.Inc()
			report.WriterStoppedDrop.Incr()
			return
		}
	}
	if !fw.enqueue(t) {
		w.dropped.Inc()
		report.TraceBufferDrop.Incr()
	}
}

// Stop permanently stops the writer: no worker will ever be created again.
// The current worker performs one final flush and is joined before Stop
// returns, bounded by the transport's own timeout. Returns false when the
// writer was already stopped.
func (w *Writer) Stop() bool {
	if !w.stopped.CompareAndSwap(false, true) {
		return false
	}
	w.mu.Lock()
	fw := w.worker.Load()
	w.worker.Store(nil)
	ownerPID := w.ownerPID.Load()
	w.mu.Unlock()
	if fw != nil && ownerPID == int64(w.opts.ProcessID()) {
		fw.stop()
	}
	return true
}

// Stats returns a read-only snapshot of delivery counters.
func (w *Writer) Stats() WriterStats {
	return WriterStats{
		FlushedTraces: w.flushed.Load(),
		DroppedTraces: w.dropped.Load(),
		Transport:     w.opts.Transport.Stats(),
	}
}

// sendBatch is the worker's send routine: one call per flush cycle. It
// matches every response kind exhaustively, accumulates the flushed total,
// and forwards the last non-empty rate mapping to the sampler.
func (w *Writer) sendBatch(batch trace.Batch) error {
	responses := w.opts.Transport.SendTraces(context.Background(), batch)
	var result *multierror.Error
	var rates map[string]float64
	for _, rsp := range responses {
		switch rsp.Kind {
		case transport.OutcomeSuccess:
			w.flushed.Add(int64(rsp.TraceCount))
			report.FlushedTraces.IncrBy(float64(rsp.TraceCount))
			if len(rsp.Rates) > 0 {
				rates = rsp.Rates
			}
		case transport.OutcomeServerError:
			result = multierror.Append(result, rsp.Err)
		case transport.OutcomeInternalError:
			// Client-side defect, not a delivery attempt: it neither counts
			// toward flushed totals nor fails the cycle.
			log.Errorf("apmtrace: dropping %d traces: %v", rsp.TraceCount, rsp.Err)
		}
	}
	if rates != nil && w.opts.Sampler != nil {
		w.opts.Sampler.Update(rates)
		report.SamplerRateUpdate.Incr()
	}
	return result.ErrorOrNil()
}
