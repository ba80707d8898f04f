// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

package apmtrace

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/opendoor-labs/apmtrace/trace"
	"github.com/opendoor-labs/apmtrace/transport"
	"github.com/opendoor-labs/apmtrace/transport/mocktransport"
)

// fakeTransport records batches and plays back scripted responses. When gate
// is non-nil, SendTraces records the batch and then blocks until the gate is
// closed, simulating a slow agent.
type fakeTransport struct {
	mu      sync.Mutex
	batches []trace.Batch
	script  func(call int, batch trace.Batch) []*transport.Response
	carries bool
	gate    chan struct{}
	calls   int
}

func (f *fakeTransport) SendTraces(_ context.Context, batch trace.Batch) []*transport.Response {
	f.mu.Lock()
	f.batches = append(f.batches, batch)
	f.calls++
	call := f.calls
	script := f.script
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if script != nil {
		return script(call, batch)
	}
	return []*transport.Response{{Kind: transport.OutcomeSuccess, TraceCount: len(batch)}}
}

func (f *fakeTransport) CarriesSamplingRates() bool { return f.carries }

func (f *fakeTransport) Stats() transport.Stats { return transport.Stats{} }

func (f *fakeTransport) sentTraces() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}

func (f *fakeTransport) batchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

func (f *fakeTransport) allBatches() []trace.Batch {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]trace.Batch, len(f.batches))
	copy(out, f.batches)
	return out
}

// fakeSampler records Update calls.
type fakeSampler struct {
	mu      sync.Mutex
	updates []map[string]float64
}

func (s *fakeSampler) Update(rates map[string]float64) {
	s.mu.Lock()
	s.updates = append(s.updates, rates)
	s.mu.Unlock()
}

func (s *fakeSampler) all() []map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]float64, len(s.updates))
	copy(out, s.updates)
	return out
}

func testTrace(name string) trace.Trace {
	return trace.Trace{{Service: "checkout", Name: name, TraceID: 1, SpanID: 1}}
}

func TestStopDrainsBufferedTraces(t *testing.T) {
	ft := &fakeTransport{}
	w, err := NewWriter(
		WithTransport(ft),
		WithBufferSize(100),
		WithFlushInterval(time.Hour), // no timer flush during the test
	)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		w.Write(testTrace(fmt.Sprintf("op-%d", i)))
	}
	assert.Equal(t, 0, ft.batchCount())

	require.True(t, w.Stop())
	assert.Equal(t, 1, ft.batchCount())
	assert.Equal(t, 4, ft.sentTraces())
	assert.Equal(t, int64(4), w.Stats().FlushedTraces)
	assert.Equal(t, int64(0), w.Stats().DroppedTraces)
}

func TestStopIsMonotonic(t *testing.T) {
	ft := &fakeTransport{}
	w, err := NewWriter(WithTransport(ft), WithFlushInterval(time.Hour))
	require.NoError(t, err)

	w.Write(testTrace("before"))
	require.True(t, w.Stop())
	assert.False(t, w.Stop())

	sent := ft.sentTraces()
	for i := 0; i < 5; i++ {
		w.Write(testTrace("after")) // documented no-op
	}
	assert.False(t, w.Start())
	assert.Nil(t, w.worker.Load())
	assert.Equal(t, sent, ft.sentTraces())
	assert.Equal(t, int64(5), w.Stats().DroppedTraces)
}

func TestConcurrentStartSingleWorker(t *testing.T) {
	ft := &fakeTransport{}
	w, err := NewWriter(WithTransport(ft), WithFlushInterval(time.Hour))
	require.NoError(t, err)
	defer w.Stop()

	var wg sync.WaitGroup
	wg.Add(10)
	for i := 0; i < 10; i++ {
		go func() {
			defer wg.Done()
			assert.True(t, w.Start())
		}()
	}
	wg.Wait()

	fw := w.worker.Load()
	require.NotNil(t, fw)
	require.True(t, w.Start())
	assert.Same(t, fw, w.worker.Load())
}

func TestForkReplacesWorker(t *testing.T) {
	ft := &fakeTransport{}
	pid := atomic.NewInt64(100)
	w, err := NewWriter(
		WithTransport(ft),
		WithFlushInterval(time.Hour),
		WithProcessID(func() int { return int(pid.Load()) }),
	)
	require.NoError(t, err)

	w.Write(testTrace("parent"))
	parentWorker := w.worker.Load()
	require.NotNil(t, parentWorker)
	assert.Equal(t, int64(100), w.ownerPID.Load())

	// Simulate a fork: the next write observes a new pid and must bind a
	// fresh worker. The parent's buffered trace belongs to the old process.
	pid.Store(200)
	w.Write(testTrace("child"))
	childWorker := w.worker.Load()
	require.NotNil(t, childWorker)
	assert.NotSame(t, parentWorker, childWorker)
	assert.Equal(t, int64(200), w.ownerPID.Load())

	require.True(t, w.Stop())
	require.Equal(t, 1, ft.batchCount())
	batch := ft.allBatches()[0]
	require.Len(t, batch, 1)
	assert.Equal(t, "child", batch[0][0].Name)
}

func TestFullBufferTriggersImmediateFlush(t *testing.T) {
	gate := make(chan struct{})
	ft := &fakeTransport{gate: gate}
	w, err := NewWriter(
		WithTransport(ft),
		WithBufferSize(2),
		WithFlushInterval(time.Hour),
	)
	require.NoError(t, err)

	// T1 and T2 fill the buffer; the worker drains and blocks in the
	// transport with the batch already recorded.
	w.Write(testTrace("t1"))
	w.Write(testTrace("t2"))
	require.Eventually(t, func() bool { return ft.batchCount() == 1 }, 3*time.Second, time.Millisecond)

	// The buffer is empty again while the send is still in flight, so T3 is
	// accepted rather than dropped.
	w.Write(testTrace("t3"))

	close(gate)
	require.True(t, w.Stop())
	assert.Equal(t, 3, ft.sentTraces())
	assert.Equal(t, int64(0), w.Stats().DroppedTraces)
	assert.Equal(t, int64(3), w.Stats().FlushedTraces)
}

// TestWriteAccounting checks the conservation property: every accepted write
// is either delivered or counted as dropped, nothing disappears silently.
func TestWriteAccounting(t *testing.T) {
	ft := &fakeTransport{}
	w, err := NewWriter(
		WithTransport(ft),
		WithBufferSize(8),
		WithFlushInterval(time.Millisecond),
	)
	require.NoError(t, err)

	const producers = 4
	const perProducer = 250
	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				w.Write(testTrace("op"))
			}
		}()
	}
	wg.Wait()
	require.True(t, w.Stop())

	stats := w.Stats()
	assert.Equal(t, int64(producers*perProducer), stats.FlushedTraces+stats.DroppedTraces)
	assert.Equal(t, int64(ft.sentTraces()), stats.FlushedTraces)
}

func TestServerErrorsAreNotCountedAsFlushed(t *testing.T) {
	ft := &fakeTransport{
		script: func(call int, batch trace.Batch) []*transport.Response {
			if call == 1 {
				return []*transport.Response{{
					Kind:       transport.OutcomeServerError,
					TraceCount: len(batch),
					Err:        errors.New("agent responded 400 Bad Request"),
				}}
			}
			return []*transport.Response{{Kind: transport.OutcomeSuccess, TraceCount: len(batch)}}
		},
	}
	w, err := NewWriter(
		WithTransport(ft),
		WithBufferSize(5),
		WithFlushInterval(time.Hour),
	)
	require.NoError(t, err)

	// Filling the buffer triggers cycle 1, which the agent rejects.
	for i := 0; i < 5; i++ {
		w.Write(testTrace("rejected"))
	}
	require.Eventually(t, func() bool { return ft.batchCount() == 1 }, 3*time.Second, time.Millisecond)
	assert.Equal(t, int64(0), w.Stats().FlushedTraces)

	// A later successful cycle counts exactly its own traces.
	for i := 0; i < 3; i++ {
		w.Write(testTrace("accepted"))
	}
	require.True(t, w.Stop())
	assert.Equal(t, int64(3), w.Stats().FlushedTraces)
}

func TestInternalErrorsDoNotFailTheCycle(t *testing.T) {
	ft := &fakeTransport{
		script: func(int, trace.Batch) []*transport.Response {
			return []*transport.Response{{
				Kind:       transport.OutcomeInternalError,
				TraceCount: 2,
				Err:        errors.New("encode failed"),
			}}
		},
	}
	w, err := NewWriter(WithTransport(ft), WithFlushInterval(time.Hour))
	require.NoError(t, err)

	w.Write(testTrace("a"))
	w.Write(testTrace("b"))
	require.True(t, w.Stop())
	// Nothing was delivered, but nothing counts as a server failure either.
	assert.Equal(t, int64(0), w.Stats().FlushedTraces)
}

func TestSamplerReceivesLastRateMapping(t *testing.T) {
	ft := &fakeTransport{
		carries: true,
		script: func(call int, batch trace.Batch) []*transport.Response {
			if call == 1 {
				// Chunked cycle: the later mapping supersedes the earlier one.
				return []*transport.Response{
					{Kind: transport.OutcomeSuccess, TraceCount: 1, Rates: map[string]float64{"service:svc-a,env:": 0.9}},
					{Kind: transport.OutcomeSuccess, TraceCount: 0, Rates: map[string]float64{"service:svc-a,env:": 0.5}},
				}
			}
			return []*transport.Response{{Kind: transport.OutcomeSuccess, TraceCount: 1}}
		},
	}
	fs := &fakeSampler{}
	w, err := NewWriter(
		WithTransport(ft),
		WithSampler(fs),
		WithBufferSize(1), // every write fills the buffer and flushes
		WithFlushInterval(time.Hour),
	)
	require.NoError(t, err)

	w.Write(testTrace("first"))
	require.Eventually(t, func() bool { return len(fs.all()) == 1 }, 3*time.Second, time.Millisecond)
	assert.Equal(t, map[string]float64{"service:svc-a,env:": 0.5}, fs.all()[0])

	// A cycle without a mapping triggers no update.
	w.Write(testTrace("second"))
	require.Eventually(t, func() bool { return ft.batchCount() >= 2 }, 3*time.Second, time.Millisecond)
	require.True(t, w.Stop())
	assert.Len(t, fs.all(), 1)
}

func TestNewWriterRejectsSamplerWithoutRateCapableTransport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mt := mocktransport.NewMockTransport(ctrl)
	mt.EXPECT().CarriesSamplingRates().Return(false)

	_, err := NewWriter(WithTransport(mt), WithSampler(&fakeSampler{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "per-service rates")
}

func TestStatsExposesTransportSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mt := mocktransport.NewMockTransport(ctrl)
	mt.EXPECT().Stats().Return(transport.Stats{Requests: 7, AcceptedTraces: 42})

	w, err := NewWriter(WithTransport(mt))
	require.NoError(t, err)
	stats := w.Stats()
	assert.Equal(t, int64(7), stats.Transport.Requests)
	assert.Equal(t, int64(42), stats.Transport.AcceptedTraces)
}

func TestNewWriterOptionValidation(t *testing.T) {
	_, err := NewWriter(WithBufferSize(-1))
	assert.Error(t, err)
	_, err = NewWriter(WithFlushInterval(0))
	assert.Error(t, err)
	_, err = NewWriter(WithProcessID(nil))
	assert.Error(t, err)
}
