// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

// Package sampler decides which traces to keep. The priority sampler applies
// per-service rates pushed back by the agent through the writer's feedback
// loop; until the first update arrives every trace is kept.
package sampler

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/spaolacci/murmur3"

	"github.com/opendoor-labs/apmtrace/trace"
)

// defaultRateKey is the catch-all entry the agent may include in an update.
const defaultRateKey = "service:,env:"

// PrioritySampler keeps or drops traces according to per-service rates.
// Safe for concurrent use: instrumentation samples while the writer updates.
type PrioritySampler struct {
	mu          sync.RWMutex
	rates       map[string]float64
	defaultRate float64
	env         string
}

// NewPrioritySampler creates a sampler for the given deployment environment
// (matching the agent's rate keys). The initial rate is 1.0 for everything.
func NewPrioritySampler(env string) *PrioritySampler {
	return &PrioritySampler{
		rates:       make(map[string]float64),
		defaultRate: 1,
		env:         env,
	}
}

// Update replaces the rate table with the agent's latest mapping. Keys have
// the form "service:<name>,env:<env>". Called by the writer at most once per
// flush cycle.
func (s *PrioritySampler) Update(rates map[string]float64) {
	next := make(map[string]float64, len(rates))
	defaultRate := 1.0
	for k, v := range rates {
		if k == defaultRateKey {
			defaultRate = v
			continue
		}
		next[k] = v
	}
	s.mu.Lock()
	s.rates = next
	s.defaultRate = defaultRate
	s.mu.Unlock()
}

// Rate returns the sampling rate that applies to the span's service.
func (s *PrioritySampler) Rate(span *trace.Span) float64 {
	key := RateKey(span.Service, s.env)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rate, ok := s.rates[key]; ok {
		return rate
	}
	return s.defaultRate
}

// Sample reports whether the trace rooted at span should be kept. The
// decision hashes the trace ID, so all spans of a trace agree and repeated
// calls are deterministic.
func (s *PrioritySampler) Sample(span *trace.Span) bool {
	rate := s.Rate(span)
	if rate >= 1 {
		return true
	}
	if rate <= 0 {
		return false
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], span.TraceID)
	return murmur3.Sum64(b[:]) < uint64(rate*math.MaxUint64)
}

// RateKey builds the agent's rate table key for a service and environment.
func RateKey(service, env string) string {
	return "service:" + service + ",env:" + env
}
