// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

package transport

// OutcomeKind classifies the result of one send attempt. The set is closed:
// every switch over it handles all three kinds.
type OutcomeKind int

const (
	// OutcomeSuccess means the agent accepted the batch.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeInternalError means the request was malformed or could not be
	// attempted or completed client-side. Not a delivery attempt: it counts
	// neither toward flushed totals nor as a failed cycle.
	OutcomeInternalError
	// OutcomeServerError means the agent was reached but rejected or failed
	// the batch. Counts as a failed send for the cycle.
	OutcomeServerError
)

// String returns the outcome kind name.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeInternalError:
		return "internal-error"
	case OutcomeServerError:
		return "server-error"
	default:
		return "unknown"
	}
}

// Response is the outcome of one send attempt. A flush cycle produces one
// Response per physical request the transport made.
type Response struct {
	// Kind is the outcome classification.
	Kind OutcomeKind
	// TraceCount is the number of traces covered by this attempt.
	TraceCount int
	// Rates is the per-service sampling-rate mapping returned by the agent,
	// nil when the wire version does not carry rates or none were returned.
	Rates map[string]float64
	// Err holds the underlying failure for diagnostics, nil on success.
	Err error
}
