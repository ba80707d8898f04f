// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

package metrics

// Policy is the metrics aggregation policy.
type Policy int

// All available Policy(s).
const (
	PolicyNONE Policy = 0 // undefined
	PolicySET  Policy = 1 // instantaneous value
	PolicySUM  Policy = 2 // summary
)

// Record is a single reported value.
type Record struct {
	Name   string
	Value  float64
	Policy Policy
}

// Sink defines the interface an external monitor system should provide.
type Sink interface {
	// Name returns the name of the monitor system.
	Name() string
	// Report reports a record to the monitor system.
	Report(rec Record) error
}
