// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

package metrics

// IGauge is the interface that emits gauge metrics.
type IGauge interface {
	// Set sets the gauge's absolute value.
	Set(value float64)
}

// gauge reports to each registered sink with the SET policy.
type gauge struct {
	name string
}

// Set updates the gauge value.
func (g *gauge) Set(v float64) {
	if !haveSinks() {
		return
	}
	Report(Record{Name: g.name, Value: v, Policy: PolicySET})
}
