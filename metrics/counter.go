// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

package metrics

// ICounter is the interface that emits counter type metrics.
type ICounter interface {
	// Incr increments the counter by one.
	Incr()

	// IncrBy increments the counter by delta.
	IncrBy(delta float64)
}

// counter reports to each registered sink with the SUM policy.
type counter struct {
	name string
}

// Incr increases the counter by one.
func (c *counter) Incr() {
	c.IncrBy(1)
}

// IncrBy increases the counter by v.
func (c *counter) IncrBy(v float64) {
	if !haveSinks() {
		return
	}
	Report(Record{Name: c.name, Value: v, Policy: PolicySUM})
}
