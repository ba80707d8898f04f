// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

package metrics

import "github.com/opendoor-labs/apmtrace/log"

// ConsoleSinkName is the registered name of the console sink.
const ConsoleSinkName = "console"

// NewConsoleSink creates a sink that writes every record to the client log at
// debug level. Intended for development, not production.
func NewConsoleSink() Sink {
	return &consoleSink{}
}

type consoleSink struct{}

// Name returns the name of the console sink.
func (*consoleSink) Name() string {
	return ConsoleSinkName
}

// Report prints the record to the client log.
func (*consoleSink) Report(rec Record) error {
	switch rec.Policy {
	case PolicySET:
		log.Debugf("metrics: %s = %v", rec.Name, rec.Value)
	default:
		log.Debugf("metrics: %s += %v", rec.Name, rec.Value)
	}
	return nil
}
