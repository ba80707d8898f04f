// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

// Package transport ships trace batches to the agent and classifies the
// outcome of every attempt. Ordinary network or agent failures never
// propagate as errors: each attempt yields exactly one Response whose
// OutcomeKind the caller matches exhaustively. Wire versions are pluggable
// through a registry; picking one is a construction-time concern.
package transport

import (
	"context"

	"github.com/opendoor-labs/apmtrace/codec"
	"github.com/opendoor-labs/apmtrace/trace"
)

// Transport sends batches of traces to the agent.
type Transport interface {
	// SendTraces serializes batch into the wire format and performs the
	// network exchange. A batch larger than the payload cap is split across
	// several requests, so one call may yield several responses. It never
	// returns an error for ordinary network or agent failure; outcomes are
	// encoded in the responses.
	SendTraces(ctx context.Context, batch trace.Batch) []*Response

	// CarriesSamplingRates reports whether this transport's wire version
	// returns per-service sampling rates in agent responses. Priority
	// sampling requires a transport for which this is true.
	CarriesSamplingRates() bool

	// Stats returns a point-in-time snapshot of transfer statistics.
	Stats() Stats
}

// Stats is an opaque snapshot of transport activity, exposed through the
// writer's stats boundary.
type Stats struct {
	// Requests is the number of HTTP requests attempted.
	Requests int64
	// AcceptedTraces is the number of traces the agent accepted.
	AcceptedTraces int64
	// ClientErrors counts requests that could not be built or completed.
	ClientErrors int64
	// ServerErrors counts requests the agent rejected or failed.
	ServerErrors int64
	// BytesSent is the total encoded payload bytes delivered.
	BytesSent int64
}

// Version describes a wire version of the agent trace API.
type Version struct {
	// Name is the registry key, e.g. "v0.4".
	Name string
	// TracesPath is the URL path of the traces endpoint.
	TracesPath string
	// ContentType is the request body content type.
	ContentType string
	// SerializationType selects the codec serializer for the payload.
	SerializationType int
	// CarriesRates marks versions whose responses include rate_by_service.
	CarriesRates bool
}

// Registered wire version names.
const (
	// VersionV03 is the legacy JSON endpoint. No sampling-rate feedback.
	VersionV03 = "v0.3"
	// VersionV04 is the msgpack endpoint with rate_by_service feedback.
	VersionV04 = "v0.4"
	// DefaultVersion is used when no version is configured.
	DefaultVersion = VersionV04
)

var versions = make(map[string]Version)

// RegisterVersion registers a wire version. Not thread-safe; call during
// initialization only.
func RegisterVersion(v Version) {
	if v.Name == "" {
		panic("transport: register version with empty name")
	}
	versions[v.Name] = v
}

// GetVersion returns the registered wire version by name.
func GetVersion(name string) (Version, bool) {
	v, ok := versions[name]
	return v, ok
}

func init() {
	RegisterVersion(Version{
		Name:              VersionV03,
		TracesPath:        "/v0.3/traces",
		ContentType:       "application/json",
		SerializationType: codec.SerializationTypeJSON,
		CarriesRates:      false,
	})
	RegisterVersion(Version{
		Name:              VersionV04,
		TracesPath:        "/v0.4/traces",
		ContentType:       "application/msgpack",
		SerializationType: codec.SerializationTypeMsgpack,
		CarriesRates:      true,
	})
}
