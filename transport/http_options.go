// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

package transport

import (
	"net/http"
	"time"
)

// HTTPOptions are the HTTP transport construction options.
type HTTPOptions struct {
	agentAddr      string
	client         *http.Client
	timeout        time.Duration
	maxPayloadSize int
	headers        map[string]string
}

// HTTPOption modifies the HTTPOptions.
type HTTPOption func(*HTTPOptions)

func defaultHTTPOptions() *HTTPOptions {
	return &HTTPOptions{
		agentAddr:      defaultAgentAddr(),
		timeout:        defaultHTTPTimeout,
		maxPayloadSize: defaultMaxPayloadSize,
	}
}

// WithAgentAddr sets the agent address, either "host:port" or "unix:///path".
func WithAgentAddr(addr string) HTTPOption {
	return func(o *HTTPOptions) {
		o.agentAddr = addr
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely. The caller
// owns timeouts and socket handling when this option is used.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(o *HTTPOptions) {
		o.client = client
	}
}

// WithTimeout sets the per-request timeout. This bounds how long a flush
// cycle, and therefore a graceful stop, can block on the network.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(o *HTTPOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithMaxPayloadSize sets the encoded payload size above which a batch is
// split across multiple requests.
func WithMaxPayloadSize(n int) HTTPOption {
	return func(o *HTTPOptions) {
		if n > 0 {
			o.maxPayloadSize = n
		}
	}
}

// WithHeaders sets additional request headers, e.g. a container ID.
func WithHeaders(headers map[string]string) HTTPOption {
	return func(o *HTTPOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			o.headers[k] = v
		}
	}
}
