// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"go.uber.org/atomic"

	"github.com/opendoor-labs/apmtrace/codec"
	"github.com/opendoor-labs/apmtrace/internal/env"
	"github.com/opendoor-labs/apmtrace/internal/report"
	"github.com/opendoor-labs/apmtrace/internal/version"
	"github.com/opendoor-labs/apmtrace/log"
	"github.com/opendoor-labs/apmtrace/trace"
)

const (
	defaultHTTPTimeout    = 10 * time.Second
	defaultMaxPayloadSize = 10 << 20 // 10 MiB, the agent's request body cap

	traceCountHeader = "X-Apm-Trace-Count"
)

// httpTransport sends trace payloads to the agent over HTTP. Stateless per
// call except for the transfer counters.
type httpTransport struct {
	client  *http.Client
	url     string
	wire    Version
	headers map[string]string
	maxSize int

	requests     atomic.Int64
	accepted     atomic.Int64
	clientErrors atomic.Int64
	serverErrors atomic.Int64
	bytesSent    atomic.Int64
}

// NewHTTPTransport creates a transport speaking the named wire version to the
// agent. The agent address defaults to APM_AGENT_HOST:APM_AGENT_PORT
// (localhost:8126); an address of the form "unix:///path" dials a Unix domain
// socket instead of TCP.
func NewHTTPTransport(wireVersion string, opts ...HTTPOption) (Transport, error) {
	wire, ok := GetVersion(wireVersion)
	if !ok {
		return nil, fmt.Errorf("transport: unknown wire version %q", wireVersion)
	}

	o := defaultHTTPOptions()
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	baseURL := "http://" + o.agentAddr
	if path, ok := udsPath(o.agentAddr); ok {
		// The URL host is a placeholder; every connection goes to the socket.
		baseURL = "http://apmtrace-agent"
		if client == nil {
			client = udsClient(path, o.timeout)
		}
	}
	if client == nil {
		client = &http.Client{Timeout: o.timeout}
	}

	headers := map[string]string{
		"Apm-Meta-Lang":           "go",
		"Apm-Meta-Lang-Version":   strings.TrimPrefix(runtime.Version(), "go"),
		"Apm-Meta-Client-Version": version.Version(),
		"Content-Type":            wire.ContentType,
	}
	for k, v := range o.headers {
		headers[k] = v
	}

	return &httpTransport{
		client:  client,
		url:     baseURL + wire.TracesPath,
		wire:    wire,
		headers: headers,
		maxSize: o.maxPayloadSize,
	}, nil
}

// SendTraces encodes batch and posts it to the agent, splitting oversized
// payloads across several requests.
func (t *httpTransport) SendTraces(ctx context.Context, batch trace.Batch) []*Response {
	if len(batch) == 0 {
		return nil
	}
	chunks, errRsp := t.encode(batch)
	if errRsp != nil {
		return []*Response{errRsp}
	}
	responses := make([]*Response, 0, len(chunks))
	for _, c := range chunks {
		responses = append(responses, t.post(ctx, c))
	}
	return responses
}

// CarriesSamplingRates reports whether the wire version feeds rates back.
func (t *httpTransport) CarriesSamplingRates() bool {
	return t.wire.CarriesRates
}

// Stats returns a snapshot of transfer counters.
func (t *httpTransport) Stats() Stats {
	return Stats{
		Requests:       t.requests.Load(),
		AcceptedTraces: t.accepted.Load(),
		ClientErrors:   t.clientErrors.Load(),
		ServerErrors:   t.serverErrors.Load(),
		BytesSent:      t.bytesSent.Load(),
	}
}

type payloadChunk struct {
	data   []byte
	traces int
}

// encode serializes batch, bisecting it until every chunk fits the payload
// cap. A chunk holding a single trace is sent regardless of size; the agent
// is the final arbiter of too-large payloads.
func (t *httpTransport) encode(batch trace.Batch) ([]payloadChunk, *Response) {
	data, err := codec.Marshal(t.wire.SerializationType, batch)
	if err != nil {
		t.clientErrors.Inc()
		return nil, &Response{
			Kind:       OutcomeInternalError,
			TraceCount: len(batch),
			Err:        fmt.Errorf("transport: encode %d traces: %w", len(batch), err),
		}
	}
	if len(data) <= t.maxSize || len(batch) == 1 {
		return []payloadChunk{{data: data, traces: len(batch)}}, nil
	}
	half := len(batch) / 2
	left, errRsp := t.encode(batch[:half])
	if errRsp != nil {
		return nil, errRsp
	}
	right, errRsp := t.encode(batch[half:])
	if errRsp != nil {
		return nil, errRsp
	}
	return append(left, right...), nil
}

// post performs one request and classifies the outcome.
func (t *httpTransport) post(ctx context.Context, c payloadChunk) *Response {
	t.requests.Inc()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(c.data))
	if err != nil {
		t.clientErrors.Inc()
		report.TransportInternalError.Incr()
		return &Response{Kind: OutcomeInternalError, TraceCount: c.traces, Err: err}
	}
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set(traceCountHeader, strconv.Itoa(c.traces))

	rsp, err := t.client.Do(req)
	if err != nil {
		// The exchange never completed; this is not a delivery attempt the
		// agent saw, so it classifies client-side.
		t.clientErrors.Inc()
		report.TransportInternalError.Incr()
		return &Response{Kind: OutcomeInternalError, TraceCount: c.traces, Err: err}
	}
	defer rsp.Body.Close()

	if rsp.StatusCode >= http.StatusBadRequest {
		t.serverErrors.Inc()
		report.TransportServerError.Incr()
		snippet, _ := io.ReadAll(io.LimitReader(rsp.Body, 256))
		return &Response{
			Kind:       OutcomeServerError,
			TraceCount: c.traces,
			Err:        fmt.Errorf("transport: agent responded %s: %s", rsp.Status, bytes.TrimSpace(snippet)),
		}
	}

	t.accepted.Add(int64(c.traces))
	t.bytesSent.Add(int64(len(c.data)))
	report.TransportPayloadBytes.IncrBy(float64(len(c.data)))

	out := &Response{Kind: OutcomeSuccess, TraceCount: c.traces}
	if t.wire.CarriesRates {
		out.Rates = decodeRates(rsp.Body)
	}
	return out
}

// decodeRates extracts rate_by_service from a successful response body. A
// body that does not parse is not an error: older agents answer plain "OK".
func decodeRates(body io.Reader) map[string]float64 {
	raw, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err != nil || len(raw) == 0 {
		return nil
	}
	var decoded struct {
		RateByService map[string]float64 `json:"rate_by_service"`
	}
	if err := codec.Unmarshal(codec.SerializationTypeJSON, raw, &decoded); err != nil {
		log.Debugf("transport: agent response carried no parsable rates: %v", err)
		return nil
	}
	if len(decoded.RateByService) == 0 {
		return nil
	}
	return decoded.RateByService
}

// udsPath extracts the socket path from a "unix://" agent address.
func udsPath(addr string) (string, bool) {
	if strings.HasPrefix(addr, "unix://") {
		return strings.TrimPrefix(addr, "unix://"), true
	}
	return "", false
}

// udsClient builds an HTTP client whose every connection dials the socket.
func udsClient(path string, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "unix", path)
			},
		},
	}
}

func defaultAgentAddr() string {
	host := env.String(env.AgentHost, "localhost")
	if path, ok := udsPath(host); ok {
		return "unix://" + path
	}
	return net.JoinHostPort(host, strconv.Itoa(env.Int(env.AgentPort, 8126)))
}
