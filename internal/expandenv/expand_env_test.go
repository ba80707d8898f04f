// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

package expandenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	t.Setenv("APMTEST_HOST", "agent.internal")
	t.Setenv("APMTEST_PORT", "9126")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no-reference", "host: localhost", "host: localhost"},
		{"single", "host: ${APMTEST_HOST}", "host: agent.internal"},
		{"multiple", "${APMTEST_HOST}:${APMTEST_PORT}", "agent.internal:9126"},
		{"unset-is-empty", "host: ${APMTEST_MISSING}", "host: "},
		{"text-after-reference", "addr: ${APMTEST_HOST}:8126/v0.4", "addr: agent.internal:8126/v0.4"},
		{"empty-braces-kept", "v: ${}", "v: ${}"},
		{"bare-dollar-kept", "cost: $100", "cost: $100"},
		{"dollar-no-brace", "a $HOME b", "a $HOME b"},
		{"unterminated", "host: ${APMTEST_HOST", "host: ${APMTEST_HOST"},
		{"space-inside", "v: ${NOT A REF}", "v: ${NOT A REF}"},
		{"quote-inside", `v: ${"x"}`, `v: ${"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Expand([]byte(tt.in))))
		})
	}
}
