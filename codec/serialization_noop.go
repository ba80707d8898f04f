// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

package codec

import "errors"

// NoopSerialization passes raw bytes through unchanged.
type NoopSerialization struct{}

// Unmarshal copies the in bytes into body, which must be *[]byte.
func (*NoopSerialization) Unmarshal(in []byte, body interface{}) error {
	p, ok := body.(*[]byte)
	if !ok {
		return errors.New("codec: noop unmarshal requires *[]byte body")
	}
	*p = in
	return nil
}

// Marshal returns body unchanged, which must be []byte.
func (*NoopSerialization) Marshal(body interface{}) ([]byte, error) {
	b, ok := body.([]byte)
	if !ok {
		return nil, errors.New("codec: noop marshal requires []byte body")
	}
	return b, nil
}
