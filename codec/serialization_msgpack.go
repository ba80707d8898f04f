// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

package codec

import (
	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackSerialization provides msgpack serialization mode, honoring the
// msgpack struct tags on the span type.
type MsgpackSerialization struct{}

// Unmarshal deserializes the in bytes into body.
func (*MsgpackSerialization) Unmarshal(in []byte, body interface{}) error {
	return msgpack.Unmarshal(in, body)
}

// Marshal returns the serialized bytes in msgpack protocol.
func (*MsgpackSerialization) Marshal(body interface{}) ([]byte, error) {
	return msgpack.Marshal(body)
}
