// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

package codec

import (
	jsoniter "github.com/json-iterator/go"
)

// JSONAPI is the jsoniter config used for all JSON serialization. The
// official encoding/json is reflection-based and measurably slower on the
// span shapes we encode, so json-iterator is used instead.
var JSONAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONSerialization provides json serialization mode.
type JSONSerialization struct{}

// Unmarshal deserializes the in bytes into body.
func (*JSONSerialization) Unmarshal(in []byte, body interface{}) error {
	return JSONAPI.Unmarshal(in, body)
}

// Marshal returns the serialized bytes in json protocol.
func (*JSONSerialization) Marshal(body interface{}) ([]byte, error) {
	return JSONAPI.Marshal(body)
}
