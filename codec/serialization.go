// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

// Package codec provides body serialization for the agent wire formats.
// Serializers are registered by type code so a transport version can pick its
// wire encoding at construction time.
package codec

import "errors"

// Serializer defines the body serialization interface.
type Serializer interface {
	// Unmarshal deserializes the in bytes into body.
	Unmarshal(in []byte, body interface{}) error

	// Marshal returns the bytes serialized from body.
	Marshal(body interface{}) (out []byte, err error)
}

// SerializationType is the code of a registered serializer.
const (
	// SerializationTypeMsgpack is the msgpack serialization code, used by the
	// v0.4 trace endpoint.
	SerializationTypeMsgpack = 0
	// SerializationTypeJSON is the json serialization code, used by the v0.3
	// trace endpoint and for decoding agent responses.
	SerializationTypeJSON = 1
	// SerializationTypeNoop is the bytes passthrough serialization code.
	SerializationTypeNoop = 2
)

var serializers = make(map[int]Serializer)

// RegisterSerializer registers a serializer by type code. Not thread-safe;
// call during initialization only.
func RegisterSerializer(serializationType int, s Serializer) {
	serializers[serializationType] = s
}

// GetSerializer returns the serializer registered for the type code.
func GetSerializer(serializationType int) Serializer {
	return serializers[serializationType]
}

// Marshal serializes body with the serializer registered for the type code.
func Marshal(serializationType int, body interface{}) ([]byte, error) {
	s := GetSerializer(serializationType)
	if s == nil {
		return nil, errors.New("codec: serializer not registered")
	}
	return s.Marshal(body)
}

// Unmarshal deserializes in into body with the serializer registered for the
// type code.
func Unmarshal(serializationType int, in []byte, body interface{}) error {
	s := GetSerializer(serializationType)
	if s == nil {
		return errors.New("codec: serializer not registered")
	}
	return s.Unmarshal(in, body)
}

func init() {
	RegisterSerializer(SerializationTypeMsgpack, &MsgpackSerialization{})
	RegisterSerializer(SerializationTypeJSON, &JSONSerialization{})
	RegisterSerializer(SerializationTypeNoop, &NoopSerialization{})
}
