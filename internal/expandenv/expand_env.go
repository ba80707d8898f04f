// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

// Package expandenv expands ${var} references inside configuration bytes.
// Only the ${var} form is recognized; a bare $var is left untouched so that
// shell-looking values inside the config survive verbatim.
package expandenv

import "os"

// Expand replaces every ${var} in s with the value of the environment
// variable var. An unset variable expands to the empty string. References
// containing whitespace or quotes are not treated as references.
func Expand(s []byte) []byte {
	var out []byte
	last := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '$' || i+1 >= len(s) || s[i+1] != '{' {
			continue
		}
		name, width := refAt(s[i+1:])
		if name == nil {
			i += width
			continue
		}
		if out == nil {
			out = make([]byte, 0, 2*len(s))
		}
		out = append(out, s[last:i]...)
		out = append(out, os.Getenv(string(name))...)
		i += width
		last = i + 1
	}
	if out == nil {
		return s
	}
	return append(out, s[last:]...)
}

// refAt parses a ${var} reference at the start of s (s[0] is '{'). It returns
// the variable name and the number of bytes consumed past the '$'. A nil name
// means no valid reference starts here.
func refAt(s []byte) ([]byte, int) {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '}':
			if i == 1 { // ${} is not a reference, keep it verbatim
				return nil, i
			}
			return s[1:i], i + 1
		case ' ', '\t', '\n', '"', '\'':
			return nil, 0
		}
	}
	return nil, 0
}
