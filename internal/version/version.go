// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

// Package version holds the client release version reported to the agent.
package version

import "fmt"

// Versioning rules:
// 1. MAJOR version for incompatible API changes;
// 2. MINOR version for backwards-compatible functionality;
// 3. PATCH version for backwards-compatible bug fixes;
// 4. suffix for pre-release builds: -alpha, -beta, -rc.1, empty for releases.
const (
	MajorVersion  = 0
	MinorVersion  = 9
	PatchVersion  = 0
	VersionSuffix = ""
)

// Version returns the client version string, e.g. "v0.9.0".
func Version() string {
	return fmt.Sprintf("v%d.%d.%d%s", MajorVersion, MinorVersion, PatchVersion, VersionSuffix)
}
