// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import "fmt"

// Injected via ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/hackthethrone/eventsite/internal/version.Version=v1.0.0"
var (
	Version   = "dev"     // Semantic version from git tags (e.g., "v1.2.3")
	GitCommit = "unknown" // Short git commit hash (e.g., "abc1234")
	BuildTime = "unknown" // Build timestamp in RFC3339 format
)

// Info contains build-time version information.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
}

// Get returns the build-time version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	}
}

// Short returns the bare version string.
func Short() string {
	return Version
}

// String returns a single-line human-readable version summary.
func (i Info) String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", i.Version, i.GitCommit, i.BuildTime)
}
