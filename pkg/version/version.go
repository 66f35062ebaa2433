// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package version maintains the build metadata injected at link time.
package version

import "fmt"

var (
	// PackageVersion gets version of code from git tag
	PackageVersion = "NoBuildInfo"
	// PackageCommitID gets latest commit id of code from git
	PackageCommitID = "NoBuildInfo"
	// GitStatus gets git tree status from git
	GitStatus = "NoBuildInfo"
	// GoVersion gets go version of build environment
	GoVersion = "NoBuildInfo"
	// BuildTime gets building time
	BuildTime = "NoBuildInfo"
)

// String returns a multi-line description of the build.
func String() string {
	return fmt.Sprintf(
		"Version: %s\nGit commit: %s\nGit status: %s\nGo version: %s\nBuild time: %s",
		PackageVersion, PackageCommitID, GitStatus, GoVersion, BuildTime,
	)
}
