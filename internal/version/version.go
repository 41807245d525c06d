// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package version reports the build version of docx2pdf.
package version

import "github.com/Masterminds/semver/v3"

// Version is set at build time via ldflags:
//
//	-X 'github.com/pdiddy/docx2pdf/internal/version.Version=v0.2.0'
var Version = "0.0.0-dev"

// String returns Version as a normalised semantic version without the
// leading "v". A value that does not parse is returned unchanged.
func String() string {
	return normalize(Version)
}

func normalize(raw string) string {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return raw
	}
	return v.String()
}
