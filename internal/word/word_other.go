// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !windows

package word

import (
	"fmt"
	"runtime"

	"github.com/pdiddy/docx2pdf/pkg/types"
)

// Attach fails on hosts without COM.
func Attach(progID string) (Application, error) {
	return nil, fmt.Errorf("%w: COM automation of %s requires windows, running on %s",
		types.ErrUnsupportedPlatform, progID, runtime.GOOS)
}
