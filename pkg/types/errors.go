// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidArgument marks a malformed input/output path combination.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedPlatform marks a host OS without a driver.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrApplicationUnavailable marks a word processor that cannot be located
	// or launched.
	ErrApplicationUnavailable = errors.New("word processing application unavailable")

	// ErrExternalProcess marks a helper process that failed to start or exited
	// non-zero.
	ErrExternalProcess = errors.New("external process failed")

	// ErrApplicationFailure marks an automation call on a running application
	// that returned an error.
	ErrApplicationFailure = errors.New("application automation failed")

	// ErrFileConversion marks a per-document error reported mid-run.
	ErrFileConversion = errors.New("document conversion failed")
)

// ProcessError describes a helper process that exited non-zero.
type ProcessError struct {
	Name     string
	ExitCode int
	Stderr   string
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Name, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ProcessError) Unwrap() error { return ErrExternalProcess }

// FileError carries the details of an error status reported for a single
// document.
type FileError struct {
	Details map[string]any
}

func (e *FileError) Error() string {
	if len(e.Details) == 0 {
		return ErrFileConversion.Error()
	}
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Details[k]))
	}
	return ErrFileConversion.Error() + ": " + strings.Join(parts, " ")
}

func (e *FileError) Unwrap() error { return ErrFileConversion }
