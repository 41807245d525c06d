// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package driver converts resolved descriptors by delegating to the
// installed Microsoft Word. Two interchangeable strategies exist: COM
// automation on windows and a JXA helper script on darwin.
package driver

import (
	"context"
	"fmt"

	"github.com/pdiddy/docx2pdf/internal/logger"
	"github.com/pdiddy/docx2pdf/internal/process"
	"github.com/pdiddy/docx2pdf/internal/progress"
	"github.com/pdiddy/docx2pdf/internal/word"
	"github.com/pdiddy/docx2pdf/pkg/types"
)

// Options tune a single driver call.
type Options struct {
	// KeepActive leaves Word running once the call completes.
	KeepActive bool
}

// Driver performs the conversions described by a descriptor. The first
// failure ends the call; documents converted before it stay on disk.
type Driver interface {
	// Name identifies the strategy ("com" or "script").
	Name() string

	// ConvertSingle converts d.Input to the PDF at d.Output.
	ConvertSingle(ctx context.Context, d types.Descriptor, opts Options, rep progress.Reporter) error

	// ConvertBatch converts every document in the d.Input directory into
	// the d.Output directory.
	ConvertBatch(ctx context.Context, d types.Descriptor, opts Options, rep progress.Reporter) error
}

// Config carries the settings and collaborators drivers are built from.
// Zero-valued collaborators are replaced with production defaults.
type Config struct {
	Word     types.WordConfig
	Helper   types.HelperConfig
	Logger   logger.Logger
	Executor process.Executor
	Attach   word.AttachFunc
}

// ForPlatform returns the driver for goos (a runtime.GOOS value).
func ForPlatform(goos string, cfg Config) (Driver, error) {
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	switch goos {
	case "windows":
		attach := cfg.Attach
		if attach == nil {
			attach = word.Attach
		}
		return NewCOM(cfg.Word, attach, cfg.Logger), nil
	case "darwin":
		exec := cfg.Executor
		if exec == nil {
			exec = process.OS{}
		}
		return NewScript(cfg.Helper, exec, cfg.Logger)
	default:
		return nil, fmt.Errorf("%w: docx2pdf is not implemented for %s as it requires Microsoft Word to be installed",
			types.ErrUnsupportedPlatform, goos)
	}
}
