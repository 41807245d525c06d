// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the docx2pdf conversion operation: resolve
// the paths, pick the platform driver, run it and report progress.
package convert

import (
	"context"
	"runtime"

	"github.com/pdiddy/docx2pdf/internal/driver"
	"github.com/pdiddy/docx2pdf/internal/logger"
	"github.com/pdiddy/docx2pdf/internal/progress"
	"github.com/pdiddy/docx2pdf/internal/resolve"
	"github.com/pdiddy/docx2pdf/pkg/types"
)

// Options tune one Convert call.
type Options struct {
	// KeepActive leaves Word running after the call so repeated calls
	// reuse the same instance.
	KeepActive bool

	// Reporter receives progress. Nil discards it.
	Reporter progress.Reporter
}

// Converter runs conversions on the host platform.
type Converter struct {
	goos   string
	cfg    driver.Config
	driver driver.Driver
	log    logger.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithDriver bypasses platform detection and uses d for every call.
func WithDriver(d driver.Driver) Option {
	return func(c *Converter) { c.driver = d }
}

// WithPlatform overrides the detected GOOS.
func WithPlatform(goos string) Option {
	return func(c *Converter) { c.goos = goos }
}

// New creates a Converter whose drivers are built from cfg.
func New(cfg driver.Config, opts ...Option) *Converter {
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	c := &Converter{goos: runtime.GOOS, cfg: cfg, log: cfg.Logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert converts input (a .docx file or a directory of them) to PDF.
// An empty output derives the destination from input. The returned Result
// is filled in even when err is non-nil.
func (c *Converter) Convert(ctx context.Context, input, output string, opts Options) (types.Result, error) {
	d, err := resolve.Resolve(input, output)
	if err != nil {
		return types.Result{}, err
	}

	drv := c.driver
	if drv == nil {
		drv, err = driver.ForPlatform(c.goos, c.cfg)
		if err != nil {
			return types.Result{Batch: d.Batch}, err
		}
	}

	total, err := countDocuments(d)
	if err != nil {
		return types.Result{Driver: drv.Name(), Batch: d.Batch}, err
	}
	res := types.Result{Driver: drv.Name(), Batch: d.Batch, Total: total}
	c.log.Debug("resolved", "batch", d.Batch, "input", d.Input, "output", d.Output, "driver", drv.Name())

	if d.Batch && total == 0 {
		c.log.Warn("no documents to convert", "dir", d.Input)
		return res, nil
	}

	tracker := progress.NewTracker(opts.Reporter)
	tracker.Start(total)
	dopts := driver.Options{KeepActive: opts.KeepActive}
	if d.Batch {
		err = drv.ConvertBatch(ctx, d, dopts, tracker)
	} else {
		err = drv.ConvertSingle(ctx, d, dopts, tracker)
	}
	tracker.Finish()

	res.Converted = tracker.Count()
	res.Outputs = tracker.Outputs()
	if err != nil {
		return res, err
	}
	if !res.Complete() {
		c.log.Warn("fewer documents reported than expected", "converted", res.Converted, "total", res.Total)
	}
	return res, nil
}

// Convert runs a single conversion with the host platform's default driver.
func Convert(ctx context.Context, input, output string, keepActive bool) error {
	_, err := New(driver.Config{}).Convert(ctx, input, output, Options{KeepActive: keepActive})
	return err
}

func countDocuments(d types.Descriptor) (int, error) {
	if !d.Batch {
		return 1, nil
	}
	docs, err := resolve.Documents(d.Input)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}
