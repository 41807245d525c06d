// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/docx2pdf/internal/logger"
	"github.com/pdiddy/docx2pdf/internal/progress"
	"github.com/pdiddy/docx2pdf/internal/resolve"
	"github.com/pdiddy/docx2pdf/internal/word"
	"github.com/pdiddy/docx2pdf/pkg/types"
)

// COM drives Word in-process through COM automation. One application
// handle is attached per call and passed to every per-document step.
type COM struct {
	attach word.AttachFunc
	progID string
	log    logger.Logger
}

// NewCOM creates a COM driver that obtains its Word handle from attach.
func NewCOM(cfg types.WordConfig, attach word.AttachFunc, l logger.Logger) *COM {
	progID := cfg.ProgID
	if progID == "" {
		progID = types.DefaultWordProgID
	}
	return &COM{attach: attach, progID: progID, log: l}
}

func (c *COM) Name() string { return "com" }

func (c *COM) ConvertSingle(ctx context.Context, d types.Descriptor, opts Options, rep progress.Reporter) error {
	return c.session(opts, func(app word.Application) error {
		return c.convertFile(app, d.Input, d.Output, rep)
	})
}

func (c *COM) ConvertBatch(ctx context.Context, d types.Descriptor, opts Options, rep progress.Reporter) error {
	docs, err := resolve.Documents(d.Input)
	if err != nil {
		return err
	}
	return c.session(opts, func(app word.Application) error {
		for _, doc := range docs {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := c.convertFile(app, doc, resolve.PDFPath(d.Output, doc), rep); err != nil {
				return err
			}
		}
		return nil
	})
}

// session attaches Word, runs fn with the handle and, unless KeepActive,
// quits Word afterwards even when fn failed.
func (c *COM) session(opts Options, fn func(word.Application) error) (err error) {
	app, err := c.attach(c.progID)
	if err != nil {
		return classifyAttach(c.progID, err)
	}
	defer app.Release()
	c.log.Debug("attached to Word", "prog_id", c.progID)

	err = fn(app)

	if opts.KeepActive {
		c.log.Debug("leaving Word running")
		return err
	}
	if qerr := app.Quit(); qerr != nil {
		if err == nil {
			return asApplicationFailure(qerr)
		}
		c.log.Warn("quitting Word after failure", "err", qerr)
	}
	return err
}

func (c *COM) convertFile(app word.Application, in, out string, rep progress.Reporter) error {
	c.log.Debug("converting", "input", in, "output", out)
	doc, err := app.Open(in)
	if err != nil {
		return asApplicationFailure(err)
	}
	if err := doc.SaveAsPDF(out); err != nil {
		if cerr := doc.Close(); cerr != nil {
			c.log.Warn("closing document after failed save", "input", in, "err", cerr)
		}
		return asApplicationFailure(err)
	}
	if err := doc.Close(); err != nil {
		return asApplicationFailure(err)
	}
	rep.Advance(out)
	return nil
}

// classifyAttach keeps errors already carrying a taxonomy kind and treats
// anything else as Word being unavailable.
func classifyAttach(progID string, err error) error {
	if hasKind(err) {
		return err
	}
	return fmt.Errorf("%w: attaching to %s: %v", types.ErrApplicationUnavailable, progID, err)
}

func asApplicationFailure(err error) error {
	if hasKind(err) {
		return err
	}
	return fmt.Errorf("%w: %v", types.ErrApplicationFailure, err)
}

func hasKind(err error) bool {
	for _, kind := range []error{
		types.ErrApplicationFailure,
		types.ErrApplicationUnavailable,
		types.ErrUnsupportedPlatform,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
