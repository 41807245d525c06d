// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package driver

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/pdiddy/docx2pdf/internal/logger"
	"github.com/pdiddy/docx2pdf/internal/process"
	"github.com/pdiddy/docx2pdf/internal/progress"
	"github.com/pdiddy/docx2pdf/internal/status"
	"github.com/pdiddy/docx2pdf/pkg/types"
)

//go:embed scripts/convert.jxa
var convertJXA []byte

// unavailableMarkers are osascript diagnostics meaning Word is not installed.
var unavailableMarkers = []string{
	"Application can't be found",
	"Application can’t be found",
}

// Script delegates iteration and conversion to a helper script run as a
// child process. The helper reports one status line per document on stderr.
type Script struct {
	exec    process.Executor
	command []string
	script  string
	log     logger.Logger
}

// NewScript creates a script driver. cfg.Command is split like a shell
// command line; an empty command means osascript in JavaScript mode.
func NewScript(cfg types.HelperConfig, exec process.Executor, l logger.Logger) (*Script, error) {
	cmdline := cfg.Command
	if strings.TrimSpace(cmdline) == "" {
		cmdline = types.DefaultHelperCommand
	}
	argv, err := shlex.Split(cmdline)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing helper command %q: %v", types.ErrInvalidArgument, cmdline, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("%w: helper command is empty", types.ErrInvalidArgument)
	}
	return &Script{exec: exec, command: argv, script: cfg.Script, log: l}, nil
}

func (s *Script) Name() string { return "script" }

// ConvertSingle and ConvertBatch are the same call: the helper decides
// between single and batch mode from the input path.
func (s *Script) ConvertSingle(ctx context.Context, d types.Descriptor, opts Options, rep progress.Reporter) error {
	return s.run(ctx, d, opts, rep)
}

func (s *Script) ConvertBatch(ctx context.Context, d types.Descriptor, opts Options, rep progress.Reporter) error {
	return s.run(ctx, d, opts, rep)
}

func (s *Script) run(ctx context.Context, d types.Descriptor, opts Options, rep progress.Reporter) error {
	bin, err := s.exec.LookPath(s.command[0])
	if err != nil {
		return fmt.Errorf("%w: helper interpreter %s not found: %v", types.ErrExternalProcess, s.command[0], err)
	}

	script, cleanup, err := s.scriptPath()
	if err != nil {
		return err
	}
	defer cleanup()

	args := make([]string, 0, len(s.command)+3)
	args = append(args, s.command[1:]...)
	args = append(args, script, d.Input, d.Output, strconv.FormatBool(opts.KeepActive))

	s.log.Debug("starting helper", "bin", bin, "args", args)
	p, err := s.exec.Start(ctx, bin, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrExternalProcess, err)
	}

	stream := status.NewStream(p.Stderr())
	for ev := range stream.Events() {
		if ev.Success() {
			rep.Advance(detail(ev, "output"))
			continue
		}
		return s.finish(ctx, p, stream, &types.FileError{Details: ev.Details})
	}
	if err := stream.Err(); err != nil {
		_, _ = io.Copy(io.Discard, p.Stderr())
		if _, werr := p.Wait(); werr != nil {
			s.log.Warn("reaping helper", "err", werr)
		}
		return fmt.Errorf("%w: reading %s status: %v", types.ErrExternalProcess, filepath.Base(bin), err)
	}

	code, err := p.Wait()
	if err != nil {
		return fmt.Errorf("%w: waiting for %s: %v", types.ErrExternalProcess, bin, err)
	}
	if code != 0 {
		diag := stream.Diagnostics()
		if wordUnavailable(diag) {
			return fmt.Errorf("%w: %s", types.ErrApplicationUnavailable, diag)
		}
		return &types.ProcessError{Name: filepath.Base(bin), ExitCode: code, Stderr: diag}
	}
	return nil
}

// finish is called after an error status line. No further progress is
// counted, but the helper runs to its exit so it still quits Word when
// keep-active is off. It is killed only once ctx is done.
func (s *Script) finish(ctx context.Context, p process.Process, stream *status.Stream, fileErr *types.FileError) error {
	if ctx.Err() != nil {
		if err := p.Kill(); err != nil {
			s.log.Warn("stopping helper", "err", err)
		}
	}
	stream.Drain()
	if stream.Err() != nil {
		_, _ = io.Copy(io.Discard, p.Stderr())
	}
	if _, err := p.Wait(); err != nil {
		s.log.Warn("reaping helper", "err", err)
	}
	if diag := stream.Diagnostics(); diag != "" {
		s.log.Debug("helper diagnostics", "stderr", diag)
	}
	return fileErr
}

// scriptPath returns the helper script to run. The built-in script is
// written to a temporary file that cleanup removes.
func (s *Script) scriptPath() (path string, cleanup func(), err error) {
	if s.script != "" {
		return s.script, func() {}, nil
	}
	f, err := os.CreateTemp("", "docx2pdf-*.jxa")
	if err != nil {
		return "", nil, fmt.Errorf("creating helper script: %w", err)
	}
	cleanup = func() { os.Remove(f.Name()) }
	if _, err := f.Write(convertJXA); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing helper script: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing helper script: %w", err)
	}
	return f.Name(), cleanup, nil
}

func wordUnavailable(diag string) bool {
	for _, m := range unavailableMarkers {
		if strings.Contains(diag, m) {
			return true
		}
	}
	return false
}

func detail(ev status.Event, key string) string {
	v, _ := ev.Details[key].(string)
	return v
}
