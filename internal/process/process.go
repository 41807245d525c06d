// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package process starts helper child processes and exposes their stderr
// stream and exit status. The Executor interface lets drivers be tested
// without spawning anything.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Executor locates and starts helper binaries.
type Executor interface {
	// LookPath resolves a binary name the way the shell would.
	LookPath(file string) (string, error)

	// Start launches name with args. The child's stdout is discarded
	// and its stderr is available through Process.Stderr.
	Start(ctx context.Context, name string, args ...string) (Process, error)
}

// Process is a started child.
type Process interface {
	// Stderr streams the child's standard error until it exits.
	Stderr() io.Reader

	// Wait blocks until the child exits and returns its exit code. A
	// non-nil error means the exit status could not be obtained at all.
	Wait() (int, error)

	// Kill terminates the child immediately.
	Kill() error
}

// OS is the production executor backed by os/exec.
type OS struct{}

func (OS) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (OS) Start(ctx context.Context, name string, args ...string) (Process, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = io.Discard
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("opening stderr of %s: %w", name, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", name, err)
	}
	return &osProcess{cmd: cmd, stderr: stderr}, nil
}

type osProcess struct {
	cmd    *exec.Cmd
	stderr io.Reader
}

func (p *osProcess) Stderr() io.Reader { return p.stderr }

func (p *osProcess) Wait() (int, error) {
	err := p.cmd.Wait()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

func (p *osProcess) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
