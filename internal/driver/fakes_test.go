// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package driver

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/docx2pdf/internal/process"
	"github.com/pdiddy/docx2pdf/internal/word"
)

// fakeWord records automation calls. Files listed in failOpen or failSave
// make the matching call fail. Saving writes a small file so tests can
// check what landed on disk.
type fakeWord struct {
	calls    []string
	failOpen map[string]bool
	failSave map[string]bool
	failQuit bool
	released bool
	quit     bool
}

func (f *fakeWord) attach(progID string) (word.Application, error) {
	f.calls = append(f.calls, "attach "+progID)
	return f, nil
}

func (f *fakeWord) Open(path string) (word.Document, error) {
	f.calls = append(f.calls, "open "+path)
	if f.failOpen[path] {
		return nil, errors.New("document is corrupt")
	}
	return &fakeDoc{app: f, path: path}, nil
}

func (f *fakeWord) Quit() error {
	f.calls = append(f.calls, "quit")
	f.quit = true
	if f.failQuit {
		return errors.New("quit refused")
	}
	return nil
}

func (f *fakeWord) Release() { f.released = true }

type fakeDoc struct {
	app  *fakeWord
	path string
}

func (d *fakeDoc) SaveAsPDF(path string) error {
	d.app.calls = append(d.app.calls, "save "+path)
	if d.app.failSave[d.path] {
		return errors.New("disk full")
	}
	return os.WriteFile(path, []byte("%PDF from "+d.path), 0o644)
}

func (d *fakeDoc) Close() error {
	d.app.calls = append(d.app.calls, "close "+d.path)
	return nil
}

// fakeExecutor hands out a canned process and records the command line.
type fakeExecutor struct {
	missing bool
	proc    *fakeProcess
	startFn func(name string, args []string) (process.Process, error)
	name    string
	args    []string
}

func (e *fakeExecutor) LookPath(file string) (string, error) {
	if e.missing {
		return "", errors.New("not found: " + file)
	}
	return "/usr/bin/" + strings.TrimPrefix(file, "/usr/bin/"), nil
}

func (e *fakeExecutor) Start(_ context.Context, name string, args ...string) (process.Process, error) {
	e.name, e.args = name, args
	if e.startFn != nil {
		return e.startFn(name, args)
	}
	return e.proc, nil
}

type fakeProcess struct {
	stderr io.Reader
	code   int
	killed bool
	waited bool
}

func newFakeProcess(stderr string, code int) *fakeProcess {
	return &fakeProcess{stderr: strings.NewReader(stderr), code: code}
}

func (p *fakeProcess) Stderr() io.Reader { return p.stderr }

func (p *fakeProcess) Wait() (int, error) {
	p.waited = true
	if p.killed {
		return -1, nil
	}
	return p.code, nil
}

func (p *fakeProcess) Kill() error {
	p.killed = true
	return nil
}

// counter is a progress.Reporter that counts ticks.
type counter struct {
	total int
	items []string
}

func (c *counter) Start(total int)     { c.total = total }
func (c *counter) Advance(item string) { c.items = append(c.items, item) }
func (c *counter) Finish()             {}
