// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package progress aggregates per-document completion signals from the
// platform drivers into a single progress stream.
package progress

import (
	"fmt"
	"io"
	"path/filepath"

	bubbleprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/mattn/go-isatty"

	"github.com/pdiddy/docx2pdf/internal/logger"
	"github.com/pdiddy/docx2pdf/pkg/types"
)

// Reporter receives progress for one conversion call. Start is called once
// with the expected total, Advance once per converted document with its
// output path (empty when the driver does not know it), Finish once at the
// end whether or not the call failed.
type Reporter interface {
	Start(total int)
	Advance(item string)
	Finish()
}

// Tracker counts ticks and forwards them to a rendering Reporter. It only
// observes; it never changes control flow.
type Tracker struct {
	sink    Reporter
	total   int
	count   int
	outputs []string
}

// NewTracker wraps sink, which may be nil.
func NewTracker(sink Reporter) *Tracker {
	if sink == nil {
		sink = Discard{}
	}
	return &Tracker{sink: sink}
}

func (t *Tracker) Start(total int) {
	t.total = total
	t.sink.Start(total)
}

func (t *Tracker) Advance(item string) {
	t.count++
	if item != "" {
		t.outputs = append(t.outputs, item)
	}
	t.sink.Advance(item)
}

func (t *Tracker) Finish() { t.sink.Finish() }

// Total returns the total passed to Start.
func (t *Tracker) Total() int { return t.total }

// Count returns the number of Advance calls so far.
func (t *Tracker) Count() int { return t.count }

// Outputs returns the non-empty items passed to Advance, in order.
func (t *Tracker) Outputs() []string { return t.outputs }

// Discard ignores all progress.
type Discard struct{}

func (Discard) Start(int)      {}
func (Discard) Advance(string) {}
func (Discard) Finish()        {}

// Log writes one log line per converted document.
type Log struct {
	log logger.Logger
}

func NewLog(l logger.Logger) *Log { return &Log{log: l} }

func (r *Log) Start(total int) { r.log.Info("converting", "documents", total) }

func (r *Log) Advance(item string) {
	if item == "" {
		r.log.Info("converted")
		return
	}
	r.log.Info("converted", "output", item)
}

func (r *Log) Finish() {}

const barWidth = 40

// Bar redraws a single-line progress bar on a terminal.
type Bar struct {
	w     io.Writer
	model bubbleprogress.Model
	total int
	done  int
}

func NewBar(w io.Writer) *Bar {
	return &Bar{
		w:     w,
		model: bubbleprogress.New(bubbleprogress.WithDefaultGradient(), bubbleprogress.WithWidth(barWidth)),
	}
}

func (b *Bar) Start(total int) {
	b.total = total
	b.render("")
}

func (b *Bar) Advance(item string) {
	b.done++
	if item != "" {
		item = filepath.Base(item)
	}
	b.render(item)
}

func (b *Bar) Finish() { fmt.Fprintln(b.w) }

func (b *Bar) render(item string) {
	fmt.Fprintf(b.w, "\r\x1b[K%s %d/%d %s", b.model.ViewAs(b.fraction()), b.done, b.total, item)
}

func (b *Bar) fraction() float64 {
	if b.total <= 0 {
		return 0
	}
	f := float64(b.done) / float64(b.total)
	if f > 1 {
		return 1
	}
	return f
}

// fdWriter is satisfied by *os.File.
type fdWriter interface {
	io.Writer
	Fd() uintptr
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Select returns the renderer for mode. Auto picks a Bar when w is a
// terminal and a Log otherwise.
func Select(mode types.ProgressMode, w io.Writer, l logger.Logger) (Reporter, error) {
	switch mode {
	case types.ProgressAuto, "":
		if IsTerminal(w) {
			return NewBar(w), nil
		}
		return NewLog(l), nil
	case types.ProgressBar:
		return NewBar(w), nil
	case types.ProgressLog:
		return NewLog(l), nil
	case types.ProgressNone:
		return Discard{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown progress mode %q (want auto, bar, log or none)", types.ErrInvalidArgument, mode)
	}
}
