// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package status decodes the line-delimited JSON status protocol spoken by
// the conversion helper script on its stderr.
//
// Each converted document produces one line, {"result":"success",...} or
// {"result":"error",...}. Lines that are not status objects are kept as
// diagnostics and otherwise ignored.
package status

import (
	"bufio"
	"encoding/json"
	"io"
	"iter"
	"strings"
)

// Result is the value of the "result" field of a status line.
type Result string

const (
	ResultSuccess Result = "success"
	ResultError   Result = "error"
)

// maxLineSize bounds a single status or diagnostic line.
const maxLineSize = 1 << 20

// Event is one decoded status line.
type Event struct {
	Result Result
	// Details holds every field of the line except "result".
	Details map[string]any
}

// Success reports whether the event marks a converted document.
func (e Event) Success() bool { return e.Result == ResultSuccess }

// Stream reads status events from r as they arrive. A Stream is single-use:
// Events may be ranged over once.
type Stream struct {
	sc    *bufio.Scanner
	diag  []string
	err   error
	taken bool
}

// NewStream wraps r, typically a child process's stderr pipe.
func NewStream(r io.Reader) *Stream {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Stream{sc: sc}
}

// Events yields status events lazily, one per status line read. Breaking
// out of the loop stops reading. A second call yields nothing.
func (s *Stream) Events() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		if s.taken {
			return
		}
		s.taken = true
		for s.sc.Scan() {
			line := strings.TrimSpace(s.sc.Text())
			if line == "" {
				continue
			}
			ev, ok := Parse(line)
			if !ok {
				s.diag = append(s.diag, line)
				continue
			}
			if !yield(ev) {
				return
			}
		}
		s.err = s.sc.Err()
	}
}

// Drain reads and records the rest of the stream as diagnostics.
func (s *Stream) Drain() {
	for range s.Events() {
	}
	for s.sc.Scan() {
		if line := strings.TrimSpace(s.sc.Text()); line != "" {
			s.diag = append(s.diag, line)
		}
	}
	if s.err == nil {
		s.err = s.sc.Err()
	}
}

// Diagnostics returns the non-status lines seen so far, newline-joined.
func (s *Stream) Diagnostics() string {
	return strings.Join(s.diag, "\n")
}

// Err returns the read error that ended the stream, if any.
func (s *Stream) Err() error { return s.err }

// Parse decodes one status line. It reports false for anything that is not
// a JSON object with a known "result" value.
func Parse(line string) (Event, bool) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		return Event{}, false
	}
	raw, ok := fields["result"].(string)
	if !ok {
		return Event{}, false
	}
	result := Result(raw)
	if result != ResultSuccess && result != ResultError {
		return Event{}, false
	}
	delete(fields, "result")
	return Event{Result: result, Details: fields}, true
}
