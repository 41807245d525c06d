// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docx2pdf/internal/logger"
	"github.com/pdiddy/docx2pdf/internal/process"
	"github.com/pdiddy/docx2pdf/pkg/types"
)

func newTestScript(t *testing.T, exec process.Executor, cfg types.HelperConfig) *Script {
	t.Helper()
	s, err := NewScript(cfg, exec, logger.Discard())
	require.NoError(t, err)
	return s
}

func lines(ls ...string) string { return strings.Join(ls, "\n") + "\n" }

func TestScriptPassesPositionalArguments(t *testing.T) {
	exec := &fakeExecutor{proc: newFakeProcess(lines(`{"result":"success","output":"/out/x.pdf"}`), 0)}
	s := newTestScript(t, exec, types.HelperConfig{Script: "/opt/convert.jxa"})
	rep := &counter{}

	d := types.Descriptor{Input: "/in/x.docx", Output: "/out/x.pdf"}
	require.NoError(t, s.ConvertSingle(context.Background(), d, Options{KeepActive: true}, rep))

	assert.Equal(t, "/usr/bin/osascript", exec.name)
	assert.Equal(t, []string{"-l", "JavaScript", "/opt/convert.jxa", "/in/x.docx", "/out/x.pdf", "true"}, exec.args)
	assert.Equal(t, []string{"/out/x.pdf"}, rep.items)
}

func TestScriptKeepActiveFalse(t *testing.T) {
	exec := &fakeExecutor{proc: newFakeProcess("", 0)}
	s := newTestScript(t, exec, types.HelperConfig{Script: "/opt/convert.jxa"})

	d := types.Descriptor{Batch: true, Input: "/in", Output: "/in"}
	require.NoError(t, s.ConvertBatch(context.Background(), d, Options{}, &counter{}))
	assert.Equal(t, "false", exec.args[len(exec.args)-1])
}

func TestScriptBatchCountsSuccessLines(t *testing.T) {
	stderr := lines(
		`{"result":"success","output":"/out/a.pdf"}`,
		"2026-10-14 osascript[123] some incidental warning",
		`{"result":"success","output":"/out/b.pdf"}`,
	)
	exec := &fakeExecutor{proc: newFakeProcess(stderr, 0)}
	s := newTestScript(t, exec, types.HelperConfig{Script: "/opt/convert.jxa"})
	rep := &counter{}

	require.NoError(t, s.ConvertBatch(context.Background(), types.Descriptor{Batch: true, Input: "/in", Output: "/out"}, Options{}, rep))
	assert.Equal(t, []string{"/out/a.pdf", "/out/b.pdf"}, rep.items)
}

func TestScriptErrorLineStopsCountingAfterOneSuccess(t *testing.T) {
	stderr := lines(
		`{"result":"success","output":"/out/a.pdf"}`,
		`{"result":"error","input":"/in/b.docx","message":"file is locked"}`,
		`{"result":"success","output":"/out/c.pdf"}`,
	)
	proc := newFakeProcess(stderr, 0)
	exec := &fakeExecutor{proc: proc}
	s := newTestScript(t, exec, types.HelperConfig{Script: "/opt/convert.jxa"})
	rep := &counter{}

	err := s.ConvertBatch(context.Background(), types.Descriptor{Batch: true, Input: "/in", Output: "/out"}, Options{}, rep)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrFileConversion)

	var fileErr *types.FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, "file is locked", fileErr.Details["message"])
	assert.Equal(t, "/in/b.docx", fileErr.Details["input"])

	assert.Len(t, rep.items, 1, "lines after the error are not counted")
	assert.False(t, proc.killed, "the helper runs to its own exit")
	assert.True(t, proc.waited)
}

func TestScriptErrorLineKillsHelperWhenContextDone(t *testing.T) {
	proc := newFakeProcess(lines(`{"result":"error","input":"/in/x.docx","message":"file is locked"}`), 0)
	exec := &fakeExecutor{proc: proc}
	s := newTestScript(t, exec, types.HelperConfig{Script: "/opt/convert.jxa"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.ConvertSingle(ctx, types.Descriptor{Input: "/in/x.docx", Output: "/in/x.pdf"}, Options{}, &counter{})
	assert.ErrorIs(t, err, types.ErrFileConversion)
	assert.True(t, proc.killed)
	assert.True(t, proc.waited)
}

func TestScriptOversizedStatusLine(t *testing.T) {
	stderr := lines(
		`{"result":"success","output":"/out/a.pdf"}`,
		strings.Repeat("x", 2<<20),
		`{"result":"error","input":"/in/b.docx","message":"file is locked"}`,
	)
	proc := newFakeProcess(stderr, 0)
	exec := &fakeExecutor{proc: proc}
	s := newTestScript(t, exec, types.HelperConfig{Script: "/opt/convert.jxa"})
	rep := &counter{}

	err := s.ConvertBatch(context.Background(), types.Descriptor{Batch: true, Input: "/in", Output: "/out"}, Options{}, rep)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrExternalProcess)
	assert.Len(t, rep.items, 1)
	assert.True(t, proc.waited)
}

func TestScriptWordUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
	}{
		{name: "typographic apostrophe", stderr: "convert.jxa: execution error: Error: Error: Application can’t be found. (-2700)\n"},
		{name: "straight apostrophe", stderr: "execution error: Error: Application can't be found. (-2700)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{proc: newFakeProcess(tt.stderr, 1)}
			s := newTestScript(t, exec, types.HelperConfig{Script: "/opt/convert.jxa"})

			err := s.ConvertSingle(context.Background(), types.Descriptor{Input: "/in/x.docx", Output: "/in/x.pdf"}, Options{}, &counter{})
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrApplicationUnavailable)
			assert.NotErrorIs(t, err, types.ErrExternalProcess)
		})
	}
}

func TestScriptNonZeroExit(t *testing.T) {
	exec := &fakeExecutor{proc: newFakeProcess("execution error: Microsoft Word got an error: Parameter error. (-50)\n", 1)}
	s := newTestScript(t, exec, types.HelperConfig{Script: "/opt/convert.jxa"})

	err := s.ConvertSingle(context.Background(), types.Descriptor{Input: "/in/x.docx", Output: "/in/x.pdf"}, Options{}, &counter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrExternalProcess)

	var procErr *types.ProcessError
	require.True(t, errors.As(err, &procErr))
	assert.Equal(t, 1, procErr.ExitCode)
	assert.Equal(t, "osascript", procErr.Name)
	assert.Contains(t, procErr.Stderr, "Parameter error")
}

func TestScriptInterpreterMissing(t *testing.T) {
	exec := &fakeExecutor{missing: true}
	s := newTestScript(t, exec, types.HelperConfig{})

	err := s.ConvertSingle(context.Background(), types.Descriptor{Input: "/in/x.docx", Output: "/in/x.pdf"}, Options{}, &counter{})
	assert.ErrorIs(t, err, types.ErrExternalProcess)
}

func TestScriptStartFailure(t *testing.T) {
	exec := &fakeExecutor{startFn: func(string, []string) (process.Process, error) {
		return nil, errors.New("fork: resource temporarily unavailable")
	}}
	s := newTestScript(t, exec, types.HelperConfig{Script: "/opt/convert.jxa"})

	err := s.ConvertSingle(context.Background(), types.Descriptor{Input: "/in/x.docx", Output: "/in/x.pdf"}, Options{}, &counter{})
	assert.ErrorIs(t, err, types.ErrExternalProcess)
}

func TestScriptEmbeddedHelperIsMaterialised(t *testing.T) {
	var scriptPath string
	var content []byte
	exec := &fakeExecutor{startFn: func(_ string, args []string) (process.Process, error) {
		scriptPath = args[2]
		var err error
		content, err = os.ReadFile(scriptPath)
		if err != nil {
			return nil, err
		}
		return newFakeProcess("", 0), nil
	}}
	s := newTestScript(t, exec, types.HelperConfig{})

	require.NoError(t, s.ConvertSingle(context.Background(), types.Descriptor{Input: "/in/x.docx", Output: "/in/x.pdf"}, Options{}, &counter{}))
	assert.Equal(t, convertJXA, content)
	assert.Equal(t, ".jxa", filepath.Ext(scriptPath))
	assert.NoFileExists(t, scriptPath, "temporary helper is removed after the call")
}

func TestEmbeddedHelperSortsByCodePoint(t *testing.T) {
	script := string(convertJXA)
	assert.Contains(t, script, ".sort(byCodePoint)")
	assert.NotContains(t, script, ".sort()")
}

func TestNewScriptCommandParsing(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    []string
		wantErr bool
	}{
		{name: "default", command: "", want: []string{"/usr/bin/osascript", "-l", "JavaScript"}},
		{name: "quoted path", command: `"/Applications/My Tools/runner" --js`, want: []string{"/Applications/My Tools/runner", "--js"}},
		{name: "whitespace only", command: "   ", want: []string{"/usr/bin/osascript", "-l", "JavaScript"}},
		{name: "unterminated quote", command: `"/usr/bin/osascript`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScript(types.HelperConfig{Command: tt.command}, &fakeExecutor{}, logger.Discard())
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.command)
		})
	}
}

// TestScriptWithShellHelper runs a real child process standing in for the
// JXA helper.
func TestScriptWithShellHelper(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	if _, err := (process.OS{}).LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	helper := filepath.Join(dir, "helper.sh")
	body := `#!/bin/sh
# $1 input, $2 output, $3 keep_active
echo "starting $1" >&2
echo '{"result":"success","output":"'"$2"'"}' >&2
[ "$3" = "false" ] || exit 4
`
	require.NoError(t, os.WriteFile(helper, []byte(body), 0o755))

	s := newTestScript(t, process.OS{}, types.HelperConfig{Command: "sh", Script: helper})
	rep := &counter{}
	d := types.Descriptor{Input: filepath.Join(dir, "x.docx"), Output: filepath.Join(dir, "x.pdf")}

	require.NoError(t, s.ConvertSingle(context.Background(), d, Options{}, rep))
	assert.Equal(t, []string{d.Output}, rep.items)

	err := s.ConvertSingle(context.Background(), d, Options{KeepActive: true}, &counter{})
	var procErr *types.ProcessError
	require.True(t, errors.As(err, &procErr))
	assert.Equal(t, 4, procErr.ExitCode)
	assert.Contains(t, procErr.Stderr, "starting")
}

// TestScriptShellHelperQuitsAfterError checks that a helper reporting an
// error still gets to run its quit step before the call returns.
func TestScriptShellHelperQuitsAfterError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	if _, err := (process.OS{}).LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	quitMarker := filepath.Join(dir, "quit")
	helper := filepath.Join(dir, "helper.sh")
	body := `#!/bin/sh
echo '{"result":"error","input":"'"$1"'","message":"locked"}' >&2
sleep 0.2
[ "$3" = "false" ] && touch "` + quitMarker + `"
exit 0
`
	require.NoError(t, os.WriteFile(helper, []byte(body), 0o755))

	s := newTestScript(t, process.OS{}, types.HelperConfig{Command: "sh", Script: helper})
	d := types.Descriptor{Input: filepath.Join(dir, "x.docx"), Output: filepath.Join(dir, "x.pdf")}

	err := s.ConvertSingle(context.Background(), d, Options{}, &counter{})
	var fileErr *types.FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, "locked", fileErr.Details["message"])
	assert.FileExists(t, quitMarker)
}
