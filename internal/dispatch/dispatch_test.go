package dispatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuralforge/neuralforge/internal/interpreter"
)

// writeTool drops an executable shell script into a temp dir and returns
// its path.
func writeTool(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script tools are not runnable on windows")
	}
	path := filepath.Join(t.TempDir(), "tool.sh")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755)
	require.NoError(t, err)
	return path
}

func organizeCommand() *interpreter.Command {
	params := interpreter.NewParams()
	params.Set("target", "~/Downloads")
	return &interpreter.Command{
		Action:     interpreter.ActionOrganizeFiles,
		Params:     params,
		Confidence: 0.9,
	}
}

func singleTool(path string) map[interpreter.Action]ToolDescriptor {
	return map[interpreter.Action]ToolDescriptor{
		interpreter.ActionOrganizeFiles: {Path: path},
	}
}

func TestDispatchSuccess(t *testing.T) {
	tool := writeTool(t, `echo "moved 3 files"`)
	d := New(singleTool(tool))

	ok, resp := d.Dispatch(context.Background(), organizeCommand())
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(resp, "✅ Organize Files completed successfully!"), "got %q", resp)
	assert.Contains(t, resp, "moved 3 files")
}

func TestDispatchPassesParamsAsFlags(t *testing.T) {
	tool := writeTool(t, `echo "$@"`)
	d := New(singleTool(tool))

	params := interpreter.NewParams()
	params.Set("time", "9")
	params.Set("task", "backup")
	cmd := &interpreter.Command{Action: interpreter.ActionOrganizeFiles, Params: params}

	ok, resp := d.Dispatch(context.Background(), cmd)
	require.True(t, ok)
	assert.Contains(t, resp, "--time 9 --task backup")
}

func TestDispatchFailureUsesStderr(t *testing.T) {
	tool := writeTool(t, `echo "disk full" >&2; exit 1`)
	d := New(singleTool(tool))

	ok, resp := d.Dispatch(context.Background(), organizeCommand())
	assert.False(t, ok)
	assert.True(t, strings.HasPrefix(resp, "❌ Organize Files failed:"), "got %q", resp)
	assert.Contains(t, resp, "disk full")
}

func TestDispatchFailureWithoutStderrUsesError(t *testing.T) {
	tool := writeTool(t, `exit 3`)
	d := New(singleTool(tool))

	ok, resp := d.Dispatch(context.Background(), organizeCommand())
	assert.False(t, ok)
	assert.Contains(t, resp, "exit status 3")
}

func TestDispatchTimeoutKillsProcess(t *testing.T) {
	tool := writeTool(t, `sleep 10`)
	d := New(singleTool(tool), WithTimeout(200*time.Millisecond))

	start := time.Now()
	ok, resp := d.Dispatch(context.Background(), organizeCommand())
	elapsed := time.Since(start)

	assert.False(t, ok)
	assert.Equal(t, "❌ Organize Files timed out", resp)
	assert.Less(t, elapsed, 2*time.Second, "process was not killed at the deadline")
}

func TestDispatchTimeoutKillsChildProcesses(t *testing.T) {
	// A tool that backgrounds a child holding the output pipes: the child
	// must die with the tool, and Dispatch must return at the deadline
	// instead of blocking until the pipes close.
	marker := filepath.Join(t.TempDir(), "marker")
	tool := writeTool(t, fmt.Sprintf("(sleep 2; touch %s) &\nwait", marker))
	d := New(singleTool(tool), WithTimeout(200*time.Millisecond))

	start := time.Now()
	ok, resp := d.Dispatch(context.Background(), organizeCommand())
	elapsed := time.Since(start)

	assert.False(t, ok)
	assert.Equal(t, "❌ Organize Files timed out", resp)
	assert.Less(t, elapsed, 2*time.Second, "Dispatch blocked past the deadline")

	// A surviving child would write the marker at the two second mark.
	time.Sleep(2500 * time.Millisecond)
	assert.NoFileExists(t, marker, "child of the tool outlived the timeout")
}

func TestDispatchMissingToolIsCaught(t *testing.T) {
	d := New(singleTool(filepath.Join(t.TempDir(), "does-not-exist")))

	ok, resp := d.Dispatch(context.Background(), organizeCommand())
	assert.False(t, ok)
	assert.True(t, strings.HasPrefix(resp, "❌ Organize Files failed:"), "got %q", resp)
}

func TestDispatchUnknownAction(t *testing.T) {
	d := New(map[interpreter.Action]ToolDescriptor{})

	cmd := &interpreter.Command{Action: interpreter.ActionAnalytics, Params: interpreter.NewParams()}
	ok, resp := d.Dispatch(context.Background(), cmd)
	assert.False(t, ok)
	assert.Equal(t, "❌ Unknown action: analytics", resp)
}

func TestDispatchHelpNeverSpawnsProcess(t *testing.T) {
	// An empty tool table would fail any subprocess attempt, so a help
	// response proves the short-circuit.
	d := New(map[interpreter.Action]ToolDescriptor{})

	cmd := &interpreter.Command{Action: interpreter.ActionHelp, Params: interpreter.NewParams()}
	ok, resp := d.Dispatch(context.Background(), cmd)
	assert.True(t, ok)
	assert.Equal(t, interpreter.HelpMessage(), resp)
}

func TestForgetoolDescriptors(t *testing.T) {
	tools := ForgetoolDescriptors("/usr/local/bin/forgetool")

	assert.NotContains(t, tools, interpreter.ActionHelp)
	desc, ok := tools[interpreter.ActionWebScraping]
	require.True(t, ok)
	assert.Equal(t, "/usr/local/bin/forgetool", desc.Path)
	assert.Equal(t, []string{"scrape"}, desc.Args)

	// Every non-help action is bound.
	assert.Len(t, tools, len(interpreter.Actions())-1)
}
