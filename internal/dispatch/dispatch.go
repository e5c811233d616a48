// Package dispatch runs the external tool bound to a resolved command and
// normalizes every possible outcome into a user-facing response string.
package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"

	"github.com/neuralforge/neuralforge/internal/interpreter"
)

// DefaultTimeout bounds a single tool invocation. The subprocess is killed
// when it is exceeded.
const DefaultTimeout = 30 * time.Second

// ToolDescriptor names an external executable plus the fixed leading
// arguments emitted before the command's --key value flags.
type ToolDescriptor struct {
	Path string
	Args []string
}

// Dispatcher maps actions to tool descriptors and executes them as bounded
// subprocesses. The table is read-only after construction.
type Dispatcher struct {
	tools   map[interpreter.Action]ToolDescriptor
	timeout time.Duration
	logger  *log.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTimeout overrides the invocation timeout.
func WithTimeout(d time.Duration) Option {
	return func(dp *Dispatcher) { dp.timeout = d }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(dp *Dispatcher) { dp.logger = l }
}

// New creates a dispatcher over an action->descriptor table.
func New(tools map[interpreter.Action]ToolDescriptor, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		tools:   tools,
		timeout: DefaultTimeout,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ForgetoolDescriptors binds every action to a subcommand of the forgetool
// binary at the given path. An empty path resolves "forgetool" from PATH.
func ForgetoolDescriptors(path string) map[interpreter.Action]ToolDescriptor {
	if path == "" {
		path = "forgetool"
	}
	tools := make(map[interpreter.Action]ToolDescriptor)
	for action, sub := range interpreter.DefaultTools() {
		if action == interpreter.ActionHelp {
			continue // help never reaches a subprocess
		}
		tools[action] = ToolDescriptor{Path: path, Args: []string{sub}}
	}
	return tools
}

// Ensure Dispatcher implements the interpreter's dispatcher contract.
var _ interpreter.Dispatcher = (*Dispatcher)(nil)

// Dispatch executes the tool bound to cmd. The help action short-circuits to
// the static help text. Everything else becomes a subprocess invocation with
// captured stdout/stderr; the response is a success banner plus stdout, a
// failure banner plus stderr, or a dedicated timeout message. No error ever
// escapes as a raw fault.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd *interpreter.Command) (bool, string) {
	if cmd.Action == interpreter.ActionHelp {
		return true, interpreter.HelpMessage()
	}

	tool, ok := d.tools[cmd.Action]
	if !ok {
		return false, fmt.Sprintf("❌ Unknown action: %s", cmd.Action)
	}

	args := append([]string{}, tool.Args...)
	for _, key := range cmd.Params.Keys() {
		value, _ := cmd.Params.Get(key)
		args = append(args, "--"+key, value)
	}

	runCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	path, err := LookPath(tool.Path)
	if err != nil {
		d.logger.Debug("tool not found", "action", cmd.Action, "path", tool.Path)
		return false, fmt.Sprintf("❌ %s failed:\n%v", cmd.Action.Title(), err)
	}

	proc := exec.CommandContext(runCtx, path, args...)
	var stdout, stderr bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	// Children of the tool inherit the output pipes; without the group kill
	// they would survive the deadline and keep Run blocked on the pipes.
	// WaitDelay bounds the wait even if something else holds them open.
	setProcessGroup(proc)
	proc.WaitDelay = time.Second

	d.logger.Debug("dispatching", "action", cmd.Action, "tool", path, "args", args)
	err = proc.Run()

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		// CommandContext already killed the process.
		return false, fmt.Sprintf("❌ %s timed out", cmd.Action.Title())
	}
	if err != nil {
		detail := stderr.String()
		if detail == "" {
			detail = err.Error()
		}
		return false, fmt.Sprintf("❌ %s failed:\n%s", cmd.Action.Title(), detail)
	}

	return true, fmt.Sprintf("✅ %s completed successfully!\n%s", cmd.Action.Title(), stdout.String())
}
