// Package ui implements the interactive chat loop.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/neuralforge/neuralforge/internal/history"
	"github.com/neuralforge/neuralforge/internal/interpreter"
	"github.com/neuralforge/neuralforge/internal/store"
)

// REPL reads natural-language commands, routes them through the
// interpreter, and records every turn.
type REPL struct {
	interp   *interpreter.Interpreter
	db       *store.DB
	recorder *history.Recorder
	version  string
}

// NewREPL wires the chat loop. db and recorder may be nil; logging is then
// skipped.
func NewREPL(interp *interpreter.Interpreter, db *store.DB, recorder *history.Recorder, version string) *REPL {
	return &REPL{interp: interp, db: db, recorder: recorder, version: version}
}

// Start runs the interactive loop until EOF or an exit command.
func (r *REPL) Start(ctx context.Context) error {
	rl, err := readline.New("🔥 You: ")
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	fmt.Printf("🚀 NeuralForge v%s - AI Desktop Assistant\n", r.version)
	fmt.Println("Type 'help' for available commands, 'exit' to quit")
	fmt.Println()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Println("👋 Goodbye!")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "quit", "bye":
			fmt.Println("👋 Goodbye!")
			return nil
		case "history":
			r.showHistory()
			continue
		case "clear":
			r.clearHistory()
			continue
		}

		r.record("user", input, "")
		fmt.Println(r.Process(ctx, input))
		fmt.Println()
	}
}

// Process handles one input line and returns the response text. It also
// records the assistant turn and appends to the command log.
func (r *REPL) Process(ctx context.Context, input string) string {
	start := time.Now()
	result := r.interp.Process(ctx, input)
	duration := time.Since(start)

	r.record("assistant", result.Response, string(result.Action))
	if r.db != nil {
		sessionID := ""
		if r.recorder != nil {
			sessionID = r.recorder.SessionID()
		}
		if _, err := r.db.LogCommand(sessionID, input, string(result.Action), result.Confidence, string(result.Status), duration); err != nil {
			fmt.Printf("⚠️  failed to log command: %v\n", err)
		}
	}
	return result.Response
}

func (r *REPL) record(role, text, action string) {
	if r.recorder == nil {
		return
	}
	if err := r.recorder.Record(role, text, action); err != nil {
		fmt.Printf("⚠️  failed to record history: %v\n", err)
	}
}

func (r *REPL) showHistory() {
	if r.recorder == nil {
		fmt.Println("History is disabled.")
		return
	}
	turns := r.recorder.Turns()
	if len(turns) == 0 {
		fmt.Println("No conversation history yet.")
		return
	}
	fmt.Printf("\nConversation (%d turns):\n\n", len(turns))
	for _, turn := range turns {
		prefix := "You"
		if turn.Role == "assistant" {
			prefix = "Forge"
		}
		fmt.Printf("  %s: %s\n", prefix, turn.Text)
	}
	fmt.Println()
}

func (r *REPL) clearHistory() {
	if r.recorder == nil {
		fmt.Println("History is disabled.")
		return
	}
	r.recorder.Clear()
	fmt.Println("🧹 Conversation history cleared.")
}
