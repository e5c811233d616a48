// Package interpreter converts free-text command lines into actions and
// routes them to external tools. Parsing is deterministic: an ordered regex
// pattern table, a fixed-weight confidence score, and per-action parameter
// extraction rules.
package interpreter

import (
	"context"
	"strings"
)

// Dispatcher executes the tool bound to a resolved command and reports the
// outcome as a user-facing string. Implementations must never propagate a
// raw fault: every failure comes back as (false, message).
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd *Command) (ok bool, response string)
}

// Status classifies the outcome of one Process call.
type Status string

const (
	StatusOK            Status = "ok"
	StatusNoMatch       Status = "no_match"
	StatusLowConfidence Status = "low_confidence"
	StatusFailed        Status = "failed"
)

// Result is the outcome of processing one input line. Response is the single
// human-readable string callers show the user; the remaining fields let
// callers log the call without re-parsing.
type Result struct {
	Response   string
	Action     Action
	Confidence float64
	Status     Status
}

// ScoreFunc computes the confidence for a matched input line. It must be a
// pure function of the text.
type ScoreFunc func(input string) float64

// Interpreter parses natural-language input against an immutable ruleset and
// dispatches resolved commands. It holds no per-call state; a single
// instance is safe for sequential reuse, and concurrent callers should each
// hold their own instance over the same shared ruleset.
type Interpreter struct {
	rules      *Ruleset
	dispatcher Dispatcher
	score      ScoreFunc
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithScorer replaces the built-in confidence scorer.
func WithScorer(fn ScoreFunc) Option {
	return func(it *Interpreter) {
		if fn != nil {
			it.score = fn
		}
	}
}

// New creates an interpreter over the given ruleset and dispatcher.
func New(rules *Ruleset, dispatcher Dispatcher, opts ...Option) *Interpreter {
	it := &Interpreter{rules: rules, dispatcher: dispatcher, score: scoreMatch}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Parse converts input into a Command, or returns nil when nothing matched
// above the admission threshold. Trimming and lowercasing happen here; the
// caller passes raw text.
func (it *Interpreter) Parse(input string) *Command {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return nil
	}

	var best *Command
	bestConfidence := 0.0

	// Scan every pattern of every action and keep the single highest-
	// confidence match. The strict > comparison makes exact ties go to the
	// earliest table entry; that FIFO tie-break is intentional.
	for _, entry := range it.rules.entries {
		for _, re := range entry.Patterns {
			m := re.FindStringSubmatch(input)
			if m == nil {
				continue
			}
			confidence := it.score(input)
			if confidence > bestConfidence {
				target := ""
				if len(m) > 1 {
					target = m[1]
				}
				best = &Command{
					Action:     entry.Action,
					Target:     target,
					Params:     extractParams(input, entry.Action),
					Confidence: confidence,
				}
				bestConfidence = confidence
			}
		}
	}

	if best != nil && bestConfidence > minConfidence {
		return best
	}
	return nil
}

// Process runs the full pipeline for one input line: parse, gate on the
// execution threshold, dispatch, and format. It never returns an error; all
// failures surface inside Result.Response.
func (it *Interpreter) Process(ctx context.Context, input string) Result {
	cmd := it.Parse(input)
	if cmd == nil {
		return Result{
			Response: "❌ I didn't understand that command. Try 'help' to see available commands.",
			Status:   StatusNoMatch,
		}
	}

	if cmd.Confidence < execThreshold {
		return Result{
			Response:   "🤔 I think you want to " + cmd.Action.Phrase() + ", but I'm not sure. Could you be more specific?",
			Action:     cmd.Action,
			Confidence: cmd.Confidence,
			Status:     StatusLowConfidence,
		}
	}

	ok, response := it.dispatcher.Dispatch(ctx, cmd)
	status := StatusOK
	if !ok {
		status = StatusFailed
	}
	return Result{
		Response:   response,
		Action:     cmd.Action,
		Confidence: cmd.Confidence,
		Status:     status,
	}
}
