package interpreter

import "strings"

// Action is a closed enumeration of user intents the interpreter understands.
type Action string

const (
	ActionOrganizeFiles   Action = "organize_files"
	ActionMonitorSystem   Action = "monitor_system"
	ActionAIMemory        Action = "ai_memory"
	ActionWebScraping     Action = "web_scraping"
	ActionEmailAutomation Action = "email_automation"
	ActionScheduleTask    Action = "schedule_task"
	ActionAnalytics       Action = "analytics"
	ActionHelp            Action = "help"
)

// Actions lists every action in pattern-table order. The order matters: the
// matcher iterates it, and exact confidence ties go to the earliest entry.
func Actions() []Action {
	return []Action{
		ActionOrganizeFiles,
		ActionMonitorSystem,
		ActionAIMemory,
		ActionWebScraping,
		ActionEmailAutomation,
		ActionScheduleTask,
		ActionAnalytics,
		ActionHelp,
	}
}

// Title renders the action for user-facing messages ("organize_files" ->
// "Organize Files").
func (a Action) Title() string {
	words := strings.Split(string(a), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		if w == "ai" {
			words[i] = "AI"
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Phrase renders the action as a lowercase phrase ("organize files") for
// clarification prompts.
func (a Action) Phrase() string {
	return strings.ReplaceAll(string(a), "_", " ")
}

// Command is a parsed natural-language command. It is immutable once
// constructed; the parser only builds one when a pattern matched above the
// admission threshold.
type Command struct {
	Action     Action
	Target     string
	Params     *Params
	Confidence float64
}

// Params is a string-to-string parameter map that remembers insertion order.
// The dispatcher emits parameters as --key value flag pairs in the order they
// were set, which a plain map cannot guarantee.
type Params struct {
	keys   []string
	values map[string]string
}

// NewParams returns an empty parameter map.
func NewParams() *Params {
	return &Params{values: make(map[string]string)}
}

// Set stores a value, preserving first-insertion order for the key.
func (p *Params) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value for key and whether it is present.
func (p *Params) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	return len(p.keys)
}
