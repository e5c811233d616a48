// Package history records chat exchanges as JSONL, one turn per line.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Turn is one exchange in a conversation.
type Turn struct {
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"` // user or assistant
	Text      string    `json:"text"`
	Action    string    `json:"action,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Recorder appends conversation turns to a JSONL file and keeps the current
// session in memory.
type Recorder struct {
	mu        sync.Mutex
	path      string
	sessionID string
	turns     []Turn
}

// NewRecorder creates a recorder writing to path with a fresh session ID.
func NewRecorder(path string) *Recorder {
	return &Recorder{
		path:      path,
		sessionID: uuid.NewString(),
	}
}

// SessionID returns the recorder's session identifier.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Record appends one turn to the in-memory session and the JSONL file. File
// errors are returned but leave the in-memory history intact.
func (r *Recorder) Record(role, text, action string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	turn := Turn{
		SessionID: r.sessionID,
		Role:      role,
		Text:      text,
		Action:    action,
		Timestamp: time.Now(),
	}
	r.turns = append(r.turns, turn)

	if r.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// Turns returns a copy of the current session's turns.
func (r *Recorder) Turns() []Turn {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Turn, len(r.turns))
	copy(out, r.turns)
	return out
}

// Clear drops the in-memory session history. The JSONL file is untouched.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turns = nil
}

// Load reads every turn from a JSONL history file. A missing file yields an
// empty slice.
func Load(path string) ([]Turn, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	var turns []Turn
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var t Turn
		if err := json.Unmarshal(line, &t); err != nil {
			continue // skip corrupt lines
		}
		turns = append(turns, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return turns, nil
}
