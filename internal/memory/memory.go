// Package memory stores and retrieves past AI interactions so agents can
// reuse prior responses to similar tasks.
package memory

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/neuralforge/neuralforge/internal/store"
	"github.com/neuralforge/neuralforge/pkg/models"
)

// Buffer is a SQLite-backed interaction log with keyword relevance search.
type Buffer struct {
	db *store.DB
}

// New wraps an opened store.
func New(db *store.DB) *Buffer {
	return &Buffer{db: db}
}

// Add records one interaction and returns its row id. Ratings outside 1..5
// are rejected by the schema's CHECK constraint.
func (b *Buffer) Add(entry models.MemoryEntry) (int64, error) {
	var metadata []byte
	if len(entry.Metadata) > 0 {
		var err error
		metadata, err = json.Marshal(entry.Metadata)
		if err != nil {
			return 0, fmt.Errorf("failed to encode metadata: %w", err)
		}
	}
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	res, err := b.db.Conn().Exec(
		`INSERT INTO memories (agent_name, task, response, success_rating, model_used, tokens_used, metadata, ts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.AgentName, entry.Task, entry.Response, entry.SuccessRating,
		entry.ModelUsed, entry.TokensUsed, nullableBytes(metadata), ts,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to store memory: %w", err)
	}
	return res.LastInsertId()
}

// Query returns the limit most relevant entries for a task description,
// optionally restricted to one agent. Relevance counts keyword hits in the
// stored task (double weight), response, and agent name, normalized by the
// number of query keywords.
func (b *Buffer) Query(task, agentName string, limit int) ([]models.MemoryEntry, error) {
	if limit <= 0 {
		limit = 5
	}
	keywords := tokenize(task)
	if len(keywords) == 0 {
		return nil, nil
	}

	query := `SELECT id, agent_name, task, response, success_rating, model_used, tokens_used, metadata, ts FROM memories`
	var args []any
	if agentName != "" {
		query += ` WHERE agent_name = ?`
		args = append(args, agentName)
	}
	rows, err := b.db.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query memories: %w", err)
	}
	defer rows.Close()

	var scored []models.MemoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		if score := relevance(keywords, entry); score > 0 {
			entry.RelevanceScore = score
			scored = append(scored, entry)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// Recent returns the limit newest entries.
func (b *Buffer) Recent(limit int) ([]models.MemoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := b.db.Conn().Query(
		`SELECT id, agent_name, task, response, success_rating, model_used, tokens_used, metadata, ts
		 FROM memories ORDER BY ts DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query memories: %w", err)
	}
	defer rows.Close()

	var entries []models.MemoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Stats aggregates the whole buffer.
func (b *Buffer) Stats() (*models.MemoryStats, error) {
	stats := &models.MemoryStats{}
	row := b.db.Conn().QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(success_rating), 0), COALESCE(SUM(tokens_used), 0) FROM memories`)
	if err := row.Scan(&stats.TotalEntries, &stats.AvgSuccessRating, &stats.TotalTokensUsed); err != nil {
		return nil, fmt.Errorf("failed to aggregate memories: %w", err)
	}
	if stats.TotalEntries == 0 {
		return stats, nil
	}

	rows, err := b.db.Conn().Query(
		`SELECT model_used, COUNT(*) AS n FROM memories GROUP BY model_used ORDER BY n DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate models: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var model string
		var n int
		if err := rows.Scan(&model, &n); err != nil {
			return nil, err
		}
		if stats.TopModel == "" {
			stats.TopModel = model
		}
		stats.ModelsUsed = append(stats.ModelsUsed, model)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// MIN/MAX strip the declared column type, so the timestamps come back
	// as raw strings and are parsed best-effort.
	row = b.db.Conn().QueryRow(`SELECT MIN(ts), MAX(ts) FROM memories`)
	var oldest, newest sql.NullString
	if err := row.Scan(&oldest, &newest); err == nil {
		stats.Oldest = parseTimestamp(oldest.String)
		stats.Newest = parseTimestamp(newest.String)
	}
	return stats, nil
}

// relevance scores keyword hits: task matches count double, response and
// agent name count once, normalized by keyword count.
func relevance(keywords []string, entry models.MemoryEntry) float64 {
	task := strings.ToLower(entry.Task)
	response := strings.ToLower(entry.Response)
	agent := strings.ToLower(entry.AgentName)

	var score float64
	for _, kw := range keywords {
		if strings.Contains(task, kw) {
			score += 2
		}
		if strings.Contains(response, kw) {
			score++
		}
		if strings.Contains(agent, kw) {
			score++
		}
	}
	return score / float64(len(keywords)) / 4.0
}

func tokenize(s string) []string {
	var keywords []string
	for _, field := range strings.Fields(strings.ToLower(s)) {
		if len(field) > 2 {
			keywords = append(keywords, field)
		}
	}
	return keywords
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (models.MemoryEntry, error) {
	var entry models.MemoryEntry
	var metadata sql.NullString
	err := row.Scan(&entry.ID, &entry.AgentName, &entry.Task, &entry.Response,
		&entry.SuccessRating, &entry.ModelUsed, &entry.TokensUsed, &metadata, &entry.Timestamp)
	if err != nil {
		return entry, fmt.Errorf("failed to scan memory row: %w", err)
	}
	if metadata.Valid && metadata.String != "" {
		if err := json.Unmarshal([]byte(metadata.String), &entry.Metadata); err != nil {
			entry.Metadata = nil // tolerate rows written by older versions
		}
	}
	return entry, nil
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func nullableBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
