// Package analytics aggregates the command log into usage reports.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/neuralforge/neuralforge/internal/store"
)

// Report summarizes command activity over a window.
type Report struct {
	Since         time.Time
	TotalCommands int
	Matched       int
	Unmatched     int
	MatchRate     float64
	AvgConfidence float64
	AvgDurationMs float64
	ByAction      []ActionCount
	BusiestHour   int
	Sessions      int
	GeneratedAt   time.Time
}

// ActionCount is one row of the per-action breakdown.
type ActionCount struct {
	Action string
	Count  int
}

// Analyzer reads the command log.
type Analyzer struct {
	db *store.DB
}

// New wraps an opened store.
func New(db *store.DB) *Analyzer {
	return &Analyzer{db: db}
}

// Report aggregates commands recorded in the last window. A zero window
// covers everything.
func (a *Analyzer) Report(window time.Duration) (*Report, error) {
	report := &Report{GeneratedAt: time.Now(), BusiestHour: -1}
	if window > 0 {
		report.Since = time.Now().Add(-window)
	}

	where := ""
	var args []any
	if !report.Since.IsZero() {
		where = ` WHERE ts >= ?`
		args = append(args, report.Since)
	}

	row := a.db.Conn().QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN action != '' THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(confidence), 0),
		        COALESCE(AVG(duration_ms), 0),
		        COUNT(DISTINCT session_id)
		 FROM command_log`+where, args...)
	if err := row.Scan(&report.TotalCommands, &report.Matched, &report.AvgConfidence, &report.AvgDurationMs, &report.Sessions); err != nil {
		return nil, fmt.Errorf("failed to aggregate command log: %w", err)
	}
	report.Unmatched = report.TotalCommands - report.Matched
	if report.TotalCommands > 0 {
		report.MatchRate = float64(report.Matched) / float64(report.TotalCommands) * 100
	}

	rows, err := a.db.Conn().Query(
		`SELECT action, COUNT(*) AS n FROM command_log`+where+` GROUP BY action ORDER BY n DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate actions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ac ActionCount
		if err := rows.Scan(&ac.Action, &ac.Count); err != nil {
			return nil, err
		}
		if ac.Action == "" {
			ac.Action = "(no match)"
		}
		report.ByAction = append(report.ByAction, ac)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(report.ByAction, func(i, j int) bool {
		return report.ByAction[i].Count > report.ByAction[j].Count
	})

	// SQLite stores ts as text, so hour extraction happens here.
	hourRows, err := a.db.Conn().Query(
		`SELECT CAST(strftime('%H', ts) AS INTEGER) AS h, COUNT(*) AS n
		 FROM command_log`+where+` GROUP BY h ORDER BY n DESC LIMIT 1`, args...)
	if err == nil {
		defer hourRows.Close()
		if hourRows.Next() {
			var h, n int
			if err := hourRows.Scan(&h, &n); err == nil {
				report.BusiestHour = h
			}
		}
	}

	return report, nil
}

// Render formats a report for terminal output.
func (r *Report) Render() string {
	var b strings.Builder
	b.WriteString("Usage Report\n")
	if !r.Since.IsZero() {
		fmt.Fprintf(&b, "  Window:     since %s\n", humanize.Time(r.Since))
	}
	fmt.Fprintf(&b, "  Commands:   %d (%d matched, %d unmatched)\n", r.TotalCommands, r.Matched, r.Unmatched)
	fmt.Fprintf(&b, "  Match rate: %.1f%%\n", r.MatchRate)
	fmt.Fprintf(&b, "  Confidence: %.2f avg\n", r.AvgConfidence)
	fmt.Fprintf(&b, "  Latency:    %.0fms avg\n", r.AvgDurationMs)
	fmt.Fprintf(&b, "  Sessions:   %d\n", r.Sessions)
	if r.BusiestHour >= 0 {
		fmt.Fprintf(&b, "  Busiest:    %02d:00\n", r.BusiestHour)
	}
	if len(r.ByAction) > 0 {
		b.WriteString("  Actions:\n")
		for _, ac := range r.ByAction {
			fmt.Fprintf(&b, "    %-20s %d\n", ac.Action, ac.Count)
		}
	}
	return b.String()
}
