// Package scheduler persists tasks with friendly schedule specs and runs
// them through a cron daemon.
package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"github.com/neuralforge/neuralforge/internal/store"
	"github.com/neuralforge/neuralforge/pkg/models"
)

var clockRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// TranslateSpec converts a friendly schedule spec to a cron expression.
// Accepted specs: "daily", "weekly", "monthly", "hourly", a bare "HH:MM"
// clock time, or a raw five-field cron expression.
func TranslateSpec(spec string) (string, error) {
	spec = strings.ToLower(strings.TrimSpace(spec))
	switch spec {
	case "hourly":
		return "0 * * * *", nil
	case "daily":
		return "0 9 * * *", nil
	case "weekly":
		return "0 9 * * 1", nil
	case "monthly":
		return "0 9 1 * *", nil
	}
	if m := clockRe.FindStringSubmatch(spec); m != nil {
		return fmt.Sprintf("%s %s * * *", m[2], m[1]), nil
	}
	if len(strings.Fields(spec)) == 5 {
		if _, err := cron.ParseStandard(spec); err == nil {
			return spec, nil
		}
	}
	return "", fmt.Errorf("unrecognized schedule %q (use daily, weekly, monthly, hourly, HH:MM, or a cron expression)", spec)
}

// Scheduler persists tasks and optionally runs them.
type Scheduler struct {
	db     *store.DB
	logger *log.Logger

	// runTask performs the work of a fired task and is swappable in tests.
	runTask func(task models.ScheduledTask)
}

// New wraps an opened store.
func New(db *store.DB, logger *log.Logger) *Scheduler {
	s := &Scheduler{db: db, logger: logger}
	s.runTask = func(task models.ScheduledTask) {
		s.logger.Info("task fired", "task", task.Name, "schedule", task.Schedule)
	}
	return s
}

// Add validates the schedule spec, persists the task, and returns it.
func (s *Scheduler) Add(name, spec string) (*models.ScheduledTask, error) {
	cronSpec, err := TranslateSpec(spec)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	res, err := s.db.Conn().Exec(
		`INSERT INTO tasks (name, schedule, cron_spec, status, created_at) VALUES (?, ?, ?, 'scheduled', ?)`,
		name, spec, cronSpec, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to store task: %w", err)
	}
	id, _ := res.LastInsertId()
	return &models.ScheduledTask{
		ID:        id,
		Name:      name,
		Schedule:  spec,
		CronSpec:  cronSpec,
		Status:    "scheduled",
		CreatedAt: now,
	}, nil
}

// List returns all persisted tasks, newest first.
func (s *Scheduler) List() ([]models.ScheduledTask, error) {
	rows, err := s.db.Conn().Query(
		`SELECT id, name, schedule, cron_spec, status, last_run, created_at FROM tasks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.ScheduledTask
	for rows.Next() {
		var task models.ScheduledTask
		var lastRun sql.NullTime
		if err := rows.Scan(&task.ID, &task.Name, &task.Schedule, &task.CronSpec, &task.Status, &lastRun, &task.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		task.LastRun = lastRun.Time
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// Remove deletes a task by name and reports whether a row was removed.
func (s *Scheduler) Remove(name string) (bool, error) {
	res, err := s.db.Conn().Exec(`DELETE FROM tasks WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("failed to remove task: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Run loads all tasks into a cron daemon and blocks until the context is
// canceled. Fired tasks update their last_run timestamp.
func (s *Scheduler) Run(ctx context.Context) error {
	tasks, err := s.List()
	if err != nil {
		return err
	}

	c := cron.New()
	for _, task := range tasks {
		task := task
		_, err := c.AddFunc(task.CronSpec, func() {
			s.runTask(task)
			if _, err := s.db.Conn().Exec(
				`UPDATE tasks SET last_run = ?, status = 'completed' WHERE id = ?`,
				time.Now(), task.ID,
			); err != nil {
				s.logger.Error("failed to record task run", "task", task.Name, "error", err)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to schedule %s: %w", task.Name, err)
		}
		s.logger.Info("scheduled", "task", task.Name, "cron", task.CronSpec)
	}

	c.Start()
	<-ctx.Done()
	stopCtx := c.Stop()
	<-stopCtx.Done()
	return nil
}
