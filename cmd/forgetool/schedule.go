package main

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/neuralforge/neuralforge/internal/logging"
	"github.com/neuralforge/neuralforge/internal/scheduler"
	"github.com/neuralforge/neuralforge/internal/store"
)

var bareHourRe = regexp.MustCompile(`^\d{1,2}$`)

func scheduleCmd() *cobra.Command {
	var (
		when string
		task string
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage scheduled tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation adds a task when one is named, otherwise
			// lists what is scheduled.
			if task == "" {
				return listTasks()
			}
			return withScheduler(func(s *scheduler.Scheduler) error {
				added, err := s.Add(task, normalizeWhen(when))
				if err != nil {
					return err
				}
				fmt.Printf("⏰ Scheduled %q (%s -> cron %q)\n", added.Name, added.Schedule, added.CronSpec)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&when, "time", "", "when to run: daily, weekly, monthly, hourly, HH:MM, an hour like 9, or a cron expression")
	cmd.Flags().StringVar(&task, "task", "", "task name to schedule")

	cmd.AddCommand(scheduleListCmd(), scheduleRemoveCmd(), scheduleRunCmd())
	return cmd
}

// normalizeWhen turns a bare hour ("3") into a clock time and an empty
// value into the daily default.
func normalizeWhen(when string) string {
	if when == "" {
		return "daily"
	}
	if bareHourRe.MatchString(when) {
		return fmt.Sprintf("%s:00", when)
	}
	return when
}

func withScheduler(fn func(*scheduler.Scheduler) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := store.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(scheduler.New(db, logging.Logger))
}

func listTasks() error {
	return withScheduler(func(s *scheduler.Scheduler) error {
		tasks, err := s.List()
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("No scheduled tasks.")
			return nil
		}
		fmt.Printf("⏰ Scheduled tasks (%d):\n", len(tasks))
		for _, t := range tasks {
			lastRun := "never"
			if !t.LastRun.IsZero() {
				lastRun = t.LastRun.Format("2006-01-02 15:04")
			}
			fmt.Printf("  %-24s %-10s cron %-14q %-10s last run %s\n",
				t.Name, t.Schedule, t.CronSpec, t.Status, lastRun)
		}
		return nil
	})
}

func scheduleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scheduled tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listTasks()
		},
	}
}

func scheduleRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a scheduled task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withScheduler(func(s *scheduler.Scheduler) error {
				removed, err := s.Remove(args[0])
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("no task named %q", args[0])
				}
				fmt.Printf("🗑️  Removed %q\n", args[0])
				return nil
			})
		},
	}
}

func scheduleRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the scheduler daemon until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withScheduler(func(s *scheduler.Scheduler) error {
				fmt.Println("⏰ Scheduler running, Ctrl-C to stop.")
				return s.Run(cmd.Context())
			})
		},
	}
}
