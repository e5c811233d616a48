package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/neuralforge/neuralforge/internal/analytics"
	"github.com/neuralforge/neuralforge/internal/store"
)

func analyticsCmd() *cobra.Command {
	var window time.Duration

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Report command usage statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := store.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			report, err := analytics.New(db).Report(window)
			if err != nil {
				return err
			}
			fmt.Print(report.Render())
			return nil
		},
	}

	cmd.Flags().DurationVar(&window, "window", 7*24*time.Hour, "reporting window (0 for all time)")
	return cmd
}
