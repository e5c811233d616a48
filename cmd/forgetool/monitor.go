package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neuralforge/neuralforge/internal/sysmon"
)

func monitorCmd() *cobra.Command {
	var (
		cpuMax  float64
		memMax  float64
		diskMax float64
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Snapshot CPU, memory, disk, and network usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics, err := sysmon.Snapshot()
			if err != nil {
				return err
			}
			fmt.Print(sysmon.Render(metrics))
			for _, alert := range sysmon.Alerts(metrics, cpuMax, memMax, diskMax) {
				fmt.Printf("⚠️  %s\n", alert)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&cpuMax, "cpu-max", 80, "CPU usage alert threshold (percent)")
	cmd.Flags().Float64Var(&memMax, "mem-max", 85, "memory usage alert threshold (percent)")
	cmd.Flags().Float64Var(&diskMax, "disk-max", 90, "disk usage alert threshold (percent)")
	return cmd
}
