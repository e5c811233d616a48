package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neuralforge/neuralforge/internal/organizer"
)

func organizeCmd() *cobra.Command {
	var (
		target      string
		destination string
		analyzeOnly bool
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Sort files in a directory into category folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := expandPath(target)
			if err != nil {
				return err
			}

			org := organizer.New(nil)

			if analyzeOnly {
				analysis, err := org.Analyze(dir)
				if err != nil {
					return err
				}
				fmt.Print(analysis.Render())
				return nil
			}

			dest := destination
			if dest == "" {
				dest = dir
			} else if dest, err = expandPath(dest); err != nil {
				return err
			}

			result, err := org.Organize(dir, dest, dryRun)
			if err != nil {
				return err
			}
			fmt.Print(result.Render())
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "~/Downloads", "directory to organize")
	cmd.Flags().StringVar(&destination, "to", "", "destination directory (default: organize in place)")
	cmd.Flags().BoolVar(&analyzeOnly, "analyze", false, "analyze only, move nothing")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show planned moves without performing them")
	return cmd
}

// expandPath resolves a leading ~ to the home directory.
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
