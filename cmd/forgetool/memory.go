package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neuralforge/neuralforge/internal/memory"
	"github.com/neuralforge/neuralforge/internal/store"
	"github.com/neuralforge/neuralforge/pkg/models"
)

func memoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Store and search past AI interactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation (how neuralforge dispatches ai_memory) shows
			// stats plus the latest entries.
			return withBuffer(func(buf *memory.Buffer) error {
				if err := printStats(buf); err != nil {
					return err
				}
				entries, err := buf.Recent(5)
				if err != nil {
					return err
				}
				if len(entries) > 0 {
					fmt.Println("\nRecent entries:")
					printEntries(entries)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(memoryAddCmd(), memoryQueryCmd(), memoryStatsCmd(), memoryRecentCmd())
	return cmd
}

func withBuffer(fn func(*memory.Buffer) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := store.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(memory.New(db))
}

func memoryAddCmd() *cobra.Command {
	var entry models.MemoryEntry
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record one interaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			if entry.Task == "" || entry.Response == "" {
				return fmt.Errorf("--task and --response are required")
			}
			return withBuffer(func(buf *memory.Buffer) error {
				id, err := buf.Add(entry)
				if err != nil {
					return err
				}
				fmt.Printf("💾 Stored memory #%d\n", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&entry.AgentName, "agent", "default", "agent name")
	cmd.Flags().StringVar(&entry.Task, "task", "", "task description")
	cmd.Flags().StringVar(&entry.Response, "response", "", "response text")
	cmd.Flags().IntVar(&entry.SuccessRating, "rating", 3, "success rating 1-5")
	cmd.Flags().StringVar(&entry.ModelUsed, "model", "", "model name")
	cmd.Flags().IntVar(&entry.TokensUsed, "tokens", 0, "tokens used")
	return cmd
}

func memoryQueryCmd() *cobra.Command {
	var (
		agent string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "query <task description>",
		Short: "Find relevant past interactions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBuffer(func(buf *memory.Buffer) error {
				entries, err := buf.Query(strings.Join(args, " "), agent, limit)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Println("No relevant memories found.")
					return nil
				}
				printEntries(entries)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&agent, "agent", "", "restrict to one agent")
	cmd.Flags().IntVar(&limit, "limit", 5, "maximum results")
	return cmd
}

func memoryStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show memory store statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBuffer(printStats)
		},
	}
}

func memoryRecentCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the newest entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBuffer(func(buf *memory.Buffer) error {
				entries, err := buf.Recent(limit)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Println("No memories stored yet.")
					return nil
				}
				printEntries(entries)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of entries")
	return cmd
}

func printStats(buf *memory.Buffer) error {
	stats, err := buf.Stats()
	if err != nil {
		return err
	}
	fmt.Println("🧠 Memory Store")
	fmt.Printf("  Entries:    %d\n", stats.TotalEntries)
	if stats.TotalEntries == 0 {
		return nil
	}
	fmt.Printf("  Avg rating: %.1f/5\n", stats.AvgSuccessRating)
	fmt.Printf("  Tokens:     %d\n", stats.TotalTokensUsed)
	if stats.TopModel != "" {
		fmt.Printf("  Top model:  %s\n", stats.TopModel)
	}
	return nil
}

func printEntries(entries []models.MemoryEntry) {
	for _, e := range entries {
		fmt.Printf("  #%d [%s] %s\n", e.ID, e.AgentName, e.Task)
		fmt.Printf("     %s\n", e.Response)
		if e.RelevanceScore > 0 {
			fmt.Printf("     relevance %.2f, rating %d/5\n", e.RelevanceScore, e.SuccessRating)
		} else {
			fmt.Printf("     rating %d/5\n", e.SuccessRating)
		}
	}
}
