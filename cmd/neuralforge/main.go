// neuralforge is the conversational entry point of the toolkit. It parses
// natural-language commands and dispatches them to forgetool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/neuralforge/neuralforge/internal/config"
	"github.com/neuralforge/neuralforge/internal/dispatch"
	"github.com/neuralforge/neuralforge/internal/history"
	"github.com/neuralforge/neuralforge/internal/interpreter"
	"github.com/neuralforge/neuralforge/internal/logging"
	"github.com/neuralforge/neuralforge/internal/store"
	"github.com/neuralforge/neuralforge/internal/ui"
)

var version = "1.0.0"

var (
	configPath string
	logLevel   string
)

func main() {
	// A missing .env is fine; credentials can come from the shell.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "neuralforge [command text...]",
		Short: "AI-powered desktop automation assistant",
		Long: `NeuralForge understands plain-English commands like
"organize my downloads folder" or "scrape https://example.com" and runs
the matching automation tool.

Without arguments it starts an interactive chat session.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Configure(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runChat()
			}
			return runOnce(strings.Join(args, " "))
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to configuration file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(chatCmd(), historyCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		logging.Logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat()
		},
	}
}

func historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent commands from past sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			db, err := store.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			logs, err := db.RecentLogs(limit)
			if err != nil {
				return err
			}
			if len(logs) == 0 {
				fmt.Println("No commands recorded yet.")
				return nil
			}
			for _, entry := range logs {
				action := entry.Action
				if action == "" {
					action = "(no match)"
				}
				fmt.Printf("%s  %-20s %.2f  %s\n",
					entry.Timestamp.Format("2006-01-02 15:04"), action, entry.Confidence, entry.Input)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries to show")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("NeuralForge v%s\n", version)
		},
	}
}

// setup wires the interpreter stack from configuration. The returned
// cleanup closes the store.
func setup() (*ui.REPL, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	recorder := history.NewRecorder(cfg.HistoryPath)

	dispatcher := dispatch.New(
		dispatch.ForgetoolDescriptors(cfg.ToolPath),
		dispatch.WithTimeout(time.Duration(cfg.DispatchTimeout)*time.Second),
		dispatch.WithLogger(logging.Logger),
	)
	interp := interpreter.New(interpreter.DefaultRuleset(), dispatcher)

	repl := ui.NewREPL(interp, db, recorder, version)
	return repl, func() { db.Close() }, nil
}

func runChat() error {
	repl, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return repl.Start(ctx)
}

func runOnce(input string) error {
	repl, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Println(repl.Process(context.Background(), input))
	return nil
}
