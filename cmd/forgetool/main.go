// forgetool runs the individual automation tools. neuralforge invokes it
// with flags derived from parsed commands, but every subcommand is also
// usable directly.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/neuralforge/neuralforge/internal/config"
	"github.com/neuralforge/neuralforge/internal/logging"
)

var version = "1.0.0"

var (
	configPath string
	logLevel   string
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "forgetool",
		Short:         "NeuralForge automation tools",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Configure(logLevel)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to configuration file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		organizeCmd(),
		monitorCmd(),
		memoryCmd(),
		scrapeCmd(),
		emailCmd(),
		scheduleCmd(),
		analyticsCmd(),
	)

	if err := root.Execute(); err != nil {
		logging.Logger.Error("tool failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}
