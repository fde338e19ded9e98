package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	apiBase    string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:           "squares-board",
		Short:         "Live leaderboard for the squares prop-bet contest",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&apiBase, "api", "", "API base URL (overrides config)")
	cmd.AddCommand(NewWatchCmd(&configPath, &apiBase))
	cmd.AddCommand(NewStandingsCmd(&configPath, &apiBase))
	cmd.AddCommand(NewWhatIfCmd(&configPath, &apiBase))
	cmd.AddCommand(NewPlayerCmd(&configPath))
	return cmd
}
