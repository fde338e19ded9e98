package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"squares-board/internal/infra/rest"
	"squares-board/internal/view"
)

// NewStandingsCmd builds the one-shot scoreboard subcommand.
func NewStandingsCmd(configPath, apiBase *string) *cobra.Command {
	var showQuestions bool
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Print the current standings once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStandings(cmd.Context(), *configPath, *apiBase, showQuestions)
		},
	}
	cmd.Flags().BoolVar(&showQuestions, "questions", false, "also list the prop questions")
	return cmd
}

func runStandings(ctx context.Context, configPath, apiBase string, showQuestions bool) error {
	cfg, err := loadConfig(configPath, apiBase)
	if err != nil {
		return err
	}

	snap, err := rest.NewClient(cfg.API.BaseURL, cfg.API.Token).Scoreboard(ctx)
	if err != nil {
		return fmt.Errorf("could not load the scoreboard: %w", err)
	}

	view.Standings(os.Stdout, snap)
	if showQuestions {
		fmt.Println()
		view.Questions(os.Stdout, snap.Questions)
	}
	return nil
}
