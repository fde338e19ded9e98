package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"squares-board/internal/board"
	"squares-board/internal/domain"
	"squares-board/internal/infra/rest"
	"squares-board/internal/view"
)

// NewWhatIfCmd builds the one-shot projection subcommand.
func NewWhatIfCmd(configPath, apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "whatif [identity]",
		Short: "Project best/current/worst final rank for a player",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identity := ""
			if len(args) == 1 {
				identity = args[0]
			}
			return runWhatIf(cmd.Context(), *configPath, *apiBase, identity)
		},
	}
}

func runWhatIf(ctx context.Context, configPath, apiBase, identity string) error {
	cfg, err := loadConfig(configPath, apiBase)
	if err != nil {
		return err
	}

	if identity == "" {
		store, err := selectionStore(cfg)
		if err != nil {
			return err
		}
		identity, err = store.Load()
		if err != nil {
			return err
		}
		if identity == "" {
			return fmt.Errorf("%w: pass an identity or run `squares-board player set`", domain.ErrNoSelection)
		}
	}

	client := rest.NewClient(cfg.API.BaseURL, cfg.API.Token)
	snap, err := client.Scoreboard(ctx)
	if err != nil {
		return fmt.Errorf("could not load the scoreboard: %w", err)
	}
	player, err := findPlayer(snap.Players, identity)
	if err != nil {
		return err
	}
	answers, err := client.Answers(ctx, identity)
	if err != nil {
		return err
	}

	view.WhatIf(os.Stdout, player.DisplayName, board.CalculateWhatIf(&player, snap.Players, answers))
	return nil
}
