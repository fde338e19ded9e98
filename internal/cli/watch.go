package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"squares-board/internal/board"
	"squares-board/internal/config"
	"squares-board/internal/domain"
	"squares-board/internal/infra/push"
	"squares-board/internal/infra/rest"
	"squares-board/internal/view"
)

// NewWatchCmd builds the subcommand that follows the live board.
func NewWatchCmd(configPath, apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the live leaderboard over the push channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), *configPath, *apiBase)
		},
	}
}

func runWatch(ctx context.Context, configPath, apiBase string) error {
	cfg, err := loadConfig(configPath, apiBase)
	if err != nil {
		return err
	}
	if cfg.API.WebsocketURL == "" {
		return fmt.Errorf("no websocket URL configured (set api.websocketUrl or WEBSOCKET_URL)")
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	restClient := rest.NewClient(cfg.API.BaseURL, cfg.API.Token)
	answers := newAnswerSource(cfg, restClient)
	b := board.New()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The initial fetch is attempted once; on failure the push channel is
	// the sole recovery path for staleness.
	if snap, err := restClient.Scoreboard(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "could not load the scoreboard: %v\n", err)
	} else {
		b.ApplySnapshot(snap)
	}

	store, err := selectionStore(cfg)
	if err != nil {
		return err
	}
	selected, err := store.Load()
	if err != nil {
		return err
	}

	listener := push.NewListener(push.Config{
		URL:          cfg.API.WebsocketURL,
		Token:        cfg.API.Token,
		InitialDelay: config.TTLDuration(cfg.Push.InitialDelay, 0),
		MaxDelay:     config.TTLDuration(cfg.Push.MaxDelay, 0),
		MaxRetries:   cfg.Push.MaxRetries,
	}, b, log)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return listener.Run(ctx)
	})
	g.Go(func() error {
		return renderLoop(ctx, b, answers, selected)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("shutting down")
	return nil
}

// renderLoop reprints the board on every update until ctx is canceled.
func renderLoop(ctx context.Context, b *board.Board, answers answerSource, selected string) error {
	updates, cancel := b.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			render(ctx, os.Stdout, snap, answers, selected)
		}
	}
}

func render(ctx context.Context, w io.Writer, snap domain.Snapshot, answers answerSource, selected string) {
	fmt.Fprintln(w)
	view.Standings(w, snap)

	if len(snap.Events) > 0 {
		latest := snap.Events[len(snap.Events)-1]
		fmt.Fprintf(w, "latest: %s\n", latest.Text)
	}

	if selected == "" {
		return
	}
	player, err := findPlayer(snap.Players, selected)
	if err != nil {
		return
	}
	records, err := answers.Answers(ctx, selected)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load answers for %s: %v\n", selected, err)
		return
	}
	fmt.Fprintln(w)
	view.WhatIf(w, player.DisplayName, board.CalculateWhatIf(&player, snap.Players, records))
}
