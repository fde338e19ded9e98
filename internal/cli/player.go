package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"squares-board/internal/config"
	"squares-board/internal/infra/state"
)

// NewPlayerCmd builds the subcommands that manage the tracked player.
func NewPlayerCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Manage the tracked player selection",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <identity>",
		Short: "Track a player across runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storeFor(*configPath)
			if err != nil {
				return err
			}
			if err := store.Save(args[0]); err != nil {
				return err
			}
			fmt.Printf("tracking %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the tracked player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storeFor(*configPath)
			if err != nil {
				return err
			}
			identity, err := store.Load()
			if err != nil {
				return err
			}
			if identity == "" {
				fmt.Println("no player tracked")
				return nil
			}
			fmt.Println(identity)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Stop tracking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storeFor(*configPath)
			if err != nil {
				return err
			}
			return store.Clear()
		},
	})

	return cmd
}

// storeFor opens the selection store without requiring API settings; the
// player subcommands work offline.
func storeFor(configPath string) (*state.SelectionStore, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return selectionStore(cfg)
}
