package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/terminal"
)

func Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in this terminal",
		Long: heredoc.Doc(`
			play runs a hot-seat game in the terminal. Players take turns
			entering the number of a free cell:

			   0 | 1 | 2
			  ---+---+---
			   3 | 4 | 5
			  ---+---+---
			   6 | 7 | 8

			Enter r to start a new round and q to quit. Wins are counted
			until you quit.
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			noBell, err := cmd.Flags().GetBool("no-bell")
			if err != nil {
				return err
			}

			// logs go to stderr so they do not break the board
			logger := newLogger(conf, cmd.ErrOrStderr())

			return terminal.New(logger, cmd.InOrStdin(), cmd.OutOrStdout(), !noBell).Run(cmd.Context())
		},
	}

	cmd.Flags().BoolP("no-bell", "q", false, "Don't ring the terminal bell on moves and wins")

	return cmd
}
