package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-hotseat/internal"
)

func Serve() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the game to browsers",
		Long: heredoc.Doc(`
			serve starts the HTTP server with the game page and JSON API, and
			the WebSocket server the page plays through. Each browser gets its
			own session, kept in memory or in Redis depending on the config.
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			return app.RunApp(cmd.Context(), newLogger(conf, cmd.OutOrStdout()), conf)
		},
	}
}
