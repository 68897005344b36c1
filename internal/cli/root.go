// Package cli holds the command line of the game: a server for browsers
// and a terminal hot-seat mode.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/config"
)

const defaultConfigPath = "config.yml"

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "tictactoe",
		Short: "Two-player hot-seat Tic-Tac-Toe",
		Long: heredoc.Doc(`
			Two players share one board and take turns placing X and O.
			The first to line up three marks wins, a full board is a draw.

			Play in a terminal with "tictactoe play", or run "tictactoe serve"
			and open the HTTP port in a browser.
		`),

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringP("config", "c", defaultConfigPath, "Path to the YAML config file")

	root.AddCommand(Serve())
	root.AddCommand(Play())

	return root
}

// loadConfig reads the --config file. The default file is optional, in
// which case only the environment is read.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to read config flag: %w", err)
	}

	if !cmd.Flags().Changed("config") {
		if _, err = os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}

	return config.Load(path)
}

func newLogger(conf *config.Config, out io.Writer) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}
