// Package terminal is the hot-seat view for a single terminal: both
// players share the keyboard and enter cell numbers in turn.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/view"
)

const (
	bell   = "\a"
	prompt = "> "
	help   = "enter a cell 0-8, r to restart or q to quit"
)

type Game struct {
	logger *slog.Logger
	in     *bufio.Scanner
	out    io.Writer
	bell   bool

	engine *tictactoe.Engine
}

// New returns a terminal game reading commands from in and drawing to out.
// With withBell set, sound cues ring the terminal bell.
func New(logger *slog.Logger, in io.Reader, out io.Writer, withBell bool) *Game {
	game := &Game{
		logger: logger.With("component", "terminal"),
		in:     bufio.NewScanner(in),
		out:    out,
		bell:   withBell,
	}

	game.engine = tictactoe.NewEngine(game)

	return game
}

// Notify plays the cues of a notification.
func (that *Game) Notify(notification entity.Notification) {
	that.logger.Debug("game notification", "kind", notification.Kind, "cell", notification.Cell, "status", notification.Status.String())

	if !that.bell {
		return
	}

	for range notification.Cues {
		that.print(bell)
	}
}

// Run plays until the input ends, the players quit or ctx is canceled.
func (that *Game) Run(ctx context.Context) error {
	that.printf("Tic-Tac-Toe: %s\n\n", help)
	that.render()

	for {
		that.print(prompt)

		if !that.in.Scan() {
			if err := that.in.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if quit := that.execute(strings.TrimSpace(that.in.Text())); quit {
			that.print("Bye!\n")
			return nil
		}
	}
}

// execute runs one command and reports whether the players want to quit.
func (that *Game) execute(command string) bool {
	switch strings.ToLower(command) {
	case "":
		return false
	case "q", "quit":
		return true
	case "r", "restart":
		that.engine.Restart()
		that.render()
		return false
	}

	cell, err := strconv.Atoi(command)
	if err != nil {
		that.printf("unknown command %q, %s\n", command, help)
		return false
	}

	if err = that.engine.CheckMove(cell); err != nil {
		that.printf("%s\n", hint(cell, err))
		return false
	}

	if _, err = that.engine.PlayMove(cell); err != nil {
		that.logger.Error("failed to play move", "cell", cell, "error", err)
		return false
	}

	that.render()

	return false
}

func hint(cell int, err error) string {
	switch {
	case errors.Is(err, apperror.ErrInvalidCell):
		return fmt.Sprintf("cell %d does not exist, pick 0-8", cell)
	case errors.Is(err, apperror.ErrCellOccupied):
		return fmt.Sprintf("cell %d is taken", cell)
	case errors.Is(err, apperror.ErrGameFinished):
		return "the game is over, enter r to play again"
	default:
		return err.Error()
	}
}

func (that *Game) render() {
	that.print(view.RenderBoard(that.engine.Board(), that.engine.WinningLine()))
	that.printf("\n%s\n", view.StatusText(that.engine.Status(), that.engine.CurrentPlayer(), that.engine.Tally()))
}

func (that *Game) print(text string) {
	if _, err := io.WriteString(that.out, text); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

func (that *Game) printf(format string, args ...any) {
	that.print(fmt.Sprintf(format, args...))
}
