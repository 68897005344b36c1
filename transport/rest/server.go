package rest

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

//go:embed static
var staticFiles embed.FS

type uGame interface {
	GetOrCreateSession(ctx context.Context, sessionID string) (*entity.Session, error)

	PlayMove(ctx context.Context, sessionID string, cell int) (*usecase.Result, error)
	Restart(ctx context.Context, sessionID string) (*usecase.Result, error)

	EndSession(ctx context.Context, sessionID string) error
}

type Server struct {
	logger *slog.Logger
	uGame  uGame

	sessionTTL time.Duration
	socketPort string
}

// New builds the HTTP view. socketPort is handed to the browser page so it
// can reach the WebSocket server.
func New(logger *slog.Logger, uGame uGame, sessionTTL time.Duration, socketPort string) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		uGame:  uGame,

		sessionTTL: sessionTTL,
		socketPort: socketPort,
	}
}

// Handler returns the routes of the HTTP view.
func (that *Server) Handler() http.Handler {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Errorf("embedded static files: %w", err))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", pingHandler)
	mux.HandleFunc("GET /config.json", that.handleConfig)
	mux.HandleFunc("GET /api/state", that.handleState)
	mux.HandleFunc("POST /api/move", that.handleMove)
	mux.HandleFunc("POST /api/restart", that.handleRestart)
	mux.HandleFunc("DELETE /api/session", that.handleEndSession)
	mux.Handle("GET /", http.FileServer(http.FS(static)))

	return mux
}

// Start - serves the HTTP view until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
