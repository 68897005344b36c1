package websocket

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/session"
)

// handleConnect binds the client to the session named in the payload, the
// session cookie, or a new session, in that order.
func (that *Server) handleConnect(ctx context.Context, client *peer, req *Request) error {
	log := that.logger.With("method", "handleConnect")

	sessionID := req.Session
	if sessionID == "" {
		sessionID = client.cookieSession
	}

	existing, err := that.uGame.GetOrCreateSession(ctx, sessionID)
	if err != nil {
		log.Error("failed to get or create session", "error", err)
		return that.sendError(client, "failed to load the game")
	}

	that.bind(client, existing.ID)

	log.Info("client connected", "session", existing.ID)

	return that.send(client, actionGameState, Response{View: session.NewView(existing, nil)})
}

func (that *Server) handleGameTurn(ctx context.Context, client *peer, req *Request) error {
	if req.Cell == nil {
		return that.sendError(client, "cell is required")
	}

	return that.update(client, "handleGameTurn", func(sessionID string) (*usecase.Result, error) {
		return that.uGame.PlayMove(ctx, sessionID, *req.Cell)
	})
}

func (that *Server) handleGameRestart(ctx context.Context, client *peer, _ *Request) error {
	return that.update(client, "handleGameRestart", func(sessionID string) (*usecase.Result, error) {
		return that.uGame.Restart(ctx, sessionID)
	})
}

// update runs call on the client's session and pushes the new state to all
// clients of that session. An ignored move is answered to the caller only.
func (that *Server) update(client *peer, method string, call func(sessionID string) (*usecase.Result, error)) error {
	log := that.logger.With("method", method)

	if client.sessionID == "" {
		return that.sendError(client, "not connected")
	}

	result, err := call(client.sessionID)
	switch {
	case errors.Is(err, apperror.ErrInvalidCell):
		return that.sendError(client, err.Error())
	case errors.Is(err, apperror.ErrSessionNotFound):
		return that.sendError(client, "session expired, connect again")
	case err != nil:
		log.Error("failed to update game", "session", client.sessionID, "error", err)
		return that.sendError(client, "failed to update the game")
	}

	view := session.NewView(result.Session, result.Notifications)

	if len(result.Notifications) == 0 {
		return that.send(client, actionGameState, Response{View: view})
	}

	that.broadcast(client.sessionID, view)

	return nil
}
