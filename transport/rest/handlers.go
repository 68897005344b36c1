package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/session"
)

const maxBodySize = 1 << 10

type moveRequest struct {
	Cell *int `json:"cell"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type configResponse struct {
	SocketPort string `json:"socket_port"`
}

func (that *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, configResponse{SocketPort: that.socketPort})
}

// handleState returns the caller's game, starting a session if needed.
func (that *Server) handleState(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleState")

	existing, err := that.uGame.GetOrCreateSession(r.Context(), session.FromRequest(r))
	if err != nil {
		log.Error("failed to get or create session", "error", err)
		that.writeError(w, http.StatusInternalServerError, "failed to load the game")
		return
	}

	session.SetCookie(w, existing.ID, that.sessionTTL)
	that.writeJSON(w, http.StatusOK, session.NewView(existing, nil))
}

func (that *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Cell == nil {
		that.writeError(w, http.StatusBadRequest, "cell is required")
		return
	}

	that.withSession(w, r, "handleMove", func(sessionID string) (*usecase.Result, error) {
		return that.uGame.PlayMove(r.Context(), sessionID, *req.Cell)
	})
}

func (that *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	that.withSession(w, r, "handleRestart", func(sessionID string) (*usecase.Result, error) {
		return that.uGame.Restart(r.Context(), sessionID)
	})
}

func (that *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleEndSession")

	sessionID := session.FromRequest(r)
	if sessionID == "" {
		that.writeError(w, http.StatusNotFound, "no session")
		return
	}

	if err := that.uGame.EndSession(r.Context(), sessionID); err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
		log.Error("failed to end session", "error", err)
		that.writeError(w, http.StatusInternalServerError, "failed to end the session")
		return
	}

	session.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// withSession makes sure the caller has a session, runs call on it and
// writes the resulting view.
func (that *Server) withSession(w http.ResponseWriter, r *http.Request, method string, call func(sessionID string) (*usecase.Result, error)) {
	log := that.logger.With("method", method)

	existing, err := that.uGame.GetOrCreateSession(r.Context(), session.FromRequest(r))
	if err != nil {
		log.Error("failed to get or create session", "error", err)
		that.writeError(w, http.StatusInternalServerError, "failed to load the game")
		return
	}

	session.SetCookie(w, existing.ID, that.sessionTTL)

	result, err := call(existing.ID)
	switch {
	case errors.Is(err, apperror.ErrInvalidCell):
		that.writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.Error("failed to update game", "session", existing.ID, "error", err)
		that.writeError(w, http.StatusInternalServerError, "failed to update the game")
		return
	}

	that.writeJSON(w, http.StatusOK, session.NewView(result.Session, result.Notifications))
}

func (that *Server) writeError(w http.ResponseWriter, status int, message string) {
	that.writeJSON(w, status, errorResponse{Error: message})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
