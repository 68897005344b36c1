package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/session"
)

const (
	maxMessageSize  = 1 << 10
	writeWait       = 5 * time.Second
	shutdownTimeout = 5 * time.Second
)

type uGame interface {
	GetOrCreateSession(ctx context.Context, sessionID string) (*entity.Session, error)

	PlayMove(ctx context.Context, sessionID string, cell int) (*usecase.Result, error)
	Restart(ctx context.Context, sessionID string) (*usecase.Result, error)
}

type handler func(ctx context.Context, client *peer, req *Request) error

// peer is one websocket connection. gorilla allows a single concurrent
// writer, so writes go through mu.
type peer struct {
	conn *websocket.Conn
	mu   sync.Mutex

	// newest game view written so far, guarded by mu
	viewSession string
	viewVersion int64

	cookieSession string
	sessionID     string
}

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	upgrader websocket.Upgrader

	handlers map[string]handler

	connectionsMutex sync.RWMutex
	connections      map[string]map[*peer]struct{}
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the page is served from the HTTP port, so the origin never matches
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers:    make(map[string]handler),
		connections: make(map[string]map[*peer]struct{}),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameRestart] = server.handleGameRestart

	return server
}

// Handler serves the websocket endpoint. Connections are closed when ctx is
// canceled.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
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

// serveConnection upgrades the request and reads messages until the client
// goes away.
func (that *Server) serveConnection(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := &peer{
		conn:          conn,
		cookieSession: session.FromRequest(req),
	}

	done := make(chan struct{})
	defer func() {
		close(done)
		that.disconnect(client)
		_ = conn.Close()
	}()

	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	conn.SetReadLimit(maxMessageSize)

	for {
		var msg Message
		if err = conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("connection closed unexpectedly", "error", err)
			}

			return
		}

		if err = that.processMessage(ctx, client, &msg); err != nil {
			log.Error("failed to process message", "action", msg.Action, "error", err)
			return
		}
	}
}

func (that *Server) processMessage(ctx context.Context, client *peer, msg *Message) error {
	handle, ok := that.handlers[msg.Action]
	if !ok {
		return that.sendError(client, fmt.Sprintf("unknown action %q", msg.Action))
	}

	var req Request
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return that.sendError(client, "invalid payload")
		}
	}

	return handle(ctx, client, &req)
}

// bind attaches client to sessionID, detaching it from its previous session.
func (that *Server) bind(client *peer, sessionID string) {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	that.unbindLocked(client)

	clients, ok := that.connections[sessionID]
	if !ok {
		clients = make(map[*peer]struct{})
		that.connections[sessionID] = clients
	}

	clients[client] = struct{}{}
	client.sessionID = sessionID
}

func (that *Server) disconnect(client *peer) {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	that.unbindLocked(client)
}

func (that *Server) unbindLocked(client *peer) {
	if client.sessionID == "" {
		return
	}

	clients := that.connections[client.sessionID]
	delete(clients, client)

	if len(clients) == 0 {
		delete(that.connections, client.sessionID)
	}
}

// broadcast sends the view to every client playing the session.
func (that *Server) broadcast(sessionID string, view *session.View) {
	log := that.logger.With("method", "broadcast", "session", sessionID)

	that.connectionsMutex.RLock()
	clients := make([]*peer, 0, len(that.connections[sessionID]))
	for client := range that.connections[sessionID] {
		clients = append(clients, client)
	}
	that.connectionsMutex.RUnlock()

	for _, client := range clients {
		if err := that.send(client, actionGameState, Response{View: view}); err != nil {
			log.Error("failed to send game update", "error", err)
		}
	}
}

// send writes one message to client. A game view older than the last one
// the client received is dropped: broadcasts for the same session may race
// once the session lock is released.
func (that *Server) send(client *peer, action string, payload Response) error {
	client.mu.Lock()
	defer client.mu.Unlock()

	if view := payload.View; view != nil {
		if view.Session == client.viewSession && view.Version < client.viewVersion {
			that.logger.Debug("dropped stale game view", "session", view.Session, "version", view.Version, "latest", client.viewVersion)
			return nil
		}

		client.viewSession, client.viewVersion = view.Session, view.Version
	}

	if err := client.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := client.conn.WriteJSON(reply{Action: action, Payload: payload}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(client *peer, errorMsg string) error {
	if err := that.send(client, actionError, Response{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
