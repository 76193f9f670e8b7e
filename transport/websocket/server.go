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

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/events"
)

const writeTimeout = 10 * time.Second

type gameUseCase interface {
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeMove(ctx context.Context, gameID string, cell entity.Cell) (*entity.Game, error)
	ResetGame(ctx context.Context, gameID string) (*entity.Game, error)
}

type broadcaster interface {
	Subscribe(gameID string) *events.Subscriber
	Unsubscribe(sub *events.Subscriber)
}

type handlerFunc func(ctx context.Context, conn *connection, gameID string, msg *Message) error

type Server struct {
	logger      *slog.Logger
	games       gameUseCase
	broadcaster broadcaster
	upgrader    websocket.Upgrader

	handlers map[string]handlerFunc
	srv      *http.Server
}

func New(logger *slog.Logger, games gameUseCase, broadcaster broadcaster) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		games:       games,
		broadcaster: broadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionMove] = server.handleMove
	server.handlers[actionReset] = server.handleReset

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws/games/{id}", that.serveGame)

	return mux
}

// Start - starts WebSocket server and blocks until it stops. Shutdown makes it return nil.
func (that *Server) Start(port string) error {
	that.srv = &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if that.srv == nil {
		return nil
	}

	if err := that.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// serveGame - upgrades the connection, sends the current game and then streams its events.
// The subscription starts before the game is read, so events published meanwhile are
// buffered and follow the snapshot.
func (that *Server) serveGame(writer http.ResponseWriter, req *http.Request) {
	gameID := req.PathValue("id")
	log := that.logger.With("method", "serveGame", "gameID", gameID)

	sub := that.broadcaster.Subscribe(gameID)
	defer that.broadcaster.Unsubscribe(sub)

	game, err := that.games.GetGame(req.Context(), gameID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		http.Error(writer, "game not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to get game", "error", err)
		http.Error(writer, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ws, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := &connection{ws: ws}
	defer conn.close()

	log.Info("WebSocket connection established")

	if err = conn.send(actionState, Payload{Game: game}); err != nil {
		log.Error("failed to send game state", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()

	go func() {
		defer cancel()
		that.readMessages(ctx, conn, gameID)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}

			if err = conn.send(actionEvent, Payload{Event: &event}); err != nil {
				log.Error("failed to send event", "error", err)
				return
			}
		}
	}
}

// readMessages - processes messages from the client until the connection closes.
func (that *Server) readMessages(ctx context.Context, conn *connection, gameID string) {
	log := that.logger.With("method", "readMessages", "gameID", gameID)

	for {
		var message Message
		if err := conn.ws.ReadJSON(&message); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("stopped reading messages", "error", err)
			}
			return
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			_ = conn.send(message.Action, Payload{Error: "unknown action"})
			continue
		}

		if err := handler(ctx, conn, gameID, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// handleMove - applied moves reach every subscriber, the mover included, through the broadcaster;
// only rejections are answered directly.
func (that *Server) handleMove(ctx context.Context, conn *connection, gameID string, msg *Message) error {
	var payload Payload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.Cell == nil {
		return conn.send(msg.Action, Payload{Error: "cell is required"})
	}

	game, err := that.games.MakeMove(ctx, gameID, *payload.Cell)
	if err != nil {
		return conn.send(msg.Action, Payload{Game: game, Error: err.Error()})
	}

	return nil
}

func (that *Server) handleReset(ctx context.Context, conn *connection, gameID string, msg *Message) error {
	if _, err := that.games.ResetGame(ctx, gameID); err != nil {
		return conn.send(msg.Action, Payload{Error: err.Error()})
	}

	return nil
}

// connection - gorilla connections allow one writer at a time.
type connection struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (that *connection) send(action string, payload Payload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.ws.WriteJSON(Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *connection) close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	_ = that.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	_ = that.ws.Close()
}
