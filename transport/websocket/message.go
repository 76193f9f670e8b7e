package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/events"
)

const (
	actionState = "game:state"
	actionEvent = "game:event"
	actionMove  = "game:move"
	actionReset = "game:reset"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Game  *entity.Game      `json:"game,omitempty"`
	Event *events.GameEvent `json:"event,omitempty"`
	Cell  *entity.Cell      `json:"cell,omitempty"`
	Error string            `json:"error,omitempty"`
}
