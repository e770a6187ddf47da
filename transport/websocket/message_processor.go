package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload is what clients send.
type Payload struct {
	Player *entity.Player      `json:"player,omitempty"`
	Game   *entity.GameOptions `json:"game,omitempty"`
	Cell   *int                `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Player *entity.Player      `json:"player,omitempty"`
	Game   *entity.Game        `json:"game,omitempty"`
	State  entity.State        `json:"state,omitempty"`
	Result *entity.RoundResult `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
}

func newGameResponse(player *entity.Player, game *entity.Game) ResponsePayload {
	response := ResponsePayload{
		Player: player,
		Game:   game,
	}

	if game != nil {
		response.State = game.State()
		if result, ok := game.Result(); ok {
			response.Result = &result
		}
	}

	return response
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *websocket.Conn, action, errorMsg string) error {
	if err := that.sendMessage(conn, action, ResponsePayload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
