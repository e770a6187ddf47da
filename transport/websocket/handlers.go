package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

// clientErrors are reported to the client verbatim; anything else is logged and masked.
var clientErrors = []error{
	apperror.ErrNotYourTurn,
	apperror.ErrCellOccupied,
	apperror.ErrInvalidCell,
	apperror.ErrNoActiveGame,
	apperror.ErrInvalidDifficulty,
	apperror.ErrInvalidMark,
	apperror.ErrPlayerNotFound,
	apperror.ErrGameNotFound,
}

func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new player")
	}

	if player.GameID != "" {
		return that.handleExistingGame(ctx, conn, msg, player)
	}

	if err = that.sendMessage(conn, msg.Action, ResponsePayload{Player: player}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "player_id", player.ID)

	return nil
}

// handleExistingGame - resumes a round the player left running.
func (that *Server) handleExistingGame(ctx context.Context, conn *websocket.Conn, msg *Message, player *entity.Player) error {
	log := that.logger.With("method", "handleExistingGame")

	game, err := that.gameUseCase.GetGameByPlayerID(ctx, player.ID)
	if errors.Is(err, apperror.ErrNoActiveGame) {
		log.Info("round is gone, connecting without it", "player_id", player.ID, "game_id", player.GameID)

		if player, err = that.gameUseCase.GetPlayer(ctx, player.ID); err != nil {
			return that.sendUseCaseError(conn, msg.Action, err)
		}

		return that.sendMessage(conn, msg.Action, ResponsePayload{Player: player})
	}

	if err != nil {
		log.Error("failed to get game", "game_id", player.GameID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to get the game")
	}

	return that.sendMessage(conn, msg.Action, newGameResponse(player, game))
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, ok, err := that.readPlayerPayload(conn, msg)
	if !ok {
		return err
	}

	if payloadReq.Game == nil {
		return that.sendErrorResponse(conn, msg.Action, "Game is required")
	}

	game, err := that.gameUseCase.NewGame(ctx, payloadReq.Player.ID, *payloadReq.Game)
	if err != nil {
		log.Error("failed to create game", "player_id", payloadReq.Player.ID, "error", err)
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	player, err := that.gameUseCase.GetPlayer(ctx, payloadReq.Player.ID)
	if err != nil {
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	log.Info("game created", "game_id", game.ID, "difficulty", game.Difficulty, "human_mark", game.HumanMark)

	return that.sendMessage(conn, msg.Action, newGameResponse(player, game))
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, ok, err := that.readPlayerPayload(conn, msg)
	if !ok {
		return err
	}

	if payloadReq.Cell == nil {
		return that.sendErrorResponse(conn, msg.Action, "Cell is required")
	}

	log = log.With("player_id", payloadReq.Player.ID)

	game, err := that.gameUseCase.MakeTurn(ctx, payloadReq.Player.ID, *payloadReq.Cell)
	if err != nil && !errors.Is(err, apperror.ErrGameFinished) {
		log.Info("turn rejected", "error", err)
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	player, err := that.gameUseCase.GetPlayer(ctx, payloadReq.Player.ID)
	if err != nil {
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	return that.sendMessage(conn, msg.Action, newGameResponse(player, game))
}

func (that *Server) handleGameLeave(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameLeave")

	payloadReq, ok, err := that.readPlayerPayload(conn, msg)
	if !ok {
		return err
	}

	if err = that.gameUseCase.EndGame(ctx, payloadReq.Player.ID); err != nil {
		log.Info("failed to end game", "error", err)
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	player, err := that.gameUseCase.GetPlayer(ctx, payloadReq.Player.ID)
	if err != nil {
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	log.Info("player left the game", "player_id", player.ID)

	return that.sendMessage(conn, msg.Action, ResponsePayload{Player: player})
}

// readPlayerPayload - decodes the payload and checks the player is present.
// When ok is false the client has already been answered and err is the send result.
func (that *Server) readPlayerPayload(conn *websocket.Conn, msg *Message) (Payload, bool, error) {
	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return payloadReq, false, that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	if payloadReq.Player == nil || payloadReq.Player.ID == "" {
		return payloadReq, false, that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	return payloadReq, true, nil
}

func (that *Server) sendUseCaseError(conn *websocket.Conn, action string, err error) error {
	for _, clientErr := range clientErrors {
		if errors.Is(err, clientErr) {
			return that.sendErrorResponse(conn, action, clientErr.Error())
		}
	}

	that.logger.Error("request failed", "action", action, "error", err)

	return that.sendErrorResponse(conn, action, "internal error")
}
