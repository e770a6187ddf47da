package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

// fakeGameUseCase keeps one player and one round in memory and plays the bot instantly.
type fakeGameUseCase struct {
	player *entity.Player
	game   *entity.Game
}

func (that *fakeGameUseCase) GetOrCreatePlayer(_ context.Context, playerID string) (*entity.Player, error) {
	if that.player == nil || that.player.ID != playerID {
		that.player = &entity.Player{ID: "p1"}
	}

	return that.player, nil
}

func (that *fakeGameUseCase) GetPlayer(_ context.Context, playerID string) (*entity.Player, error) {
	if that.player == nil || that.player.ID != playerID {
		return nil, apperror.ErrPlayerNotFound
	}

	return that.player, nil
}

func (that *fakeGameUseCase) NewGame(ctx context.Context, playerID string, opts entity.GameOptions) (*entity.Game, error) {
	player, err := that.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	game, err := entity.NewGame("g1", playerID, opts)
	if err != nil {
		return nil, err
	}

	if game.State() == entity.StateAwaitingAutomatedMove {
		tictactoe.PlayAutomatedMove(game, tictactoe.DefaultPicker)
	}

	that.game = game
	player.GameID = game.ID
	player.Mark = game.HumanMark

	return game, nil
}

func (that *fakeGameUseCase) GetGameByPlayerID(context.Context, string) (*entity.Game, error) {
	if that.game == nil {
		if that.player != nil {
			that.player.LeaveGame()
		}

		return nil, apperror.ErrNoActiveGame
	}

	return that.game, nil
}

func (that *fakeGameUseCase) MakeTurn(_ context.Context, _ string, cell int) (*entity.Game, error) {
	if that.game == nil {
		return nil, apperror.ErrNoActiveGame
	}

	outcome := tictactoe.ApplyMove(that.game, cell)
	if outcome.IsRejected() {
		return nil, outcome.Err
	}

	if !outcome.IsRoundOver() {
		tictactoe.PlayAutomatedMove(that.game, tictactoe.DefaultPicker)
	}

	if that.game.IsFinished() {
		that.player.RecordResult(that.game)
		that.player.LeaveGame()

		game := that.game
		that.game = nil

		return game, apperror.ErrGameFinished
	}

	return that.game, nil
}

func (that *fakeGameUseCase) EndGame(context.Context, string) error {
	if that.game == nil {
		return apperror.ErrNoActiveGame
	}

	that.game = nil
	that.player.LeaveGame()

	return nil
}

func dial(t *testing.T, useCase gameUseCase) *websocket.Conn {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := New(logger, useCase)

	httpServer := httptest.NewServer(server.Handler(context.Background()))
	t.Cleanup(httpServer.Close)

	url := "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws"

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = resp.Body.Close()
		_ = conn.Close()
	})

	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, action string, payload any) (string, ResponsePayload) {
	t.Helper()

	payloadJSON, err := json.Marshal(payload)
	require.NoError(t, err)

	require.NoError(t, conn.WriteJSON(Message{Action: action, Payload: payloadJSON}))

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))

	var response ResponsePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &response))

	return msg.Action, response
}

func TestServer_GameFlow(t *testing.T) {
	conn := dial(t, &fakeGameUseCase{})
	player := map[string]string{"id": "p1"}

	// Given: a connected player
	action, response := roundTrip(t, conn, actionConnect, map[string]any{})
	require.Equal(t, actionConnect, action)
	require.NotNil(t, response.Player)
	assert.Equal(t, "p1", response.Player.ID)

	// When: a hard round is started as O
	_, response = roundTrip(t, conn, actionGameNew, map[string]any{
		"player": player,
		"game":   map[string]string{"difficulty": "hard", "mark": "O"},
	})

	// Then: the bot's opening move is already on the board
	require.Empty(t, response.Error)
	require.NotNil(t, response.Game)
	assert.Equal(t, entity.MarkX, response.Game.Board[0])
	assert.Equal(t, entity.StateAwaitingHumanMove, response.State)

	// When: the human plays an occupied cell
	_, response = roundTrip(t, conn, actionGameTurn, map[string]any{"player": player, "cell": 0})

	// Then: the error is reported
	assert.Equal(t, apperror.ErrCellOccupied.Error(), response.Error)

	// When: the human plays the center
	_, response = roundTrip(t, conn, actionGameTurn, map[string]any{"player": player, "cell": 4})

	// Then: the bot has answered
	require.Empty(t, response.Error)
	assert.Equal(t, entity.MarkO, response.Game.Board[4])
	assert.Equal(t, entity.MarkX, response.Game.Board[1])

	// When: the player leaves
	action, response = roundTrip(t, conn, actionGameLeave, map[string]any{"player": player})

	// Then: the player is detached from the round
	assert.Equal(t, actionGameLeave, action)
	require.NotNil(t, response.Player)
	assert.Empty(t, response.Player.GameID)
}

func TestServer_FinishedRound(t *testing.T) {
	game, err := entity.NewGame("g1", "p1", entity.GameOptions{Difficulty: entity.EasyDifficulty, Mark: entity.MarkX})
	require.NoError(t, err)

	game.Board = entity.Board{entity.MarkX, entity.MarkX, entity.EmptyCell, entity.MarkO, entity.MarkO}

	conn := dial(t, &fakeGameUseCase{
		player: &entity.Player{ID: "p1", GameID: "g1", Mark: entity.MarkX},
		game:   game,
	})

	// Given: a reconnecting player gets the running round back
	_, response := roundTrip(t, conn, actionConnect, map[string]any{"player": map[string]string{"id": "p1"}})
	require.NotNil(t, response.Game)
	assert.Equal(t, "g1", response.Game.ID)

	// When: the winning move is played
	_, response = roundTrip(t, conn, actionGameTurn, map[string]any{"player": map[string]string{"id": "p1"}, "cell": 2})

	// Then: the final game, the result and the updated tally are sent
	require.Empty(t, response.Error)
	assert.Equal(t, entity.StateRoundOver, response.State)
	require.NotNil(t, response.Result)
	assert.Equal(t, entity.RoundResult{Kind: entity.ResultWin, Winner: entity.MarkX}, *response.Result)
	assert.Equal(t, []int{0, 1, 2}, response.Game.WinLine)
	assert.Equal(t, 1, response.Player.Score.Wins)
	assert.True(t, response.Player.CanSubmitScore)
}

func TestServer_ConnectAfterRoundExpired(t *testing.T) {
	// Given: the player still references a round that is no longer stored
	conn := dial(t, &fakeGameUseCase{
		player: &entity.Player{ID: "p1", GameID: "expired", Mark: entity.MarkX, Score: entity.Score{Wins: 2}},
	})

	// When: the player reconnects
	action, response := roundTrip(t, conn, actionConnect, map[string]any{"player": map[string]string{"id": "p1"}})

	// Then: the player is returned without a round and keeps the tally
	assert.Equal(t, actionConnect, action)
	require.Empty(t, response.Error)
	require.NotNil(t, response.Player)
	assert.Equal(t, "p1", response.Player.ID)
	assert.Empty(t, response.Player.GameID)
	assert.Equal(t, 2, response.Player.Score.Wins)
	assert.Nil(t, response.Game)

	// When: a new round is started
	_, response = roundTrip(t, conn, actionGameNew, map[string]any{
		"player": map[string]string{"id": "p1"},
		"game":   map[string]string{"difficulty": "easy", "mark": "X"},
	})

	// Then: it works as usual
	require.Empty(t, response.Error)
	require.NotNil(t, response.Game)
	assert.Equal(t, entity.StateAwaitingHumanMove, response.State)
}

func TestServer_BadRequests(t *testing.T) {
	conn := dial(t, &fakeGameUseCase{})

	t.Run("Unknown action", func(t *testing.T) {
		action, response := roundTrip(t, conn, "game:join", map[string]any{})

		assert.Equal(t, "game:join", action)
		assert.Equal(t, "unknown action", response.Error)
	})

	t.Run("Missing player", func(t *testing.T) {
		_, response := roundTrip(t, conn, actionGameTurn, map[string]any{"cell": 1})

		assert.Equal(t, "Player is required", response.Error)
	})

	t.Run("Not JSON", func(t *testing.T) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))

		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, actionError, msg.Action)
	})

	t.Run("Turn without a round", func(t *testing.T) {
		roundTrip(t, conn, actionConnect, map[string]any{})

		_, response := roundTrip(t, conn, actionGameTurn, map[string]any{"player": map[string]string{"id": "p1"}, "cell": 1})

		assert.Equal(t, apperror.ErrNoActiveGame.Error(), response.Error)
	})
}
