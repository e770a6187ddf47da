package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	t.Run("X moves first by default", func(t *testing.T) {
		// When: the human picks O on hard
		game, err := NewGame("123", "p1", GameOptions{Difficulty: HardDifficulty, Mark: MarkO})
		require.NoError(t, err)

		// Then: the bot holds X and opens the round
		expectedGame := &Game{
			ID:         "123",
			PlayerID:   "p1",
			Turn:       MarkX,
			Status:     StatusOngoing,
			Difficulty: HardDifficulty,
			HumanMark:  MarkO,
			BotMark:    MarkX,
		}

		require.Equal(t, expectedGame, game)
		assert.Equal(t, StateAwaitingAutomatedMove, game.State())
	})

	t.Run("First mover is configurable", func(t *testing.T) {
		game, err := NewGame("123", "p1", GameOptions{Difficulty: EasyDifficulty, Mark: MarkO, FirstMark: MarkO})
		require.NoError(t, err)

		assert.Equal(t, MarkO, game.Turn)
		assert.Equal(t, StateAwaitingHumanMove, game.State())
	})

	t.Run("Rejects unknown difficulty", func(t *testing.T) {
		_, err := NewGame("123", "p1", GameOptions{Difficulty: "medium", Mark: MarkX})

		assert.ErrorIs(t, err, apperror.ErrInvalidDifficulty)
	})

	t.Run("Rejects unknown mark", func(t *testing.T) {
		_, err := NewGame("123", "p1", GameOptions{Difficulty: EasyDifficulty, Mark: "Z"})
		assert.ErrorIs(t, err, apperror.ErrInvalidMark)

		_, err = NewGame("123", "p1", GameOptions{Difficulty: EasyDifficulty, Mark: MarkX, FirstMark: "Z"})
		assert.ErrorIs(t, err, apperror.ErrInvalidMark)
	})
}

func TestGame_UpdateGameState(t *testing.T) {
	t.Run("Updates game state when Player X wins", func(t *testing.T) {
		// Given: a game where X has just completed the top row
		game := &Game{
			Board: Board{
				MarkX, MarkX, MarkX,
				MarkO, MarkO, EmptyCell,
				EmptyCell, EmptyCell, EmptyCell,
			},
			Status:    StatusOngoing,
			Turn:      MarkX,
			HumanMark: MarkX,
			BotMark:   MarkO,
		}

		// When: updating the game state
		game.UpdateGameState(MarkX)

		// Then: the game should be finished with X as the winner
		assert.Equal(t, StatusFinished, game.Status)
		assert.Equal(t, string(MarkX), game.Winner)
		assert.Equal(t, []int{0, 1, 2}, game.WinLine)
		assert.Equal(t, EmptyCell, game.Turn)
		assert.Equal(t, StateRoundOver, game.State())
		assert.True(t, game.IsHumanWin())
	})

	t.Run("Updates game state when the game is a tie", func(t *testing.T) {
		// Given: the last empty cell was just filled without a line
		game := &Game{
			Board: Board{
				MarkX, MarkO, MarkX,
				MarkX, MarkO, MarkO,
				MarkO, MarkX, MarkX,
			},
			Status: StatusOngoing,
			Turn:   MarkX,
		}

		// When: updating the game state
		game.UpdateGameState(MarkX)

		// Then: the game should be finished with a tie
		assert.Equal(t, StatusFinished, game.Status)
		assert.Equal(t, PlayerTie, game.Winner)
		assert.Empty(t, game.WinLine)

		result, ok := game.Result()
		require.True(t, ok)
		assert.Equal(t, RoundResult{Kind: ResultDraw}, result)
	})

	t.Run("Turn flips when the round continues", func(t *testing.T) {
		// Given: an ongoing game
		game := &Game{
			Board:  Board{MarkX},
			Status: StatusOngoing,
			Turn:   MarkX,
		}

		// When: updating the game state after X moved
		game.UpdateGameState(MarkX)

		// Then: it is O's turn and there is no result yet
		assert.Equal(t, StatusOngoing, game.Status)
		assert.Equal(t, MarkO, game.Turn)

		_, ok := game.Result()
		assert.False(t, ok)
	})
}

func TestGame_FinishAsDraw(t *testing.T) {
	game := &Game{Status: StatusOngoing, Turn: MarkO, HumanMark: MarkX, BotMark: MarkO}

	game.FinishAsDraw()

	assert.True(t, game.IsFinished())
	assert.Equal(t, PlayerTie, game.Winner)
	assert.False(t, game.IsHumanWin())
}

func TestPlayer_RecordResult(t *testing.T) {
	t.Run("Win enables score submission", func(t *testing.T) {
		player := &Player{ID: "p1"}
		game := &Game{Status: StatusFinished, Winner: string(MarkO), HumanMark: MarkO, BotMark: MarkX}

		player.RecordResult(game)

		assert.Equal(t, Score{Wins: 1}, player.Score)
		assert.True(t, player.CanSubmitScore)
	})

	t.Run("Loss and draw are tallied", func(t *testing.T) {
		player := &Player{ID: "p1", CanSubmitScore: true}

		player.RecordResult(&Game{Status: StatusFinished, Winner: string(MarkX), HumanMark: MarkO, BotMark: MarkX})
		player.RecordResult(&Game{Status: StatusFinished, Winner: PlayerTie, HumanMark: MarkO, BotMark: MarkX})

		assert.Equal(t, Score{Losses: 1, Draws: 1}, player.Score)
		assert.False(t, player.CanSubmitScore)
	})

	t.Run("Unfinished game is ignored", func(t *testing.T) {
		player := &Player{ID: "p1"}

		player.RecordResult(&Game{Status: StatusOngoing})

		assert.Equal(t, Score{}, player.Score)
	})
}
