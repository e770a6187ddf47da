package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T, difficulty entity.Difficulty, human entity.Mark) *entity.Game {
	t.Helper()

	game, err := entity.NewGame("123", "p1", entity.GameOptions{Difficulty: difficulty, Mark: human})
	require.NoError(t, err)

	return game
}

func TestApplyMove(t *testing.T) {
	t.Run("ApplyMove", func(t *testing.T) {
		// Given: a new game where the human plays X
		game := newGame(t, entity.HardDifficulty, x)

		// When: the human takes cell 0
		outcome := ApplyMove(game, 0)

		// Then: the round continues and it is the bot's turn
		assert.Equal(t, Outcome{Kind: OutcomeContinue, Cell: 0, Mark: x}, outcome)
		assert.Equal(t, entity.Board{x}, game.Board)
		assert.Equal(t, o, game.Turn)
		assert.Equal(t, entity.StateAwaitingAutomatedMove, game.State())
	})

	t.Run("Rejected on cell already occupied", func(t *testing.T) {
		// Given: a game where the bot already holds cell 4
		game := newGame(t, entity.HardDifficulty, x)
		game.Board[4] = o
		snapshot := *game

		// When: the human targets the same cell
		outcome := ApplyMove(game, 4)

		// Then: the move is rejected and nothing changed
		assert.True(t, outcome.IsRejected())
		require.ErrorIs(t, outcome.Err, apperror.ErrCellOccupied)
		assert.Equal(t, snapshot, *game)
	})

	t.Run("Rejected on playing out of turn", func(t *testing.T) {
		// Given: the human plays O and X moves first
		game := newGame(t, entity.HardDifficulty, o)
		snapshot := *game

		// When: the human tries to move
		outcome := ApplyMove(game, 1)

		// Then: the move is rejected and the game state remains unchanged
		assert.True(t, outcome.IsRejected())
		require.ErrorIs(t, outcome.Err, apperror.ErrNotYourTurn)
		assert.Equal(t, snapshot, *game)
	})

	t.Run("Invalid Cell", func(t *testing.T) {
		game := newGame(t, entity.EasyDifficulty, x)

		assert.ErrorIs(t, ApplyMove(game, 20).Err, apperror.ErrInvalidCell)
		assert.ErrorIs(t, ApplyMove(game, -1).Err, apperror.ErrInvalidCell)
		assert.Equal(t, entity.Board{}, game.Board)
	})

	t.Run("Move After Game Finished", func(t *testing.T) {
		// Given: a game the bot has already won
		game := newGame(t, entity.HardDifficulty, x)
		game.Board = entity.Board{o, o, o, x, x, e, e, x, e}
		game.UpdateGameState(o)

		// When: the human tries to move
		outcome := ApplyMove(game, 5)

		// Then: ErrGameFinished is signalled
		assert.ErrorIs(t, outcome.Err, apperror.ErrGameFinished)
		assert.Equal(t, e, game.Board[5])
	})

	t.Run("Winning move ends the round", func(t *testing.T) {
		// Given: the human has two in a row
		game := newGame(t, entity.EasyDifficulty, x)
		game.Board = entity.Board{x, x, e, o, o, e, e, e, e}

		// When: the human completes the row
		outcome := ApplyMove(game, 2)

		// Then: the round is over with a human win
		assert.True(t, outcome.IsRoundOver())
		assert.Equal(t, entity.RoundResult{Kind: entity.ResultWin, Winner: x}, outcome.Result)
		assert.Equal(t, []int{0, 1, 2}, game.WinLine)
		assert.Equal(t, entity.StateRoundOver, game.State())
	})

	t.Run("Last cell without a line is a draw", func(t *testing.T) {
		game := newGame(t, entity.EasyDifficulty, x)
		game.Board = entity.Board{x, o, x, x, o, o, o, x, e}

		outcome := ApplyMove(game, 8)

		assert.True(t, outcome.IsRoundOver())
		assert.Equal(t, entity.RoundResult{Kind: entity.ResultDraw}, outcome.Result)
	})
}

func TestPlayAutomatedMove(t *testing.T) {
	t.Run("Bot opens when it moves first", func(t *testing.T) {
		// Given: the human picked O on hard
		game := newGame(t, entity.HardDifficulty, o)

		// When: the bot plays
		outcome := PlayAutomatedMove(game, DefaultPicker)

		// Then: it takes the first corner and hands the turn over
		assert.Equal(t, Outcome{Kind: OutcomeContinue, Cell: 0, Mark: x}, outcome)
		assert.Equal(t, entity.StateAwaitingHumanMove, game.State())
	})

	t.Run("Bot blocks on hard", func(t *testing.T) {
		game := newGame(t, entity.HardDifficulty, o)
		game.Board = entity.Board{e, e, o, x, e, o, e, e, e}

		outcome := PlayAutomatedMove(game, DefaultPicker)

		assert.Equal(t, 8, outcome.Cell)
		assert.Equal(t, x, game.Board[8])
	})

	t.Run("Rejected on the human's turn", func(t *testing.T) {
		game := newGame(t, entity.HardDifficulty, x)

		outcome := PlayAutomatedMove(game, DefaultPicker)

		assert.ErrorIs(t, outcome.Err, apperror.ErrNotYourTurn)
		assert.Equal(t, entity.Board{}, game.Board)
	})

	t.Run("Rejected after the round is over", func(t *testing.T) {
		game := newGame(t, entity.HardDifficulty, x)
		game.FinishAsDraw()

		outcome := PlayAutomatedMove(game, DefaultPicker)

		assert.ErrorIs(t, outcome.Err, apperror.ErrGameFinished)
	})

	t.Run("No move available ends in a draw", func(t *testing.T) {
		// Given: a full board that was never evaluated and it is the bot's turn
		game := newGame(t, entity.EasyDifficulty, x)
		game.Board = entity.Board{x, o, x, x, o, o, o, x, x}
		game.Turn = o

		// When: the bot is asked to move
		outcome := PlayAutomatedMove(game, DefaultPicker)

		// Then: the round is recorded as a draw
		assert.True(t, outcome.IsRoundOver())
		assert.Equal(t, NoMove, outcome.Cell)
		assert.Equal(t, entity.RoundResult{Kind: entity.ResultDraw}, outcome.Result)
		assert.Equal(t, entity.PlayerTie, game.Winner)
	})

	t.Run("Hard bot never loses a session", func(t *testing.T) {
		// Given: an easy-tier opponent playing the human side
		for seed := 0; seed < 20; seed++ {
			game := newGame(t, entity.HardDifficulty, x)

			for game.IsOngoing() {
				var outcome Outcome
				if game.State() == entity.StateAwaitingHumanMove {
					cell, ok := ChooseRandom(game.Board, fixedPicker(seed))
					require.True(t, ok)
					outcome = ApplyMove(game, cell)
				} else {
					outcome = PlayAutomatedMove(game, DefaultPicker)
				}

				require.False(t, outcome.IsRejected())
			}

			// Then: the human never wins
			assert.False(t, game.IsHumanWin())
		}
	})
}
