package tictactoe

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

// NoMove is the Cell of a DecisionResult that carries no position.
const NoMove = -1

const (
	ScoreWin  = 10
	ScoreLoss = -10
	ScoreDraw = 0
)

// DecisionResult is the engine's pick. Score only means something inside the search.
type DecisionResult struct {
	Cell  int
	Score int
}

func (that DecisionResult) HasMove() bool {
	return that.Cell != NoMove
}

// Picker supplies uniform random indices in [0, n). *rand.Rand satisfies it.
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int {
	return rand.IntN(n) //nolint: gosec // it's ok
}

// DefaultPicker draws from the process-wide math/rand/v2 source.
var DefaultPicker Picker = globalPicker{}

// ChooseRandom - easy tier: any empty cell with equal probability.
func ChooseRandom(board entity.Board, picker Picker) (int, bool) {
	moves := board.AvailableMoves()
	if len(moves) == 0 {
		return NoMove, false
	}

	return moves[picker.IntN(len(moves))], true
}

// ChooseBest - hard tier: exhaustive minimax from the point of view of maximizing.
// The caller's board is passed by value and never changes.
func ChooseBest(board entity.Board, toMove, maximizing, minimizing entity.Mark) DecisionResult {
	return minimax(&board, toMove, maximizing, minimizing)
}

// minimax explores every continuation of board in place and restores each cell before
// moving to the next candidate, so board is unchanged on return.
func minimax(board *entity.Board, toMove, maximizing, minimizing entity.Mark) DecisionResult {
	switch {
	case board.HasWinner(minimizing):
		return DecisionResult{Cell: NoMove, Score: ScoreLoss}
	case board.HasWinner(maximizing):
		return DecisionResult{Cell: NoMove, Score: ScoreWin}
	case board.IsFull():
		return DecisionResult{Cell: NoMove, Score: ScoreDraw}
	}

	next := maximizing
	if toMove == maximizing {
		next = minimizing
	}

	best := DecisionResult{Cell: NoMove}
	for _, cell := range board.AvailableMoves() {
		board[cell] = toMove
		score := minimax(board, next, maximizing, minimizing).Score
		board[cell] = entity.EmptyCell

		if best.Cell == NoMove || isBetter(score, best.Score, toMove == maximizing) {
			best = DecisionResult{Cell: cell, Score: score}
		}
	}

	return best
}

// isBetter keeps the first-seen candidate on equal scores.
func isBetter(score, current int, maximize bool) bool {
	if maximize {
		return score > current
	}

	return score < current
}

// DecideAutomatedMove - picks the bot's next cell for the given difficulty.
// The bool is false when the bot must not move.
func DecideAutomatedMove(board entity.Board, difficulty entity.Difficulty, marks entity.Marks, picker Picker) (int, bool) {
	if difficulty == entity.HardDifficulty {
		result := ChooseBest(board, marks.Bot, marks.Bot, marks.Human)
		return result.Cell, result.HasMove()
	}

	return ChooseRandom(board, picker)
}
