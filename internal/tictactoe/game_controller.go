package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type OutcomeKind string

const (
	OutcomeRejected  OutcomeKind = "rejected"
	OutcomeContinue  OutcomeKind = "continue"
	OutcomeRoundOver OutcomeKind = "round_over"
)

// Outcome is emitted for every attempted move. A rejected move leaves the game untouched
// and Err says why.
type Outcome struct {
	Kind   OutcomeKind
	Cell   int
	Mark   entity.Mark
	Result entity.RoundResult
	Err    error
}

func (that Outcome) IsRejected() bool {
	return that.Kind == OutcomeRejected
}

func (that Outcome) IsRoundOver() bool {
	return that.Kind == OutcomeRoundOver
}

// ApplyMove - places the human mark on cell.
func ApplyMove(game *entity.Game, cell int) Outcome {
	if err := validateMove(game, game.HumanMark, cell); err != nil {
		return rejected(cell, game.HumanMark, err)
	}

	return place(game, game.HumanMark, cell)
}

// PlayAutomatedMove - asks the engine for the bot's cell and places it.
// A bot with nothing to play ends the round as a draw.
func PlayAutomatedMove(game *entity.Game, picker Picker) Outcome {
	if game.IsFinished() {
		return rejected(NoMove, game.BotMark, apperror.ErrGameFinished)
	}

	if game.Turn != game.BotMark {
		return rejected(NoMove, game.BotMark, apperror.ErrNotYourTurn)
	}

	cell, ok := DecideAutomatedMove(game.Board, game.Difficulty, game.Marks(), picker)
	if !ok {
		game.FinishAsDraw()

		return Outcome{
			Kind:   OutcomeRoundOver,
			Cell:   NoMove,
			Mark:   game.BotMark,
			Result: entity.RoundResult{Kind: entity.ResultDraw},
		}
	}

	return place(game, game.BotMark, cell)
}

// validateMove - checks if the move is valid.
func validateMove(game *entity.Game, mark entity.Mark, cell int) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !entity.IsValidCell(cell) {
		return apperror.ErrInvalidCell
	}

	if game.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if !game.Board.IsEmptyCell(cell) {
		return apperror.ErrCellOccupied
	}

	return nil
}

func place(game *entity.Game, mark entity.Mark, cell int) Outcome {
	game.Board[cell] = mark
	game.UpdateGameState(mark)

	outcome := Outcome{Kind: OutcomeContinue, Cell: cell, Mark: mark}
	if result, ok := game.Result(); ok {
		outcome.Kind = OutcomeRoundOver
		outcome.Result = result
	}

	return outcome
}

func rejected(cell int, mark entity.Mark, err error) Outcome {
	return Outcome{Kind: OutcomeRejected, Cell: cell, Mark: mark, Err: err}
}
