package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	// PlayerTie is stored in Game.Winner when the round ends in a draw.
	PlayerTie = "-"
)

type Difficulty string

const (
	EasyDifficulty Difficulty = "easy"
	HardDifficulty Difficulty = "hard"
)

func (that Difficulty) IsValid() bool {
	return that == EasyDifficulty || that == HardDifficulty
}

// State is the position of a round in its lifecycle.
type State string

const (
	StateAwaitingHumanMove     State = "awaiting_human_move"
	StateAwaitingAutomatedMove State = "awaiting_automated_move"
	StateRoundOver             State = "round_over"
)

type ResultKind string

const (
	ResultWin  ResultKind = "win"
	ResultDraw ResultKind = "draw"
)

// RoundResult is the outcome of a finished round. Winner is empty for a draw.
type RoundResult struct {
	Kind   ResultKind `json:"kind"`
	Winner Mark       `json:"winner,omitempty"`
}

// Marks is the mark assignment of a round.
type Marks struct {
	Human Mark `json:"human"`
	Bot   Mark `json:"bot"`
}

// GameOptions are fixed before the round starts.
type GameOptions struct {
	Difficulty Difficulty `json:"difficulty"`
	Mark       Mark       `json:"mark"`
	FirstMark  Mark       `json:"first_mark,omitempty"`
}

// Game is a single round between the human and the bot. A finished game is never reused.
type Game struct {
	ID         string     `json:"id"`
	PlayerID   string     `json:"player_id,omitempty"`
	Board      Board      `json:"board"`
	Turn       Mark       `json:"player_turn"`
	Winner     string     `json:"winner"`
	WinLine    []int      `json:"win_line,omitempty"`
	Status     string     `json:"status"`
	Difficulty Difficulty `json:"difficulty"`
	HumanMark  Mark       `json:"human_mark"`
	BotMark    Mark       `json:"bot_mark"`
}

// NewGame - creates a round. X moves first unless opts.FirstMark says otherwise.
func NewGame(id, playerID string, opts GameOptions) (*Game, error) {
	if !opts.Difficulty.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidDifficulty, opts.Difficulty)
	}

	if !opts.Mark.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, opts.Mark)
	}

	first := opts.FirstMark
	if first == EmptyCell {
		first = MarkX
	}

	if !first.IsValid() {
		return nil, fmt.Errorf("%w: first mark %q", apperror.ErrInvalidMark, first)
	}

	return &Game{
		ID:         id,
		PlayerID:   playerID,
		Turn:       first,
		Status:     StatusOngoing,
		Difficulty: opts.Difficulty,
		HumanMark:  opts.Mark,
		BotMark:    opts.Mark.Opponent(),
	}, nil
}

func (that *Game) Marks() Marks {
	return Marks{Human: that.HumanMark, Bot: that.BotMark}
}

func (that *Game) State() State {
	switch {
	case that.IsFinished():
		return StateRoundOver
	case that.Turn == that.HumanMark:
		return StateAwaitingHumanMove
	default:
		return StateAwaitingAutomatedMove
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// UpdateGameState - evaluates the board after mark has moved.
// Only the side that just moved can complete a line, so only its win is checked.
func (that *Game) UpdateGameState(mark Mark) {
	if pattern, ok := that.Board.WinningPattern(mark); ok {
		that.Winner = string(mark)
		that.WinLine = pattern[:]
		that.finish()
		return
	}

	if that.Board.IsFull() {
		that.FinishAsDraw()
		return
	}

	that.Turn = mark.Opponent()
}

// FinishAsDraw - ends the round with no winner.
func (that *Game) FinishAsDraw() {
	that.Winner = PlayerTie
	that.finish()
}

func (that *Game) finish() {
	that.Status = StatusFinished
	that.Turn = EmptyCell
}

// Result returns the round result once the game is finished.
func (that *Game) Result() (RoundResult, bool) {
	if !that.IsFinished() {
		return RoundResult{}, false
	}

	if that.Winner == PlayerTie {
		return RoundResult{Kind: ResultDraw}, true
	}

	return RoundResult{Kind: ResultWin, Winner: Mark(that.Winner)}, true
}

// IsHumanWin reports whether the finished round was won by the human side.
func (that *Game) IsHumanWin() bool {
	result, ok := that.Result()
	return ok && result.Kind == ResultWin && result.Winner == that.HumanMark
}
