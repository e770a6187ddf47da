package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrNoActiveGame      = errors.New("no active game")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrInvalidMark       = errors.New("invalid mark")
	ErrScoreNotEligible  = errors.New("score can be submitted only after a win")
	ErrEmptyName         = errors.New("name is empty")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrGameNotFound      = errors.New("game not found")
)
