package entity

// Score is the running tally of a player's rounds against the bot.
type Score struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

type Player struct {
	ID     string `json:"id"`
	Mark   Mark   `json:"mark,omitempty"`
	GameID string `json:"game_id,omitempty"`
	Score  Score  `json:"score"`

	// CanSubmitScore is set by a win and cleared once the score is submitted or a new round starts.
	CanSubmitScore bool `json:"can_submit_score,omitempty"`
}

// RecordResult - updates the tally from a finished game. Unfinished games are ignored.
func (that *Player) RecordResult(game *Game) {
	result, ok := game.Result()
	if !ok {
		return
	}

	switch {
	case result.Kind == ResultDraw:
		that.Score.Draws++
		that.CanSubmitScore = false
	case result.Winner == game.HumanMark:
		that.Score.Wins++
		that.CanSubmitScore = true
	default:
		that.Score.Losses++
		that.CanSubmitScore = false
	}
}

// LeaveGame - detaches the player from the current round.
func (that *Player) LeaveGame() {
	that.GameID = ""
	that.Mark = EmptyCell
}
