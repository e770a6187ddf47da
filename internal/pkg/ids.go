package pkg

import "github.com/google/uuid"

// GenerateNewSessionID - generates a new unique player session ID.
func GenerateNewSessionID() string {
	return uuid.NewString()
}

// GenerateGameID - generates a unique identifier for a round.
func GenerateGameID() string {
	return uuid.NewString()
}

// GenerateEntryID - generates an identifier for a leaderboard entry.
func GenerateEntryID() string {
	return uuid.NewString()
}
