package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestNewApp_PlayFlags(t *testing.T) {
	app := newApp()

	play := app.Command("play")
	require.NotNil(t, play)

	// Then: the root command and play each own their flag values
	for _, name := range []string{flagDifficulty, flagMark, flagDelay} {
		rootFlag := findFlag(app.Flags, name)
		playFlag := findFlag(play.Flags, name)

		require.NotNil(t, rootFlag, name)
		require.NotNil(t, playFlag, name)
		assert.NotSame(t, rootFlag, playFlag, name)
	}
}

func TestNewApp_Leaderboard(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "leaderboard.db")

	err := newApp().Run([]string{"tictactoe", "--db", dbPath, "leaderboard", "--limit", "3"})

	require.NoError(t, err)
	assert.FileExists(t, dbPath)
}

func findFlag(flags []cli.Flag, name string) cli.Flag {
	for _, flag := range flags {
		for _, flagName := range flag.Names() {
			if flagName == name {
				return flag
			}
		}
	}

	return nil
}
