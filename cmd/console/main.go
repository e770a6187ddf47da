package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/rocketscienceinc/tictactoe-solo/internal/console"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-solo/internal/service"
)

const (
	flagDB         = "db"
	flagDifficulty = "difficulty"
	flagMark       = "mark"
	flagDelay      = "delay"
	flagLimit      = "limit"
	flagVerbose    = "verbose"
)

// playFlags - builds fresh flag values for every command that plays.
func playFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: flagDifficulty, Usage: "easy or hard, asked when empty"},
		&cli.StringFlag{Name: flagMark, Usage: "X or O, asked when empty"},
		&cli.DurationFlag{Name: flagDelay, Usage: "bot thinking delay", Value: 500 * time.Millisecond},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "tictactoe",
		Usage: "play tic-tac-toe against the bot in your terminal",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    flagDB,
				Usage:   "SQLite file that keeps the leaderboard",
				Value:   "leaderboard.db",
				EnvVars: []string{"SQLITE_STORAGE_PATH"},
			},
			&cli.BoolFlag{
				Name:  flagVerbose,
				Usage: "log debug output to stderr",
			},
		}, playFlags()...),
		Action: play,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "play rounds against the bot (default)",
				Action: play,
				Flags:  playFlags(),
			},
			{
				Name:   "leaderboard",
				Usage:  "print the best scores",
				Action: leaderboard,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: flagLimit, Usage: "number of entries", Value: 10},
				},
			},
		},
	}
}

func play(cliCtx *cli.Context) error {
	ctx, cancel := signal.NotifyContext(cliCtx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := initLogger(cliCtx)

	db, err := openStorage(ctx, cliCtx.String(flagDB))
	if err != nil {
		return err
	}
	defer db.Close()

	game := console.New(
		logger,
		os.Stdin,
		os.Stdout,
		service.NewBotService(logger, cliCtx.Duration(flagDelay), nil),
		repository.NewSQLiteLeaderboardRepository(db.Connection),
		console.Options{
			Difficulty: entity.Difficulty(cliCtx.String(flagDifficulty)),
			Mark:       entity.Mark(cliCtx.String(flagMark)),
		},
	)

	return game.Play(ctx)
}

func leaderboard(cliCtx *cli.Context) error {
	logger := initLogger(cliCtx)

	db, err := openStorage(cliCtx.Context, cliCtx.String(flagDB))
	if err != nil {
		return err
	}
	defer db.Close()

	board := console.New(logger, os.Stdin, os.Stdout, nil, repository.NewSQLiteLeaderboardRepository(db.Connection), console.Options{})

	return board.PrintLeaderboard(cliCtx.Context, cliCtx.Int(flagLimit))
}

func openStorage(ctx context.Context, path string) (*storage.Storage, error) {
	db, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return nil, fmt.Errorf("could not open leaderboard: %w", err)
	}

	if err = db.Init(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not init leaderboard: %w", err)
	}

	return db, nil
}

// initLogger - logs go to stderr so the board on stdout stays readable.
func initLogger(cliCtx *cli.Context) *slog.Logger {
	level := slog.LevelWarn
	if cliCtx.Bool(flagVerbose) {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
