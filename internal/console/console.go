package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

const maxNameLength = 32

// errQuit ends the session when the player types q or input runs out.
var errQuit = errors.New("quit")

type bot interface {
	MakeTurn(ctx context.Context, game *entity.Game) (tictactoe.Outcome, error)
}

type leaderboardRepo interface {
	Add(ctx context.Context, entry *entity.LeaderboardEntry) error
	Top(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

// Options fix the round setup. Empty values are asked for at the start of every round.
type Options struct {
	Difficulty entity.Difficulty
	Mark       entity.Mark
}

type Console struct {
	logger *slog.Logger
	in     *bufio.Scanner
	out    io.Writer

	bot         bot
	leaderboard leaderboardRepo
	opts        Options
	now         func() time.Time
}

func New(logger *slog.Logger, in io.Reader, out io.Writer, bot bot, leaderboard leaderboardRepo, opts Options) *Console {
	return &Console{
		logger:      logger.With("component", "console"),
		in:          bufio.NewScanner(in),
		out:         out,
		bot:         bot,
		leaderboard: leaderboard,
		opts:        opts,
		now:         time.Now,
	}
}

// Play - runs rounds until the player declines another one or input ends.
func (that *Console) Play(ctx context.Context) error {
	player := &entity.Player{ID: pkg.GenerateNewSessionID()}

	for {
		err := that.playRound(ctx, player)
		if errors.Is(err, errQuit) {
			that.printf("\nBye! Wins %d, losses %d, draws %d.\n", player.Score.Wins, player.Score.Losses, player.Score.Draws)
			return nil
		}

		if err != nil {
			return err
		}

		again, err := that.ask("Play again? [y/N]: ")
		if errors.Is(err, errQuit) || !strings.EqualFold(again, "y") {
			that.printf("Bye! Wins %d, losses %d, draws %d.\n", player.Score.Wins, player.Score.Losses, player.Score.Draws)
			return nil
		}
	}
}

func (that *Console) playRound(ctx context.Context, player *entity.Player) error {
	opts, err := that.roundOptions()
	if err != nil {
		return err
	}

	game, err := entity.NewGame(pkg.GenerateGameID(), player.ID, opts)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	that.printf("\nYou play %s against the %s bot. %s moves first.\n", game.HumanMark, game.Difficulty, game.Turn)

	for game.IsOngoing() {
		if game.State() == entity.StateAwaitingAutomatedMove {
			that.printf("Bot is thinking...\n")

			outcome, err := that.bot.MakeTurn(ctx, game)
			if err != nil {
				return fmt.Errorf("bot failed to make turn: %w", err)
			}

			if outcome.Cell != tictactoe.NoMove {
				that.printf("Bot plays %d.\n", outcome.Cell+1)
			}

			continue
		}

		that.printf("\n%s\n\n", renderBoard(game.Board))

		if err = that.humanTurn(game); err != nil {
			return err
		}
	}

	return that.finishRound(ctx, player, game)
}

// humanTurn - asks until a legal cell is given.
func (that *Console) humanTurn(game *entity.Game) error {
	for {
		line, err := that.ask("Your move (1-9, q to quit): ")
		if err != nil {
			return err
		}

		if strings.EqualFold(line, "q") {
			return errQuit
		}

		number, err := strconv.Atoi(line)
		if err != nil {
			that.printf("Type a number from 1 to 9.\n")
			continue
		}

		outcome := tictactoe.ApplyMove(game, number-1)
		if outcome.IsRejected() {
			that.printf("Can't play %s: %v.\n", line, outcome.Err)
			continue
		}

		return nil
	}
}

func (that *Console) finishRound(ctx context.Context, player *entity.Player, game *entity.Game) error {
	that.printf("\n%s\n\n", renderBoard(game.Board))

	player.RecordResult(game)

	result, _ := game.Result()
	switch {
	case result.Kind == entity.ResultDraw:
		that.printf("It's a draw.\n")
	case game.IsHumanWin():
		that.printf("You win!\n")
	default:
		that.printf("The bot wins.\n")
	}

	that.printf("Wins %d, losses %d, draws %d.\n", player.Score.Wins, player.Score.Losses, player.Score.Draws)

	that.logger.Debug("round finished", "game_id", game.ID, "winner", game.Winner, "difficulty", game.Difficulty)

	if !player.CanSubmitScore {
		return nil
	}

	return that.submitScore(ctx, player)
}

// submitScore - offers the leaderboard after a win. An empty name skips it.
func (that *Console) submitScore(ctx context.Context, player *entity.Player) error {
	name, err := that.ask("Enter your name for the leaderboard (empty to skip): ")
	if err != nil {
		return err
	}

	player.CanSubmitScore = false

	if name == "" {
		return nil
	}

	if runes := []rune(name); len(runes) > maxNameLength {
		name = string(runes[:maxNameLength])
	}

	entry := &entity.LeaderboardEntry{
		ID:        pkg.GenerateEntryID(),
		Name:      name,
		Score:     player.Score.Wins,
		CreatedAt: that.now().UTC(),
	}

	if err = that.leaderboard.Add(ctx, entry); err != nil {
		that.logger.Error("failed to save leaderboard entry", "error", err)
		that.printf("Could not save your score.\n")

		return nil
	}

	that.printf("Saved %s with %d.\n", entry.Name, entry.Score)

	return nil
}

// PrintLeaderboard - writes the top entries as a table.
func (that *Console) PrintLeaderboard(ctx context.Context, limit int) error {
	entries, err := that.leaderboard.Top(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to get leaderboard: %w", err)
	}

	if len(entries) == 0 {
		that.printf("The leaderboard is empty.\n")
		return nil
	}

	for i, entry := range entries {
		that.printf("%2d. %-*s %d\n", i+1, maxNameLength, entry.Name, entry.Score)
	}

	return nil
}

func (that *Console) roundOptions() (entity.GameOptions, error) {
	opts := entity.GameOptions{Difficulty: that.opts.Difficulty, Mark: that.opts.Mark}

	for !opts.Difficulty.IsValid() {
		answer, err := that.ask("Difficulty [easy/hard]: ")
		if err != nil {
			return opts, err
		}

		opts.Difficulty = entity.Difficulty(strings.ToLower(answer))
	}

	for !opts.Mark.IsValid() {
		answer, err := that.ask("Play as [X/O] (X moves first): ")
		if err != nil {
			return opts, err
		}

		opts.Mark = entity.Mark(strings.ToUpper(answer))
	}

	return opts, nil
}

// ask - prints prompt and reads one trimmed line. End of input is errQuit.
func (that *Console) ask(prompt string) (string, error) {
	that.printf("%s", prompt)

	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		return "", errQuit
	}

	return strings.TrimSpace(that.in.Text()), nil
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Warn("failed to write output", "error", err)
	}
}

// renderBoard shows empty cells by the number the player types to take them.
func renderBoard(board entity.Board) string {
	return board.Format(func(cell int) string { return strconv.Itoa(cell + 1) })
}
