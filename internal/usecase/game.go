package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

type GameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error)
	GetPlayer(ctx context.Context, playerID string) (*entity.Player, error)

	NewGame(ctx context.Context, playerID string, opts entity.GameOptions) (*entity.Game, error)
	GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error)
	EndGame(ctx context.Context, playerID string) error

	SubmitScore(ctx context.Context, playerID, name string) (*entity.LeaderboardEntry, error)
	Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	ClaimScoreSubmission(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type leaderboardRepo interface {
	Add(ctx context.Context, entry *entity.LeaderboardEntry) error
	Top(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type botService interface {
	MakeTurn(ctx context.Context, game *entity.Game) (tictactoe.Outcome, error)
}

// Settings are the defaults applied when a caller leaves a value out.
type Settings struct {
	Difficulty       entity.Difficulty
	LeaderboardLimit int
}

type gameUseCase struct {
	logger *slog.Logger
	now    func() time.Time

	settings Settings

	playerRepo      playerRepo
	gameRepo        gameRepo
	leaderboardRepo leaderboardRepo
	bot             botService
}

func NewGameUseCase(
	logger *slog.Logger,
	settings Settings,
	playerRepo playerRepo,
	gameRepo gameRepo,
	leaderboardRepo leaderboardRepo,
	bot botService,
) GameUseCase {
	if !settings.Difficulty.IsValid() {
		settings.Difficulty = entity.EasyDifficulty
	}

	return &gameUseCase{
		logger:          logger.With("component", "game_usecase"),
		now:             time.Now,
		settings:        settings,
		playerRepo:      playerRepo,
		gameRepo:        gameRepo,
		leaderboardRepo: leaderboardRepo,
		bot:             bot,
	}
}

// GetOrCreatePlayer - returns the stored player, or a fresh one when the ID is empty or unknown.
func (that *gameUseCase) GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	if playerID != "" {
		player, err := that.playerRepo.GetByID(ctx, playerID)
		if err == nil {
			return player, nil
		}

		if !errors.Is(err, apperror.ErrPlayerNotFound) {
			return nil, fmt.Errorf("failed to get player by id: %w", err)
		}
	}

	player := &entity.Player{ID: pkg.GenerateNewSessionID()}
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("could not create player: %w", err)
	}

	return player, nil
}

func (that *gameUseCase) GetPlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// NewGame - starts a round for the player, dropping any round still attached to them.
// When the bot moves first its opening move is already on the returned board.
func (that *gameUseCase) NewGame(ctx context.Context, playerID string, opts entity.GameOptions) (*entity.Game, error) {
	player, err := that.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if opts.Difficulty == "" {
		opts.Difficulty = that.settings.Difficulty
	}

	game, err := entity.NewGame(pkg.GenerateGameID(), player.ID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if game.State() == entity.StateAwaitingAutomatedMove {
		if _, err = that.bot.MakeTurn(ctx, game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if player.GameID != "" {
		that.deleteGame(ctx, player.GameID)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	player.GameID = game.ID
	player.Mark = game.HumanMark
	player.CanSubmitScore = false
	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *gameUseCase) GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error) {
	_, game, err := that.activeGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return game, nil
}

// MakeTurn - plays the human move and the bot reply.
// A turn that ends the round returns the final game together with apperror.ErrGameFinished.
// Nothing is stored when either move fails, so the same turn can be retried.
func (that *gameUseCase) MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error) {
	player, game, err := that.activeGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	outcome := tictactoe.ApplyMove(game, cell)
	if outcome.IsRejected() {
		return nil, fmt.Errorf("failed to make turn: %w", outcome.Err)
	}

	if !outcome.IsRoundOver() {
		if _, err = that.bot.MakeTurn(ctx, game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if game.IsFinished() {
		if err = that.finishRound(ctx, player, game); err != nil {
			return nil, err
		}

		return game, apperror.ErrGameFinished
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// EndGame - abandons the player's round without touching the tally.
func (that *gameUseCase) EndGame(ctx context.Context, playerID string) error {
	player, err := that.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}

	if player.GameID == "" {
		return apperror.ErrNoActiveGame
	}

	that.deleteGame(ctx, player.GameID)

	player.LeaveGame()

	return that.updatePlayer(ctx, player)
}

func (that *gameUseCase) activeGame(ctx context.Context, playerID string) (*entity.Player, *entity.Game, error) {
	player, err := that.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	if player.GameID == "" {
		return nil, nil, apperror.ErrNoActiveGame
	}

	game, err := that.gameRepo.GetByID(ctx, player.GameID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		return nil, nil, that.dropExpiredGame(ctx, player)
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game: %w", err)
	}

	return player, game, nil
}

// dropExpiredGame - detaches the player from a round that is no longer stored.
func (that *gameUseCase) dropExpiredGame(ctx context.Context, player *entity.Player) error {
	that.logger.Info("round expired", "method", "dropExpiredGame", "player_id", player.ID, "game_id", player.GameID)

	player.LeaveGame()
	if err := that.updatePlayer(ctx, player); err != nil {
		return err
	}

	return apperror.ErrNoActiveGame
}

// finishRound - tallies the result and detaches the player from the finished round.
func (that *gameUseCase) finishRound(ctx context.Context, player *entity.Player, game *entity.Game) error {
	player.RecordResult(game)
	player.LeaveGame()

	if err := that.updatePlayer(ctx, player); err != nil {
		return err
	}

	that.deleteGame(ctx, game.ID)

	that.logger.Info("round finished",
		"game_id", game.ID,
		"player_id", player.ID,
		"winner", game.Winner,
		"difficulty", game.Difficulty,
	)

	return nil
}

func (that *gameUseCase) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *gameUseCase) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}

func (that *gameUseCase) deleteGame(ctx context.Context, gameID string) {
	log := that.logger.With("method", "deleteGame", "game_id", gameID)

	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
		log.Error("failed to delete game", "error", err)
	}
}
