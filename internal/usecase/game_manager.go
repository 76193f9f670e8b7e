package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/events"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.Result) error
	Latest(ctx context.Context, limit int) ([]*entity.Result, error)
}

type eventPublisher interface {
	Publish(event events.GameEvent)
}

// GameManager - loads a game, runs one engine operation on it and stores the outcome.
// Operations on the same game id are serialized.
type GameManager struct {
	logger *slog.Logger

	opts       gomoku.Options
	gameRepo   gameRepo
	resultRepo resultRepo
	publisher  eventPublisher

	locksMutex sync.Mutex
	locks      map[string]*gameLock

	now func() time.Time
}

func NewGameManager(logger *slog.Logger, opts gomoku.Options, gameRepo gameRepo, resultRepo resultRepo, publisher eventPublisher) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		opts:       opts,
		gameRepo:   gameRepo,
		resultRepo: resultRepo,
		publisher:  publisher,

		locks: make(map[string]*gameLock),
		now:   time.Now,
	}
}

func (that *GameManager) CreateGame(ctx context.Context) (*entity.Game, error) {
	engine, err := gomoku.NewEngine(that.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	opts := engine.Options()
	now := that.now().UTC()

	game := &entity.Game{
		ID:         pkg.GenerateGameID(),
		Size:       opts.Size,
		WinLength:  opts.WinLength,
		DetectDraw: opts.DetectDraw,
		Moves:      engine.Moves(),
		State:      engine.CurrentState(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "size", game.Size, "winLength", game.WinLength)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return game, nil
}

// MakeMove - applies a move for the player whose turn it is. A rejected move returns the
// unchanged game together with the rejection error.
func (that *GameManager) MakeMove(ctx context.Context, gameID string, cell entity.Cell) (*entity.Game, error) {
	log := that.logger.With("method", "MakeMove", "gameID", gameID)

	unlock := that.lock(gameID)
	defer unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	engine, err := gomoku.Restore(optionsOf(game), game.Moves)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game %s: %w", gameID, err)
	}

	var emitted []gomoku.Event
	engine.SetEventHandler(func(event gomoku.Event) {
		emitted = append(emitted, event)
	})

	if _, err = engine.ApplyMove(cell); err != nil {
		log.Debug("move rejected", "cell", cell, "error", err)
		return game, fmt.Errorf("failed to make move: %w", err)
	}

	that.applySnapshot(game, engine)

	if err = that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsOver() {
		that.archiveResult(ctx, game)
		log.Info("game over", "winner", game.State.Winner, "moves", len(game.Moves))
	}

	that.publish(gameID, emitted)

	return game, nil
}

// ResetGame - starts the game over on a fresh board, whatever its state.
func (that *GameManager) ResetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	unlock := that.lock(gameID)
	defer unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	engine, err := gomoku.NewEngine(optionsOf(game))
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	var emitted []gomoku.Event
	engine.SetEventHandler(func(event gomoku.Event) {
		emitted = append(emitted, event)
	})

	engine.Reset()
	that.applySnapshot(game, engine)

	if err = that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.publish(gameID, emitted)
	that.logger.Info("game reset", "gameID", gameID)

	return game, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	unlock := that.lock(gameID)
	defer unlock()

	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", gameID)

	return nil
}

// History - latest finished games; limit is clamped to [1, 100], zero means 20.
func (that *GameManager) History(ctx context.Context, limit int) ([]*entity.Result, error) {
	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	results, err := that.resultRepo.Latest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}

	return results, nil
}

// gameLock - serializes operations on one game; refs counts callers holding or waiting for it.
type gameLock struct {
	mu   sync.Mutex
	refs int
}

// lock - blocks until the caller owns the game. The entry is dropped once the last
// caller unlocks, so expired or deleted games leave nothing behind.
func (that *GameManager) lock(gameID string) func() {
	that.locksMutex.Lock()
	entry, ok := that.locks[gameID]
	if !ok {
		entry = &gameLock{}
		that.locks[gameID] = entry
	}
	entry.refs++
	that.locksMutex.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		that.locksMutex.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(that.locks, gameID)
		}
		that.locksMutex.Unlock()
	}
}

func (that *GameManager) applySnapshot(game *entity.Game, engine *gomoku.Engine) {
	game.Moves = engine.Moves()
	game.State = engine.CurrentState()
	game.UpdatedAt = that.now().UTC()
}

// archiveResult - a failed archive write is logged, the move itself already succeeded.
func (that *GameManager) archiveResult(ctx context.Context, game *entity.Game) {
	result := &entity.Result{
		GameID:     game.ID,
		Winner:     game.State.Winner,
		Moves:      len(game.Moves),
		Size:       game.Size,
		FinishedAt: game.UpdatedAt,
	}

	if err := that.resultRepo.Save(ctx, result); err != nil {
		that.logger.Error("failed to archive result", "gameID", game.ID, "error", err)
	}
}

func (that *GameManager) publish(gameID string, emitted []gomoku.Event) {
	for _, event := range emitted {
		that.publisher.Publish(events.GameEvent{GameID: gameID, Event: event})
	}
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

func optionsOf(game *entity.Game) gomoku.Options {
	return gomoku.Options{
		Size:       game.Size,
		WinLength:  game.WinLength,
		DetectDraw: game.DetectDraw,
	}
}
