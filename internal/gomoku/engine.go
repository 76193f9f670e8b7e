package gomoku

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

var ErrMoveOutOfTurn = errors.New("move recorded out of turn")

type EventType string

const (
	EventMoveApplied EventType = "move_applied"
	EventGameOver    EventType = "game_over"
	EventGameReset   EventType = "game_reset"
)

// Event - notification for the presentation layer. Cell and Player are empty for resets;
// for game over Player is the winner.
type Event struct {
	Type   EventType        `json:"type"`
	Cell   entity.Cell      `json:"cell"`
	Player entity.Player    `json:"player,omitempty"`
	State  entity.GameState `json:"state"`
}

type EventHandler func(event Event)

// Options - fixed for the lifetime of an engine. Zero values fall back to the defaults.
type Options struct {
	Size       int
	WinLength  int
	DetectDraw bool
}

func (that Options) withDefaults() Options {
	if that.Size == 0 {
		that.Size = entity.DefaultGridSize
	}

	if that.WinLength == 0 {
		that.WinLength = entity.DefaultWinLength
	}

	return that
}

func (that Options) Validate() error {
	if that.Size < 1 {
		return fmt.Errorf("%w: grid size %d", apperror.ErrInvalidConfig, that.Size)
	}

	if that.WinLength < 1 || that.WinLength > that.Size {
		return fmt.Errorf("%w: win length %d on grid of %d", apperror.ErrInvalidConfig, that.WinLength, that.Size)
	}

	return nil
}

// Engine - turn and game-over state machine over one Board.
// Not safe for concurrent use; callers serialize access per engine.
type Engine struct {
	opts    Options
	board   *Board
	state   entity.GameState
	moves   []entity.Move
	onEvent EventHandler
}

func NewEngine(opts Options) (*Engine, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		opts:  opts,
		board: NewBoard(opts.Size),
		state: entity.InitialState(),
	}, nil
}

// Restore - rebuilds an engine by replaying moves in order. Every move must be legal
// and made by the player whose turn it was.
func Restore(opts Options, moves []entity.Move) (*Engine, error) {
	engine, err := NewEngine(opts)
	if err != nil {
		return nil, err
	}

	for i, move := range moves {
		if move.Player != engine.state.CurrentPlayer {
			return nil, fmt.Errorf("%w: move %d by %q", ErrMoveOutOfTurn, i, move.Player)
		}

		if _, err = engine.ApplyMove(move.Cell); err != nil {
			return nil, fmt.Errorf("failed to replay move %d: %w", i, err)
		}
	}

	return engine, nil
}

func (that *Engine) SetEventHandler(handler EventHandler) {
	that.onEvent = handler
}

func (that *Engine) Options() Options {
	return that.opts
}

// ApplyMove - places a stone for the current player. A rejected move changes nothing and
// returns the unchanged state with one of apperror.ErrGameAlreadyOver,
// apperror.ErrCellOutOfBounds or apperror.ErrCellOccupied.
func (that *Engine) ApplyMove(cell entity.Cell) (entity.GameState, error) {
	if that.state.IsOver {
		return that.state, apperror.ErrGameAlreadyOver
	}

	mover := that.state.CurrentPlayer
	if err := that.board.Place(mover, cell); err != nil {
		return that.state, fmt.Errorf("invalid move: %w", err)
	}

	that.moves = append(that.moves, entity.Move{Cell: cell, Player: mover})
	that.updateGameState(mover)

	that.emit(Event{Type: EventMoveApplied, Cell: cell, Player: mover, State: that.state})

	if that.state.IsOver {
		that.emit(Event{Type: EventGameOver, Player: that.state.Winner, State: that.state})
	}

	return that.state, nil
}

// Reset - starts over with an empty board and White to move.
func (that *Engine) Reset() {
	that.board = NewBoard(that.opts.Size)
	that.state = entity.InitialState()
	that.moves = nil

	that.emit(Event{Type: EventGameReset, State: that.state})
}

func (that *Engine) CurrentState() entity.GameState {
	return that.state
}

func (that *Engine) StonesOf(player entity.Player) entity.CellSet {
	return that.board.StonesOf(player)
}

func (that *Engine) IsOccupied(cell entity.Cell) bool {
	return that.board.IsOccupied(cell)
}

// Moves - copy of the moves played so far, in order.
func (that *Engine) Moves() []entity.Move {
	moves := make([]entity.Move, len(that.moves))
	copy(moves, that.moves)

	return moves
}

// updateGameState - checks the game status after a move. Every stone of the mover is
// checked: a stone filling the middle of an overline counts more than winLength itself,
// while the end stones of the same line still count exactly winLength.
func (that *Engine) updateGameState(mover entity.Player) {
	switch {
	case HasWinningRun(that.board.stonesOf(mover), that.opts.WinLength):
		that.state.IsOver = true
		that.state.Winner = mover
	case that.opts.DetectDraw && that.board.IsFull():
		that.state.IsOver = true
	default:
		that.state.CurrentPlayer = mover.Opponent()
	}
}

func (that *Engine) emit(event Event) {
	if that.onEvent != nil {
		that.onEvent(event)
	}
}
