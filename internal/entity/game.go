package entity

import "time"

const (
	DefaultGridSize  = 10
	DefaultWinLength = 5
)

// GameState - whose turn it is and whether the game has ended.
type GameState struct {
	CurrentPlayer Player `json:"current_player"`
	IsOver        bool   `json:"is_over"`
	Winner        Player `json:"winner,omitempty"`
}

// InitialState - White to move, nobody has won.
func InitialState() GameState {
	return GameState{CurrentPlayer: White}
}

// IsDraw - the game ended without a winner.
func (that GameState) IsDraw() bool {
	return that.IsOver && that.Winner == None
}

// Move - a stone placed by a player, kept in play order.
type Move struct {
	Cell   Cell   `json:"cell"`
	Player Player `json:"player"`
}

// Game - persisted snapshot of one game.
type Game struct {
	ID         string    `json:"id"`
	Size       int       `json:"size"`
	WinLength  int       `json:"win_length"`
	DetectDraw bool      `json:"detect_draw,omitempty"`
	Moves      []Move    `json:"moves"`
	State      GameState `json:"state"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (that *Game) IsOver() bool {
	return that.State.IsOver
}

// StonesOf - cells occupied by the player according to the move list.
func (that *Game) StonesOf(player Player) CellSet {
	stones := make(CellSet)
	for _, move := range that.Moves {
		if move.Player == player {
			stones.Add(move.Cell)
		}
	}

	return stones
}

// Result - archived outcome of a finished game.
type Result struct {
	GameID     string    `json:"game_id"`
	Winner     Player    `json:"winner,omitempty"`
	Moves      int       `json:"moves"`
	Size       int       `json:"size"`
	FinishedAt time.Time `json:"finished_at"`
}
