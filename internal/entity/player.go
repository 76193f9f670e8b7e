package entity

// Player - colour of the stones a side plays with.
type Player string

const (
	White Player = "white"
	Black Player = "black"

	// None marks the absence of a player, e.g. no winner yet.
	None Player = ""
)

// Opponent - returns the other side. None has no opponent.
func (that Player) Opponent() Player {
	switch that {
	case White:
		return Black
	case Black:
		return White
	default:
		return None
	}
}

func (that Player) IsValid() bool {
	return that == White || that == Black
}
