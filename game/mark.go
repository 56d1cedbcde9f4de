package game

// Mark identifies one of the two players' stones on the board.
type Mark uint8

const (
	NoMark Mark = iota
	P1
	P2
)

// Other returns the opposing mark. NoMark has no opponent and maps to itself.
func (m Mark) Other() Mark {
	switch m {
	case P1:
		return P2
	case P2:
		return P1
	default:
		return NoMark
	}
}

func (m Mark) String() string {
	switch m {
	case P1:
		return "P1"
	case P2:
		return "P2"
	default:
		return "none"
	}
}
