package game

// Status classifies the result of evaluating a board.
type Status uint8

const (
	InProgress Status = iota
	Won
	Drawn
)

// Outcome is the result of evaluating a board: in progress, a win for
// Winner, or a draw.
type Outcome struct {
	Status Status
	Winner Mark
}

// Terminal reports whether the game is over.
func (o Outcome) Terminal() bool {
	return o.Status != InProgress
}

func (o Outcome) String() string {
	switch o.Status {
	case Won:
		return o.Winner.String() + " wins"
	case Drawn:
		return "draw"
	default:
		return "in progress"
	}
}

// The four (dRow, dCol) scan directions: down, right, down-right, down-left.
// Scanning
// only forward from each origin avoids counting a run from both of its ends.
var directions = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// Evaluate scans the board for a winning run. For every occupied cell and
// each direction it walks forward while neighbors hold the same mark; the
// mark wins once the running count reaches the run length. A full board
// without a winner is a draw. Evaluate is a pure function of the cell layout
// and run length.
func (b *Board) Evaluate() Outcome {
	n := b.size
	for idx, mark := range b.cells {
		if mark == NoMark {
			continue
		}

		row := idx / n
		col := idx % n

		for _, dir := range directions {
			count := 1
			r := row + dir[0]
			c := col + dir[1]
			for count < b.runLength && r >= 0 && r < n && c >= 0 && c < n && b.cells[r*n+c] == mark {
				count++
				r += dir[0]
				c += dir[1]
			}
			if count >= b.runLength {
				return Outcome{Status: Won, Winner: mark}
			}
		}
	}

	if b.plies == n*n {
		return Outcome{Status: Drawn}
	}
	return Outcome{Status: InProgress}
}
