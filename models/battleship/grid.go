package battleship

const (
	GridSize = 10

	ValidLowerBound = 0
	ValidUpperBound = GridSize - 1
)

type CellState uint8

const (
	CellEmpty CellState = iota
	CellShip
	CellHit
	CellMiss
	CellSunk
)

func (c CellState) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellShip:
		return "ship"
	case CellHit:
		return "hit"
	case CellMiss:
		return "miss"
	case CellSunk:
		return "sunk"
	default:
		return "unknown"
	}
}

// A resolved cell has already been fired upon.
func (c CellState) IsResolved() bool {
	return c == CellHit || c == CellMiss || c == CellSunk
}

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

func (c Coordinates) IsValid() bool {
	return c.Row >= ValidLowerBound && c.Row <= ValidUpperBound &&
		c.Col >= ValidLowerBound && c.Col <= ValidUpperBound
}

// Grid is a plain data container. It does not validate
// coordinates; Board is responsible for bounds and legality.
type Grid [GridSize][GridSize]CellState

// Creates a new default grid
// All indexes are zero/CellEmpty
func NewGrid() Grid {
	return Grid{}
}

func (g *Grid) Get(c Coordinates) CellState {
	return g[c.Row][c.Col]
}

func (g *Grid) Set(c Coordinates, state CellState) {
	g[c.Row][c.Col] = state
}

func (g *Grid) Count(state CellState) int {
	var n int
	for row := range g {
		for col := range g[row] {
			if g[row][col] == state {
				n++
			}
		}
	}
	return n
}
