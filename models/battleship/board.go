package battleship

import (
	"math/rand"
)

type Orientation uint8

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

func (o Orientation) String() string {
	if o == OrientationVertical {
		return "vertical"
	}
	return "horizontal"
}

type ShotResult struct {
	Hit  bool `json:"hit"`
	Sunk bool `json:"sunk"`

	// Set when the cell had already been fired upon and
	// nothing was mutated.
	Redundant bool `json:"redundant,omitempty"`
}

// Message shown to the player after a shot resolves.
func (sr ShotResult) Message() string {
	switch {
	case sr.Sunk:
		return "Hit and sunk!"
	case sr.Hit:
		return "Hit!"
	default:
		return "Miss!"
	}
}

// Board is the grid and fleet owned by one side.
type Board struct {
	grid  Grid
	fleet *Fleet
}

func NewBoard() *Board {
	return &Board{
		grid:  NewGrid(),
		fleet: NewFleet(),
	}
}

func (b *Board) Grid() *Grid {
	return &b.grid
}

func (b *Board) Fleet() *Fleet {
	return b.fleet
}

// Returns the run of cells a ship of this size would cover. The run
// may fall outside the grid; callers check bounds.
func shipCoordinates(shipType ShipType, origin Coordinates, orientation Orientation) []Coordinates {
	coords := make([]Coordinates, shipType.Size())
	for i := range coords {
		if orientation == OrientationHorizontal {
			coords[i] = NewCoordinates(origin.Row, origin.Col+i)
		} else {
			coords[i] = NewCoordinates(origin.Row+i, origin.Col)
		}
	}
	return coords
}

func containsCoordinates(coords []Coordinates, c Coordinates) bool {
	for _, coord := range coords {
		if coord == c {
			return true
		}
	}
	return false
}

func (b *Board) arePositionsValid(coords []Coordinates) bool {
	for _, c := range coords {
		if !c.IsValid() || b.grid.Get(c) != CellEmpty {
			return false
		}

		// one cell of water between ships, diagonals included
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				neighbour := NewCoordinates(c.Row+dr, c.Col+dc)
				if !neighbour.IsValid() || containsCoordinates(coords, neighbour) {
					continue
				}
				if b.grid.Get(neighbour) != CellEmpty {
					return false
				}
			}
		}
	}
	return true
}

// PlaceShip commits the ship if every cell of its run is inside the
// grid, empty and not touching another ship. Nothing is mutated on
// rejection. A ship type can be placed once per board.
func (b *Board) PlaceShip(shipType ShipType, origin Coordinates, orientation Orientation) bool {
	if !shipType.IsValid() || b.fleet.Has(shipType) {
		return false
	}

	coords := shipCoordinates(shipType, origin, orientation)
	if !b.arePositionsValid(coords) {
		return false
	}

	for _, c := range coords {
		b.grid.Set(c, CellShip)
	}
	b.fleet.Add(NewShip(shipType, coords))
	return true
}

func (b *Board) IsPlacementComplete() bool {
	for _, shipType := range shipCatalog {
		if !b.fleet.Has(shipType) {
			return false
		}
	}
	return true
}

// AutoPlace places every catalog ship not yet on the board by
// sampling a random origin and orientation until placement succeeds.
func (b *Board) AutoPlace(rng *rand.Rand) {
	for _, shipType := range shipCatalog {
		if b.fleet.Has(shipType) {
			continue
		}

		for {
			origin := NewCoordinates(rng.Intn(GridSize), rng.Intn(GridSize))
			orientation := OrientationHorizontal
			if rng.Intn(2) == 1 {
				orientation = OrientationVertical
			}

			if b.PlaceShip(shipType, origin, orientation) {
				break
			}
		}
	}
}

// Shoot resolves a shot at c. The caller checks bounds. Firing at a
// cell that was already resolved changes nothing.
func (b *Board) Shoot(c Coordinates) ShotResult {
	switch b.grid.Get(c) {
	case CellShip:
		b.grid.Set(c, CellHit)

		ship := b.fleet.ShipAt(c)
		if ship == nil {
			panic("ship cell with no ship in the fleet; this error should never happen")
		}

		if !b.fleet.RecordHit(ship.Id()) {
			return ShotResult{Hit: true}
		}

		for _, coord := range ship.coordinates {
			b.grid.Set(coord, CellSunk)
		}
		return ShotResult{Hit: true, Sunk: true}

	case CellEmpty:
		b.grid.Set(c, CellMiss)
		return ShotResult{}

	default:
		return ShotResult{Redundant: true}
	}
}

// Cells that have not been fired upon yet, in row-major order.
func (b *Board) UnresolvedCells() []Coordinates {
	cells := make([]Coordinates, 0, GridSize*GridSize)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			c := NewCoordinates(row, col)
			if !b.grid.Get(c).IsResolved() {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

func (b *Board) reset() {
	b.grid = NewGrid()
	b.fleet = NewFleet()
}
