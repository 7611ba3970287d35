package battleship

import (
	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

type ShipType uint8

const (
	ShipCarrier ShipType = iota
	ShipBattleship
	ShipSubmarineA
	ShipSubmarineB
	ShipDestroyer
)

// Sum of all ship sizes in the catalog
const TotalShipCells = 17

var shipCatalog = [...]ShipType{
	ShipCarrier,
	ShipBattleship,
	ShipSubmarineA,
	ShipSubmarineB,
	ShipDestroyer,
}

// ShipCatalog returns every ship type a side must place, in placement order.
func ShipCatalog() []ShipType {
	catalog := make([]ShipType, len(shipCatalog))
	copy(catalog, shipCatalog[:])
	return catalog
}

func (st ShipType) IsValid() bool {
	return st <= ShipDestroyer
}

func (st ShipType) Size() int {
	switch st {
	case ShipCarrier:
		return 5
	case ShipBattleship:
		return 4
	case ShipSubmarineA, ShipSubmarineB:
		return 3
	case ShipDestroyer:
		return 2
	default:
		return 0
	}
}

func (st ShipType) String() string {
	switch st {
	case ShipCarrier:
		return "Carrier"
	case ShipBattleship:
		return "Battleship"
	case ShipSubmarineA:
		return "Submarine-A"
	case ShipSubmarineB:
		return "Submarine-B"
	case ShipDestroyer:
		return "Destroyer"
	default:
		return "Unknown"
	}
}

type Ship struct {
	id          string
	shipType    ShipType
	coordinates []Coordinates
	hits        int
}

func NewShip(shipType ShipType, coordinates []Coordinates) *Ship {
	return &Ship{
		id:          uuid.NewString(),
		shipType:    shipType,
		coordinates: coordinates,
		hits:        0,
	}
}

func (sh *Ship) Id() string {
	return sh.id
}

func (sh *Ship) Type() ShipType {
	return sh.shipType
}

func (sh *Ship) Hits() int {
	return sh.hits
}

// Returns a copy so the placed coordinates can never be moved.
func (sh *Ship) Coordinates() []Coordinates {
	coords := make([]Coordinates, len(sh.coordinates))
	copy(coords, sh.coordinates)
	return coords
}

func (sh *Ship) GotHit() {
	if sh.hits < sh.shipType.Size() {
		sh.hits++
	}
}

func (sh *Ship) IsSunk() bool {
	return sh.hits == sh.shipType.Size()
}

func (sh *Ship) Occupies(c Coordinates) bool {
	for _, coord := range sh.coordinates {
		if coord == c {
			return true
		}
	}
	return false
}

// Fleet holds the ships of one side in placement order.
type Fleet struct {
	ships []*Ship
	index map[string]*Ship
}

func NewFleet() *Fleet {
	return &Fleet{
		ships: make([]*Ship, 0, len(shipCatalog)),
		index: make(map[string]*Ship, len(shipCatalog)),
	}
}

func (f *Fleet) Add(ship *Ship) {
	f.ships = append(f.ships, ship)
	f.index[ship.id] = ship
}

func (f *Fleet) Ships() []*Ship {
	return f.ships
}

func (f *Fleet) Len() int {
	return len(f.ships)
}

func (f *Fleet) Has(shipType ShipType) bool {
	for _, ship := range f.ships {
		if ship.shipType == shipType {
			return true
		}
	}
	return false
}

// Returns nil if no ship occupies c.
func (f *Fleet) ShipAt(c Coordinates) *Ship {
	for _, ship := range f.ships {
		if ship.Occupies(c) {
			return ship
		}
	}
	return nil
}

// RecordHit increments the hit counter of the ship and reports
// whether it is now sunk. An unknown id means the ship index is
// out of sync with the grid, which should never happen.
func (f *Fleet) RecordHit(shipId string) bool {
	ship, prs := f.index[shipId]
	if !prs {
		panic(cerr.ErrShipNotInFleet(shipId))
	}

	ship.GotHit()
	return ship.IsSunk()
}

// An empty fleet is never destroyed; a side that has not
// placed anything cannot have lost.
func (f *Fleet) IsDestroyed() bool {
	if len(f.ships) == 0 {
		return false
	}

	for _, ship := range f.ships {
		if !ship.IsSunk() {
			return false
		}
	}
	return true
}

func (f *Fleet) SunkCount() int {
	var sunk int
	for _, ship := range f.ships {
		if ship.IsSunk() {
			sunk++
		}
	}
	return sunk
}
