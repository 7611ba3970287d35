package battleship

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShipCoordinates(t *testing.T) {
	testCases := []struct {
		Name        string
		ShipType    ShipType
		Origin      Coordinates
		Orientation Orientation
		Expected    []Coordinates
	}{
		{
			Name:        "horizontal destroyer extends along the row",
			ShipType:    ShipDestroyer,
			Origin:      NewCoordinates(0, 0),
			Orientation: OrientationHorizontal,
			Expected:    []Coordinates{{0, 0}, {0, 1}},
		},
		{
			Name:        "vertical battleship extends along the column",
			ShipType:    ShipBattleship,
			Origin:      NewCoordinates(3, 6),
			Orientation: OrientationVertical,
			Expected:    []Coordinates{{3, 6}, {4, 6}, {5, 6}, {6, 6}},
		},
		{
			Name:        "run may leave the grid",
			ShipType:    ShipCarrier,
			Origin:      NewCoordinates(2, 8),
			Orientation: OrientationHorizontal,
			Expected:    []Coordinates{{2, 8}, {2, 9}, {2, 10}, {2, 11}, {2, 12}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, shipCoordinates(tc.ShipType, tc.Origin, tc.Orientation))
		})
	}
}

func TestBoard_PlaceShip(t *testing.T) {
	t.Run("destroyer then diagonal submarine is rejected", func(t *testing.T) {
		board := NewBoard()
		require.True(t, board.PlaceShip(ShipDestroyer, NewCoordinates(0, 0), OrientationHorizontal))

		before := *board.Grid()
		assert.False(t, board.PlaceShip(ShipSubmarineA, NewCoordinates(1, 1), OrientationHorizontal))
		assert.Equal(t, before, *board.Grid())
		assert.Equal(t, 1, board.Fleet().Len())

		assert.True(t, board.PlaceShip(ShipSubmarineA, NewCoordinates(2, 0), OrientationHorizontal))
		assert.Equal(t, CellShip, board.Grid().Get(NewCoordinates(2, 2)))
		assert.Equal(t, 2, board.Fleet().Len())
	})

	t.Run("success marks exactly the run", func(t *testing.T) {
		board := NewBoard()
		require.True(t, board.PlaceShip(ShipCarrier, NewCoordinates(4, 2), OrientationVertical))

		assert.Equal(t, ShipCarrier.Size(), board.Grid().Count(CellShip))
		for row := 4; row < 9; row++ {
			assert.Equal(t, CellShip, board.Grid().Get(NewCoordinates(row, 2)))
		}

		ship := board.Fleet().Ships()[0]
		assert.Equal(t, ShipCarrier, ship.Type())
		assert.Equal(t, 0, ship.Hits())
		assert.Len(t, ship.Coordinates(), ShipCarrier.Size())
	})

	rejected := []struct {
		Name        string
		ShipType    ShipType
		Origin      Coordinates
		Orientation Orientation
	}{
		{"out of bounds horizontally", ShipCarrier, NewCoordinates(0, 6), OrientationHorizontal},
		{"out of bounds vertically", ShipBattleship, NewCoordinates(7, 0), OrientationVertical},
		{"negative origin", ShipDestroyer, NewCoordinates(-1, 3), OrientationVertical},
		{"overlapping", ShipSubmarineB, NewCoordinates(5, 3), OrientationVertical},
		{"touching side by side", ShipSubmarineB, NewCoordinates(6, 2), OrientationHorizontal},
		{"touching end to end", ShipDestroyer, NewCoordinates(5, 7), OrientationHorizontal},
		{"already placed type", ShipBattleship, NewCoordinates(0, 0), OrientationHorizontal},
		{"unknown ship type", ShipType(42), NewCoordinates(0, 0), OrientationHorizontal},
	}

	for _, tc := range rejected {
		t.Run("reject "+tc.Name, func(t *testing.T) {
			board := NewBoard()
			require.True(t, board.PlaceShip(ShipBattleship, NewCoordinates(5, 3), OrientationHorizontal))
			before := *board.Grid()

			assert.False(t, board.PlaceShip(tc.ShipType, tc.Origin, tc.Orientation))
			assert.Equal(t, before, *board.Grid())
			assert.Equal(t, 1, board.Fleet().Len())
		})
	}
}

func TestBoard_IsPlacementComplete(t *testing.T) {
	board := NewBoard()
	placements := []struct {
		ShipType ShipType
		Origin   Coordinates
	}{
		{ShipCarrier, NewCoordinates(0, 0)},
		{ShipBattleship, NewCoordinates(2, 0)},
		{ShipSubmarineA, NewCoordinates(4, 0)},
		{ShipSubmarineB, NewCoordinates(6, 0)},
		{ShipDestroyer, NewCoordinates(8, 0)},
	}

	for _, p := range placements {
		assert.False(t, board.IsPlacementComplete())
		require.True(t, board.PlaceShip(p.ShipType, p.Origin, OrientationHorizontal), p.ShipType.String())
	}

	assert.True(t, board.IsPlacementComplete())
	assert.Equal(t, TotalShipCells, board.Grid().Count(CellShip))
}

func chebyshev(a, b Coordinates) int {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	if dr > dc {
		return dr
	}
	return dc
}

func TestBoard_AutoPlace(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		board := NewBoard()
		board.AutoPlace(rand.New(rand.NewSource(seed)))

		require.True(t, board.IsPlacementComplete())
		require.Equal(t, TotalShipCells, board.Grid().Count(CellShip))

		ships := board.Fleet().Ships()
		for i := range ships {
			for j := i + 1; j < len(ships); j++ {
				for _, a := range ships[i].Coordinates() {
					for _, b := range ships[j].Coordinates() {
						require.GreaterOrEqualf(t, chebyshev(a, b), 2, "seed %d: %s at %v touches %s at %v", seed, ships[i].Type(), a, ships[j].Type(), b)
					}
				}
			}
		}
	}
}

func TestBoard_AutoPlaceIsReproducible(t *testing.T) {
	first := NewBoard()
	first.AutoPlace(rand.New(rand.NewSource(7)))

	second := NewBoard()
	second.AutoPlace(rand.New(rand.NewSource(7)))

	assert.Equal(t, *first.Grid(), *second.Grid())
}

func TestBoard_AutoPlaceKeepsPlacedShips(t *testing.T) {
	board := NewBoard()
	require.True(t, board.PlaceShip(ShipCarrier, NewCoordinates(9, 0), OrientationHorizontal))

	board.AutoPlace(rand.New(rand.NewSource(3)))

	assert.True(t, board.IsPlacementComplete())
	assert.Equal(t, NewCoordinates(9, 0), board.Fleet().Ships()[0].Coordinates()[0])
}

func TestBoard_Shoot(t *testing.T) {
	t.Run("two shots sink a destroyer", func(t *testing.T) {
		board := NewBoard()
		require.True(t, board.PlaceShip(ShipDestroyer, NewCoordinates(0, 0), OrientationHorizontal))

		assert.Equal(t, ShotResult{Hit: true}, board.Shoot(NewCoordinates(0, 0)))
		assert.Equal(t, CellHit, board.Grid().Get(NewCoordinates(0, 0)))

		assert.Equal(t, ShotResult{Hit: true, Sunk: true}, board.Shoot(NewCoordinates(0, 1)))
		assert.Equal(t, CellSunk, board.Grid().Get(NewCoordinates(0, 0)))
		assert.Equal(t, CellSunk, board.Grid().Get(NewCoordinates(0, 1)))
		assert.True(t, board.Fleet().IsDestroyed())
	})

	t.Run("miss", func(t *testing.T) {
		board := NewBoard()
		require.True(t, board.PlaceShip(ShipDestroyer, NewCoordinates(0, 0), OrientationHorizontal))

		assert.Equal(t, ShotResult{}, board.Shoot(NewCoordinates(5, 5)))
		assert.Equal(t, CellMiss, board.Grid().Get(NewCoordinates(5, 5)))
	})

	t.Run("resolved cells are no-ops", func(t *testing.T) {
		board := NewBoard()
		require.True(t, board.PlaceShip(ShipSubmarineA, NewCoordinates(3, 3), OrientationVertical))
		require.True(t, board.PlaceShip(ShipDestroyer, NewCoordinates(0, 0), OrientationHorizontal))

		board.Shoot(NewCoordinates(3, 3))
		board.Shoot(NewCoordinates(9, 9))
		board.Shoot(NewCoordinates(0, 0))
		board.Shoot(NewCoordinates(0, 1))

		grid := *board.Grid()
		hits := board.Fleet().Ships()[0].Hits()
		sunk := board.Fleet().SunkCount()

		for _, c := range []Coordinates{{3, 3}, {9, 9}, {0, 0}, {0, 1}} {
			assert.Equal(t, ShotResult{Redundant: true}, board.Shoot(c))
		}

		assert.Equal(t, grid, *board.Grid())
		assert.Equal(t, hits, board.Fleet().Ships()[0].Hits())
		assert.Equal(t, sunk, board.Fleet().SunkCount())
	})
}

func TestBoard_UnresolvedCells(t *testing.T) {
	board := NewBoard()
	require.True(t, board.PlaceShip(ShipDestroyer, NewCoordinates(0, 0), OrientationHorizontal))
	assert.Len(t, board.UnresolvedCells(), GridSize*GridSize)

	board.Shoot(NewCoordinates(0, 0))
	board.Shoot(NewCoordinates(4, 4))

	cells := board.UnresolvedCells()
	assert.Len(t, cells, GridSize*GridSize-2)
	assert.NotContains(t, cells, NewCoordinates(0, 0))
	assert.NotContains(t, cells, NewCoordinates(4, 4))
	assert.Contains(t, cells, NewCoordinates(0, 1))
}

func TestShotResult_Message(t *testing.T) {
	assert.Equal(t, "Hit and sunk!", ShotResult{Hit: true, Sunk: true}.Message())
	assert.Equal(t, "Hit!", ShotResult{Hit: true}.Message())
	assert.Equal(t, "Miss!", ShotResult{}.Message())
}
