package battleship

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinates_IsValid(t *testing.T) {
	testCases := []struct {
		coords Coordinates
		valid  bool
	}{
		{NewCoordinates(0, 0), true},
		{NewCoordinates(9, 9), true},
		{NewCoordinates(10, 0), false},
		{NewCoordinates(0, 10), false},
		{NewCoordinates(-1, 5), false},
		{NewCoordinates(5, -1), false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.valid, tc.coords.IsValid(), "%+v", tc.coords)
	}
}

func TestGrid_SetIsVisibleThroughSharedReference(t *testing.T) {
	board := NewBoard()
	grid := board.Grid()

	grid.Set(NewCoordinates(3, 4), CellMiss)

	assert.Equal(t, CellMiss, board.Grid().Get(NewCoordinates(3, 4)))
	assert.Equal(t, 1, board.Grid().Count(CellMiss))
	assert.Equal(t, GridSize*GridSize-1, board.Grid().Count(CellEmpty))
}

func TestCellState_IsResolved(t *testing.T) {
	assert.False(t, CellEmpty.IsResolved())
	assert.False(t, CellShip.IsResolved())
	assert.True(t, CellHit.IsResolved())
	assert.True(t, CellMiss.IsResolved())
	assert.True(t, CellSunk.IsResolved())
}
