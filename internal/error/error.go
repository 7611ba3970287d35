package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrAttackFailed    = "attack operation failed"
	ConstErrPlacementFailed = "ship placement rejected"
)

var (
	ErrGameOver            = errors.New("game is over; no further shots accepted")
	ErrNotPlayerTurn       = errors.New("it is not the player's turn")
	ErrNotOpponentTurn     = errors.New("it is not the opponent's turn")
	ErrPlacementIncomplete = errors.New("both sides must place their entire fleet before shooting")
	ErrNoUnresolvedCells   = errors.New("there is no cell left to fire at")
)

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s", gameUuid)
}

func ErrGameIsNil(gameUuid string) error {
	return fmt.Errorf("game with this uuid is nil, uuid: %s", gameUuid)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id does not exist, id: %s", sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session with this id is nil, id: %s", sessionId)
}

func ErrSessionNotAwaitingReconnect(sessionId string) error {
	return fmt.Errorf("session is still connected and cannot be taken over, id: %s", sessionId)
}

func ErrNoGameInSession(sessionId string) error {
	return fmt.Errorf("no game has been created for this session yet, id: %s", sessionId)
}

func ErrInvalidGameDifficulty(difficulty uint8) error {
	return fmt.Errorf("invalid game difficulty: %d", difficulty)
}

func ErrInvalidShipType(shipType uint8) error {
	return fmt.Errorf("invalid ship type: %d", shipType)
}

func ErrInvalidSide(side uint8) error {
	return fmt.Errorf("invalid side: %d", side)
}

func ErrXorYOutOfGridBound(row, col int) error {
	return fmt.Errorf("incoming row or col is out of game grid bound\trow: %d\tcol: %d", row, col)
}

func ErrShipAlreadyPlaced(shipType string) error {
	return fmt.Errorf("ship type already placed on this board: %s", shipType)
}

func ErrPlacementRejected(shipType string, row, col int, horizontal bool) error {
	return fmt.Errorf("%s\tship: %s\trow: %d\tcol: %d\thorizontal: %t", ConstErrPlacementFailed, shipType, row, col, horizontal)
}

func ErrShipNotInFleet(shipId string) error {
	return fmt.Errorf("hit recorded for a ship that is not in the fleet, id: %s; ship index out of sync with grid", shipId)
}

func ErrStrategyResolvedCell(row, col int) error {
	return fmt.Errorf("computer strategy picked a cell that was already fired at\trow: %d\tcol: %d", row, col)
}
