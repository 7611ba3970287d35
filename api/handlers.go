package api

import (
	"encoding/json"
	"errors"
	"log"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

// Every incoming valid request will have this structure
// The request then is handled by one of the Handle methods
type Request struct {
	payload []byte
}

func NewRequest(payload ...[]byte) Request {
	if len(payload) > 1 {
		log.Println("cannot accept more than one payload")
		return Request{}
	}

	req := Request{}
	if len(payload) == 1 {
		req.payload = payload[0]
	}
	return req
}

func (r Request) HandleCreateGame(gameManager mb.GameManager) (*mb.Game, mc.Message[mc.RespCreateGame]) {
	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)

	var reqCreateGame mc.Message[mc.ReqCreateGame]
	if err := json.Unmarshal(r.payload, &reqCreateGame); err != nil {
		resp.AddError(err.Error(), "failed to unmarshal create game request")
		return nil, resp
	}

	game, err := gameManager.CreateGame(reqCreateGame.Payload.GameDifficulty)
	if err != nil {
		resp.AddError(err.Error(), "failed to create the game")
		return nil, resp
	}

	resp.AddPayload(mc.RespCreateGame{GameUuid: game.Uuid(), GameDifficulty: game.Difficulty()})
	return game, resp
}

// The player places one ship at a time on their own board.
func (r Request) HandlePlaceShip(game *mb.Game) mc.Message[mc.RespPlaceShip] {
	resp := mc.NewMessage[mc.RespPlaceShip](mc.CodePlaceShip)

	var reqPlaceShip mc.Message[mc.ReqPlaceShip]
	if err := json.Unmarshal(r.payload, &reqPlaceShip); err != nil {
		resp.AddError(err.Error(), "failed to unmarshal place ship request")
		return resp
	}

	p := reqPlaceShip.Payload
	shipType := mb.ShipType(p.ShipType)
	if !shipType.IsValid() {
		resp.AddError(cerr.ErrInvalidShipType(p.ShipType).Error(), cerr.ConstErrPlacementFailed)
		return resp
	}

	board := game.Board(mb.PlayerSide)
	if board.Fleet().Has(shipType) {
		resp.AddError(cerr.ErrShipAlreadyPlaced(shipType.String()).Error(), cerr.ConstErrPlacementFailed)
		return resp
	}

	orientation := mb.OrientationVertical
	if p.Horizontal {
		orientation = mb.OrientationHorizontal
	}

	if !game.PlaceShip(mb.PlayerSide, shipType, mb.NewCoordinates(p.Row, p.Col), orientation) {
		resp.AddError(cerr.ErrPlacementRejected(shipType.String(), p.Row, p.Col, p.Horizontal).Error(), cerr.ConstErrPlacementFailed)
		return resp
	}

	resp.AddPayload(newRespPlaceShip(board, shipType))
	return resp
}

// Places every ship the player has not placed yet at random.
func (r Request) HandleAutoPlace(game *mb.Game) mc.Message[mc.RespAutoPlace] {
	resp := mc.NewMessage[mc.RespAutoPlace](mc.CodeAutoPlace)

	game.AutoPlacePlayerShips()

	board := game.Board(mb.PlayerSide)
	ships := make([]mc.RespPlaceShip, 0, board.Fleet().Len())
	for _, ship := range board.Fleet().Ships() {
		ships = append(ships, newRespPlaceShip(board, ship.Type()))
	}

	resp.AddPayload(mc.RespAutoPlace{Ships: ships})
	return resp
}

// The computer places its fleet once the player is done.
func (r Request) HandleStartGame(game *mb.Game) mc.Message[mc.NoPayload] {
	resp := mc.NewMessage[mc.NoPayload](mc.CodeStartGame)

	if !game.Board(mb.PlayerSide).IsPlacementComplete() {
		resp.AddError(cerr.ErrPlacementIncomplete.Error(), "place every ship before starting")
		return resp
	}

	game.PlaceOpponentShips()
	return resp
}

func (r Request) HandleAttack(game *mb.Game) mc.Message[mc.RespAttack] {
	resp := mc.NewMessage[mc.RespAttack](mc.CodeAttack)

	var reqAttack mc.Message[mc.ReqAttack]
	if err := json.Unmarshal(r.payload, &reqAttack); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return resp
	}

	c := mb.NewCoordinates(reqAttack.Payload.Row, reqAttack.Payload.Col)
	result, err := game.Shoot(c, mb.OpponentSide)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return resp
	}

	resp.AddPayload(mc.NewRespAttack(c, result, game.CurrentPhase(), game.Board(mb.OpponentSide)))
	return resp
}

// HandleOpponentMove lets the computer fire. It is called by the
// processor after pacing, never directly on a client signal.
func HandleOpponentMove(game *mb.Game) mc.Message[mc.RespAttack] {
	resp := mc.NewMessage[mc.RespAttack](mc.CodeOpponentAttack)

	c, result, err := game.ComputerMove()
	if err != nil {
		if !errors.Is(err, cerr.ErrGameOver) {
			log.Println("computer move failed:", err)
		}
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return resp
	}

	resp.AddPayload(mc.NewRespAttack(c, result, game.CurrentPhase(), game.Board(mb.PlayerSide)))
	return resp
}

func (r Request) HandleResetGame(game *mb.Game) mc.Message[mc.RespCreateGame] {
	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeResetGame)

	game.ResetGame()
	resp.AddPayload(mc.RespCreateGame{GameUuid: game.Uuid(), GameDifficulty: game.Difficulty()})
	return resp
}

func NewEndGameMessage(game *mb.Game) mc.Message[mc.RespEndGame] {
	resp := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
	resp.AddPayload(mc.NewRespEndGame(game))
	return resp
}

func newRespPlaceShip(board *mb.Board, shipType mb.ShipType) mc.RespPlaceShip {
	resp := mc.RespPlaceShip{
		ShipType:          uint8(shipType),
		PlacementComplete: board.IsPlacementComplete(),
	}

	for _, ship := range board.Fleet().Ships() {
		if ship.Type() == shipType {
			resp.Coordinates = ship.Coordinates()
			break
		}
	}
	return resp
}
