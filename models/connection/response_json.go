package connection

import (
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateGame struct {
	GameUuid       string `json:"game_uuid"`
	GameDifficulty uint8  `json:"game_difficulty"`
}

type RespPlaceShip struct {
	ShipType          uint8            `json:"ship_type"`
	Coordinates       []mb.Coordinates `json:"coordinates"`
	PlacementComplete bool             `json:"placement_complete"`
}

type RespAutoPlace struct {
	Ships []RespPlaceShip `json:"ships"`
}

type RespAttack struct {
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Hit       bool   `json:"hit"`
	Sunk      bool   `json:"sunk"`
	Redundant bool   `json:"redundant,omitempty"`
	Message   string `json:"message"`
	Phase     string `json:"phase"`

	// Cells of the ship that just went down
	SunkCoordinates []mb.Coordinates `json:"sunk_coordinates,omitempty"`
}

type RespEndGame struct {
	Winner       string `json:"winner"`
	PlayerHits   int    `json:"player_hits"`
	OpponentHits int    `json:"opponent_hits"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}

func NewRespAttack(c mb.Coordinates, result mb.ShotResult, phase mb.Phase, target *mb.Board) RespAttack {
	resp := RespAttack{
		Row:       c.Row,
		Col:       c.Col,
		Hit:       result.Hit,
		Sunk:      result.Sunk,
		Redundant: result.Redundant,
		Message:   result.Message(),
		Phase:     phase.String(),
	}

	if result.Sunk {
		if ship := target.Fleet().ShipAt(c); ship != nil {
			resp.SunkCoordinates = ship.Coordinates()
		}
	}
	return resp
}

func NewRespEndGame(game *mb.Game) RespEndGame {
	resp := RespEndGame{
		PlayerHits:   game.Hits(mb.PlayerSide),
		OpponentHits: game.Hits(mb.OpponentSide),
	}
	if winner, ok := game.Winner(); ok {
		resp.Winner = winner.String()
	}
	return resp
}
