package connection

type ReqCreateGame struct {
	GameDifficulty uint8 `json:"game_difficulty"`
}

type ReqPlaceShip struct {
	ShipType   uint8 `json:"ship_type"`
	Row        int   `json:"row"`
	Col        int   `json:"col"`
	Horizontal bool  `json:"horizontal"`
}

type ReqAttack struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
