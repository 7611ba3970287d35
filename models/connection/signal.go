package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID
	CodeCreateGame
	CodePlaceShip
	CodeAutoPlace
	CodeStartGame
	CodeAttack

	// Sent by the server once the computer has fired
	CodeOpponentAttack
	CodeEndGame
	CodeResetGame
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
