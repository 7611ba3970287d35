package battleship

import (
	"sync"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

type GameManager interface {
	CreateGame(difficulty uint8) (*Game, error)
	GetGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)

	isDifficultyValid(uint8) bool
}

type BattleshipGameManager struct {
	games map[string]*Game
	opts  []GameOption
	mu    sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

// The options are applied to every game the manager creates.
func NewBattleshipGameManager(opts ...GameOption) *BattleshipGameManager {
	return &BattleshipGameManager{
		games: make(map[string]*Game, 10),
		opts:  opts,
	}
}

func (bgm *BattleshipGameManager) CreateGame(difficulty uint8) (*Game, error) {
	if !bgm.isDifficultyValid(difficulty) {
		return nil, cerr.ErrInvalidGameDifficulty(difficulty)
	}

	game := NewGame(difficulty, bgm.opts...)

	bgm.mu.Lock()
	bgm.games[game.Uuid()] = game
	bgm.mu.Unlock()

	return game, nil
}

func (bgm *BattleshipGameManager) GetGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}

	if game == nil {
		return nil, cerr.ErrGameIsNil(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}

func (bgm *BattleshipGameManager) isDifficultyValid(difficulty uint8) bool {
	return !(difficulty != GameDifficultyEasy && difficulty != GameDifficultyNormal && difficulty != GameDifficultyHard)
}
