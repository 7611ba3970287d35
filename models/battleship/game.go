package battleship

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

const (
	GameDifficultyEasy uint8 = iota
	GameDifficultyNormal
	GameDifficultyHard
)

type Side uint8

const (
	PlayerSide Side = iota
	OpponentSide
)

func (s Side) IsValid() bool {
	return s == PlayerSide || s == OpponentSide
}

func (s Side) Other() Side {
	if s == PlayerSide {
		return OpponentSide
	}
	return PlayerSide
}

func (s Side) String() string {
	if s == OpponentSide {
		return "opponent"
	}
	return "player"
}

type Phase uint8

const (
	PhasePlayerTurn Phase = iota
	PhaseOpponentTurn
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseOpponentTurn:
		return "opponent_turn"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Game is one session between the player and the computer. All
// mutation goes through its methods; it is not safe for concurrent
// use and callers serialize access per session.
type Game struct {
	uuid       string
	difficulty uint8
	boards     [2]*Board
	hits       [2]int
	phase      Phase
	rng        *rand.Rand
	strategy   Strategy
}

type GameOption func(*Game)

// Random source for auto placement and computer targeting.
func WithRand(rng *rand.Rand) GameOption {
	return func(g *Game) {
		g.rng = rng
	}
}

func WithStrategy(strategy Strategy) GameOption {
	return func(g *Game) {
		g.strategy = strategy
	}
}

func NewGame(difficulty uint8, opts ...GameOption) *Game {
	game := &Game{
		uuid:       uuid.NewString()[:6],
		difficulty: difficulty,
		boards:     [2]*Board{NewBoard(), NewBoard()},
		phase:      PhasePlayerTurn,
	}

	for _, opt := range opts {
		opt(game)
	}

	if game.rng == nil {
		game.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if game.strategy == nil {
		game.strategy = StrategyForDifficulty(difficulty)
	}

	return game
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) Difficulty() uint8 {
	return g.difficulty
}

func (g *Game) CurrentPhase() Phase {
	return g.phase
}

// Returns nil for an invalid side.
func (g *Game) Board(side Side) *Board {
	if !side.IsValid() {
		return nil
	}
	return g.boards[side]
}

// Number of shots fired by side that landed on a ship. Zero for an
// invalid side.
func (g *Game) Hits(side Side) int {
	if !side.IsValid() {
		return 0
	}
	return g.hits[side]
}

func (g *Game) PlaceShip(side Side, shipType ShipType, origin Coordinates, orientation Orientation) bool {
	if !side.IsValid() {
		return false
	}
	return g.boards[side].PlaceShip(shipType, origin, orientation)
}

func (g *Game) PlaceOpponentShips() {
	g.boards[OpponentSide].AutoPlace(g.rng)
}

// Fills the player's board with whatever ships are still missing.
func (g *Game) AutoPlacePlayerShips() {
	g.boards[PlayerSide].AutoPlace(g.rng)
}

func (g *Game) IsPlacementComplete() bool {
	return g.boards[PlayerSide].IsPlacementComplete() && g.boards[OpponentSide].IsPlacementComplete()
}

// Shoot fires at coordinate c on the board of target. The attacker
// is the other side and must be the side whose turn it is.
func (g *Game) Shoot(c Coordinates, target Side) (ShotResult, error) {
	if !target.IsValid() {
		return ShotResult{}, cerr.ErrInvalidSide(uint8(target))
	}
	if g.phase == PhaseGameOver {
		return ShotResult{}, cerr.ErrGameOver
	}
	if !g.IsPlacementComplete() {
		return ShotResult{}, cerr.ErrPlacementIncomplete
	}
	if g.attacker() != target.Other() {
		return ShotResult{}, errNotTurnOf(target.Other())
	}
	if !c.IsValid() {
		return ShotResult{}, cerr.ErrXorYOutOfGridBound(c.Row, c.Col)
	}

	result := g.boards[target].Shoot(c)
	if result.Redundant {
		return result, nil
	}

	if result.Hit {
		g.hits[target.Other()]++
	}

	switch {
	case g.IsGameOver():
		g.phase = PhaseGameOver
	case g.phase == PhasePlayerTurn:
		g.phase = PhaseOpponentTurn
	default:
		g.phase = PhasePlayerTurn
	}

	return result, nil
}

// ComputerMove picks a target on the player's board with the
// configured strategy and fires. It has no timing of its own.
func (g *Game) ComputerMove() (Coordinates, ShotResult, error) {
	if g.phase == PhaseGameOver {
		return Coordinates{}, ShotResult{}, cerr.ErrGameOver
	}
	if g.phase != PhaseOpponentTurn {
		return Coordinates{}, ShotResult{}, cerr.ErrNotOpponentTurn
	}

	c, err := g.strategy.NextTarget(g.boards[PlayerSide], g.rng)
	if err != nil {
		return Coordinates{}, ShotResult{}, err
	}

	result, err := g.Shoot(c, PlayerSide)
	if err != nil {
		return Coordinates{}, ShotResult{}, err
	}
	if result.Redundant {
		return Coordinates{}, ShotResult{}, cerr.ErrStrategyResolvedCell(c.Row, c.Col)
	}
	return c, result, nil
}

func (g *Game) IsGameOver() bool {
	return g.boards[PlayerSide].fleet.IsDestroyed() || g.boards[OpponentSide].fleet.IsDestroyed()
}

// Winner reports the side whose opponent fleet is fully sunk. ok is
// false while the game is still running.
func (g *Game) Winner() (winner Side, ok bool) {
	switch {
	case g.boards[OpponentSide].fleet.IsDestroyed():
		return PlayerSide, true
	case g.boards[PlayerSide].fleet.IsDestroyed():
		return OpponentSide, true
	default:
		return PlayerSide, false
	}
}

// ResetGame clears both boards and hit counters. Difficulty and
// uuid are kept.
func (g *Game) ResetGame() {
	for _, board := range g.boards {
		board.reset()
	}
	g.hits = [2]int{}
	g.phase = PhasePlayerTurn
}

func errNotTurnOf(side Side) error {
	if side == OpponentSide {
		return cerr.ErrNotOpponentTurn
	}
	return cerr.ErrNotPlayerTurn
}

func (g *Game) attacker() Side {
	if g.phase == PhaseOpponentTurn {
		return OpponentSide
	}
	return PlayerSide
}
