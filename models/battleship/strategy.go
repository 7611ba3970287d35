package battleship

import (
	"math/rand"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

// Strategy picks the cell the computer fires at next on the
// player's board. Implementations must only return unresolved cells.
type Strategy interface {
	NextTarget(target *Board, rng *rand.Rand) (Coordinates, error)
}

// RandomStrategy samples uniformly random cells until it finds one
// that has not been fired upon.
type RandomStrategy struct{}

var _ Strategy = RandomStrategy{}

func (RandomStrategy) NextTarget(target *Board, rng *rand.Rand) (Coordinates, error) {
	unresolved := target.UnresolvedCells()

	switch len(unresolved) {
	case 0:
		return Coordinates{}, cerr.ErrNoUnresolvedCells
	case 1:
		return unresolved[0], nil
	}

	for {
		c := NewCoordinates(rng.Intn(GridSize), rng.Intn(GridSize))
		if !target.grid.Get(c).IsResolved() {
			return c, nil
		}
	}
}

// CandidateStrategy draws uniformly from the enumerated set of
// unresolved cells; same distribution as RandomStrategy with a
// single draw per move.
type CandidateStrategy struct{}

var _ Strategy = CandidateStrategy{}

func (CandidateStrategy) NextTarget(target *Board, rng *rand.Rand) (Coordinates, error) {
	unresolved := target.UnresolvedCells()
	if len(unresolved) == 0 {
		return Coordinates{}, cerr.ErrNoUnresolvedCells
	}
	return unresolved[rng.Intn(len(unresolved))], nil
}

var difficultyStrategies = map[uint8]Strategy{
	GameDifficultyEasy:   RandomStrategy{},
	GameDifficultyNormal: RandomStrategy{},
	GameDifficultyHard:   RandomStrategy{},
}

// StrategyForDifficulty is where difficulty tiers plug in their own
// targeting. Every tier currently plays the uniform random policy.
func StrategyForDifficulty(difficulty uint8) Strategy {
	strategy, prs := difficultyStrategies[difficulty]
	if !prs {
		return RandomStrategy{}
	}
	return strategy
}
