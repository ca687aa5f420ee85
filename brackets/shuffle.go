package brackets

import (
	"math/rand"
	"time"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
)

// Shuffler produces a random permutation of n indices. It is injected into
// every generator so a draw can be reproduced in tests with a fixed seed.
// There is no persisted seed: re-running a generation intentionally produces
// a different draw.
type Shuffler interface {
	Perm(n int) []int
}

type randShuffler struct {
	r *rand.Rand
}

// NewShuffler returns a Shuffler backed by its own time-seeded source.
func NewShuffler() Shuffler {
	return &randShuffler{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededShuffler returns a deterministic Shuffler for tests.
func NewSeededShuffler(seed int64) Shuffler {
	return &randShuffler{r: rand.New(rand.NewSource(seed))}
}

func (s *randShuffler) Perm(n int) []int {
	return s.r.Perm(n)
}

func shuffleTeams(teams []*models.Team, sh Shuffler) []*models.Team {
	out := make([]*models.Team, len(teams))
	for i, j := range sh.Perm(len(teams)) {
		out[i] = teams[j]
	}
	return out
}

func shufflePlayers(players []*models.Player, sh Shuffler) []*models.Player {
	out := make([]*models.Player, len(players))
	for i, j := range sh.Perm(len(players)) {
		out[i] = players[j]
	}
	return out
}
