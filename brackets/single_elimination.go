package brackets

import (
	"context"
	"errors"
	"math"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
	"github.com/google/uuid"
)

var ErrNotEnoughTeams = errors.New("not enough teams to generate a knockout bracket (minimum 2)")

type SingleEliminationGenerator struct {
	shuffler Shuffler
}

func NewSingleEliminationGenerator(sh Shuffler) *SingleEliminationGenerator {
	return &SingleEliminationGenerator{shuffler: sh}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

// GenerateStage builds a balanced single-elimination tree for N >= 2 teams.
// The bracket size is the next power of two; the missing slots become byes.
// Rounds are created from the final backward so every NextMatchID points at a
// match that already exists, and the returned slice preserves that creation
// order for the persistence layer.
func (g *SingleEliminationGenerator) GenerateStage(ctx context.Context, params GenerateStageParams) ([]*models.Match, error) {
	teams := params.Teams
	n := len(teams)
	if n < 2 {
		return nil, ErrNotEnoughTeams
	}

	totalRounds := int(math.Ceil(math.Log2(float64(n))))
	bracketSize := 1 << uint(totalRounds)
	byeCount := bracketSize - n

	// Independent draw from the pairing shuffle.
	shuffled := shuffleTeams(teams, g.shuffler)

	// One bye per pair, in the B seat of the first byeCount pairs, so every
	// bye faces a real team. byeCount is always below half the bracket, so
	// the byes never outnumber the pairs.
	slots := make([]slot, bracketSize)
	for i := 0; i < byeCount; i++ {
		slots[2*i+1] = byeSlot()
	}
	next := 0
	for _, t := range shuffled {
		for slots[next].kind == slotBye {
			next++
		}
		slots[next] = teamSlot(t)
		next++
	}

	matches := make([]*models.Match, 0, bracketSize-1)
	byRound := make(map[int]map[int]*models.Match, totalRounds)

	for r := totalRounds; r >= 1; r-- {
		matchesInRound := 1 << uint(totalRounds-r)
		byRound[r] = make(map[int]*models.Match, matchesInRound)

		for pos := 0; pos < matchesInRound; pos++ {
			m := &models.Match{
				ID:           uuid.NewString(),
				TournamentID: params.Tournament.ID,
				Round:        r,
				Position:     pos,
				Status:       models.MatchStatusPending,
				Stage:        models.StageKnockout,
			}

			if r < totalRounds {
				next := byRound[r+1][pos/2]
				m.NextMatchID = &next.ID
			}

			if r == 1 {
				g.fillFirstRound(m, slots, byRound)
			}

			byRound[r][pos] = m
			matches = append(matches, m)
		}
	}

	return matches, nil
}

// fillFirstRound seats the two slot-array entries belonging to the match. A
// real team paired against a bye is decided on the spot: the match is born
// FINISHED and its winner is written into the next match at creation time.
// Slot assignment pairs every bye with a real team, so a bye-vs-bye match
// cannot occur.
func (g *SingleEliminationGenerator) fillFirstRound(m *models.Match, slots []slot, byRound map[int]map[int]*models.Match) {
	a := slots[m.Position*2]
	b := slots[m.Position*2+1]

	if a.hasTeam() {
		m.TeamAID = &a.team.ID
	}
	if b.hasTeam() {
		m.TeamBID = &b.team.ID
	}

	var byeWinner *models.Team
	switch {
	case a.hasTeam() && b.kind == slotBye:
		byeWinner = a.team
	case b.hasTeam() && a.kind == slotBye:
		byeWinner = b.team
	}
	if byeWinner == nil {
		return
	}

	m.Status = models.MatchStatusFinished
	m.WinnerID = &byeWinner.ID

	if m.NextMatchID != nil {
		next := byRound[m.Round+1][m.Position/2]
		if m.Position%2 == 0 {
			next.TeamAID = &byeWinner.ID
		} else {
			next.TeamBID = &byeWinner.ID
		}
	}
}
