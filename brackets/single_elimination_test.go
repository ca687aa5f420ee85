package brackets

import (
	"context"
	"fmt"
	"testing"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
)

// identityShuffler keeps the input order, so tests can reason about seats.
type identityShuffler struct{}

func (identityShuffler) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

func makeTeams(n int) []*models.Team {
	teams := make([]*models.Team, n)
	for i := range teams {
		teams[i] = &models.Team{
			ID:   fmt.Sprintf("team-%d", i+1),
			Name: fmt.Sprintf("Team %d", i+1),
		}
	}
	return teams
}

func generateKnockout(t *testing.T, n int) []*models.Match {
	t.Helper()
	gen := NewSingleEliminationGenerator(identityShuffler{})
	matches, err := gen.GenerateStage(context.Background(), GenerateStageParams{
		Tournament: &models.Tournament{ID: "tournament-1"},
		Teams:      makeTeams(n),
	})
	if err != nil {
		t.Fatalf("GenerateStage(%d teams): %v", n, err)
	}
	return matches
}

func TestSingleEliminationRejectsFewerThanTwoTeams(t *testing.T) {
	gen := NewSingleEliminationGenerator(identityShuffler{})
	for _, n := range []int{0, 1} {
		_, err := gen.GenerateStage(context.Background(), GenerateStageParams{
			Tournament: &models.Tournament{ID: "tournament-1"},
			Teams:      makeTeams(n),
		})
		if err != ErrNotEnoughTeams {
			t.Errorf("%d teams: got %v, want ErrNotEnoughTeams", n, err)
		}
	}
}

func TestSingleEliminationPowerOfTwo(t *testing.T) {
	matches := generateKnockout(t, 8)

	if len(matches) != 7 {
		t.Fatalf("got %d matches, want 7", len(matches))
	}

	perRound := map[int]int{}
	for _, m := range matches {
		perRound[m.Round]++
		if m.Stage != models.StageKnockout {
			t.Errorf("match %s: stage %s, want %s", m.ID, m.Stage, models.StageKnockout)
		}
	}
	want := map[int]int{1: 4, 2: 2, 3: 1}
	for r, n := range want {
		if perRound[r] != n {
			t.Errorf("round %d: got %d matches, want %d", r, perRound[r], n)
		}
	}

	// No byes: every first-round match is pending with both teams seated.
	for _, m := range matches {
		if m.Round != 1 {
			continue
		}
		if m.TeamAID == nil || m.TeamBID == nil {
			t.Errorf("round 1 position %d: missing a team", m.Position)
		}
		if m.Status != models.MatchStatusPending {
			t.Errorf("round 1 position %d: status %s, want PENDING", m.Position, m.Status)
		}
	}
}

func TestSingleEliminationWithByes(t *testing.T) {
	matches := generateKnockout(t, 5)

	// 5 teams round up to a bracket of 8: 3 rounds, 7 matches, 3 byes.
	if len(matches) != 7 {
		t.Fatalf("got %d matches, want 7", len(matches))
	}

	finished := 0
	for _, m := range matches {
		if m.Round != 1 {
			continue
		}
		if m.Status == models.MatchStatusFinished {
			finished++
			if m.WinnerID == nil {
				t.Errorf("bye match at position %d has no winner", m.Position)
			}
		}
	}
	if finished != 3 {
		t.Errorf("got %d bye matches, want 3", finished)
	}
}

func TestSingleEliminationEveryByeFacesATeam(t *testing.T) {
	for _, n := range []int{3, 5, 6, 9, 11, 13} {
		matches := generateKnockout(t, n)

		totalRounds := 0
		for _, m := range matches {
			if m.Round > totalRounds {
				totalRounds = m.Round
			}
		}
		byeCount := 1<<uint(totalRounds) - n

		finished := 0
		for _, m := range matches {
			if m.Round != 1 {
				continue
			}
			// A match with neither team seated could never be played and
			// would strand its next-round slot forever.
			if m.TeamAID == nil && m.TeamBID == nil {
				t.Errorf("%d teams: round 1 position %d has no teams at all", n, m.Position)
			}
			if m.Status == models.MatchStatusFinished {
				finished++
				if m.WinnerID == nil {
					t.Errorf("%d teams: bye match at position %d has no winner", n, m.Position)
				}
			}
		}
		if finished != byeCount {
			t.Errorf("%d teams: %d matches born finished, want one per bye (%d)", n, finished, byeCount)
		}
	}
}

func TestSingleEliminationByeWinnerSeatedInNextRound(t *testing.T) {
	matches := generateKnockout(t, 5)

	byRound := map[int]map[int]*models.Match{}
	for _, m := range matches {
		if byRound[m.Round] == nil {
			byRound[m.Round] = map[int]*models.Match{}
		}
		byRound[m.Round][m.Position] = m
	}

	for _, m := range byRound[1] {
		if m.Status != models.MatchStatusFinished {
			continue
		}
		next := byRound[2][m.Position/2]
		var seated *string
		if m.Position%2 == 0 {
			seated = next.TeamAID
		} else {
			seated = next.TeamBID
		}
		if seated == nil || *seated != *m.WinnerID {
			t.Errorf("bye winner of round 1 position %d not seated in round 2 position %d",
				m.Position, m.Position/2)
		}
	}
}

func TestSingleEliminationLinkTopology(t *testing.T) {
	for _, tc := range []struct{ n, totalRounds int }{
		{2, 1}, {4, 2}, {5, 3}, {8, 3}, {13, 4},
	} {
		matches := generateKnockout(t, tc.n)

		byID := map[string]*models.Match{}
		for _, m := range matches {
			byID[m.ID] = m
		}

		for _, m := range matches {
			if m.NextMatchID == nil {
				if m.Round != tc.totalRounds {
					t.Errorf("%d teams: final at round %d, want %d", tc.n, m.Round, tc.totalRounds)
				}
				continue
			}
			next := byID[*m.NextMatchID]
			if next.Round != m.Round+1 || next.Position != m.Position/2 {
				t.Errorf("%d teams: round %d position %d links to round %d position %d",
					tc.n, m.Round, m.Position, next.Round, next.Position)
			}

			// Walking the links from any match reaches the final in
			// totalRounds - round hops.
			hops := 0
			for cur := m; cur.NextMatchID != nil; cur = byID[*cur.NextMatchID] {
				hops++
			}
			if hops != tc.totalRounds-m.Round {
				t.Errorf("%d teams: round %d position %d reaches the final in %d hops, want %d",
					tc.n, m.Round, m.Position, hops, tc.totalRounds-m.Round)
			}
		}
	}
}

func TestSingleEliminationLinksResolveBackward(t *testing.T) {
	for _, n := range []int{2, 3, 5, 8, 13} {
		matches := generateKnockout(t, n)

		// Creation order guarantees every NextMatchID points at an
		// earlier entry, so a sequential insert never breaks a FK.
		seen := map[string]bool{}
		for _, m := range matches {
			if m.NextMatchID != nil && !seen[*m.NextMatchID] {
				t.Errorf("%d teams: match %s links to %s before it exists",
					n, m.ID, *m.NextMatchID)
			}
			seen[m.ID] = true
		}

		var final *models.Match
		for _, m := range matches {
			if m.NextMatchID == nil {
				if final != nil {
					t.Fatalf("%d teams: more than one final", n)
				}
				final = m
			}
		}
		if final == nil {
			t.Fatalf("%d teams: no final", n)
		}
	}
}
