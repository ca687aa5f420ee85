package brackets

import (
	"sort"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
)

// ComputeStandings aggregates the finished matches of one group into ordered
// standings. Ranking is by wins, then the head-to-head result between the two
// teams being compared, then game balance.
//
// Head-to-head is a local override, so the comparator is not a total order
// when three or more teams tie on wins in a cycle. Those exotic cycles are
// resolved by the stable sort's behavior; a circular-tie resolver is a known
// limitation, not a goal.
func ComputeStandings(matches []*models.Match, teams []*models.Team) []*models.Standing {
	byTeam := make(map[string]*models.Standing, len(teams))
	standings := make([]*models.Standing, 0, len(teams))
	for _, t := range teams {
		s := &models.Standing{TeamID: t.ID, Team: t}
		byTeam[t.ID] = s
		standings = append(standings, s)
	}

	for _, m := range matches {
		if m.Status != models.MatchStatusFinished || m.WinnerID == nil {
			continue
		}
		if m.TeamAID == nil || m.TeamBID == nil {
			continue
		}

		loserID := *m.TeamAID
		if loserID == *m.WinnerID {
			loserID = *m.TeamBID
		}
		diff := m.ScoreA - m.ScoreB
		if diff < 0 {
			diff = -diff
		}

		if winner := byTeam[*m.WinnerID]; winner != nil {
			winner.Points++
			winner.Wins++
			winner.Played++
			winner.Balance += diff
		}
		if loser := byTeam[loserID]; loser != nil {
			loser.Played++
			loser.Balance -= diff
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if winner := headToHeadWinner(matches, a.TeamID, b.TeamID); winner != "" {
			return winner == a.TeamID
		}
		return a.Balance > b.Balance
	})

	return standings
}

// headToHeadWinner returns the winner of the finished match between exactly
// the two given teams, or "" when no such match is decided.
func headToHeadWinner(matches []*models.Match, teamID, otherID string) string {
	for _, m := range matches {
		if m.Status != models.MatchStatusFinished || m.WinnerID == nil {
			continue
		}
		if m.TeamAID == nil || m.TeamBID == nil {
			continue
		}
		if (*m.TeamAID == teamID && *m.TeamBID == otherID) ||
			(*m.TeamAID == otherID && *m.TeamBID == teamID) {
			return *m.WinnerID
		}
	}
	return ""
}
