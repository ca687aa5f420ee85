package brackets

import (
	"errors"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
	"github.com/google/uuid"
)

var ErrNotEnoughQualified = errors.New("both groups need at least two ranked teams")

// BuildCrossSeed creates the knockout tail of a group-stage tournament: two
// semifinals feeding a final. Group winners face the opposite group's
// runners-up so a same-group rematch can only happen in the final. The final
// is first in the returned slice so creates stay in referential order.
func BuildCrossSeed(tournamentID string, standingsA, standingsB []*models.Standing) ([]*models.Match, error) {
	if len(standingsA) < 2 || len(standingsB) < 2 {
		return nil, ErrNotEnoughQualified
	}

	final := &models.Match{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		Round:        3,
		Position:     0,
		Status:       models.MatchStatusPending,
		Stage:        models.StageKnockout,
	}

	semi1 := &models.Match{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		Round:        2,
		Position:     0,
		NextMatchID:  &final.ID,
		TeamAID:      &standingsA[0].TeamID,
		TeamBID:      &standingsB[1].TeamID,
		Status:       models.MatchStatusPending,
		Stage:        models.StageKnockout,
	}

	semi2 := &models.Match{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		Round:        2,
		Position:     1,
		NextMatchID:  &final.ID,
		TeamAID:      &standingsB[0].TeamID,
		TeamBID:      &standingsA[1].TeamID,
		Status:       models.MatchStatusPending,
		Stage:        models.StageKnockout,
	}

	return []*models.Match{final, semi1, semi2}, nil
}
