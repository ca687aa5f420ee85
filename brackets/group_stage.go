package brackets

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
	"github.com/google/uuid"
)

const DefaultGroupSize = 4

var ErrGroupStageTeamCount = errors.New("group stage requires exactly twice the group size in teams")

var groupLabels = []string{"A", "B"}

type GroupStageGenerator struct {
	shuffler  Shuffler
	groupSize int
}

func NewGroupStageGenerator(sh Shuffler) *GroupStageGenerator {
	return &GroupStageGenerator{shuffler: sh, groupSize: DefaultGroupSize}
}

// NewGroupStageGeneratorWithSize overrides the teams-per-group count. The
// stage still demands exactly two full groups.
func NewGroupStageGeneratorWithSize(sh Shuffler, groupSize int) *GroupStageGenerator {
	return &GroupStageGenerator{shuffler: sh, groupSize: groupSize}
}

func (g *GroupStageGenerator) GetName() string {
	return "GroupStage"
}

// GenerateStage shuffles the teams, splits them into groups A and B and
// generates a full round robin inside each group. Group labels are written
// onto the team structs; the caller persists them alongside the matches.
// Fixtures are position-numbered starting at 1 within their group.
func (g *GroupStageGenerator) GenerateStage(ctx context.Context, params GenerateStageParams) ([]*models.Match, error) {
	teams := params.Teams
	if len(teams) != 2*g.groupSize {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrGroupStageTeamCount, 2*g.groupSize, len(teams))
	}

	shuffled := shuffleTeams(teams, g.shuffler)
	groups := map[string][]*models.Team{
		"A": shuffled[:g.groupSize],
		"B": shuffled[g.groupSize:],
	}

	matches := make([]*models.Match, 0, 2*g.groupSize*(g.groupSize-1)/2)

	for _, label := range groupLabels {
		label := label
		for _, t := range groups[label] {
			t.Group = &label
		}

		position := 1
		members := groups[label]
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				matches = append(matches, &models.Match{
					ID:           uuid.NewString(),
					TournamentID: params.Tournament.ID,
					Round:        1,
					Position:     position,
					TeamAID:      &members[i].ID,
					TeamBID:      &members[j].ID,
					Status:       models.MatchStatusPending,
					Stage:        models.StageGroupStage,
					Group:        &label,
				})
				position++
			}
		}
	}

	return matches, nil
}
