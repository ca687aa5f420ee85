package brackets

import (
	"context"
	"testing"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
)

func TestGroupStageRequiresTwoFullGroups(t *testing.T) {
	gen := NewGroupStageGenerator(identityShuffler{})
	for _, n := range []int{0, 4, 7, 9, 16} {
		_, err := gen.GenerateStage(context.Background(), GenerateStageParams{
			Tournament: &models.Tournament{ID: "tournament-1"},
			Teams:      makeTeams(n),
		})
		if err == nil {
			t.Errorf("%d teams: expected an error", n)
		}
	}
}

func TestGroupStageFixtures(t *testing.T) {
	teams := makeTeams(8)
	gen := NewGroupStageGenerator(identityShuffler{})
	matches, err := gen.GenerateStage(context.Background(), GenerateStageParams{
		Tournament: &models.Tournament{ID: "tournament-1"},
		Teams:      teams,
	})
	if err != nil {
		t.Fatalf("GenerateStage: %v", err)
	}

	// Round robin of 4 per group: 6 fixtures each.
	if len(matches) != 12 {
		t.Fatalf("got %d matches, want 12", len(matches))
	}

	perGroup := map[string]int{}
	for _, m := range matches {
		if m.Group == nil {
			t.Fatalf("match %s has no group", m.ID)
		}
		perGroup[*m.Group]++
		if m.Stage != models.StageGroupStage {
			t.Errorf("match %s: stage %s, want %s", m.ID, m.Stage, models.StageGroupStage)
		}
		if m.Round != 1 {
			t.Errorf("match %s: round %d, want 1", m.ID, m.Round)
		}
		if m.TeamAID == nil || m.TeamBID == nil {
			t.Errorf("match %s: fixture missing a team", m.ID)
		}
		if m.NextMatchID != nil {
			t.Errorf("match %s: group fixture must not link forward", m.ID)
		}
	}
	if perGroup["A"] != 6 || perGroup["B"] != 6 {
		t.Errorf("fixtures per group: %v, want 6 in A and 6 in B", perGroup)
	}
}

func TestGroupStageLabelsTeams(t *testing.T) {
	teams := makeTeams(8)
	gen := NewGroupStageGenerator(identityShuffler{})
	if _, err := gen.GenerateStage(context.Background(), GenerateStageParams{
		Tournament: &models.Tournament{ID: "tournament-1"},
		Teams:      teams,
	}); err != nil {
		t.Fatalf("GenerateStage: %v", err)
	}

	perGroup := map[string]int{}
	for _, team := range teams {
		if team.Group == nil {
			t.Fatalf("team %s not assigned to a group", team.ID)
		}
		perGroup[*team.Group]++
	}
	if perGroup["A"] != 4 || perGroup["B"] != 4 {
		t.Errorf("teams per group: %v, want 4 in A and 4 in B", perGroup)
	}
}

func TestGroupStageEachPairMeetsOnce(t *testing.T) {
	teams := makeTeams(8)
	gen := NewGroupStageGenerator(identityShuffler{})
	matches, err := gen.GenerateStage(context.Background(), GenerateStageParams{
		Tournament: &models.Tournament{ID: "tournament-1"},
		Teams:      teams,
	})
	if err != nil {
		t.Fatalf("GenerateStage: %v", err)
	}

	seen := map[string]bool{}
	for _, m := range matches {
		a, b := *m.TeamAID, *m.TeamBID
		if b < a {
			a, b = b, a
		}
		key := a + "/" + b
		if seen[key] {
			t.Errorf("pair %s meets more than once", key)
		}
		seen[key] = true
	}
}
