package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
)

type pairingFixture struct {
	service PairingService
	players *fakePlayerRepo
	teams   *fakeTeamRepo
	matches *fakeMatchRepo
	leagues *fakeLeagueRepo
}

func newPairingFixture(t *testing.T, playerCount int) pairingFixture {
	t.Helper()

	leagues := newFakeLeagueRepo(&models.League{ID: "l1", Name: "Rede Beach", Status: models.LeagueStatusDraft})
	players := newFakePlayerRepo()
	for i := 0; i < playerCount; i++ {
		id := fmt.Sprintf("p%d", i+1)
		players.players[id] = &models.Player{
			ID:       id,
			LeagueID: "l1",
			Name:     fmt.Sprintf("Player Number%d", i+1),
		}
	}
	teams := newFakeTeamRepo()
	matches := newFakeMatchRepo()
	tournaments := newFakeTournamentRepo(&models.Tournament{ID: "t1", LeagueID: "l1", Name: "Open"})

	service := NewPairingService(
		&fakeTxRunner{}, players, teams, matches, leagues, tournaments,
		orderedShuffler{}, discardLogger(),
	)
	return pairingFixture{service: service, players: players, teams: teams, matches: matches, leagues: leagues}
}

func TestShuffleAndPairInvalidScope(t *testing.T) {
	f := newPairingFixture(t, 4)

	_, err := f.service.ShuffleAndPair(context.Background(), models.TeamScope{}, 2)
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("empty scope: got %v, want ErrValidationFailed", err)
	}

	both := models.TeamScope{LeagueID: strPtr("l1"), TournamentID: strPtr("t1")}
	if _, err := f.service.ShuffleAndPair(context.Background(), both, 2); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("double scope: got %v, want ErrValidationFailed", err)
	}
}

func TestShuffleAndPairNotEnoughPlayers(t *testing.T) {
	f := newPairingFixture(t, 1)

	scope := models.TeamScope{LeagueID: strPtr("l1")}
	if _, err := f.service.ShuffleAndPair(context.Background(), scope, 2); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Errorf("got %v, want ErrNotEnoughPlayers", err)
	}
}

func TestShuffleAndPairDrawsLeagueTeams(t *testing.T) {
	f := newPairingFixture(t, 6)

	scope := models.TeamScope{LeagueID: strPtr("l1")}
	teams, err := f.service.ShuffleAndPair(context.Background(), scope, 2)
	if err != nil {
		t.Fatalf("ShuffleAndPair: %v", err)
	}
	if len(teams) != 3 {
		t.Fatalf("got %d teams, want 3", len(teams))
	}
	for _, team := range teams {
		if team.LeagueID == nil || *team.LeagueID != "l1" {
			t.Errorf("team %s not scoped to the league", team.ID)
		}
		if len(team.Players) != 2 {
			t.Errorf("team %s has %d players, want 2", team.ID, len(team.Players))
		}
	}

	if f.leagues.leagues["l1"].Status != models.LeagueStatusActive {
		t.Errorf("league status %s, want ACTIVE after the draw", f.leagues.leagues["l1"].Status)
	}
}

func TestShuffleAndPairOddPoolKeepsEveryone(t *testing.T) {
	f := newPairingFixture(t, 5)

	scope := models.TeamScope{LeagueID: strPtr("l1")}
	teams, err := f.service.ShuffleAndPair(context.Background(), scope, 2)
	if err != nil {
		t.Fatalf("ShuffleAndPair: %v", err)
	}
	if len(teams) != 3 {
		t.Fatalf("got %d teams, want 3 with a singleton", len(teams))
	}

	total := 0
	for _, team := range teams {
		total += len(team.Players)
	}
	if total != 5 {
		t.Errorf("drafted %d players, want all 5", total)
	}
}

func TestShuffleAndPairRedrawReplacesTeams(t *testing.T) {
	f := newPairingFixture(t, 4)
	scope := models.TeamScope{LeagueID: strPtr("l1")}

	first, err := f.service.ShuffleAndPair(context.Background(), scope, 2)
	if err != nil {
		t.Fatalf("first draw: %v", err)
	}
	second, err := f.service.ShuffleAndPair(context.Background(), scope, 2)
	if err != nil {
		t.Fatalf("second draw: %v", err)
	}

	if len(f.teams.teams) != len(second) {
		t.Errorf("repository holds %d teams, want only the %d redrawn ones", len(f.teams.teams), len(second))
	}
	for _, team := range first {
		if _, ok := f.teams.teams[team.ID]; ok {
			t.Errorf("team %s from the first draw survived the redraw", team.ID)
		}
	}
}

func TestShuffleAndPairTournamentScopeDeletesMatches(t *testing.T) {
	f := newPairingFixture(t, 4)
	f.matches.matches["stale"] = &models.Match{ID: "stale", TournamentID: "t1", Stage: models.StageKnockout}

	scope := models.TeamScope{TournamentID: strPtr("t1")}
	teams, err := f.service.ShuffleAndPair(context.Background(), scope, 4)
	if err != nil {
		t.Fatalf("ShuffleAndPair: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("got %d teams, want 2", len(teams))
	}

	if _, ok := f.matches.matches["stale"]; ok {
		t.Error("a tournament redraw must delete the tournament's matches")
	}
	// The league itself is not activated by a tournament-scoped draw.
	if f.leagues.leagues["l1"].Status != models.LeagueStatusDraft {
		t.Errorf("league status %s, want DRAFT untouched", f.leagues.leagues["l1"].Status)
	}
}

func TestShuffleAndPairLockedScope(t *testing.T) {
	f := newPairingFixture(t, 4)
	f.leagues.locked = true

	scope := models.TeamScope{LeagueID: strPtr("l1")}
	if _, err := f.service.ShuffleAndPair(context.Background(), scope, 2); !errors.Is(err, ErrGenerationConflict) {
		t.Errorf("got %v, want ErrGenerationConflict", err)
	}
}
