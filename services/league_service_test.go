package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
)

func newLeagueFixture(t *testing.T) (LeagueService, *fakeLeagueRepo) {
	t.Helper()
	leagues := newFakeLeagueRepo()
	service := NewLeagueService(leagues, newFakePlayerRepo(), newFakeTeamRepo())
	return service, leagues
}

func TestCreateLeagueRequiresName(t *testing.T) {
	service, _ := newLeagueFixture(t)

	if _, err := service.Create(context.Background(), "   ", "admin-1"); !errors.Is(err, ErrLeagueNameRequired) {
		t.Errorf("got %v, want ErrLeagueNameRequired", err)
	}
}

func TestCreateLeagueStartsDraft(t *testing.T) {
	service, leagues := newLeagueFixture(t)

	league, err := service.Create(context.Background(), "Rede Beach", "admin-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if league.Status != models.LeagueStatusDraft {
		t.Errorf("status %s, want DRAFT", league.Status)
	}
	if league.AdminID != "admin-1" {
		t.Errorf("admin %s, want admin-1", league.AdminID)
	}
	if _, ok := leagues.leagues[league.ID]; !ok {
		t.Error("league not persisted")
	}
}

func TestUpdateLeagueStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to models.LeagueStatus
		ok       bool
	}{
		{models.LeagueStatusDraft, models.LeagueStatusActive, true},
		{models.LeagueStatusActive, models.LeagueStatusFinished, true},
		{models.LeagueStatusDraft, models.LeagueStatusDraft, true},
		{models.LeagueStatusDraft, models.LeagueStatusFinished, false},
		{models.LeagueStatusFinished, models.LeagueStatusActive, false},
		{models.LeagueStatusActive, models.LeagueStatusDraft, false},
	}

	for _, tt := range tests {
		service, leagues := newLeagueFixture(t)
		leagues.leagues["l1"] = &models.League{ID: "l1", Name: "Rede Beach", Status: tt.from}

		err := service.UpdateStatus(context.Background(), "l1", tt.to)
		if tt.ok && err != nil {
			t.Errorf("%s -> %s: unexpected error %v", tt.from, tt.to, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidStatusTransition) {
			t.Errorf("%s -> %s: got %v, want ErrInvalidStatusTransition", tt.from, tt.to, err)
		}
	}
}

func TestGetLeagueWithRoster(t *testing.T) {
	leagues := newFakeLeagueRepo(&models.League{ID: "l1", Name: "Rede Beach"})
	players := newFakePlayerRepo()
	players.players["p1"] = &models.Player{ID: "p1", LeagueID: "l1", Name: "Ana"}
	players.players["p2"] = &models.Player{ID: "p2", LeagueID: "l1", Name: "Bruno"}
	teams := newFakeTeamRepo(&models.Team{ID: "team-1", Name: "Ana & Bruno", LeagueID: strPtr("l1")})
	service := NewLeagueService(leagues, players, teams)

	league, err := service.GetByID(context.Background(), "l1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(league.Players) != 2 {
		t.Errorf("got %d players, want 2", len(league.Players))
	}
	if len(league.Teams) != 1 {
		t.Errorf("got %d teams, want 1", len(league.Teams))
	}

	if _, err := service.GetByID(context.Background(), "missing"); !errors.Is(err, ErrLeagueNotFound) {
		t.Errorf("got %v, want ErrLeagueNotFound", err)
	}
}

func TestDeleteLeagueWithChildrenConflicts(t *testing.T) {
	service, leagues := newLeagueFixture(t)
	leagues.leagues["l1"] = &models.League{ID: "l1", Name: "Rede Beach", Status: models.LeagueStatusDraft}
	leagues.hasChildren = true

	if err := service.Delete(context.Background(), "l1"); !errors.Is(err, ErrLeagueNotEmpty) {
		t.Errorf("got %v, want ErrLeagueNotEmpty", err)
	}
	if _, ok := leagues.leagues["l1"]; !ok {
		t.Error("league deleted despite remaining players or tournaments")
	}

	leagues.hasChildren = false
	if err := service.Delete(context.Background(), "l1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := leagues.leagues["l1"]; ok {
		t.Error("league still present after delete")
	}
}
