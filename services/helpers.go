package services

import (
	"errors"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
	"github.com/Nicolasplgn/beach-tennis-erp/repositories"
)

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	return &s
}

// mapRepositoryError translates repository sentinels into their service-level
// counterparts so handlers only ever match against this package's errors.
func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrLeagueNotFound):
		return ErrLeagueNotFound
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrUserEmailConflict):
		return ErrEmailTaken
	case errors.Is(err, repositories.ErrLeagueNotEmpty):
		return ErrLeagueNotEmpty
	case errors.Is(err, repositories.ErrScopeLocked):
		return ErrGenerationConflict
	default:
		return err
	}
}

func isValidLeagueStatusTransition(current, next models.LeagueStatus) bool {
	if current == next {
		return true
	}
	allowed := map[models.LeagueStatus][]models.LeagueStatus{
		models.LeagueStatusDraft:    {models.LeagueStatusActive},
		models.LeagueStatusActive:   {models.LeagueStatusFinished},
		models.LeagueStatusFinished: {},
	}
	for _, s := range allowed[current] {
		if next == s {
			return true
		}
	}
	return false
}

func teamsToValues(teams []*models.Team) []models.Team {
	if teams == nil {
		return []models.Team{}
	}
	result := make([]models.Team, len(teams))
	for i, ptr := range teams {
		if ptr != nil {
			result[i] = *ptr
		}
	}
	return result
}

func matchesToValues(matches []*models.Match) []models.Match {
	if matches == nil {
		return []models.Match{}
	}
	result := make([]models.Match, len(matches))
	for i, ptr := range matches {
		if ptr != nil {
			result[i] = *ptr
		}
	}
	return result
}
