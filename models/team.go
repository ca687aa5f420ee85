package models

import (
	"errors"
	"time"
)

var ErrScopeInvalid = errors.New("team scope must reference exactly one of league or tournament")

type Team struct {
	ID           string  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	LeagueID     *string `json:"league_id,omitempty" db:"league_id"`
	TournamentID *string `json:"tournament_id,omitempty" db:"tournament_id"`
	Group        *string `json:"group,omitempty" db:"group_label"`

	Players   []Player  `json:"players,omitempty" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TeamScope identifies the owner of a set of teams. A team belongs to either a
// league (pre-tournament draw) or a tournament, never both.
type TeamScope struct {
	LeagueID     *string `json:"league_id,omitempty"`
	TournamentID *string `json:"tournament_id,omitempty"`
}

func (s TeamScope) Validate() error {
	if (s.LeagueID == nil) == (s.TournamentID == nil) {
		return ErrScopeInvalid
	}
	return nil
}
