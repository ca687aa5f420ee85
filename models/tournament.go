package models

import "time"

type TournamentStatus string

const (
	TournamentStatusDraft    TournamentStatus = "DRAFT"
	TournamentStatusActive   TournamentStatus = "ACTIVE"
	TournamentStatusFinished TournamentStatus = "FINISHED"
)

type TournamentFormat string

const (
	FormatKnockout TournamentFormat = "KNOCKOUT"
	FormatGroups   TournamentFormat = "GROUPS"
)

type Tournament struct {
	ID       string            `json:"id" db:"id"`
	LeagueID string            `json:"league_id" db:"league_id"`
	Name     string            `json:"name" db:"name"`
	Status   TournamentStatus  `json:"status" db:"status"`
	Format   *TournamentFormat `json:"format,omitempty" db:"format"`

	// ChampionID is set when the tournament is finished.
	ChampionID *string `json:"champion_id,omitempty" db:"champion_id"`

	Teams   []Team  `json:"teams,omitempty" db:"-"`
	Matches []Match `json:"matches,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
