package models

import "time"

type LeagueStatus string

const (
	LeagueStatusDraft    LeagueStatus = "DRAFT"
	LeagueStatusActive   LeagueStatus = "ACTIVE"
	LeagueStatusFinished LeagueStatus = "FINISHED"
)

type League struct {
	ID      string       `json:"id" db:"id"`
	Name    string       `json:"name" db:"name"`
	Status  LeagueStatus `json:"status" db:"status"`
	AdminID string       `json:"admin_id" db:"admin_id"`

	Players []Player `json:"players,omitempty" db:"-"`
	Teams   []Team   `json:"teams,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
