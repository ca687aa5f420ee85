package models

import "time"

type PlayerLevel string

const (
	LevelBeginner     PlayerLevel = "BEGINNER"
	LevelIntermediate PlayerLevel = "INTERMEDIATE"
	LevelAdvanced     PlayerLevel = "ADVANCED"
	LevelPro          PlayerLevel = "PRO"
)

type Player struct {
	ID       string      `json:"id" db:"id"`
	LeagueID string      `json:"league_id" db:"league_id"`
	Name     string      `json:"name" db:"name"`
	Nickname *string     `json:"nickname,omitempty" db:"nickname"`
	Level    PlayerLevel `json:"level" db:"level"`

	// Aggregate statistics, mutated only through MatchService score updates
	// and the tournament podium.
	Wins          int `json:"wins" db:"wins"`
	Losses        int `json:"losses" db:"losses"`
	GamesWon      int `json:"games_won" db:"games_won"`
	RankingPoints int `json:"ranking_points" db:"ranking_points"`

	TeamID    *string   `json:"team_id,omitempty" db:"team_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PlayerStatsDelta is an increment (or decrement, when negative) applied to a
// player's aggregate statistics.
type PlayerStatsDelta struct {
	Wins          int
	Losses        int
	GamesWon      int
	RankingPoints int
}
