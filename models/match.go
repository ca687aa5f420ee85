package models

import "time"

type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "PENDING"
	MatchStatusPlaying  MatchStatus = "PLAYING"
	MatchStatusFinished MatchStatus = "FINISHED"
)

type StageType string

const (
	StageKnockout   StageType = "KNOCKOUT"
	StageGroupStage StageType = "GROUP_STAGE"
)

type Match struct {
	ID           string `json:"id" db:"id"`
	TournamentID string `json:"tournament_id" db:"tournament_id"`

	// Round 1 is the first round; the highest round present is the final.
	// Position is 0-based within the round and its parity decides which slot
	// of the next match the winner fills (even -> A, odd -> B).
	Round    int `json:"round" db:"round"`
	Position int `json:"position" db:"position"`

	NextMatchID *string `json:"next_match_id,omitempty" db:"next_match_id"`

	TeamAID *string `json:"team_a_id,omitempty" db:"team_a_id"`
	TeamBID *string `json:"team_b_id,omitempty" db:"team_b_id"`
	ScoreA  int     `json:"score_a" db:"score_a"`
	ScoreB  int     `json:"score_b" db:"score_b"`

	Status   MatchStatus `json:"status" db:"status"`
	WinnerID *string     `json:"winner_id,omitempty" db:"winner_id"`
	Stage    StageType   `json:"stage" db:"stage"`
	Group    *string     `json:"group,omitempty" db:"group_label"`

	TeamA *Team `json:"team_a,omitempty" db:"-"`
	TeamB *Team `json:"team_b,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsFinal reports whether the match has no successor to advance into.
func (m *Match) IsFinal() bool {
	return m.NextMatchID == nil
}
