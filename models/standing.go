package models

// Standing is a team's aggregated within-group performance. It is derived
// from the match log and never persisted.
type Standing struct {
	TeamID string `json:"team_id"`
	Team   *Team  `json:"team,omitempty"`

	Wins   int `json:"wins"`
	Played int `json:"played"`
	Points int `json:"points"`

	// Balance is the cumulative game differential: positive for wins,
	// negative for losses.
	Balance int `json:"balance"`
}
