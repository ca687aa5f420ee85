package services

import "errors"

// Sentinel errors shared across services and the HTTP error mapping. Every
// failure in this layer either aborts its transaction cleanly or is reported
// through one of these; nothing is recovered locally and ignored.
var (
	// Not found
	ErrNotFound           = errors.New("requested resource not found")
	ErrLeagueNotFound     = errors.New("league not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrMatchNotFound      = errors.New("match not found")

	// Validation and business rules
	ErrValidationFailed        = errors.New("validation failed")
	ErrLeagueNameRequired      = errors.New("league name is required")
	ErrPlayerNameRequired      = errors.New("player name is required")
	ErrTournamentNameRequired  = errors.New("tournament name is required")
	ErrNotEnoughPlayers        = errors.New("not enough players to draw teams")
	ErrNotEnoughTeams          = errors.New("at least two teams are required to generate a bracket")
	ErrGroupStageTeamCount     = errors.New("group stage requires exactly eight teams")
	ErrGroupStageNotRanked     = errors.New("both groups need at least two ranked teams")
	ErrNegativeScore           = errors.New("scores must be non-negative")
	ErrMatchTeamsNotSet        = errors.New("match teams are not decided yet")
	ErrFinalNotFinished        = errors.New("the final is not finished yet")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrLeagueNotEmpty          = errors.New("league still has players or tournaments")

	// Auth
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrEmailTaken         = errors.New("email address is already in use")

	// Consistency: the generated match set references a match that does not
	// exist. Fatal to the generation, the whole transaction rolls back.
	ErrBracketInconsistent = errors.New("generated bracket references a missing match")

	// Concurrency: two generations raced for the same scope. Retryable, the
	// engine does not retry on its own.
	ErrGenerationConflict = errors.New("a concurrent generation holds this scope")
)
