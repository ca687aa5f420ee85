package brackets

import (
	"context"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
)

type GenerateStageParams struct {
	Tournament *models.Tournament
	Teams      []*models.Team
}

// StageGenerator builds the full match set for one stage of a tournament.
// Generators are pure: they never touch storage, and the matches they return
// are ordered so that every match appears before any match that references it
// through NextMatchID.
type StageGenerator interface {
	GenerateStage(ctx context.Context, params GenerateStageParams) ([]*models.Match, error)

	GetName() string
}
