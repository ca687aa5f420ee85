package brackets

import "github.com/Nicolasplgn/beach-tennis-erp/models"

type Side int

const (
	SideNone Side = iota
	SideA
	SideB
)

// ScoreRules decides a match winner from a raw score. The two rule sets are
// mutually exclusive per stage and selected by configuration, never mixed
// within a stage.
type ScoreRules interface {
	// Winner returns the winning side, or (SideNone, false) while the score
	// does not satisfy the win condition yet.
	Winner(scoreA, scoreB int) (Side, bool)

	GetName() string
}

// SetRules is single-set beach tennis scoring: six games with a margin of
// two, or a 7-6 tie-break.
type SetRules struct{}

func (SetRules) Winner(a, b int) (Side, bool) {
	switch {
	case a >= 6 && a-b >= 2, a == 7 && b == 6:
		return SideA, true
	case b >= 6 && b-a >= 2, b == 7 && a == 6:
		return SideB, true
	}
	return SideNone, false
}

func (SetRules) GetName() string { return "Set" }

// PlainRules declares whichever side holds the strictly higher raw score the
// winner, with no margin requirement. Used for group fixtures played on time.
type PlainRules struct{}

func (PlainRules) Winner(a, b int) (Side, bool) {
	switch {
	case a > b:
		return SideA, true
	case b > a:
		return SideB, true
	}
	return SideNone, false
}

func (PlainRules) GetName() string { return "Plain" }

// RulesForStage is the default stage-to-rules mapping: knockout matches are
// played to a set, group fixtures count raw games.
func RulesForStage(stage models.StageType) ScoreRules {
	if stage == models.StageGroupStage {
		return PlainRules{}
	}
	return SetRules{}
}
