package brackets

import "github.com/Nicolasplgn/beach-tennis-erp/models"

type slotKind int

const (
	slotEmpty slotKind = iota
	slotBye
	slotTeam
)

// slot keeps "no opponent yet" and "bye" distinguishable instead of
// overloading a single nil team reference for both meanings.
type slot struct {
	kind slotKind
	team *models.Team
}

func teamSlot(t *models.Team) slot {
	return slot{kind: slotTeam, team: t}
}

func byeSlot() slot {
	return slot{kind: slotBye}
}

func (s slot) hasTeam() bool {
	return s.kind == slotTeam && s.team != nil
}
