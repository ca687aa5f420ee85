package brackets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
)

var ErrNotEnoughPlayers = errors.New("not enough players to draw teams")

// TeamDraft is a team produced by the random draw before it is persisted.
type TeamDraft struct {
	Name      string
	PlayerIDs []string
}

// BuildPairs shuffles the players and walks the result two at a time, turning
// each pair into a team draft. An odd leftover player becomes a singleton
// team rather than being dropped from the draw. minPlayers is caller policy
// (a league draw accepts 2, a tournament draw wants at least 4) and is
// clamped to the structural minimum of 2.
func BuildPairs(players []*models.Player, minPlayers int, sh Shuffler) ([]TeamDraft, error) {
	if minPlayers < 2 {
		minPlayers = 2
	}
	if len(players) < minPlayers {
		return nil, fmt.Errorf("%w: need at least %d, got %d", ErrNotEnoughPlayers, minPlayers, len(players))
	}

	shuffled := shufflePlayers(players, sh)

	drafts := make([]TeamDraft, 0, (len(shuffled)+1)/2)
	for i := 0; i < len(shuffled); i += 2 {
		a := shuffled[i]
		if i+1 >= len(shuffled) {
			drafts = append(drafts, TeamDraft{
				Name:      playerDisplayName(a),
				PlayerIDs: []string{a.ID},
			})
			break
		}
		b := shuffled[i+1]
		drafts = append(drafts, TeamDraft{
			Name:      playerDisplayName(a) + " & " + playerDisplayName(b),
			PlayerIDs: []string{a.ID, b.ID},
		})
	}
	return drafts, nil
}

func playerDisplayName(p *models.Player) string {
	if p.Nickname != nil && *p.Nickname != "" {
		return *p.Nickname
	}
	name := p.Name
	if i := strings.IndexByte(name, ' '); i > 0 {
		name = name[:i]
	}
	return name
}
