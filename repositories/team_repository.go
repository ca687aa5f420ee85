package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamScopeInvalid = errors.New("team references an unknown league or tournament")
)

type TeamRepository interface {
	Create(ctx context.Context, ex SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, ex SQLExecutor, id string) (*models.Team, error)
	ListByScope(ctx context.Context, ex SQLExecutor, scope models.TeamScope, withPlayers bool) ([]*models.Team, error)
	AssignPlayers(ctx context.Context, ex SQLExecutor, teamID string, playerIDs []string) error
	UpdateGroup(ctx context.Context, ex SQLExecutor, teamID string, group *string) error

	// DeleteByScope removes every team of the scope after detaching its
	// members. Callers delete the scope's matches first; nothing here relies
	// on storage-level cascades.
	DeleteByScope(ctx context.Context, ex SQLExecutor, scope models.TeamScope) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) executor(ex SQLExecutor) SQLExecutor {
	if ex != nil {
		return ex
	}
	return r.db
}

const teamColumns = `id, name, league_id, tournament_id, group_label, created_at`

func scanTeam(row interface{ Scan(...interface{}) error }) (*models.Team, error) {
	t := &models.Team{}
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.LeagueID,
		&t.TournamentID,
		&t.Group,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *postgresTeamRepository) Create(ctx context.Context, ex SQLExecutor, team *models.Team) error {
	query := `
		INSERT INTO teams (id, name, league_id, tournament_id, group_label)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.executor(ex).QueryRowContext(ctx, query,
		team.ID,
		team.Name,
		team.LeagueID,
		team.TournamentID,
		team.Group,
	).Scan(&team.CreatedAt)

	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, ex SQLExecutor, id string) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

	team, err := scanTeam(r.executor(ex).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) ListByScope(ctx context.Context, ex SQLExecutor, scope models.TeamScope, withPlayers bool) ([]*models.Team, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + teamColumns + ` FROM teams WHERE `)
	var scopeArg interface{}
	if scope.LeagueID != nil {
		queryBuilder.WriteString(`league_id = $1`)
		scopeArg = *scope.LeagueID
	} else {
		queryBuilder.WriteString(`tournament_id = $1`)
		scopeArg = *scope.TournamentID
	}
	queryBuilder.WriteString(` ORDER BY created_at ASC`)

	rows, err := r.executor(ex).QueryContext(ctx, queryBuilder.String(), scopeArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team, scanErr := scanTeam(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if withPlayers && len(teams) > 0 {
		if err := r.attachPlayers(ctx, ex, teams); err != nil {
			return nil, err
		}
	}
	return teams, nil
}

func (r *postgresTeamRepository) attachPlayers(ctx context.Context, ex SQLExecutor, teams []*models.Team) error {
	ids := make([]string, len(teams))
	byID := make(map[string]*models.Team, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
		byID[t.ID] = t
	}

	query := `SELECT ` + playerColumns + ` FROM players WHERE team_id = ANY($1) ORDER BY created_at ASC`
	rows, err := r.executor(ex).QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		player, scanErr := scanPlayer(rows)
		if scanErr != nil {
			return scanErr
		}
		if player.TeamID == nil {
			continue
		}
		if team := byID[*player.TeamID]; team != nil {
			team.Players = append(team.Players, *player)
		}
	}
	return rows.Err()
}

func (r *postgresTeamRepository) AssignPlayers(ctx context.Context, ex SQLExecutor, teamID string, playerIDs []string) error {
	query := `UPDATE players SET team_id = $1 WHERE id = ANY($2)`

	_, err := r.executor(ex).ExecContext(ctx, query, teamID, pq.Array(playerIDs))
	return err
}

func (r *postgresTeamRepository) UpdateGroup(ctx context.Context, ex SQLExecutor, teamID string, group *string) error {
	query := `UPDATE teams SET group_label = $1 WHERE id = $2`

	result, err := r.executor(ex).ExecContext(ctx, query, group, teamID)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (r *postgresTeamRepository) DeleteByScope(ctx context.Context, ex SQLExecutor, scope models.TeamScope) error {
	if err := scope.Validate(); err != nil {
		return err
	}

	scopeColumn := "league_id"
	var scopeArg interface{}
	if scope.LeagueID != nil {
		scopeArg = *scope.LeagueID
	} else {
		scopeColumn = "tournament_id"
		scopeArg = *scope.TournamentID
	}

	detach := `UPDATE players SET team_id = NULL WHERE team_id IN (SELECT id FROM teams WHERE ` + scopeColumn + ` = $1)`
	if _, err := r.executor(ex).ExecContext(ctx, detach, scopeArg); err != nil {
		return err
	}

	_, err := r.executor(ex).ExecContext(ctx, `DELETE FROM teams WHERE `+scopeColumn+` = $1`, scopeArg)
	return err
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "teams_league_id_fkey", "teams_tournament_id_fkey":
				return ErrTeamScopeInvalid
			}
		}
	}
	return err
}
