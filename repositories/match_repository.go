package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchTournamentInvalid = errors.New("match references an unknown tournament")
	ErrMatchTeamInvalid       = errors.New("match references an unknown team")
	ErrMatchNextInvalid       = errors.New("match references an unknown next match")
)

type MatchRepository interface {
	Create(ctx context.Context, ex SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, ex SQLExecutor, id string) (*models.Match, error)

	// GetByIDForUpdate locks the match row for the rest of the transaction
	// so concurrent score updates for the same match serialize.
	GetByIDForUpdate(ctx context.Context, ex SQLExecutor, id string) (*models.Match, error)

	ListByTournament(ctx context.Context, ex SQLExecutor, tournamentID string, stage *models.StageType, group *string) ([]*models.Match, error)
	UpdateScoreStatusWinner(ctx context.Context, ex SQLExecutor, id string, scoreA, scoreB int, status models.MatchStatus, winnerID *string) error

	// UpdateTeamSlot overwrites one team slot of a match (1 = A, 2 = B).
	// Advancement re-runs after score corrections, so an occupied slot is
	// replaced, never preserved.
	UpdateTeamSlot(ctx context.Context, ex SQLExecutor, id string, slot int, teamID *string) error

	DeleteByTournament(ctx context.Context, ex SQLExecutor, tournamentID string, stage *models.StageType) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) executor(ex SQLExecutor) SQLExecutor {
	if ex != nil {
		return ex
	}
	return r.db
}

const matchColumns = `id, tournament_id, round, position, next_match_id, team_a_id, team_b_id, score_a, score_b, status, winner_id, stage, group_label, created_at`

func scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	m := &models.Match{}
	err := row.Scan(
		&m.ID,
		&m.TournamentID,
		&m.Round,
		&m.Position,
		&m.NextMatchID,
		&m.TeamAID,
		&m.TeamBID,
		&m.ScoreA,
		&m.ScoreB,
		&m.Status,
		&m.WinnerID,
		&m.Stage,
		&m.Group,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, ex SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches
			(id, tournament_id, round, position, next_match_id, team_a_id, team_b_id, score_a, score_b, status, winner_id, stage, group_label)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at`

	err := r.executor(ex).QueryRowContext(ctx, query,
		match.ID,
		match.TournamentID,
		match.Round,
		match.Position,
		match.NextMatchID,
		match.TeamAID,
		match.TeamBID,
		match.ScoreA,
		match.ScoreB,
		match.Status,
		match.WinnerID,
		match.Stage,
		match.Group,
	).Scan(&match.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, ex SQLExecutor, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return r.getOne(ctx, ex, query, id)
}

func (r *postgresMatchRepository) GetByIDForUpdate(ctx context.Context, ex SQLExecutor, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, ex, query, id)
}

func (r *postgresMatchRepository) getOne(ctx context.Context, ex SQLExecutor, query, id string) (*models.Match, error) {
	match, err := scanMatch(r.executor(ex).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, ex SQLExecutor, tournamentID string, stage *models.StageType, group *string) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE tournament_id = $1`)

	args := []interface{}{tournamentID}
	placeholderIndex := 2

	if stage != nil {
		queryBuilder.WriteString(" AND stage = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *stage)
		placeholderIndex++
	}
	if group != nil {
		queryBuilder.WriteString(" AND group_label = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *group)
		placeholderIndex++
	}

	queryBuilder.WriteString(" ORDER BY round ASC, position ASC")

	rows, err := r.executor(ex).QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, match)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateScoreStatusWinner(ctx context.Context, ex SQLExecutor, id string, scoreA, scoreB int, status models.MatchStatus, winnerID *string) error {
	query := `
		UPDATE matches
		SET score_a = $1, score_b = $2, status = $3, winner_id = $4
		WHERE id = $5`

	result, err := r.executor(ex).ExecContext(ctx, query, scoreA, scoreB, status, winnerID, id)
	if err != nil {
		return r.handleMatchError(err)
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *postgresMatchRepository) UpdateTeamSlot(ctx context.Context, ex SQLExecutor, id string, slot int, teamID *string) error {
	column := "team_a_id"
	if slot == 2 {
		column = "team_b_id"
	}

	result, err := r.executor(ex).ExecContext(ctx, `UPDATE matches SET `+column+` = $1 WHERE id = $2`, teamID, id)
	if err != nil {
		return r.handleMatchError(err)
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *postgresMatchRepository) DeleteByTournament(ctx context.Context, ex SQLExecutor, tournamentID string, stage *models.StageType) error {
	query := `DELETE FROM matches WHERE tournament_id = $1`
	args := []interface{}{tournamentID}
	if stage != nil {
		query += ` AND stage = $2`
		args = append(args, *stage)
	}

	_, err := r.executor(ex).ExecContext(ctx, query, args...)
	return err
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "matches_tournament_id_fkey":
				return ErrMatchTournamentInvalid
			case "matches_team_a_id_fkey", "matches_team_b_id_fkey", "matches_winner_id_fkey":
				return ErrMatchTeamInvalid
			case "matches_next_match_id_fkey":
				return ErrMatchNextInvalid
			}
		}
	}
	return err
}
