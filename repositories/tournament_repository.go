package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	Create(ctx context.Context, ex SQLExecutor, tournament *models.Tournament) error
	GetByID(ctx context.Context, ex SQLExecutor, id string) (*models.Tournament, error)
	ListByLeague(ctx context.Context, ex SQLExecutor, leagueID string) ([]*models.Tournament, error)
	UpdateStatusFormat(ctx context.Context, ex SQLExecutor, id string, status models.TournamentStatus, format *models.TournamentFormat) error
	SetChampion(ctx context.Context, ex SQLExecutor, id string, teamID string) error
	Delete(ctx context.Context, ex SQLExecutor, id string) error

	// LockForGeneration fails fast with ErrScopeLocked when another
	// generation holds the tournament.
	LockForGeneration(ctx context.Context, ex SQLExecutor, id string) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) executor(ex SQLExecutor) SQLExecutor {
	if ex != nil {
		return ex
	}
	return r.db
}

const tournamentColumns = `id, league_id, name, status, format, champion_id, created_at`

func scanTournament(row interface{ Scan(...interface{}) error }) (*models.Tournament, error) {
	t := &models.Tournament{}
	err := row.Scan(&t.ID, &t.LeagueID, &t.Name, &t.Status, &t.Format, &t.ChampionID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) Create(ctx context.Context, ex SQLExecutor, tournament *models.Tournament) error {
	query := `
		INSERT INTO tournaments (id, league_id, name, status, format)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.executor(ex).QueryRowContext(ctx, query,
		tournament.ID,
		tournament.LeagueID,
		tournament.Name,
		tournament.Status,
		tournament.Format,
	).Scan(&tournament.CreatedAt)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, ex SQLExecutor, id string) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	tournament, err := scanTournament(r.executor(ex).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

func (r *postgresTournamentRepository) ListByLeague(ctx context.Context, ex SQLExecutor, leagueID string) ([]*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE league_id = $1 ORDER BY created_at DESC`

	rows, err := r.executor(ex).QueryContext(ctx, query, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		tournament, scanErr := scanTournament(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, tournament)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) UpdateStatusFormat(ctx context.Context, ex SQLExecutor, id string, status models.TournamentStatus, format *models.TournamentFormat) error {
	result, err := r.executor(ex).ExecContext(ctx,
		`UPDATE tournaments SET status = $1, format = COALESCE($2, format) WHERE id = $3`,
		status, format, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrTournamentNotFound
	}
	return nil
}

func (r *postgresTournamentRepository) SetChampion(ctx context.Context, ex SQLExecutor, id string, teamID string) error {
	result, err := r.executor(ex).ExecContext(ctx,
		`UPDATE tournaments SET champion_id = $1, status = $2 WHERE id = $3`,
		teamID, models.TournamentStatusFinished, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrTournamentNotFound
	}
	return nil
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, ex SQLExecutor, id string) error {
	result, err := r.executor(ex).ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrTournamentNotFound
	}
	return nil
}

func (r *postgresTournamentRepository) LockForGeneration(ctx context.Context, ex SQLExecutor, id string) error {
	err := r.executor(ex).QueryRowContext(ctx, `SELECT id FROM tournaments WHERE id = $1 FOR UPDATE NOWAIT`, id).Scan(&id)
	return mapLockError(err, ErrTournamentNotFound)
}
