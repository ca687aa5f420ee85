package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
	"github.com/lib/pq"
)

var (
	ErrLeagueNotFound = errors.New("league not found")

	// ErrLeagueNotEmpty reports a delete refused because players or
	// tournaments still reference the league.
	ErrLeagueNotEmpty = errors.New("league still has players or tournaments")
)

type LeagueRepository interface {
	Create(ctx context.Context, ex SQLExecutor, league *models.League) error
	GetByID(ctx context.Context, ex SQLExecutor, id string) (*models.League, error)
	List(ctx context.Context, ex SQLExecutor) ([]*models.League, error)
	UpdateStatus(ctx context.Context, ex SQLExecutor, id string, status models.LeagueStatus) error
	Delete(ctx context.Context, ex SQLExecutor, id string) error

	// LockForGeneration serializes generation work on the league. It fails
	// fast with ErrScopeLocked instead of queueing behind another generation.
	LockForGeneration(ctx context.Context, ex SQLExecutor, id string) error
}

// ErrScopeLocked reports that a concurrent generation already holds the
// scope. Callers may retry; nothing retries automatically.
var ErrScopeLocked = errors.New("scope is locked by a concurrent generation")

type postgresLeagueRepository struct {
	db *sql.DB
}

func NewPostgresLeagueRepository(db *sql.DB) LeagueRepository {
	return &postgresLeagueRepository{db: db}
}

func (r *postgresLeagueRepository) executor(ex SQLExecutor) SQLExecutor {
	if ex != nil {
		return ex
	}
	return r.db
}

const leagueColumns = `id, name, status, admin_id, created_at`

func scanLeague(row interface{ Scan(...interface{}) error }) (*models.League, error) {
	l := &models.League{}
	err := row.Scan(&l.ID, &l.Name, &l.Status, &l.AdminID, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *postgresLeagueRepository) Create(ctx context.Context, ex SQLExecutor, league *models.League) error {
	query := `
		INSERT INTO leagues (id, name, status, admin_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.executor(ex).QueryRowContext(ctx, query,
		league.ID,
		league.Name,
		league.Status,
		league.AdminID,
	).Scan(&league.CreatedAt)
}

func (r *postgresLeagueRepository) GetByID(ctx context.Context, ex SQLExecutor, id string) (*models.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues WHERE id = $1`

	league, err := scanLeague(r.executor(ex).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, err
	}
	return league, nil
}

func (r *postgresLeagueRepository) List(ctx context.Context, ex SQLExecutor) ([]*models.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues ORDER BY created_at DESC`

	rows, err := r.executor(ex).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leagues := make([]*models.League, 0)
	for rows.Next() {
		league, scanErr := scanLeague(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		leagues = append(leagues, league)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return leagues, nil
}

func (r *postgresLeagueRepository) UpdateStatus(ctx context.Context, ex SQLExecutor, id string, status models.LeagueStatus) error {
	result, err := r.executor(ex).ExecContext(ctx, `UPDATE leagues SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrLeagueNotFound
	}
	return nil
}

func (r *postgresLeagueRepository) Delete(ctx context.Context, ex SQLExecutor, id string) error {
	result, err := r.executor(ex).ExecContext(ctx, `DELETE FROM leagues WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrLeagueNotEmpty
		}
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrLeagueNotFound
	}
	return nil
}

func (r *postgresLeagueRepository) LockForGeneration(ctx context.Context, ex SQLExecutor, id string) error {
	err := r.executor(ex).QueryRowContext(ctx, `SELECT id FROM leagues WHERE id = $1 FOR UPDATE NOWAIT`, id).Scan(&id)
	return mapLockError(err, ErrLeagueNotFound)
}

func mapLockError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "55P03" { // lock_not_available
		return ErrScopeLocked
	}
	return err
}
