package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayerLeagueInvalid = errors.New("player references an unknown league")
)

type PlayerRepository interface {
	Create(ctx context.Context, ex SQLExecutor, player *models.Player) error
	GetByID(ctx context.Context, ex SQLExecutor, id string) (*models.Player, error)
	ListByLeague(ctx context.Context, ex SQLExecutor, leagueID string) ([]*models.Player, error)
	ListByTeam(ctx context.Context, ex SQLExecutor, teamID string) ([]*models.Player, error)
	Update(ctx context.Context, ex SQLExecutor, player *models.Player) error
	UpdateStats(ctx context.Context, ex SQLExecutor, id string, delta models.PlayerStatsDelta) error
	Delete(ctx context.Context, ex SQLExecutor, id string) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) executor(ex SQLExecutor) SQLExecutor {
	if ex != nil {
		return ex
	}
	return r.db
}

const playerColumns = `id, league_id, name, nickname, level, wins, losses, games_won, ranking_points, team_id, created_at`

func scanPlayer(row interface{ Scan(...interface{}) error }) (*models.Player, error) {
	p := &models.Player{}
	err := row.Scan(
		&p.ID,
		&p.LeagueID,
		&p.Name,
		&p.Nickname,
		&p.Level,
		&p.Wins,
		&p.Losses,
		&p.GamesWon,
		&p.RankingPoints,
		&p.TeamID,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresPlayerRepository) Create(ctx context.Context, ex SQLExecutor, player *models.Player) error {
	query := `
		INSERT INTO players (id, league_id, name, nickname, level)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.executor(ex).QueryRowContext(ctx, query,
		player.ID,
		player.LeagueID,
		player.Name,
		player.Nickname,
		player.Level,
	).Scan(&player.CreatedAt)

	return r.handlePlayerError(err)
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, ex SQLExecutor, id string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

	player, err := scanPlayer(r.executor(ex).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (r *postgresPlayerRepository) ListByLeague(ctx context.Context, ex SQLExecutor, leagueID string) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE league_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, ex, query, leagueID)
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, ex SQLExecutor, teamID string) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE team_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, ex, query, teamID)
}

func (r *postgresPlayerRepository) list(ctx context.Context, ex SQLExecutor, query string, args ...interface{}) ([]*models.Player, error) {
	rows, err := r.executor(ex).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		player, scanErr := scanPlayer(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		players = append(players, player)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, ex SQLExecutor, player *models.Player) error {
	query := `
		UPDATE players
		SET name = $1, nickname = $2, level = $3
		WHERE id = $4`

	result, err := r.executor(ex).ExecContext(ctx, query,
		player.Name,
		player.Nickname,
		player.Level,
		player.ID,
	)
	if err != nil {
		return r.handlePlayerError(err)
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (r *postgresPlayerRepository) UpdateStats(ctx context.Context, ex SQLExecutor, id string, delta models.PlayerStatsDelta) error {
	query := `
		UPDATE players
		SET wins = wins + $1,
		    losses = losses + $2,
		    games_won = games_won + $3,
		    ranking_points = ranking_points + $4
		WHERE id = $5`

	result, err := r.executor(ex).ExecContext(ctx, query,
		delta.Wins,
		delta.Losses,
		delta.GamesWon,
		delta.RankingPoints,
		id,
	)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, ex SQLExecutor, id string) error {
	query := `DELETE FROM players WHERE id = $1`

	result, err := r.executor(ex).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (r *postgresPlayerRepository) handlePlayerError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" && pqErr.Constraint == "players_league_id_fkey" {
			return ErrPlayerLeagueInvalid
		}
	}
	return err
}
