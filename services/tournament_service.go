package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
	"github.com/Nicolasplgn/beach-tennis-erp/repositories"
	"github.com/google/uuid"
)

// Podium ranking points awarded when a tournament is finished.
const (
	championPoints = 10
	runnerUpPoints = 5
)

type TournamentService interface {
	Create(ctx context.Context, leagueID, name string) (*models.Tournament, error)
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	ListByLeague(ctx context.Context, leagueID string) ([]*models.Tournament, error)

	// Finish closes the tournament: the final's winner becomes champion and
	// the podium teams' players receive ranking points, atomically.
	Finish(ctx context.Context, id string) (*models.Tournament, error)

	Delete(ctx context.Context, id string) error
}

type tournamentService struct {
	txRunner       repositories.TxRunner
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	playerRepo     repositories.PlayerRepository
	leagueRepo     repositories.LeagueRepository
	logger         *slog.Logger
}

func NewTournamentService(
	txRunner repositories.TxRunner,
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
	leagueRepo repositories.LeagueRepository,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		txRunner:       txRunner,
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		playerRepo:     playerRepo,
		leagueRepo:     leagueRepo,
		logger:         logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, leagueID, name string) (*models.Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	if _, err := s.leagueRepo.GetByID(ctx, nil, leagueID); err != nil {
		return nil, mapRepositoryError(err)
	}

	tournament := &models.Tournament{
		ID:       uuid.NewString(),
		LeagueID: leagueID,
		Name:     name,
		Status:   models.TournamentStatusDraft,
	}
	if err := s.tournamentRepo.Create(ctx, nil, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return tournament, nil
}

func (s *tournamentService) ListByLeague(ctx context.Context, leagueID string) ([]*models.Tournament, error) {
	tournaments, err := s.tournamentRepo.ListByLeague(ctx, nil, leagueID)
	if err != nil {
		return nil, err
	}
	if tournaments == nil {
		return []*models.Tournament{}, nil
	}
	return tournaments, nil
}

func (s *tournamentService) Finish(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	knockout := models.StageKnockout
	matches, err := s.matchRepo.ListByTournament(ctx, nil, id, &knockout, nil)
	if err != nil {
		return nil, err
	}

	final := findFinal(matches)
	if final == nil || final.Status != models.MatchStatusFinished || final.WinnerID == nil {
		return nil, ErrFinalNotFinished
	}

	championID := *final.WinnerID
	runnerUpID := derefString(final.TeamAID)
	if runnerUpID == championID {
		runnerUpID = derefString(final.TeamBID)
	}

	err = s.txRunner.RunInTx(ctx, func(ex repositories.SQLExecutor) error {
		if setErr := s.tournamentRepo.SetChampion(ctx, ex, id, championID); setErr != nil {
			return setErr
		}
		if awardErr := s.awardPoints(ctx, ex, championID, championPoints); awardErr != nil {
			return awardErr
		}
		if runnerUpID != "" {
			return s.awardPoints(ctx, ex, runnerUpID, runnerUpPoints)
		}
		return nil
	})
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	tournament.Status = models.TournamentStatusFinished
	tournament.ChampionID = &championID

	s.logger.InfoContext(ctx, "tournament finished",
		slog.String("tournament_id", id),
		slog.String("champion_id", championID),
	)
	return tournament, nil
}

func (s *tournamentService) Delete(ctx context.Context, id string) error {
	err := s.txRunner.RunInTx(ctx, func(ex repositories.SQLExecutor) error {
		if delErr := s.matchRepo.DeleteByTournament(ctx, ex, id, nil); delErr != nil {
			return delErr
		}
		return s.tournamentRepo.Delete(ctx, ex, id)
	})
	return mapRepositoryError(err)
}

func (s *tournamentService) awardPoints(ctx context.Context, ex repositories.SQLExecutor, teamID string, points int) error {
	members, err := s.playerRepo.ListByTeam(ctx, ex, teamID)
	if err != nil {
		return err
	}
	for _, p := range members {
		if err := s.playerRepo.UpdateStats(ctx, ex, p.ID, models.PlayerStatsDelta{RankingPoints: points}); err != nil {
			return err
		}
	}
	return nil
}

// findFinal returns the knockout match without a successor.
func findFinal(matches []*models.Match) *models.Match {
	for _, m := range matches {
		if m.IsFinal() {
			return m
		}
	}
	return nil
}
