package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Nicolasplgn/beach-tennis-erp/brackets"
	"github.com/Nicolasplgn/beach-tennis-erp/models"
	"github.com/Nicolasplgn/beach-tennis-erp/repositories"
	"github.com/google/uuid"
)

type PairingService interface {
	// ShuffleAndPair redraws the teams of a scope from the league's player
	// pool. The redraw is destructive: existing matches and teams of the
	// scope are deleted and the new teams created in the same transaction.
	ShuffleAndPair(ctx context.Context, scope models.TeamScope, minPlayers int) ([]*models.Team, error)
}

type pairingService struct {
	txRunner       repositories.TxRunner
	playerRepo     repositories.PlayerRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	leagueRepo     repositories.LeagueRepository
	tournamentRepo repositories.TournamentRepository
	shuffler       brackets.Shuffler
	logger         *slog.Logger
}

func NewPairingService(
	txRunner repositories.TxRunner,
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	leagueRepo repositories.LeagueRepository,
	tournamentRepo repositories.TournamentRepository,
	shuffler brackets.Shuffler,
	logger *slog.Logger,
) PairingService {
	return &pairingService{
		txRunner:       txRunner,
		playerRepo:     playerRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		leagueRepo:     leagueRepo,
		tournamentRepo: tournamentRepo,
		shuffler:       shuffler,
		logger:         logger,
	}
}

func (s *pairingService) ShuffleAndPair(ctx context.Context, scope models.TeamScope, minPlayers int) ([]*models.Team, error) {
	if err := scope.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	leagueID, err := s.resolveLeagueID(ctx, scope)
	if err != nil {
		return nil, err
	}

	players, err := s.playerRepo.ListByLeague(ctx, nil, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for league %s: %w", leagueID, err)
	}

	drafts, err := brackets.BuildPairs(players, minPlayers, s.shuffler)
	if err != nil {
		if errors.Is(err, brackets.ErrNotEnoughPlayers) {
			return nil, fmt.Errorf("%w: %v", ErrNotEnoughPlayers, err)
		}
		return nil, err
	}

	playersByID := make(map[string]*models.Player, len(players))
	for _, p := range players {
		playersByID[p.ID] = p
	}

	teams := make([]*models.Team, 0, len(drafts))
	err = s.txRunner.RunInTx(ctx, func(ex repositories.SQLExecutor) error {
		if lockErr := s.lockScope(ctx, ex, scope); lockErr != nil {
			return lockErr
		}

		// Replace-scope: matches first, then teams, then the fresh set.
		if scope.TournamentID != nil {
			if delErr := s.matchRepo.DeleteByTournament(ctx, ex, *scope.TournamentID, nil); delErr != nil {
				return delErr
			}
		}
		if delErr := s.teamRepo.DeleteByScope(ctx, ex, scope); delErr != nil {
			return delErr
		}

		for _, draft := range drafts {
			team := &models.Team{
				ID:           uuid.NewString(),
				Name:         draft.Name,
				LeagueID:     scope.LeagueID,
				TournamentID: scope.TournamentID,
			}
			if createErr := s.teamRepo.Create(ctx, ex, team); createErr != nil {
				return createErr
			}
			if assignErr := s.teamRepo.AssignPlayers(ctx, ex, team.ID, draft.PlayerIDs); assignErr != nil {
				return assignErr
			}
			for _, pid := range draft.PlayerIDs {
				if p := playersByID[pid]; p != nil {
					team.Players = append(team.Players, *p)
				}
			}
			teams = append(teams, team)
		}

		// A league draw activates the league.
		if scope.LeagueID != nil {
			return s.leagueRepo.UpdateStatus(ctx, ex, *scope.LeagueID, models.LeagueStatusActive)
		}
		return nil
	})
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	s.logger.InfoContext(ctx, "teams redrawn",
		slog.String("league_id", leagueID),
		slog.Int("players", len(players)),
		slog.Int("teams", len(teams)),
	)
	return teams, nil
}

func (s *pairingService) resolveLeagueID(ctx context.Context, scope models.TeamScope) (string, error) {
	if scope.LeagueID != nil {
		if _, err := s.leagueRepo.GetByID(ctx, nil, *scope.LeagueID); err != nil {
			return "", mapRepositoryError(err)
		}
		return *scope.LeagueID, nil
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, nil, *scope.TournamentID)
	if err != nil {
		return "", mapRepositoryError(err)
	}
	return tournament.LeagueID, nil
}

func (s *pairingService) lockScope(ctx context.Context, ex repositories.SQLExecutor, scope models.TeamScope) error {
	if scope.LeagueID != nil {
		return s.leagueRepo.LockForGeneration(ctx, ex, *scope.LeagueID)
	}
	return s.tournamentRepo.LockForGeneration(ctx, ex, *scope.TournamentID)
}
