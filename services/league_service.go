package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
	"github.com/Nicolasplgn/beach-tennis-erp/repositories"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type LeagueService interface {
	Create(ctx context.Context, name, adminID string) (*models.League, error)
	GetByID(ctx context.Context, id string) (*models.League, error)
	List(ctx context.Context) ([]*models.League, error)
	UpdateStatus(ctx context.Context, id string, status models.LeagueStatus) error
	Delete(ctx context.Context, id string) error
}

type leagueService struct {
	leagueRepo repositories.LeagueRepository
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
}

func NewLeagueService(
	leagueRepo repositories.LeagueRepository,
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
) LeagueService {
	return &leagueService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
	}
}

func (s *leagueService) Create(ctx context.Context, name, adminID string) (*models.League, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrLeagueNameRequired
	}

	league := &models.League{
		ID:      uuid.NewString(),
		Name:    name,
		Status:  models.LeagueStatusDraft,
		AdminID: adminID,
	}
	if err := s.leagueRepo.Create(ctx, nil, league); err != nil {
		return nil, fmt.Errorf("failed to create league: %w", err)
	}
	return league, nil
}

// GetByID returns the league with its players and teams, fetched in parallel.
func (s *leagueService) GetByID(ctx context.Context, id string) (*models.League, error) {
	league, err := s.leagueRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		players, pErr := s.playerRepo.ListByLeague(gCtx, nil, id)
		if pErr != nil {
			return pErr
		}
		league.Players = make([]models.Player, len(players))
		for i, p := range players {
			league.Players[i] = *p
		}
		return nil
	})

	g.Go(func() error {
		teams, tErr := s.teamRepo.ListByScope(gCtx, nil, models.TeamScope{LeagueID: &id}, true)
		if tErr != nil {
			return tErr
		}
		league.Teams = teamsToValues(teams)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return league, nil
}

func (s *leagueService) List(ctx context.Context) ([]*models.League, error) {
	leagues, err := s.leagueRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	if leagues == nil {
		return []*models.League{}, nil
	}
	return leagues, nil
}

func (s *leagueService) UpdateStatus(ctx context.Context, id string, status models.LeagueStatus) error {
	league, err := s.leagueRepo.GetByID(ctx, nil, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if !isValidLeagueStatusTransition(league.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, league.Status, status)
	}
	return mapRepositoryError(s.leagueRepo.UpdateStatus(ctx, nil, id, status))
}

func (s *leagueService) Delete(ctx context.Context, id string) error {
	return mapRepositoryError(s.leagueRepo.Delete(ctx, nil, id))
}
