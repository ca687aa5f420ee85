package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
	"github.com/Nicolasplgn/beach-tennis-erp/repositories"
	"github.com/google/uuid"
)

type AddPlayerInput struct {
	Name     string             `json:"name"`
	Nickname *string            `json:"nickname,omitempty"`
	Level    models.PlayerLevel `json:"level"`
}

type PlayerService interface {
	Add(ctx context.Context, leagueID string, input AddPlayerInput) (*models.Player, error)
	Update(ctx context.Context, playerID string, input AddPlayerInput) (*models.Player, error)
	ListByLeague(ctx context.Context, leagueID string) ([]*models.Player, error)
	Delete(ctx context.Context, playerID string) error
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	leagueRepo repositories.LeagueRepository
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	leagueRepo repositories.LeagueRepository,
) PlayerService {
	return &playerService{playerRepo: playerRepo, leagueRepo: leagueRepo}
}

func (s *playerService) Add(ctx context.Context, leagueID string, input AddPlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	if _, err := s.leagueRepo.GetByID(ctx, nil, leagueID); err != nil {
		return nil, mapRepositoryError(err)
	}

	level := input.Level
	if level == "" {
		level = models.LevelBeginner
	}

	player := &models.Player{
		ID:       uuid.NewString(),
		LeagueID: leagueID,
		Name:     name,
		Nickname: input.Nickname,
		Level:    level,
	}
	if err := s.playerRepo.Create(ctx, nil, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", mapRepositoryError(err))
	}
	return player, nil
}

func (s *playerService) Update(ctx context.Context, playerID string, input AddPlayerInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, nil, playerID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		player.Name = name
	}
	if input.Nickname != nil {
		player.Nickname = input.Nickname
	}
	if input.Level != "" {
		player.Level = input.Level
	}

	if err := s.playerRepo.Update(ctx, nil, player); err != nil {
		return nil, mapRepositoryError(err)
	}
	return player, nil
}

func (s *playerService) ListByLeague(ctx context.Context, leagueID string) ([]*models.Player, error) {
	players, err := s.playerRepo.ListByLeague(ctx, nil, leagueID)
	if err != nil {
		return nil, err
	}
	if players == nil {
		return []*models.Player{}, nil
	}
	return players, nil
}

func (s *playerService) Delete(ctx context.Context, playerID string) error {
	return mapRepositoryError(s.playerRepo.Delete(ctx, nil, playerID))
}
