package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Nicolasplgn/beach-tennis-erp/brackets"
	"github.com/Nicolasplgn/beach-tennis-erp/models"
	"github.com/Nicolasplgn/beach-tennis-erp/repositories"
	"golang.org/x/sync/errgroup"
)

// TournamentBracket bundles everything a bracket view needs.
type TournamentBracket struct {
	Tournament *models.Tournament `json:"tournament"`
	Teams      []models.Team      `json:"teams"`
	Matches    []models.Match     `json:"matches"`
}

type BracketService interface {
	GenerateKnockout(ctx context.Context, tournamentID string) ([]*models.Match, error)
	GenerateGroupStage(ctx context.Context, tournamentID string) ([]*models.Match, error)
	GenerateCrossSeed(ctx context.Context, tournamentID string) ([]*models.Match, error)
	GroupStandings(ctx context.Context, tournamentID string) (map[string][]*models.Standing, error)
	GetTournamentBracket(ctx context.Context, tournamentID string) (*TournamentBracket, error)
}

type bracketService struct {
	txRunner       repositories.TxRunner
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	shuffler       brackets.Shuffler
	logger         *slog.Logger
}

func NewBracketService(
	txRunner repositories.TxRunner,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	shuffler brackets.Shuffler,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		txRunner:       txRunner,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		shuffler:       shuffler,
		logger:         logger,
	}
}

func (s *bracketService) GenerateKnockout(ctx context.Context, tournamentID string) ([]*models.Match, error) {
	tournament, teams, err := s.loadTournamentTeams(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	generator := brackets.NewSingleEliminationGenerator(s.shuffler)
	matches, err := generator.GenerateStage(ctx, brackets.GenerateStageParams{
		Tournament: tournament,
		Teams:      teams,
	})
	if err != nil {
		if errors.Is(err, brackets.ErrNotEnoughTeams) {
			return nil, fmt.Errorf("%w: got %d", ErrNotEnoughTeams, len(teams))
		}
		return nil, fmt.Errorf("failed to generate knockout bracket for tournament %s: %w", tournamentID, err)
	}

	if err := verifyLinkOrder(matches); err != nil {
		return nil, err
	}

	format := models.FormatKnockout
	err = s.replaceStage(ctx, tournamentID, nil, matches, &format, nil)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "knockout bracket generated",
		slog.String("tournament_id", tournamentID),
		slog.Int("teams", len(teams)),
		slog.Int("matches", len(matches)),
	)
	return matches, nil
}

func (s *bracketService) GenerateGroupStage(ctx context.Context, tournamentID string) ([]*models.Match, error) {
	tournament, teams, err := s.loadTournamentTeams(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	generator := brackets.NewGroupStageGenerator(s.shuffler)
	matches, err := generator.GenerateStage(ctx, brackets.GenerateStageParams{
		Tournament: tournament,
		Teams:      teams,
	})
	if err != nil {
		if errors.Is(err, brackets.ErrGroupStageTeamCount) {
			return nil, fmt.Errorf("%w: got %d", ErrGroupStageTeamCount, len(teams))
		}
		return nil, fmt.Errorf("failed to generate group stage for tournament %s: %w", tournamentID, err)
	}

	format := models.FormatGroups
	err = s.replaceStage(ctx, tournamentID, nil, matches, &format, teams)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "group stage generated",
		slog.String("tournament_id", tournamentID),
		slog.Int("matches", len(matches)),
	)
	return matches, nil
}

func (s *bracketService) GenerateCrossSeed(ctx context.Context, tournamentID string) ([]*models.Match, error) {
	standings, err := s.GroupStandings(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	matches, err := brackets.BuildCrossSeed(tournamentID, standings["A"], standings["B"])
	if err != nil {
		if errors.Is(err, brackets.ErrNotEnoughQualified) {
			return nil, ErrGroupStageNotRanked
		}
		return nil, err
	}

	// Only the knockout tail is replaced; group fixtures stay untouched.
	knockout := models.StageKnockout
	err = s.replaceStage(ctx, tournamentID, &knockout, matches, nil, nil)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cross-seeded knockout generated",
		slog.String("tournament_id", tournamentID),
	)
	return matches, nil
}

func (s *bracketService) GroupStandings(ctx context.Context, tournamentID string) (map[string][]*models.Standing, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return nil, mapRepositoryError(err)
	}

	teams, err := s.teamRepo.ListByScope(ctx, nil, models.TeamScope{TournamentID: &tournamentID}, false)
	if err != nil {
		return nil, err
	}

	groupStage := models.StageGroupStage
	matches, err := s.matchRepo.ListByTournament(ctx, nil, tournamentID, &groupStage, nil)
	if err != nil {
		return nil, err
	}

	standings := make(map[string][]*models.Standing, 2)
	for _, label := range []string{"A", "B"} {
		var groupTeams []*models.Team
		for _, t := range teams {
			if t.Group != nil && *t.Group == label {
				groupTeams = append(groupTeams, t)
			}
		}
		var groupMatches []*models.Match
		for _, m := range matches {
			if m.Group != nil && *m.Group == label {
				groupMatches = append(groupMatches, m)
			}
		}
		standings[label] = brackets.ComputeStandings(groupMatches, groupTeams)
	}
	return standings, nil
}

// GetTournamentBracket loads the tournament, its teams and its matches in
// parallel.
func (s *bracketService) GetTournamentBracket(ctx context.Context, tournamentID string) (*TournamentBracket, error) {
	bracket := &TournamentBracket{}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tournament, err := s.tournamentRepo.GetByID(gCtx, nil, tournamentID)
		if err != nil {
			return mapRepositoryError(err)
		}
		bracket.Tournament = tournament
		return nil
	})

	g.Go(func() error {
		teams, err := s.teamRepo.ListByScope(gCtx, nil, models.TeamScope{TournamentID: &tournamentID}, true)
		if err != nil {
			return err
		}
		bracket.Teams = teamsToValues(teams)
		return nil
	})

	g.Go(func() error {
		matches, err := s.matchRepo.ListByTournament(gCtx, nil, tournamentID, nil, nil)
		if err != nil {
			return err
		}
		bracket.Matches = matchesToValues(matches)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bracket, nil
}

func (s *bracketService) loadTournamentTeams(ctx context.Context, tournamentID string) (*models.Tournament, []*models.Team, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		return nil, nil, mapRepositoryError(err)
	}

	teams, err := s.teamRepo.ListByScope(ctx, nil, models.TeamScope{TournamentID: &tournamentID}, false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list teams for tournament %s: %w", tournamentID, err)
	}
	return tournament, teams, nil
}

// replaceStage runs the delete-then-recreate of a stage as one transaction:
// lock the tournament, delete the stage's matches, persist group labels when
// given, create the new match set in referential order, update the
// tournament. A failure anywhere leaves the previous state untouched.
func (s *bracketService) replaceStage(
	ctx context.Context,
	tournamentID string,
	stage *models.StageType,
	matches []*models.Match,
	format *models.TournamentFormat,
	labeledTeams []*models.Team,
) error {
	err := s.txRunner.RunInTx(ctx, func(ex repositories.SQLExecutor) error {
		if lockErr := s.tournamentRepo.LockForGeneration(ctx, ex, tournamentID); lockErr != nil {
			return lockErr
		}

		if delErr := s.matchRepo.DeleteByTournament(ctx, ex, tournamentID, stage); delErr != nil {
			return delErr
		}

		for _, team := range labeledTeams {
			if updErr := s.teamRepo.UpdateGroup(ctx, ex, team.ID, team.Group); updErr != nil {
				return updErr
			}
		}

		for _, match := range matches {
			if createErr := s.matchRepo.Create(ctx, ex, match); createErr != nil {
				return createErr
			}
		}

		return s.tournamentRepo.UpdateStatusFormat(ctx, ex, tournamentID, models.TournamentStatusActive, format)
	})
	return mapRepositoryError(err)
}

// verifyLinkOrder checks that every NextMatchID points at a match created
// earlier in the slice, so the persistence pass never references a row that
// does not exist yet.
func verifyLinkOrder(matches []*models.Match) error {
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if m.NextMatchID != nil && !seen[*m.NextMatchID] {
			return fmt.Errorf("%w: match %s at round %d position %d", ErrBracketInconsistent, m.ID, m.Round, m.Position)
		}
		seen[m.ID] = true
	}
	return nil
}
