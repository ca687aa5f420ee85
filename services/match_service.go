package services

import (
	"context"
	"log/slog"

	"github.com/Nicolasplgn/beach-tennis-erp/brackets"
	"github.com/Nicolasplgn/beach-tennis-erp/models"
	"github.com/Nicolasplgn/beach-tennis-erp/repositories"
)

type MatchService interface {
	// ApplyScore reports or corrects a match result. The whole
	// read-reverse-apply sequence runs in one transaction scoped to the
	// match and its players, so repeating a call with identical scores
	// leaves statistics unchanged and a correction behaves as if the new
	// result had been recorded originally.
	ApplyScore(ctx context.Context, matchID string, scoreA, scoreB int) (*models.Match, error)

	ListByTournament(ctx context.Context, tournamentID string) ([]*models.Match, error)
}

type matchService struct {
	txRunner   repositories.TxRunner
	matchRepo  repositories.MatchRepository
	playerRepo repositories.PlayerRepository
	rules      func(models.StageType) brackets.ScoreRules
	logger     *slog.Logger
}

func NewMatchService(
	txRunner repositories.TxRunner,
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		txRunner:   txRunner,
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		rules:      brackets.RulesForStage,
		logger:     logger,
	}
}

// NewMatchServiceWithRules overrides the stage-to-rules mapping, for leagues
// that play their group fixtures to a full set as well.
func NewMatchServiceWithRules(
	txRunner repositories.TxRunner,
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
	rules func(models.StageType) brackets.ScoreRules,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		txRunner:   txRunner,
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		rules:      rules,
		logger:     logger,
	}
}

func (s *matchService) ApplyScore(ctx context.Context, matchID string, scoreA, scoreB int) (*models.Match, error) {
	if scoreA < 0 || scoreB < 0 {
		return nil, ErrNegativeScore
	}

	var updated *models.Match
	err := s.txRunner.RunInTx(ctx, func(ex repositories.SQLExecutor) error {
		match, err := s.matchRepo.GetByIDForUpdate(ctx, ex, matchID)
		if err != nil {
			return err
		}
		if match.TeamAID == nil || match.TeamBID == nil {
			return ErrMatchTeamsNotSet
		}

		membersA, err := s.playerRepo.ListByTeam(ctx, ex, *match.TeamAID)
		if err != nil {
			return err
		}
		membersB, err := s.playerRepo.ListByTeam(ctx, ex, *match.TeamBID)
		if err != nil {
			return err
		}

		side, decided := s.rules(match.Stage).Winner(scoreA, scoreB)
		var newWinnerID *string
		if decided {
			if side == brackets.SideA {
				newWinnerID = match.TeamAID
			} else {
				newWinnerID = match.TeamBID
			}
		}

		// Reverse the previously applied contribution before anything else,
		// using the old persisted score and winner. Without this a
		// correction would double-count.
		if match.Status == models.MatchStatusFinished && match.WinnerID != nil {
			if err := s.applyStatistics(ctx, ex, match, *match.WinnerID, match.ScoreA, match.ScoreB, membersA, membersB, -1); err != nil {
				return err
			}
		}

		status := models.MatchStatusPlaying
		if decided {
			status = models.MatchStatusFinished
		}
		if err := s.matchRepo.UpdateScoreStatusWinner(ctx, ex, matchID, scoreA, scoreB, status, newWinnerID); err != nil {
			return err
		}

		// Advance the winner. The write overwrites whatever team previously
		// occupied the slot, so a corrected result replaces a wrongly
		// advanced team, and a correction back to an undecided score clears
		// the slot again. A missing next match just means this is the final.
		if match.NextMatchID != nil && (newWinnerID != nil || match.WinnerID != nil) {
			slot := 1
			if match.Position%2 == 1 {
				slot = 2
			}
			if err := s.matchRepo.UpdateTeamSlot(ctx, ex, *match.NextMatchID, slot, newWinnerID); err != nil {
				return err
			}
		}

		if newWinnerID != nil {
			if err := s.applyStatistics(ctx, ex, match, *newWinnerID, scoreA, scoreB, membersA, membersB, +1); err != nil {
				return err
			}
		}

		updatedMatch := *match
		updatedMatch.ScoreA = scoreA
		updatedMatch.ScoreB = scoreB
		updatedMatch.Status = status
		updatedMatch.WinnerID = newWinnerID
		updated = &updatedMatch
		return nil
	})
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	s.logger.InfoContext(ctx, "score applied",
		slog.String("match_id", matchID),
		slog.Int("score_a", scoreA),
		slog.Int("score_b", scoreB),
		slog.String("status", string(updated.Status)),
	)
	return updated, nil
}

// applyStatistics adds one match result to the member statistics of both
// sides, or removes it again when sign is -1: a win/loss each, plus the games
// both sides won.
func (s *matchService) applyStatistics(
	ctx context.Context,
	ex repositories.SQLExecutor,
	match *models.Match,
	winnerID string,
	scoreA, scoreB int,
	membersA, membersB []*models.Player,
	sign int,
) error {
	winners, losers := membersA, membersB
	if winnerID == derefString(match.TeamBID) {
		winners, losers = membersB, membersA
	}

	for _, p := range winners {
		if err := s.playerRepo.UpdateStats(ctx, ex, p.ID, models.PlayerStatsDelta{Wins: sign}); err != nil {
			return err
		}
	}
	for _, p := range losers {
		if err := s.playerRepo.UpdateStats(ctx, ex, p.ID, models.PlayerStatsDelta{Losses: sign}); err != nil {
			return err
		}
	}
	for _, p := range membersA {
		if err := s.playerRepo.UpdateStats(ctx, ex, p.ID, models.PlayerStatsDelta{GamesWon: sign * scoreA}); err != nil {
			return err
		}
	}
	for _, p := range membersB {
		if err := s.playerRepo.UpdateStats(ctx, ex, p.ID, models.PlayerStatsDelta{GamesWon: sign * scoreB}); err != nil {
			return err
		}
	}
	return nil
}

func (s *matchService) ListByTournament(ctx context.Context, tournamentID string) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, nil, tournamentID, nil, nil)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		return []*models.Match{}, nil
	}
	return matches, nil
}
