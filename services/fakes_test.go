package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
	"github.com/Nicolasplgn/beach-tennis-erp/repositories"
)

// In-memory repository fakes. The SQLExecutor parameter is ignored
// throughout; the fake TxRunner passes nil, matching how the real runner lets
// repositories fall back to their own pool.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeTxRunner struct {
	calls int
}

func (r *fakeTxRunner) RunInTx(ctx context.Context, fn func(repositories.SQLExecutor) error) error {
	r.calls++
	return fn(nil)
}

type fakeMatchRepo struct {
	matches map[string]*models.Match
	deleted []string
	created []string
}

func newFakeMatchRepo(matches ...*models.Match) *fakeMatchRepo {
	repo := &fakeMatchRepo{matches: map[string]*models.Match{}}
	for _, m := range matches {
		repo.matches[m.ID] = m
	}
	return repo
}

func (r *fakeMatchRepo) Create(_ context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	if match.NextMatchID != nil {
		if _, ok := r.matches[*match.NextMatchID]; !ok {
			return repositories.ErrMatchNotFound
		}
	}
	copied := *match
	r.matches[match.ID] = &copied
	r.created = append(r.created, match.ID)
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id string) (*models.Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMatchRepo) GetByIDForUpdate(ctx context.Context, ex repositories.SQLExecutor, id string) (*models.Match, error) {
	return r.GetByID(ctx, ex, id)
}

func (r *fakeMatchRepo) ListByTournament(_ context.Context, _ repositories.SQLExecutor, tournamentID string, stage *models.StageType, group *string) ([]*models.Match, error) {
	var out []*models.Match
	for _, m := range r.matches {
		if m.TournamentID != tournamentID {
			continue
		}
		if stage != nil && m.Stage != *stage {
			continue
		}
		if group != nil && (m.Group == nil || *m.Group != *group) {
			continue
		}
		copied := *m
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeMatchRepo) UpdateScoreStatusWinner(_ context.Context, _ repositories.SQLExecutor, id string, scoreA, scoreB int, status models.MatchStatus, winnerID *string) error {
	m, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.ScoreA = scoreA
	m.ScoreB = scoreB
	m.Status = status
	m.WinnerID = winnerID
	return nil
}

func (r *fakeMatchRepo) UpdateTeamSlot(_ context.Context, _ repositories.SQLExecutor, id string, slot int, teamID *string) error {
	m, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	if slot == 1 {
		m.TeamAID = teamID
	} else {
		m.TeamBID = teamID
	}
	return nil
}

func (r *fakeMatchRepo) DeleteByTournament(_ context.Context, _ repositories.SQLExecutor, tournamentID string, stage *models.StageType) error {
	for id, m := range r.matches {
		if m.TournamentID != tournamentID {
			continue
		}
		if stage != nil && m.Stage != *stage {
			continue
		}
		delete(r.matches, id)
		r.deleted = append(r.deleted, id)
	}
	return nil
}

type fakePlayerRepo struct {
	players map[string]*models.Player
	byTeam  map[string][]string
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{
		players: map[string]*models.Player{},
		byTeam:  map[string][]string{},
	}
}

func (r *fakePlayerRepo) addToTeam(teamID string, players ...*models.Player) {
	for _, p := range players {
		r.players[p.ID] = p
		r.byTeam[teamID] = append(r.byTeam[teamID], p.ID)
	}
}

func (r *fakePlayerRepo) Create(_ context.Context, _ repositories.SQLExecutor, player *models.Player) error {
	r.players[player.ID] = player
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id string) (*models.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return p, nil
}

func (r *fakePlayerRepo) ListByLeague(_ context.Context, _ repositories.SQLExecutor, leagueID string) ([]*models.Player, error) {
	var out []*models.Player
	for _, p := range r.players {
		if p.LeagueID == leagueID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) ListByTeam(_ context.Context, _ repositories.SQLExecutor, teamID string) ([]*models.Player, error) {
	var out []*models.Player
	for _, id := range r.byTeam[teamID] {
		out = append(out, r.players[id])
	}
	return out, nil
}

func (r *fakePlayerRepo) Update(_ context.Context, _ repositories.SQLExecutor, player *models.Player) error {
	if _, ok := r.players[player.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	r.players[player.ID] = player
	return nil
}

func (r *fakePlayerRepo) UpdateStats(_ context.Context, _ repositories.SQLExecutor, id string, delta models.PlayerStatsDelta) error {
	p, ok := r.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.Wins += delta.Wins
	p.Losses += delta.Losses
	p.GamesWon += delta.GamesWon
	p.RankingPoints += delta.RankingPoints
	return nil
}

func (r *fakePlayerRepo) Delete(_ context.Context, _ repositories.SQLExecutor, id string) error {
	if _, ok := r.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

type fakeTeamRepo struct {
	teams  map[string]*models.Team
	groups map[string]*string
}

func newFakeTeamRepo(teams ...*models.Team) *fakeTeamRepo {
	repo := &fakeTeamRepo{teams: map[string]*models.Team{}, groups: map[string]*string{}}
	for _, t := range teams {
		repo.teams[t.ID] = t
	}
	return repo
}

func (r *fakeTeamRepo) Create(_ context.Context, _ repositories.SQLExecutor, team *models.Team) error {
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id string) (*models.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return t, nil
}

func (r *fakeTeamRepo) ListByScope(_ context.Context, _ repositories.SQLExecutor, scope models.TeamScope, _ bool) ([]*models.Team, error) {
	var out []*models.Team
	for _, t := range r.teams {
		switch {
		case scope.TournamentID != nil:
			if t.TournamentID != nil && *t.TournamentID == *scope.TournamentID {
				out = append(out, t)
			}
		case scope.LeagueID != nil:
			if t.LeagueID != nil && *t.LeagueID == *scope.LeagueID {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) AssignPlayers(_ context.Context, _ repositories.SQLExecutor, teamID string, playerIDs []string) error {
	return nil
}

func (r *fakeTeamRepo) UpdateGroup(_ context.Context, _ repositories.SQLExecutor, teamID string, group *string) error {
	if _, ok := r.teams[teamID]; !ok {
		return repositories.ErrTeamNotFound
	}
	r.groups[teamID] = group
	return nil
}

func (r *fakeTeamRepo) DeleteByScope(ctx context.Context, ex repositories.SQLExecutor, scope models.TeamScope) error {
	teams, _ := r.ListByScope(ctx, ex, scope, false)
	for _, t := range teams {
		delete(r.teams, t.ID)
	}
	return nil
}

type fakeTournamentRepo struct {
	tournaments map[string]*models.Tournament
	locked      bool
}

func newFakeTournamentRepo(tournaments ...*models.Tournament) *fakeTournamentRepo {
	repo := &fakeTournamentRepo{tournaments: map[string]*models.Tournament{}}
	for _, t := range tournaments {
		repo.tournaments[t.ID] = t
	}
	return repo
}

func (r *fakeTournamentRepo) Create(_ context.Context, _ repositories.SQLExecutor, tournament *models.Tournament) error {
	r.tournaments[tournament.ID] = tournament
	return nil
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id string) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return t, nil
}

func (r *fakeTournamentRepo) ListByLeague(_ context.Context, _ repositories.SQLExecutor, leagueID string) ([]*models.Tournament, error) {
	var out []*models.Tournament
	for _, t := range r.tournaments {
		if t.LeagueID == leagueID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTournamentRepo) UpdateStatusFormat(_ context.Context, _ repositories.SQLExecutor, id string, status models.TournamentStatus, format *models.TournamentFormat) error {
	t, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	if format != nil {
		t.Format = format
	}
	return nil
}

func (r *fakeTournamentRepo) SetChampion(_ context.Context, _ repositories.SQLExecutor, id string, teamID string) error {
	t, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.ChampionID = &teamID
	t.Status = models.TournamentStatusFinished
	return nil
}

func (r *fakeTournamentRepo) Delete(_ context.Context, _ repositories.SQLExecutor, id string) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

func (r *fakeTournamentRepo) LockForGeneration(_ context.Context, _ repositories.SQLExecutor, id string) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	if r.locked {
		return repositories.ErrScopeLocked
	}
	return nil
}

type fakeLeagueRepo struct {
	leagues map[string]*models.League
	locked  bool

	// hasChildren makes Delete refuse like the FK constraints do.
	hasChildren bool
}

func newFakeLeagueRepo(leagues ...*models.League) *fakeLeagueRepo {
	repo := &fakeLeagueRepo{leagues: map[string]*models.League{}}
	for _, l := range leagues {
		repo.leagues[l.ID] = l
	}
	return repo
}

func (r *fakeLeagueRepo) Create(_ context.Context, _ repositories.SQLExecutor, league *models.League) error {
	r.leagues[league.ID] = league
	return nil
}

func (r *fakeLeagueRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id string) (*models.League, error) {
	l, ok := r.leagues[id]
	if !ok {
		return nil, repositories.ErrLeagueNotFound
	}
	return l, nil
}

func (r *fakeLeagueRepo) List(_ context.Context, _ repositories.SQLExecutor) ([]*models.League, error) {
	var out []*models.League
	for _, l := range r.leagues {
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeLeagueRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, id string, status models.LeagueStatus) error {
	l, ok := r.leagues[id]
	if !ok {
		return repositories.ErrLeagueNotFound
	}
	l.Status = status
	return nil
}

func (r *fakeLeagueRepo) Delete(_ context.Context, _ repositories.SQLExecutor, id string) error {
	if _, ok := r.leagues[id]; !ok {
		return repositories.ErrLeagueNotFound
	}
	if r.hasChildren {
		return repositories.ErrLeagueNotEmpty
	}
	delete(r.leagues, id)
	return nil
}

func (r *fakeLeagueRepo) LockForGeneration(_ context.Context, _ repositories.SQLExecutor, id string) error {
	if _, ok := r.leagues[id]; !ok {
		return repositories.ErrLeagueNotFound
	}
	if r.locked {
		return repositories.ErrScopeLocked
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

// fakeUserRepo stores copies: the services scrub PasswordHash from returned
// structs and must not reach back into the store doing so.
func (r *fakeUserRepo) Create(_ context.Context, _ repositories.SQLExecutor, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, _ repositories.SQLExecutor, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}
