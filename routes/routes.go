package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Nicolasplgn/beach-tennis-erp/handlers"
	"github.com/Nicolasplgn/beach-tennis-erp/middleware"
	"github.com/Nicolasplgn/beach-tennis-erp/models"
)

// SetupRoutes wires the HTTP surface. Reads are public, every mutation
// sits behind the admin JWT.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	leagueHandler *handlers.LeagueHandler,
	playerHandler *handlers.PlayerHandler,
	teamHandler *handlers.TeamHandler,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))
	adminOnly := middleware.Authorize(models.RoleAdmin)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/leagues", func(r chi.Router) {
		r.Get("/", leagueHandler.List)
		r.Get("/{leagueID}", leagueHandler.GetByID)
		r.Get("/{leagueID}/players", playerHandler.ListByLeague)
		r.Get("/{leagueID}/tournaments", tournamentHandler.ListByLeague)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Post("/", leagueHandler.Create)
			r.Patch("/{leagueID}/status", leagueHandler.UpdateStatus)
			r.Delete("/{leagueID}", leagueHandler.Delete)

			r.Post("/{leagueID}/players", playerHandler.Add)
			r.Post("/{leagueID}/teams/shuffle", teamHandler.ShuffleLeagueTeams)
			r.Post("/{leagueID}/tournaments", tournamentHandler.Create)
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Put("/{playerID}", playerHandler.Update)
			r.Delete("/{playerID}", playerHandler.Delete)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/{tournamentID}/bracket", tournamentHandler.GetBracket)
		r.Get("/{tournamentID}/matches", matchHandler.ListByTournament)
		r.Get("/{tournamentID}/standings", tournamentHandler.GroupStandings)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Post("/{tournamentID}/teams/shuffle", teamHandler.ShuffleTournamentTeams)
			r.Post("/{tournamentID}/knockout", tournamentHandler.GenerateKnockout)
			r.Post("/{tournamentID}/groups", tournamentHandler.GenerateGroupStage)
			r.Post("/{tournamentID}/cross-seed", tournamentHandler.GenerateCrossSeed)
			r.Post("/{tournamentID}/finish", tournamentHandler.Finish)
			r.Delete("/{tournamentID}", tournamentHandler.Delete)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Put("/{matchID}/score", matchHandler.ApplyScore)
		})
	})
}
