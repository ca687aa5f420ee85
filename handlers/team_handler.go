package handlers

import (
	"errors"
	"net/http"

	"github.com/Nicolasplgn/beach-tennis-erp/models"
	"github.com/Nicolasplgn/beach-tennis-erp/services"
)

type TeamHandler struct {
	pairingService services.PairingService
}

func NewTeamHandler(pairingService services.PairingService) *TeamHandler {
	return &TeamHandler{pairingService: pairingService}
}

// ShuffleLeagueTeams redraws the league's teams from its player pool.
func (h *TeamHandler) ShuffleLeagueTeams(w http.ResponseWriter, r *http.Request) {
	leagueID := idParam(r, "leagueID")
	if leagueID == "" {
		badRequestResponse(w, r, errors.New("league id is required"))
		return
	}

	scope := models.TeamScope{LeagueID: &leagueID}
	teams, err := h.pairingService.ShuffleAndPair(r.Context(), scope, 2)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ShuffleTournamentTeams redraws the teams entered in a single tournament.
func (h *TeamHandler) ShuffleTournamentTeams(w http.ResponseWriter, r *http.Request) {
	tournamentID := idParam(r, "tournamentID")
	if tournamentID == "" {
		badRequestResponse(w, r, errors.New("tournament id is required"))
		return
	}

	scope := models.TeamScope{TournamentID: &tournamentID}
	teams, err := h.pairingService.ShuffleAndPair(r.Context(), scope, 4)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
