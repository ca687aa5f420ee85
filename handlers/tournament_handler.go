package handlers

import (
	"errors"
	"net/http"

	"github.com/Nicolasplgn/beach-tennis-erp/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
	bracketService    services.BracketService
}

func NewTournamentHandler(
	tournamentService services.TournamentService,
	bracketService services.BracketService,
) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: tournamentService,
		bracketService:    bracketService,
	}
}

func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	leagueID := idParam(r, "leagueID")
	if leagueID == "" {
		badRequestResponse(w, r, errors.New("league id is required"))
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Create(r.Context(), leagueID, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) ListByLeague(w http.ResponseWriter, r *http.Request) {
	leagueID := idParam(r, "leagueID")
	if leagueID == "" {
		badRequestResponse(w, r, errors.New("league id is required"))
		return
	}

	tournaments, err := h.tournamentService.ListByLeague(r.Context(), leagueID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) GetBracket(w http.ResponseWriter, r *http.Request) {
	tournamentID := idParam(r, "tournamentID")
	if tournamentID == "" {
		badRequestResponse(w, r, errors.New("tournament id is required"))
		return
	}

	bracket, err := h.bracketService.GetTournamentBracket(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, bracket, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) GenerateKnockout(w http.ResponseWriter, r *http.Request) {
	tournamentID := idParam(r, "tournamentID")
	if tournamentID == "" {
		badRequestResponse(w, r, errors.New("tournament id is required"))
		return
	}

	matches, err := h.bracketService.GenerateKnockout(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) GenerateGroupStage(w http.ResponseWriter, r *http.Request) {
	tournamentID := idParam(r, "tournamentID")
	if tournamentID == "" {
		badRequestResponse(w, r, errors.New("tournament id is required"))
		return
	}

	matches, err := h.bracketService.GenerateGroupStage(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) GenerateCrossSeed(w http.ResponseWriter, r *http.Request) {
	tournamentID := idParam(r, "tournamentID")
	if tournamentID == "" {
		badRequestResponse(w, r, errors.New("tournament id is required"))
		return
	}

	matches, err := h.bracketService.GenerateCrossSeed(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) GroupStandings(w http.ResponseWriter, r *http.Request) {
	tournamentID := idParam(r, "tournamentID")
	if tournamentID == "" {
		badRequestResponse(w, r, errors.New("tournament id is required"))
		return
	}

	standings, err := h.bracketService.GroupStandings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) Finish(w http.ResponseWriter, r *http.Request) {
	tournamentID := idParam(r, "tournamentID")
	if tournamentID == "" {
		badRequestResponse(w, r, errors.New("tournament id is required"))
		return
	}

	tournament, err := h.tournamentService.Finish(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tournamentID := idParam(r, "tournamentID")
	if tournamentID == "" {
		badRequestResponse(w, r, errors.New("tournament id is required"))
		return
	}

	if err := h.tournamentService.Delete(r.Context(), tournamentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
