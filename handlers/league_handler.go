package handlers

import (
	"errors"
	"net/http"

	"github.com/Nicolasplgn/beach-tennis-erp/middleware"
	"github.com/Nicolasplgn/beach-tennis-erp/models"
	"github.com/Nicolasplgn/beach-tennis-erp/services"
)

type LeagueHandler struct {
	leagueService services.LeagueService
}

func NewLeagueHandler(leagueService services.LeagueService) *LeagueHandler {
	return &LeagueHandler{leagueService: leagueService}
}

func (h *LeagueHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	adminID := middleware.UserIDFromContext(r.Context())
	if adminID == "" {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	league, err := h.leagueService.Create(r.Context(), input.Name, adminID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"league": league}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeagueHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "leagueID")
	if id == "" {
		badRequestResponse(w, r, errors.New("league id is required"))
		return
	}

	league, err := h.leagueService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"league": league}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeagueHandler) List(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.leagueService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leagues": leagues}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeagueHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "leagueID")
	if id == "" {
		badRequestResponse(w, r, errors.New("league id is required"))
		return
	}

	var input struct {
		Status models.LeagueStatus `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.leagueService.UpdateStatus(r.Context(), id, input.Status); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": input.Status}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeagueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "leagueID")
	if id == "" {
		badRequestResponse(w, r, errors.New("league id is required"))
		return
	}

	if err := h.leagueService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
