package handlers

import (
	"net/http"

	"github.com/hirohaya/racket-hero/services"
)

type MatchHandler struct {
	matchService services.MatchService
	eventHandler *EventHandler
}

func NewMatchHandler(matchService services.MatchService, eventHandler *EventHandler) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		eventHandler: eventHandler,
	}
}

func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	eventID, err := readIDParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.eventHandler.requireOrganizer(r, eventID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	var input struct {
		Player1ID int  `json:"player_1_id"`
		Player2ID int  `json:"player_2_id"`
		WinnerID  *int `json:"winner_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.Create(r.Context(), services.CreateMatchInput{
		EventID:   eventID,
		Player1ID: input.Player1ID,
		Player2ID: input.Player2ID,
		WinnerID:  input.WinnerID,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := readIDParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.matchService.ListByEvent(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	eventID, err := readIDParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := readIDParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.eventHandler.requireOrganizer(r, eventID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	var input services.UpdateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.Update(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	eventID, err := readIDParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := readIDParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.eventHandler.requireOrganizer(r, eventID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := h.matchService.Delete(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
