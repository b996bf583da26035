package handlers

import (
	"errors"
	"net/http"

	"github.com/hirohaya/racket-hero/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
	eventHandler  *EventHandler
}

func NewPlayerHandler(playerService services.PlayerService, eventHandler *EventHandler) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
		eventHandler:  eventHandler,
	}
}

func (h *PlayerHandler) Enroll(w http.ResponseWriter, r *http.Request) {
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
		Name   string   `json:"name"`
		Rating *float64 `json:"rating"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.Enroll(r.Context(), services.EnrollPlayerInput{
		EventID: eventID,
		Name:    input.Name,
		Rating:  input.Rating,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := readIDParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	players, err := h.playerService.ListByEvent(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) Rename(w http.ResponseWriter, r *http.Request) {
	playerID, err := readIDParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.GetByID(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := h.eventHandler.requireOrganizer(r, player.EventID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Name == "" {
		badRequestResponse(w, r, errors.New("name is required"))
		return
	}

	updated, err := h.playerService.Rename(r.Context(), playerID, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": updated}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) Remove(w http.ResponseWriter, r *http.Request) {
	playerID, err := readIDParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.GetByID(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := h.eventHandler.requireOrganizer(r, player.EventID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := h.playerService.Remove(r.Context(), playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
