package handlers

import (
	"errors"
	"net/http"

	"github.com/hirohaya/racket-hero/middleware"
	"github.com/hirohaya/racket-hero/models"
	"github.com/hirohaya/racket-hero/services"
)

type EventHandler struct {
	eventService services.EventService
}

func NewEventHandler(eventService services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// requireOrganizer checks that the caller manages the event or is an admin.
func (h *EventHandler) requireOrganizer(r *http.Request, eventID int) error {
	role, err := middleware.GetUserRoleFromContext(r.Context())
	if err != nil {
		return services.ErrForbiddenOperation
	}
	if role == models.RoleAdmin {
		return nil
	}

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		return services.ErrForbiddenOperation
	}
	ok, err := h.eventService.IsOrganizer(r.Context(), eventID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return services.ErrForbiddenOperation
	}
	return nil
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateEventInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	event, err := h.eventService.Create(r.Context(), input, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"event": event}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EventHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.eventService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"event": event}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EventHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.ListActive(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"events": events}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.requireOrganizer(r, id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	var input services.UpdateEventInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.eventService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"event": event}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EventHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.requireOrganizer(r, id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := h.eventService.Deactivate(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EventHandler) AddOrganizer(w http.ResponseWriter, r *http.Request) {
	eventID, err := readIDParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.requireOrganizer(r, eventID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	var input struct {
		UserID int `json:"user_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.UserID < 1 {
		badRequestResponse(w, r, errors.New("user_id is required"))
		return
	}

	organizer, err := h.eventService.AddOrganizer(r.Context(), eventID, input.UserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"organizer": organizer}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EventHandler) ListOrganizers(w http.ResponseWriter, r *http.Request) {
	eventID, err := readIDParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	organizers, err := h.eventService.ListOrganizers(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"organizers": organizers}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EventHandler) RemoveOrganizer(w http.ResponseWriter, r *http.Request) {
	eventID, err := readIDParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, err := readIDParam(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.requireOrganizer(r, eventID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := h.eventService.RemoveOrganizer(r.Context(), eventID, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
