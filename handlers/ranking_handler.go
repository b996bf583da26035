package handlers

import (
	"net/http"

	"github.com/hirohaya/racket-hero/services"
)

type RankingHandler struct {
	rankingService services.RankingService
}

func NewRankingHandler(rankingService services.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

func (h *RankingHandler) GetByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := readIDParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	ranking, err := h.rankingService.GetByEvent(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ranking": ranking}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
