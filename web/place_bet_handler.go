package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"prediction-league-service/logger"
	"prediction-league-service/scoring"
	"prediction-league-service/services"
)

// handlePlaceBet 提交预测
// POST /api/bets/place
func (s *Server) handlePlaceBet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID     string `json:"userId"`
		EventID    string `json:"eventId"`
		WinnerTeam string `json:"winnerTeam"`
		WinMargin  int    `json:"winMargin"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.UserID == "" || req.EventID == "" || req.WinnerTeam == "" {
		writeError(w, http.StatusBadRequest, "missing required fields: userId, eventId, winnerTeam")
		return
	}

	bet, err := s.placement.PlaceBet(req.UserID, req.EventID, req.WinnerTeam, req.WinMargin)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"bet":     toBetResponse(*bet),
		})
	case errors.Is(err, services.ErrEventNotFound):
		writeError(w, http.StatusNotFound, "event not found")
	case errors.Is(err, services.ErrBettingClosed):
		writeError(w, http.StatusForbidden, "this event has already started, betting is no longer available")
	case errors.Is(err, services.ErrUnknownTeam), errors.Is(err, scoring.ErrMarginRange):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Errorf("[API] Failed to place bet: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to place bet")
	}
}
