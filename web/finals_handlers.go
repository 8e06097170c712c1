package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"prediction-league-service/database"
	"prediction-league-service/logger"
	"prediction-league-service/services"
)

// FinalsBetResponse 总冠军预测 JSON 表示
type FinalsBetResponse struct {
	UserID       string    `json:"userId"`
	FinalsBet    string    `json:"finalsBet"`
	PointsGained *int      `json:"pointsGained"`
	CreatedAt    time.Time `json:"created_at"`
}

// MvpBetResponse FMVP 预测 JSON 表示
type MvpBetResponse struct {
	UserID       string    `json:"userId"`
	PlayerID     string    `json:"playerId"`
	PlayerName   string    `json:"playerName"`
	PointsGained *int      `json:"pointsGained"`
	CreatedAt    time.Time `json:"created_at"`
}

func toFinalsBetResponse(bet *database.FinalsBet) *FinalsBetResponse {
	if bet == nil {
		return nil
	}
	return &FinalsBetResponse{
		UserID:       bet.UserID,
		FinalsBet:    bet.FinalsBet,
		PointsGained: bet.PointsGained,
		CreatedAt:    bet.CreatedAt,
	}
}

func toMvpBetResponse(bet *database.FinalsMvpBet) *MvpBetResponse {
	if bet == nil {
		return nil
	}
	return &MvpBetResponse{
		UserID:       bet.UserID,
		PlayerID:     bet.PlayerID,
		PlayerName:   bet.PlayerName,
		PointsGained: bet.PointsGained,
		CreatedAt:    bet.CreatedAt,
	}
}

// handleGetFinalsBet 获取用户的总冠军预测
// GET /api/finals-bet?user_id=xxx
func (s *Server) handleGetFinalsBet(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user_id parameter")
		return
	}

	bet, err := s.season.FinalsPick(userID)
	if err != nil {
		logger.Errorf("[API] Failed to get finals bet: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get finals bet")
		return
	}

	// 未预测不算错误，返回 null
	writeJSON(w, http.StatusOK, toFinalsBetResponse(bet))
}

// handlePlaceFinalsBet 提交总冠军预测
// POST /api/finals-bet
func (s *Server) handlePlaceFinalsBet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"userId"`
		TeamName string `json:"teamName"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.TeamName == "" {
		writeError(w, http.StatusBadRequest, "missing required fields: userId and teamName")
		return
	}

	bet, err := s.season.PlaceFinalsPick(req.UserID, req.TeamName)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, toFinalsBetResponse(bet))
	case errors.Is(err, services.ErrPickDeadlinePassed):
		writeError(w, http.StatusForbidden, "the deadline for placing finals bets has passed")
	default:
		logger.Errorf("[API] Failed to place finals bet: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to place finals bet")
	}
}

// handleGetMvpBet 获取用户的 FMVP 预测
// GET /api/finals-mvp-bet?user_id=xxx
func (s *Server) handleGetMvpBet(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user_id parameter")
		return
	}

	bet, err := s.season.MvpPick(userID)
	if err != nil {
		logger.Errorf("[API] Failed to get mvp bet: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get mvp bet")
		return
	}

	writeJSON(w, http.StatusOK, toMvpBetResponse(bet))
}

// handlePlaceMvpBet 提交 FMVP 预测
// POST /api/finals-mvp-bet
func (s *Server) handlePlaceMvpBet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID     string `json:"userId"`
		PlayerID   string `json:"playerId"`
		PlayerName string `json:"playerName"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.PlayerID == "" || req.PlayerName == "" {
		writeError(w, http.StatusBadRequest, "missing required fields: userId, playerId and playerName")
		return
	}

	bet, err := s.season.PlaceMvpPick(req.UserID, req.PlayerID, req.PlayerName)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, toMvpBetResponse(bet))
	case errors.Is(err, services.ErrPickDeadlinePassed):
		writeError(w, http.StatusForbidden, "the deadline for placing finals MVP bets has passed")
	default:
		logger.Errorf("[API] Failed to place mvp bet: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to place mvp bet")
	}
}
