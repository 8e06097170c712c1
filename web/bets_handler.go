package web

import (
	"net/http"
	"time"

	"prediction-league-service/database"
	"prediction-league-service/logger"
)

// BetResponse 预测 JSON 表示
type BetResponse struct {
	ID                    int64     `json:"id"`
	UserID                string    `json:"userId"`
	EventID               string    `json:"eventId"`
	WinnerTeam            *string   `json:"winnerTeam"`
	WinMargin             *int      `json:"winMargin"`
	Result                *string   `json:"result"`
	PointsGained          *int      `json:"pointsGained"`
	PointsGainedWinMargin *int      `json:"pointsGainedWinMargin"`
	CloseTime             time.Time `json:"closeTime"`
}

func toBetResponse(bet database.Bet) BetResponse {
	return BetResponse{
		ID:                    bet.ID,
		UserID:                bet.UserID,
		EventID:               bet.EventID,
		WinnerTeam:            bet.WinnerTeam,
		WinMargin:             bet.WinMargin,
		Result:                bet.Result,
		PointsGained:          bet.PointsGained,
		PointsGainedWinMargin: bet.PointsGainedWinMargin,
		CloseTime:             bet.CloseTime,
	}
}

// handleGetUserBets 获取某用户的全部预测
// GET /api/bets?user_id=xxx
func (s *Server) handleGetUserBets(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user_id parameter")
		return
	}

	bets, err := s.bets.GetUserBets(userID)
	if err != nil {
		logger.Errorf("[API] Failed to get bets for user %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "failed to get bets")
		return
	}

	response := make([]BetResponse, 0, len(bets))
	for _, bet := range bets {
		response = append(response, toBetResponse(bet))
	}

	writeJSON(w, http.StatusOK, response)
}

// CompareRow 对比视图的单行: 某用户对某赛事的预测
type CompareRow struct {
	UserID                string  `json:"userId"`
	Name                  string  `json:"name"`
	WinnerTeam            *string `json:"winnerTeam"`
	WinMargin             *int    `json:"winMargin"`
	Result                *string `json:"result"`
	PointsGained          *int    `json:"pointsGained"`
	PointsGainedWinMargin *int    `json:"pointsGainedWinMargin"`
}

// handleCompareBets 获取所有用户对某赛事的预测。
// 开赛前不可见，避免互相抄作业
// GET /api/bets/compare?event_id=xxx
func (s *Server) handleCompareBets(w http.ResponseWriter, r *http.Request) {
	eventID := r.URL.Query().Get("event_id")
	if eventID == "" {
		writeError(w, http.StatusBadRequest, "missing event_id parameter")
		return
	}

	ev, err := s.events.GetEvent(eventID)
	if err != nil {
		logger.Errorf("[API] Failed to get event %s: %v", eventID, err)
		writeError(w, http.StatusInternalServerError, "failed to get event")
		return
	}
	if ev == nil {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	if time.Now().Before(ev.StartTime) {
		writeError(w, http.StatusForbidden, "bets are hidden until the event starts")
		return
	}

	bets, err := s.bets.GetEventBets(eventID)
	if err != nil {
		logger.Errorf("[API] Failed to get bets for event %s: %v", eventID, err)
		writeError(w, http.StatusInternalServerError, "failed to get bets")
		return
	}

	users, err := s.users.ListUsers()
	if err != nil {
		logger.Errorf("[API] Failed to list users: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	rows := make([]CompareRow, 0, len(bets))
	for _, bet := range bets {
		name, ok := names[bet.UserID]
		if !ok {
			// 孤儿记录，跳过
			continue
		}
		rows = append(rows, CompareRow{
			UserID:                bet.UserID,
			Name:                  name,
			WinnerTeam:            bet.WinnerTeam,
			WinMargin:             bet.WinMargin,
			Result:                bet.Result,
			PointsGained:          bet.PointsGained,
			PointsGainedWinMargin: bet.PointsGainedWinMargin,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"event": toEventResponse(*ev),
		"bets":  rows,
	})
}
