package web

import (
	"encoding/json"
	"net/http"

	"prediction-league-service/logger"
)

// handleUpsertUser 写入用户目录条目(管理端)。
// 身份认证在网关完成，这里只同步展示信息
// POST /api/admin/users
func (s *Server) handleUpsertUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UUID  string `json:"uuid"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UUID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "missing required fields: uuid and name")
		return
	}

	if err := s.users.UpsertUser(req.UUID, req.Name, req.Email); err != nil {
		logger.Errorf("[API] Failed to upsert user: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to upsert user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "uuid": req.UUID})
}

// handleConcludeSeason 赛季收官(管理端): 录入总冠军和 FMVP，发放长线预测积分
// POST /api/admin/season/conclude
func (s *Server) handleConcludeSeason(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Champion    string `json:"champion"`
		MvpPlayerID string `json:"mvpPlayerId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Champion == "" || req.MvpPlayerID == "" {
		writeError(w, http.StatusBadRequest, "missing required fields: champion and mvpPlayerId")
		return
	}

	if err := s.season.ConcludeSeason(req.Champion, req.MvpPlayerID); err != nil {
		logger.Errorf("[API] Failed to conclude season: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to conclude season")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
