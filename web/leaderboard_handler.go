package web

import (
	"net/http"
	"strconv"

	"prediction-league-service/logger"
	"prediction-league-service/scoring"
)

// handleGetLeaderboard 获取排行榜
// GET /api/leaderboard?season=2026
func (s *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	season := s.seasonParam(r)

	rows, err := s.leaderboard.Leaderboard(season)
	if err != nil {
		logger.Errorf("[API] Failed to build leaderboard: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to build leaderboard")
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// handleGetStats 获取按轮次过滤的用户统计
// GET /api/stats?view=all&season=2026
func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	view := scoring.StatsView(r.URL.Query().Get("view"))
	if view == "" {
		writeError(w, http.StatusBadRequest, "missing required query parameter: view")
		return
	}
	if !view.Valid() {
		writeError(w, http.StatusBadRequest, "invalid view parameter")
		return
	}

	season := s.seasonParam(r)

	stats, err := s.leaderboard.RoundStats(season, view)
	if err != nil {
		logger.Errorf("[API] Failed to build stats: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to build stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"users":     stats,
		"roundType": view,
	})
}

// seasonParam 解析 season 参数，缺省用当前赛季
func (s *Server) seasonParam(r *http.Request) int {
	season, _ := strconv.Atoi(r.URL.Query().Get("season"))
	if season == 0 {
		season = s.config.Season
	}
	return season
}
