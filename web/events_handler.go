package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"prediction-league-service/database"
	"prediction-league-service/logger"
	"prediction-league-service/scoring"
	"prediction-league-service/services"
)

// EventResponse 赛事 JSON 表示
type EventResponse struct {
	ID         string    `json:"id"`
	Team1      string    `json:"team1"`
	Team2      string    `json:"team2"`
	Team1Score int       `json:"team1Score"`
	Team2Score int       `json:"team2Score"`
	Round      string    `json:"round"`
	EventType  string    `json:"eventType"`
	Status     string    `json:"status"`
	StartTime  time.Time `json:"startTime"`
	Season     *int      `json:"season,omitempty"`
}

func toEventResponse(ev database.Event) EventResponse {
	return EventResponse{
		ID:         ev.ID,
		Team1:      ev.Team1,
		Team2:      ev.Team2,
		Team1Score: ev.Team1Score,
		Team2Score: ev.Team2Score,
		Round:      ev.Round,
		EventType:  ev.EventType,
		Status:     ev.Status,
		StartTime:  ev.StartTime,
		Season:     ev.Season,
	}
}

// handleGetEvents 获取赛事列表
// GET /api/events?round=firstRound&status=scheduled&season=2026
func (s *Server) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	round := query.Get("round")
	if round != "" && !scoring.Round(round).Valid() {
		writeError(w, http.StatusBadRequest, "invalid round parameter")
		return
	}

	season, _ := strconv.Atoi(query.Get("season"))

	events, err := s.events.ListEvents(round, query.Get("status"), season)
	if err != nil {
		logger.Errorf("[API] Failed to list events: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	response := make([]EventResponse, 0, len(events))
	for _, ev := range events {
		response = append(response, toEventResponse(ev))
	}

	writeJSON(w, http.StatusOK, response)
}

// handleUpsertEvent 同步一场赛事(管理端)
// POST /api/admin/events
func (s *Server) handleUpsertEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID        string    `json:"id"`
		Team1     string    `json:"team1"`
		Team2     string    `json:"team2"`
		Round     string    `json:"round"`
		EventType string    `json:"eventType"`
		Status    string    `json:"status"`
		StartTime time.Time `json:"startTime"`
		Season    *int      `json:"season"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ID == "" || req.Team1 == "" || req.Team2 == "" || req.StartTime.IsZero() {
		writeError(w, http.StatusBadRequest, "missing required fields: id, team1, team2, startTime")
		return
	}
	if !scoring.Round(req.Round).Valid() {
		writeError(w, http.StatusBadRequest, "invalid round")
		return
	}
	switch scoring.EventType(req.EventType) {
	case scoring.EventGame, scoring.EventSeries, scoring.EventPlayIn:
	default:
		writeError(w, http.StatusBadRequest, "invalid eventType")
		return
	}
	if req.Status == "" {
		req.Status = string(scoring.StatusScheduled)
	}
	// NULL 赛季会从按赛季过滤的查询里消失，缺省补当前赛季
	req.Season = defaultSeason(req.Season, s.config.Season)

	ev := &database.Event{
		ID:        req.ID,
		Team1:     req.Team1,
		Team2:     req.Team2,
		Round:     req.Round,
		EventType: req.EventType,
		Status:    req.Status,
		StartTime: req.StartTime,
		Season:    req.Season,
	}

	if err := s.events.UpsertEvent(ev); err != nil {
		logger.Errorf("[API] Failed to upsert event: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to upsert event")
		return
	}

	// 为每个用户准备空白预测行
	if err := s.bets.EnsureBetsForEvent(req.ID, req.StartTime); err != nil {
		logger.Errorf("[API] Failed to ensure bets for event %s: %v", req.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to prepare bets")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "id": req.ID})
}

// defaultSeason 补全缺失的赛季标记
func defaultSeason(season *int, fallback int) *int {
	if season != nil {
		return season
	}
	return &fallback
}

// handleEventResult 录入最终比分并触发结算(管理端)
// POST /api/admin/events/{event_id}/result
func (s *Server) handleEventResult(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["event_id"]

	var req struct {
		Team1Score int `json:"team1Score"`
		Team2Score int `json:"team2Score"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.settlement.ApplyResult(eventID, req.Team1Score, req.Team2Score)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "event_id": eventID})
	case errors.Is(err, services.ErrEventNotFound):
		writeError(w, http.StatusNotFound, "event not found")
	case errors.Is(err, services.ErrAlreadyResolved):
		writeError(w, http.StatusConflict, "event already resolved")
	case errors.Is(err, scoring.ErrTiedScore):
		writeError(w, http.StatusBadRequest, "tied score is not a valid playoff result")
	default:
		logger.Errorf("[API] Failed to settle event %s: %v", eventID, err)
		writeError(w, http.StatusInternalServerError, "failed to settle event")
	}
}
