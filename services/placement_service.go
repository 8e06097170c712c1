package services

import (
	"errors"
	"fmt"
	"time"

	"prediction-league-service/database"
	"prediction-league-service/metrics"
	"prediction-league-service/scoring"
)

// 审计日志事件类型
const (
	logEventInteractionStart  = "interaction_start"
	logEventPlacementComplete = "placement_complete"
	logEventValidationFailure = "validation_failure"
)

var (
	// ErrEventNotFound 赛事不存在
	ErrEventNotFound = errors.New("event not found")

	// ErrBettingClosed 赛事已开始，下注窗口关闭
	ErrBettingClosed = errors.New("betting closed")

	// ErrUnknownTeam 预测的球队不在对阵双方之中
	ErrUnknownTeam = errors.New("team is not playing in this event")
)

// PlacementService 下注入口。所有校验在写库前完成：
// 截止时间、球队合法性、分差/场次范围
type PlacementService struct {
	events *EventStore
	bets   *BetStore
	cache  *QueryCache
}

func NewPlacementService(events *EventStore, bets *BetStore, cache *QueryCache) *PlacementService {
	return &PlacementService{events: events, bets: bets, cache: cache}
}

// PlaceBet 提交或更新预测。赛事开始后拒绝，已有预测在截止前可覆盖。
// 近乎同时的两次提交按最后写入生效
func (s *PlacementService) PlaceBet(userID, eventID, winnerTeam string, winMargin int) (*database.Bet, error) {
	s.bets.LogAction(nil, &userID, &winnerTeam, &winMargin, logEventInteractionStart, "started", nil)

	ev, err := s.events.GetEvent(eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		s.logFailure(nil, userID, winnerTeam, winMargin, "event not found")
		metrics.PlacementsRejected.WithLabelValues("event_not_found").Inc()
		return nil, fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	}

	if !time.Now().Before(ev.StartTime) {
		s.logFailure(nil, userID, winnerTeam, winMargin, "betting deadline passed")
		metrics.PlacementsRejected.WithLabelValues("deadline").Inc()
		return nil, fmt.Errorf("%w: event %s started at %s", ErrBettingClosed, eventID, ev.StartTime.Format(time.RFC3339))
	}

	if winnerTeam != ev.Team1 && winnerTeam != ev.Team2 {
		s.logFailure(nil, userID, winnerTeam, winMargin, "unknown team")
		metrics.PlacementsRejected.WithLabelValues("unknown_team").Inc()
		return nil, fmt.Errorf("%w: %s", ErrUnknownTeam, winnerTeam)
	}

	if err := scoring.ValidateMargin(scoring.EventType(ev.EventType), winMargin); err != nil {
		s.logFailure(nil, userID, winnerTeam, winMargin, err.Error())
		metrics.PlacementsRejected.WithLabelValues("margin_range").Inc()
		return nil, err
	}

	bet, err := s.bets.CreateBet(userID, eventID, ev.StartTime)
	if err != nil {
		return nil, err
	}

	if err := s.bets.UpdatePlacement(bet.ID, winnerTeam, winMargin); err != nil {
		return nil, err
	}

	s.bets.LogAction(&bet.ID, &userID, &winnerTeam, &winMargin, logEventPlacementComplete, "completed", nil)
	metrics.BetsPlaced.Inc()
	s.cache.Invalidate()

	return s.bets.GetBet(userID, eventID)
}

func (s *PlacementService) logFailure(betID *int64, userID, winnerTeam string, winMargin int, reason string) {
	s.bets.LogAction(betID, &userID, &winnerTeam, &winMargin, logEventValidationFailure, "failed", &reason)
}
