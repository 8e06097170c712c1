package services

import (
	"errors"
	"fmt"
	"strconv"

	"prediction-league-service/database"
	"prediction-league-service/logger"
	"prediction-league-service/metrics"
	"prediction-league-service/scoring"
)

// Broadcaster 接口用于推送结算更新，避免与 web 包循环依赖
type Broadcaster interface {
	Broadcast(msg interface{})
}

var (
	// ErrAlreadyResolved 赛事已结算过。结算只跑一次，重复调用直接拒绝
	ErrAlreadyResolved = errors.New("event already resolved")
)

// SettlementService 结算服务: 赛事出结果后为全部预测计分并写回。
// 状态推进由数据库的条件更新保护，同一赛事至多结算一次
type SettlementService struct {
	events      *EventStore
	bets        *BetStore
	rules       scoring.Rules
	cache       *QueryCache
	broadcaster Broadcaster
	notifier    *TelegramNotifier
	leaderboard *LeaderboardService
}

func NewSettlementService(events *EventStore, bets *BetStore, rules scoring.Rules, cache *QueryCache, broadcaster Broadcaster, notifier *TelegramNotifier, leaderboard *LeaderboardService) *SettlementService {
	return &SettlementService{
		events:      events,
		bets:        bets,
		rules:       rules,
		cache:       cache,
		broadcaster: broadcaster,
		notifier:    notifier,
		leaderboard: leaderboard,
	}
}

// ApplyResult 记录最终比分并结算该赛事的全部预测。
// 先在内存里完成计分，再用条件更新占住赛事，最后一个事务写回分数；
// 计分失败时赛事保持未结算状态，不会留下半结算的数据
func (s *SettlementService) ApplyResult(eventID string, team1Score, team2Score int) error {
	ev, err := s.events.GetEvent(eventID)
	if err != nil {
		return err
	}
	if ev == nil {
		return fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	}
	if ev.Status == string(scoring.StatusResolved) {
		return fmt.Errorf("%w: %s", ErrAlreadyResolved, eventID)
	}

	dbBets, err := s.bets.GetEventBets(eventID)
	if err != nil {
		return err
	}

	scoringEvent := toScoringEvent(ev)
	scoringEvent.Team1Score = team1Score
	scoringEvent.Team2Score = team2Score
	scoringEvent.Status = scoring.StatusResolved

	evals, err := scoring.EvaluateEvent(s.rules, scoringEvent, toScoringBets(dbBets))
	if err != nil {
		return fmt.Errorf("failed to evaluate event %s: %w", eventID, err)
	}

	resolved, err := s.events.ResolveEvent(eventID, team1Score, team2Score)
	if err != nil {
		return err
	}
	if !resolved {
		return fmt.Errorf("%w: %s", ErrAlreadyResolved, eventID)
	}

	if err := s.bets.SaveEvaluations(evals); err != nil {
		return err
	}

	s.cache.Invalidate()
	metrics.EventsSettled.Inc()

	winner, _ := scoring.DecideWinner(scoringEvent)
	logger.Printf("Settled event %s: %s %d - %d %s, %d bets scored",
		eventID, ev.Team1, team1Score, team2Score, ev.Team2, len(evals))

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(map[string]interface{}{
			"type":        "settlement",
			"event_id":    eventID,
			"winner":      winner,
			"team1_score": team1Score,
			"team2_score": team2Score,
		})
		// 榜单已变化，提示客户端重新拉取
		s.broadcaster.Broadcast(map[string]interface{}{
			"type": "leaderboard",
		})
	}

	s.notifier.NotifyEventSettled(ev.Team1, ev.Team2, team1Score, team2Score, winner, s.topRows(ev))

	return nil
}

// topRows 结算后的前三名，用于群通知。拿不到榜单时通知照发，只是没有榜单部分
func (s *SettlementService) topRows(ev *database.Event) []scoring.LeaderboardRow {
	if s.leaderboard == nil {
		return nil
	}

	season := 0
	if ev.Season != nil {
		season = *ev.Season
	}

	rows, err := s.leaderboard.Leaderboard(season)
	if err != nil {
		logger.Errorf("Failed to build leaderboard for settlement notification: %v", err)
		return nil
	}
	if len(rows) > 3 {
		rows = rows[:3]
	}
	return rows
}

func toScoringEvent(ev *database.Event) scoring.Event {
	return scoring.Event{
		ID:         ev.ID,
		Team1:      ev.Team1,
		Team2:      ev.Team2,
		Team1Score: ev.Team1Score,
		Team2Score: ev.Team2Score,
		Round:      scoring.Round(ev.Round),
		EventType:  scoring.EventType(ev.EventType),
		Status:     scoring.EventStatus(ev.Status),
		StartTime:  ev.StartTime,
	}
}

func toScoringBets(dbBets []database.Bet) []scoring.Bet {
	bets := make([]scoring.Bet, 0, len(dbBets))
	for _, b := range dbBets {
		bets = append(bets, scoring.Bet{
			ID:         strconv.FormatInt(b.ID, 10),
			UserID:     b.UserID,
			EventID:    b.EventID,
			WinnerTeam: b.WinnerTeam,
			WinMargin:  b.WinMargin,
		})
	}
	return bets
}
