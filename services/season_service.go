package services

import (
	"errors"
	"fmt"
	"time"

	"prediction-league-service/config"
	"prediction-league-service/database"
	"prediction-league-service/logger"
	"prediction-league-service/scoring"
)

var (
	// ErrPickDeadlinePassed 长线预测的提交窗口已关闭
	ErrPickDeadlinePassed = errors.New("pick deadline has passed")
)

// SeasonService 赛季长线预测(总冠军/FMVP)与赛季收官。
// 每个用户每个赛季各一条预测，截止前重复提交覆盖旧预测
type SeasonService struct {
	specialBets *SpecialBetStore
	cache       *QueryCache
	notifier    *TelegramNotifier
	rules       scoring.Rules

	season         int
	finalsDeadline time.Time
	mvpDeadline    time.Time
}

func NewSeasonService(cfg *config.Config, specialBets *SpecialBetStore, rules scoring.Rules, cache *QueryCache, notifier *TelegramNotifier) *SeasonService {
	return &SeasonService{
		specialBets:    specialBets,
		cache:          cache,
		notifier:       notifier,
		rules:          rules,
		season:         cfg.Season,
		finalsDeadline: cfg.FinalsPickDeadline,
		mvpDeadline:    cfg.MvpPickDeadline,
	}
}

// FinalsPick 查询用户的总冠军预测，没有时返回 nil
func (s *SeasonService) FinalsPick(userID string) (*database.FinalsBet, error) {
	return s.specialBets.GetFinalsBet(userID, s.season)
}

// PlaceFinalsPick 提交总冠军预测
func (s *SeasonService) PlaceFinalsPick(userID, team string) (*database.FinalsBet, error) {
	if !time.Now().Before(s.finalsDeadline) {
		return nil, fmt.Errorf("%w: finals picks closed at %s", ErrPickDeadlinePassed, s.finalsDeadline.Format(time.RFC3339))
	}

	if err := s.specialBets.UpsertFinalsBet(userID, team, s.season); err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return s.specialBets.GetFinalsBet(userID, s.season)
}

// MvpPick 查询用户的 FMVP 预测，没有时返回 nil
func (s *SeasonService) MvpPick(userID string) (*database.FinalsMvpBet, error) {
	return s.specialBets.GetMvpBet(userID, s.season)
}

// PlaceMvpPick 提交 FMVP 预测
func (s *SeasonService) PlaceMvpPick(userID, playerID, playerName string) (*database.FinalsMvpBet, error) {
	if !time.Now().Before(s.mvpDeadline) {
		return nil, fmt.Errorf("%w: mvp picks closed at %s", ErrPickDeadlinePassed, s.mvpDeadline.Format(time.RFC3339))
	}

	if err := s.specialBets.UpsertMvpBet(userID, playerID, playerName, s.season); err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return s.specialBets.GetMvpBet(userID, s.season)
}

// ConcludeSeason 赛季收官: 给猜中总冠军和 FMVP 的用户记分
func (s *SeasonService) ConcludeSeason(champion, mvpPlayerID string) error {
	if err := s.specialBets.AwardFinalsPoints(champion, s.rules.SpecialBets.FinalsChampion, s.season); err != nil {
		return err
	}
	if err := s.specialBets.AwardMvpPoints(mvpPlayerID, s.rules.SpecialBets.FinalsMvp, s.season); err != nil {
		return err
	}

	s.cache.Invalidate()
	logger.Printf("Season %d concluded: champion=%s, mvp=%s", s.season, champion, mvpPlayerID)
	s.notifier.NotifySeasonConcluded(champion)

	return nil
}
