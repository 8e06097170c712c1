package services

import (
	"fmt"

	"prediction-league-service/scoring"
)

// LeaderboardService 排行榜/统计查询。每次从库里拉一份不可变快照
// 交给纯聚合函数，结果进缓存
type LeaderboardService struct {
	bets        *BetStore
	users       *UserStore
	specialBets *SpecialBetStore
	cache       *QueryCache
}

func NewLeaderboardService(bets *BetStore, users *UserStore, specialBets *SpecialBetStore, cache *QueryCache) *LeaderboardService {
	return &LeaderboardService{
		bets:        bets,
		users:       users,
		specialBets: specialBets,
		cache:       cache,
	}
}

// Leaderboard 计算某赛季的排行榜
func (s *LeaderboardService) Leaderboard(season int) ([]scoring.LeaderboardRow, error) {
	cacheKey := fmt.Sprintf("leaderboard:%d", season)
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.([]scoring.LeaderboardRow), nil
	}

	snap, err := s.buildSnapshot(season)
	if err != nil {
		return nil, err
	}

	rows := scoring.BuildLeaderboard(snap)
	s.cache.Set(cacheKey, rows)

	return rows, nil
}

// RoundStats 计算某赛季按轮次过滤的用户统计
func (s *LeaderboardService) RoundStats(season int, view scoring.StatsView) ([]scoring.UserStats, error) {
	cacheKey := fmt.Sprintf("stats:%d:%s", season, view)
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.([]scoring.UserStats), nil
	}

	snap, err := s.buildSnapshot(season)
	if err != nil {
		return nil, err
	}

	stats, err := scoring.BuildRoundStats(snap, view)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cacheKey, stats)

	return stats, nil
}

func (s *LeaderboardService) buildSnapshot(season int) (scoring.Snapshot, error) {
	bets, err := s.bets.ListScoredBets(season)
	if err != nil {
		return scoring.Snapshot{}, err
	}

	finalsPicks, err := s.specialBets.ListFinalsBets(season)
	if err != nil {
		return scoring.Snapshot{}, err
	}

	mvpPicks, err := s.specialBets.ListMvpBets(season)
	if err != nil {
		return scoring.Snapshot{}, err
	}

	users, err := s.users.ListUsers()
	if err != nil {
		return scoring.Snapshot{}, err
	}

	return scoring.Snapshot{
		Bets:        bets,
		FinalsPicks: finalsPicks,
		MvpPicks:    mvpPicks,
		Users:       users,
	}, nil
}
