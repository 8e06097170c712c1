package scoring

import (
	"fmt"
	"math"
	"sort"
)

// StatsView 统计视图: 单个轮次或 "all"
type StatsView string

// ViewAll 全部轮次
const ViewAll StatsView = "all"

// Valid 判断视图参数是否合法
func (v StatsView) Valid() bool {
	return v == ViewAll || Round(v).Valid()
}

// UserStats 单个用户在某个视图下的统计
type UserStats struct {
	UserID                       string `json:"userId"`
	UserName                     string `json:"userName"`
	UserEmail                    string `json:"userEmail"`
	TotalPointsGain              int    `json:"totalPointsGain"`
	CorrectPredictions           int    `json:"correctPredictions"`
	CorrectPredictionsWithMargin int    `json:"correctPredictionsWithMargin"`
	TotalBets                    int    `json:"totalBets"`
	PredictionAccuracy           int    `json:"predictionAccuracy"`
	MarginAccuracy               int    `json:"marginAccuracy"`
	Rank                         int    `json:"rank"`
}

// BuildRoundStats 按轮次视图统计每个用户的命中情况。
//
// 只统计已计分的预测(PointsGained 非 nil)；百分比做了除零保护，
// 没有预测或没有命中时返回 0 而不是 NaN。
func BuildRoundStats(snap Snapshot, view StatsView) ([]UserStats, error) {
	if !view.Valid() {
		return nil, fmt.Errorf("invalid stats view: %s", view)
	}

	users := make(map[string]User, len(snap.Users))
	for _, u := range snap.Users {
		users[u.ID] = u
	}

	statsByUser := make(map[string]*UserStats)

	for _, bet := range snap.Bets {
		if bet.PointsGained == nil {
			continue
		}
		if view != ViewAll && bet.Round != Round(view) {
			continue
		}
		user, ok := users[bet.UserID]
		if !ok {
			continue
		}

		stats, ok := statsByUser[bet.UserID]
		if !ok {
			stats = &UserStats{
				UserID:    bet.UserID,
				UserName:  user.Name,
				UserEmail: user.Email,
			}
			statsByUser[bet.UserID] = stats
		}

		stats.TotalBets++

		points := *bet.PointsGained
		marginPoints := 0
		if bet.PointsGainedWinMargin != nil {
			marginPoints = *bet.PointsGainedWinMargin
		}
		stats.TotalPointsGain += points + marginPoints

		if points > 0 {
			stats.CorrectPredictions++
			if marginPoints > 0 {
				stats.CorrectPredictionsWithMargin++
			}
		}
	}

	result := make([]UserStats, 0, len(statsByUser))
	for _, stats := range statsByUser {
		if stats.TotalBets > 0 {
			stats.PredictionAccuracy = int(math.Round(float64(stats.CorrectPredictions) / float64(stats.TotalBets) * 100))
		}
		if stats.CorrectPredictions > 0 {
			stats.MarginAccuracy = int(math.Round(float64(stats.CorrectPredictionsWithMargin) / float64(stats.CorrectPredictions) * 100))
		}
		result = append(result, *stats)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalPointsGain != result[j].TotalPointsGain {
			return result[i].TotalPointsGain > result[j].TotalPointsGain
		}
		return result[i].UserID < result[j].UserID
	})

	for i := range result {
		result[i].Rank = i + 1
	}

	return result, nil
}
