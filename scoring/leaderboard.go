package scoring

import (
	"sort"
)

// User 用户目录条目
type User struct {
	ID    string
	Name  string
	Email string
}

// ScoredBet 已计分的预测记录，由聚合器消费。
// PointsGained 为 nil 表示该预测尚未计分(赛事未完结或未提交)。
type ScoredBet struct {
	UserID                string
	EventID               string
	Round                 Round
	PointsGained          *int
	PointsGainedWinMargin *int
}

// FinalsPick 总冠军预测
type FinalsPick struct {
	UserID       string
	Team         string
	PointsGained *int
}

// MvpPick FMVP 预测
type MvpPick struct {
	UserID       string
	PlayerID     string
	PlayerName   string
	PointsGained *int
}

// Snapshot 聚合器的输入: 某一时刻全部相关记录的不可变快照。
// 聚合器不持有任何隐藏状态，同一快照多次聚合结果一致。
type Snapshot struct {
	Bets        []ScoredBet
	FinalsPicks []FinalsPick
	MvpPicks    []MvpPick
	Users       []User
}

// LeaderboardRow 排行榜单行
type LeaderboardRow struct {
	UserID            string `json:"userId"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Score             int    `json:"score"`
	Rank              int    `json:"rank"`
	FinalsBet         string `json:"finalsBet,omitempty"`
	FinalsMvpBet      string `json:"finalsMvpBet,omitempty"`
	FinalsMvpPlayerID string `json:"finalsMvpPlayerId,omitempty"`
}

// BuildLeaderboard 将快照折叠为排行榜。
//
// 做过任意一种预测(普通/总冠军/FMVP)的用户都会上榜，即使总分为 0。
// 指向未知用户的记录直接跳过，单条坏记录不应拖垮整个榜单。
// 排序: 总分降序，同分按用户 ID 升序保证结果可复现；名次为排序后的
// 位置序号(并列不共享名次)。
func BuildLeaderboard(snap Snapshot) []LeaderboardRow {
	users := make(map[string]User, len(snap.Users))
	for _, u := range snap.Users {
		users[u.ID] = u
	}

	scores := make(map[string]int)

	for _, bet := range snap.Bets {
		if _, ok := users[bet.UserID]; !ok {
			continue
		}
		if bet.PointsGained == nil {
			continue
		}
		points := *bet.PointsGained
		if bet.PointsGainedWinMargin != nil {
			points += *bet.PointsGainedWinMargin
		}
		scores[bet.UserID] += points
	}

	finalsPicks := make(map[string]FinalsPick)
	for _, pick := range snap.FinalsPicks {
		if _, ok := users[pick.UserID]; !ok {
			continue
		}
		finalsPicks[pick.UserID] = pick
		if pick.PointsGained != nil {
			scores[pick.UserID] += *pick.PointsGained
		} else if _, ok := scores[pick.UserID]; !ok {
			scores[pick.UserID] = 0
		}
	}

	mvpPicks := make(map[string]MvpPick)
	for _, pick := range snap.MvpPicks {
		if _, ok := users[pick.UserID]; !ok {
			continue
		}
		mvpPicks[pick.UserID] = pick
		if pick.PointsGained != nil {
			scores[pick.UserID] += *pick.PointsGained
		} else if _, ok := scores[pick.UserID]; !ok {
			scores[pick.UserID] = 0
		}
	}

	rows := make([]LeaderboardRow, 0, len(scores))
	for userID, score := range scores {
		user := users[userID]
		row := LeaderboardRow{
			UserID: userID,
			Name:   user.Name,
			Email:  user.Email,
			Score:  score,
		}
		if pick, ok := finalsPicks[userID]; ok {
			row.FinalsBet = pick.Team
		}
		if pick, ok := mvpPicks[userID]; ok {
			row.FinalsMvpBet = pick.PlayerName
			row.FinalsMvpPlayerID = pick.PlayerID
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].UserID < rows[j].UserID
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}

	return rows
}
