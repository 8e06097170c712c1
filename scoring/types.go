package scoring

import (
	"time"
)

// Round 季后赛轮次
type Round string

const (
	RoundPlayIn     Round = "playin"
	RoundFirst      Round = "firstRound"
	RoundSecond     Round = "secondRound"
	RoundConference Round = "conference"
	RoundFinals     Round = "finals"
)

// Rounds 所有合法轮次，按时间顺序
var Rounds = []Round{RoundPlayIn, RoundFirst, RoundSecond, RoundConference, RoundFinals}

// Valid 判断轮次是否合法
func (r Round) Valid() bool {
	for _, known := range Rounds {
		if r == known {
			return true
		}
	}
	return false
}

// EventType 赛事类型: 单场比赛按分差计分，系列赛按总场次计分
type EventType string

const (
	EventGame   EventType = "game"
	EventSeries EventType = "series"
	// EventPlayIn 附加赛单场，与 game 使用同一套计分档位
	EventPlayIn EventType = "playin"
)

// IsSeries 是否按系列赛档位计分
func (t EventType) IsSeries() bool {
	return t == EventSeries
}

// EventStatus 赛事生命周期状态
type EventStatus string

const (
	StatusScheduled EventStatus = "scheduled"
	StatusLive      EventStatus = "live"
	StatusResolved  EventStatus = "resolved"
)

// Event 一场比赛或其所属系列赛的最终状态快照。
// eventType 为 series 时，Team1Score/Team2Score 是两队各自赢下的场次数。
type Event struct {
	ID         string
	Team1      string
	Team2      string
	Team1Score int
	Team2Score int
	Round      Round
	EventType  EventType
	Status     EventStatus
	StartTime  time.Time
}

// Bet 单个用户对单场赛事的预测。
// WinnerTeam/WinMargin 在用户下注前为 nil，且总是同时设置。
type Bet struct {
	ID         string
	UserID     string
	EventID    string
	WinnerTeam *string
	WinMargin  *int
}

// Placed 判断预测是否已提交
func (b Bet) Placed() bool {
	return b.WinnerTeam != nil && b.WinMargin != nil
}

// Evaluation 单条预测的计分结果
type Evaluation struct {
	BetID                 string
	UserID                string
	Result                string // 实际获胜球队
	PointsGained          int    // 猜对胜者档位得分
	PointsGainedWinMargin int    // 猜对分差/场次档位得分
}
