package database

import (
	"time"
)

// User 用户目录条目
type User struct {
	UUID      string    `db:"uuid"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

// Event 赛事记录。event_type 为 series 时，score 字段是两队胜场数
type Event struct {
	ID         string    `db:"id"`
	Team1      string    `db:"team1"`
	Team2      string    `db:"team2"`
	Team1Score int       `db:"team1_score"`
	Team2Score int       `db:"team2_score"`
	Round      string    `db:"round"`
	EventType  string    `db:"event_type"`
	Status     string    `db:"status"`
	StartTime  time.Time `db:"start_time"`
	Season     *int      `db:"season"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Bet 预测记录。winner_team/win_margin 在用户提交前为 NULL，
// 计分字段在赛事完结计分后一次性写入
type Bet struct {
	ID                    int64     `db:"id"`
	UserID                string    `db:"user_id"`
	EventID               string    `db:"event_id"`
	WinnerTeam            *string   `db:"winner_team"`
	WinMargin             *int      `db:"win_margin"`
	Result                *string   `db:"result"`
	PointsGained          *int      `db:"points_gained"`
	PointsGainedWinMargin *int      `db:"points_gained_win_margin"`
	CloseTime             time.Time `db:"close_time"`
	CreatedAt             time.Time `db:"created_at"`
	UpdatedAt             time.Time `db:"updated_at"`
}

// BetLog 下注操作审计记录
type BetLog struct {
	ID           int64     `db:"id"`
	BetID        *int64    `db:"bet_id"`
	UserID       *string   `db:"user_id"`
	WinnerTeam   *string   `db:"winner_team"`
	WinMargin    *int      `db:"win_margin"`
	LogEventType string    `db:"log_event_type"`
	Status       string    `db:"status"`
	Error        *string   `db:"error"`
	Time         time.Time `db:"time"`
}

// FinalsBet 总冠军预测记录
type FinalsBet struct {
	ID           int64     `db:"id"`
	UserID       string    `db:"user_id"`
	FinalsBet    string    `db:"finals_bet"`
	PointsGained *int      `db:"points_gained"`
	Season       *int      `db:"season"`
	CreatedAt    time.Time `db:"created_at"`
}

// FinalsMvpBet FMVP 预测记录
type FinalsMvpBet struct {
	ID           int64     `db:"id"`
	UserID       string    `db:"user_id"`
	PlayerID     string    `db:"player_id"`
	PlayerName   string    `db:"player_name"`
	PointsGained *int      `db:"points_gained"`
	Season       *int      `db:"season"`
	CreatedAt    time.Time `db:"created_at"`
}
