package services

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"prediction-league-service/database"
	"prediction-league-service/logger"
	"prediction-league-service/scoring"
)

// BetStore 预测持久化
type BetStore struct {
	db *sql.DB
}

func NewBetStore(db *sql.DB) *BetStore {
	return &BetStore{db: db}
}

// EnsureBetsForEvent 为每个用户创建该赛事的空白预测行。
// 赛事同步时调用；已存在的行不动
func (s *BetStore) EnsureBetsForEvent(eventID string, closeTime time.Time) error {
	query := `
		INSERT INTO bets (user_id, event_id, close_time)
		SELECT uuid, $1, $2 FROM users
		ON CONFLICT (user_id, event_id) DO NOTHING
	`

	_, err := s.db.Exec(query, eventID, closeTime)
	if err != nil {
		return fmt.Errorf("failed to ensure bets: %w", err)
	}
	return nil
}

// CreateBet 创建单条空白预测行，已存在时返回现有行
func (s *BetStore) CreateBet(userID, eventID string, closeTime time.Time) (*database.Bet, error) {
	query := `
		INSERT INTO bets (user_id, event_id, close_time)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, event_id) DO NOTHING
	`

	if _, err := s.db.Exec(query, userID, eventID, closeTime); err != nil {
		return nil, fmt.Errorf("failed to create bet: %w", err)
	}

	return s.GetBet(userID, eventID)
}

// GetBet 查询单条预测
func (s *BetStore) GetBet(userID, eventID string) (*database.Bet, error) {
	query := `
		SELECT id, user_id, event_id, winner_team, win_margin, result,
		       points_gained, points_gained_win_margin, close_time, created_at, updated_at
		FROM bets
		WHERE user_id = $1 AND event_id = $2
	`

	var bet database.Bet
	err := s.db.QueryRow(query, userID, eventID).Scan(
		&bet.ID, &bet.UserID, &bet.EventID, &bet.WinnerTeam, &bet.WinMargin, &bet.Result,
		&bet.PointsGained, &bet.PointsGainedWinMargin, &bet.CloseTime, &bet.CreatedAt, &bet.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}

	return &bet, nil
}

// GetEventBets 查询某赛事的全部预测
func (s *BetStore) GetEventBets(eventID string) ([]database.Bet, error) {
	query := `
		SELECT id, user_id, event_id, winner_team, win_margin, result,
		       points_gained, points_gained_win_margin, close_time, created_at, updated_at
		FROM bets
		WHERE event_id = $1
	`

	return s.queryBets(query, eventID)
}

// GetUserBets 查询某用户的全部预测
func (s *BetStore) GetUserBets(userID string) ([]database.Bet, error) {
	query := `
		SELECT b.id, b.user_id, b.event_id, b.winner_team, b.win_margin, b.result,
		       b.points_gained, b.points_gained_win_margin, b.close_time, b.created_at, b.updated_at
		FROM bets b
		JOIN events e ON e.id = b.event_id
		WHERE b.user_id = $1
		ORDER BY e.start_time
	`

	return s.queryBets(query, userID)
}

func (s *BetStore) queryBets(query string, args ...interface{}) ([]database.Bet, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bets: %w", err)
	}
	defer rows.Close()

	var bets []database.Bet
	for rows.Next() {
		var bet database.Bet
		if err := rows.Scan(
			&bet.ID, &bet.UserID, &bet.EventID, &bet.WinnerTeam, &bet.WinMargin, &bet.Result,
			&bet.PointsGained, &bet.PointsGainedWinMargin, &bet.CloseTime, &bet.CreatedAt, &bet.UpdatedAt,
		); err != nil {
			return nil, err
		}
		bets = append(bets, bet)
	}

	return bets, rows.Err()
}

// UpdatePlacement 写入用户的预测内容
func (s *BetStore) UpdatePlacement(betID int64, winnerTeam string, winMargin int) error {
	query := `
		UPDATE bets SET winner_team = $2, win_margin = $3, updated_at = $4
		WHERE id = $1
	`

	_, err := s.db.Exec(query, betID, winnerTeam, winMargin, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update placement: %w", err)
	}
	return nil
}

// SaveEvaluations 批量写回计分结果。单个事务内完成，
// 部分写入会让积分对不上账
func (s *BetStore) SaveEvaluations(evals []scoring.Evaluation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE bets
		SET result = $2, points_gained = $3, points_gained_win_margin = $4, updated_at = $5
		WHERE id = $1
	`

	now := time.Now()
	for _, eval := range evals {
		betID, err := strconv.ParseInt(eval.BetID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid bet id %q: %w", eval.BetID, err)
		}
		if _, err := tx.Exec(query, betID, eval.Result, eval.PointsGained, eval.PointsGainedWinMargin, now); err != nil {
			return fmt.Errorf("failed to save evaluation for bet %s: %w", eval.BetID, err)
		}
	}

	return tx.Commit()
}

// ListScoredBets 拉取聚合快照用的预测记录(连同赛事轮次)
func (s *BetStore) ListScoredBets(season int) ([]scoring.ScoredBet, error) {
	query := `
		SELECT b.user_id, b.event_id, e.round, b.points_gained, b.points_gained_win_margin
		FROM bets b
		JOIN events e ON e.id = b.event_id
		WHERE $1 = 0 OR e.season = $1
	`

	rows, err := s.db.Query(query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to list scored bets: %w", err)
	}
	defer rows.Close()

	var bets []scoring.ScoredBet
	for rows.Next() {
		var bet scoring.ScoredBet
		var round string
		if err := rows.Scan(&bet.UserID, &bet.EventID, &round, &bet.PointsGained, &bet.PointsGainedWinMargin); err != nil {
			return nil, err
		}
		bet.Round = scoring.Round(round)
		bets = append(bets, bet)
	}

	return bets, rows.Err()
}

// LogAction 写入下注审计记录
func (s *BetStore) LogAction(betID *int64, userID, winnerTeam *string, winMargin *int, logEventType, status string, errMsg *string) {
	query := `
		INSERT INTO bets_log (bet_id, user_id, winner_team, win_margin, log_event_type, status, error, time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	// 审计写入失败不阻断主流程
	if _, err := s.db.Exec(query, betID, userID, winnerTeam, winMargin, logEventType, status, errMsg, time.Now()); err != nil {
		logger.Errorf("Failed to write bet log: %v", err)
	}
}
