package services

import (
	"database/sql"
	"fmt"
	"time"

	"prediction-league-service/database"
	"prediction-league-service/scoring"
)

// SpecialBetStore 赛季长线预测(总冠军/FMVP)持久化
type SpecialBetStore struct {
	db *sql.DB
}

func NewSpecialBetStore(db *sql.DB) *SpecialBetStore {
	return &SpecialBetStore{db: db}
}

// GetFinalsBet 查询用户的总冠军预测
func (s *SpecialBetStore) GetFinalsBet(userID string, season int) (*database.FinalsBet, error) {
	query := `
		SELECT id, user_id, finals_bet, points_gained, season, created_at
		FROM finals_bet
		WHERE user_id = $1 AND season = $2
	`

	var bet database.FinalsBet
	err := s.db.QueryRow(query, userID, season).Scan(
		&bet.ID, &bet.UserID, &bet.FinalsBet, &bet.PointsGained, &bet.Season, &bet.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get finals bet: %w", err)
	}

	return &bet, nil
}

// UpsertFinalsBet 写入总冠军预测。截止前重复提交直接覆盖，不保留历史
func (s *SpecialBetStore) UpsertFinalsBet(userID, team string, season int) error {
	query := `
		INSERT INTO finals_bet (user_id, finals_bet, season, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, season)
		DO UPDATE SET finals_bet = $2, created_at = $4
	`

	_, err := s.db.Exec(query, userID, team, season, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert finals bet: %w", err)
	}
	return nil
}

// ListFinalsBets 拉取某赛季全部总冠军预测
func (s *SpecialBetStore) ListFinalsBets(season int) ([]scoring.FinalsPick, error) {
	query := `SELECT user_id, finals_bet, points_gained FROM finals_bet WHERE season = $1`

	rows, err := s.db.Query(query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to list finals bets: %w", err)
	}
	defer rows.Close()

	var picks []scoring.FinalsPick
	for rows.Next() {
		var pick scoring.FinalsPick
		if err := rows.Scan(&pick.UserID, &pick.Team, &pick.PointsGained); err != nil {
			return nil, err
		}
		picks = append(picks, pick)
	}

	return picks, rows.Err()
}

// AwardFinalsPoints 赛季结束后给猜中总冠军的用户记分，其余记 0
func (s *SpecialBetStore) AwardFinalsPoints(champion string, points, season int) error {
	query := `
		UPDATE finals_bet
		SET points_gained = CASE WHEN finals_bet = $1 THEN $2 ELSE 0 END
		WHERE season = $3
	`

	_, err := s.db.Exec(query, champion, points, season)
	if err != nil {
		return fmt.Errorf("failed to award finals points: %w", err)
	}
	return nil
}

// GetMvpBet 查询用户的 FMVP 预测
func (s *SpecialBetStore) GetMvpBet(userID string, season int) (*database.FinalsMvpBet, error) {
	query := `
		SELECT id, user_id, player_id, player_name, points_gained, season, created_at
		FROM finals_mvp_bet
		WHERE user_id = $1 AND season = $2
	`

	var bet database.FinalsMvpBet
	err := s.db.QueryRow(query, userID, season).Scan(
		&bet.ID, &bet.UserID, &bet.PlayerID, &bet.PlayerName, &bet.PointsGained, &bet.Season, &bet.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mvp bet: %w", err)
	}

	return &bet, nil
}

// UpsertMvpBet 写入 FMVP 预测，重复提交覆盖
func (s *SpecialBetStore) UpsertMvpBet(userID, playerID, playerName string, season int) error {
	query := `
		INSERT INTO finals_mvp_bet (user_id, player_id, player_name, season, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, season)
		DO UPDATE SET player_id = $2, player_name = $3, created_at = $5
	`

	_, err := s.db.Exec(query, userID, playerID, playerName, season, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert mvp bet: %w", err)
	}
	return nil
}

// ListMvpBets 拉取某赛季全部 FMVP 预测
func (s *SpecialBetStore) ListMvpBets(season int) ([]scoring.MvpPick, error) {
	query := `SELECT user_id, player_id, player_name, points_gained FROM finals_mvp_bet WHERE season = $1`

	rows, err := s.db.Query(query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to list mvp bets: %w", err)
	}
	defer rows.Close()

	var picks []scoring.MvpPick
	for rows.Next() {
		var pick scoring.MvpPick
		if err := rows.Scan(&pick.UserID, &pick.PlayerID, &pick.PlayerName, &pick.PointsGained); err != nil {
			return nil, err
		}
		picks = append(picks, pick)
	}

	return picks, rows.Err()
}

// AwardMvpPoints 赛季结束后给猜中 FMVP 的用户记分，其余记 0
func (s *SpecialBetStore) AwardMvpPoints(playerID string, points, season int) error {
	query := `
		UPDATE finals_mvp_bet
		SET points_gained = CASE WHEN player_id = $1 THEN $2 ELSE 0 END
		WHERE season = $3
	`

	_, err := s.db.Exec(query, playerID, points, season)
	if err != nil {
		return fmt.Errorf("failed to award mvp points: %w", err)
	}
	return nil
}
