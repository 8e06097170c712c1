package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Connect 连接到数据库
func Connect(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// 设置连接池
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

// Migrate 运行数据库迁移
func Migrate(db *sql.DB) error {
	migrations := []string{
		// 用户目录表
		`CREATE TABLE IF NOT EXISTS users (
			uuid VARCHAR(36) PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// 赛事表
		`CREATE TABLE IF NOT EXISTS events (
			id VARCHAR(100) PRIMARY KEY,
			team1 VARCHAR(50) NOT NULL,
			team2 VARCHAR(50) NOT NULL,
			team1_score INTEGER DEFAULT 0,
			team2_score INTEGER DEFAULT 0,
			round VARCHAR(20) NOT NULL,
			event_type VARCHAR(20) NOT NULL,
			status VARCHAR(20) DEFAULT 'scheduled',
			start_time TIMESTAMP NOT NULL,
			season INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_round ON events(round)`,
		`CREATE INDEX IF NOT EXISTS idx_events_status ON events(status)`,
		`CREATE INDEX IF NOT EXISTS idx_events_season ON events(season)`,

		// 预测表
		`CREATE TABLE IF NOT EXISTS bets (
			id BIGSERIAL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			event_id VARCHAR(100) NOT NULL,
			winner_team VARCHAR(50),
			win_margin INTEGER,
			result VARCHAR(50),
			points_gained INTEGER,
			points_gained_win_margin INTEGER,
			close_time TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, event_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bets_user_id ON bets(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bets_event_id ON bets(event_id)`,

		// 下注操作审计表
		`CREATE TABLE IF NOT EXISTS bets_log (
			id BIGSERIAL PRIMARY KEY,
			bet_id BIGINT,
			user_id VARCHAR(36),
			winner_team VARCHAR(50),
			win_margin INTEGER,
			log_event_type VARCHAR(30) NOT NULL,
			status VARCHAR(20) NOT NULL,
			error TEXT,
			time TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bets_log_bet_id ON bets_log(bet_id)`,

		// 总冠军预测表
		`CREATE TABLE IF NOT EXISTS finals_bet (
			id BIGSERIAL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			finals_bet VARCHAR(50) NOT NULL,
			points_gained INTEGER,
			season INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, season)
		)`,

		// FMVP 预测表
		`CREATE TABLE IF NOT EXISTS finals_mvp_bet (
			id BIGSERIAL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			player_id VARCHAR(50) NOT NULL,
			player_name VARCHAR(100) NOT NULL,
			points_gained INTEGER,
			season INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, season)
		)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
