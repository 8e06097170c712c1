package services

import (
	"database/sql"
	"fmt"

	"prediction-league-service/database"
	"prediction-league-service/scoring"
)

// UserStore 用户目录持久化。身份认证在网关层完成，
// 这里只维护 uuid -> 展示信息 的目录
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// UpsertUser 写入或更新用户目录条目
func (s *UserStore) UpsertUser(uuid, name, email string) error {
	query := `
		INSERT INTO users (uuid, name, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (uuid)
		DO UPDATE SET name = $2, email = $3
	`

	_, err := s.db.Exec(query, uuid, name, email)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// GetUser 按 uuid 查询用户
func (s *UserStore) GetUser(uuid string) (*database.User, error) {
	query := `SELECT uuid, name, email, created_at FROM users WHERE uuid = $1`

	var user database.User
	err := s.db.QueryRow(query, uuid).Scan(&user.UUID, &user.Name, &user.Email, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// ListUsers 拉取全部用户(聚合快照用)
func (s *UserStore) ListUsers() ([]scoring.User, error) {
	query := `SELECT uuid, name, email FROM users`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []scoring.User
	for rows.Next() {
		var user scoring.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}
