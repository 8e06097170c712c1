package services

import (
	"database/sql"
	"fmt"
	"time"

	"prediction-league-service/database"
)

// EventStore 赛事持久化
type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

// UpsertEvent 写入或更新赛事(管理端同步路径)
func (s *EventStore) UpsertEvent(ev *database.Event) error {
	query := `
		INSERT INTO events (id, team1, team2, team1_score, team2_score, round, event_type, status, start_time, season, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id)
		DO UPDATE SET
			team1 = $2,
			team2 = $3,
			team1_score = $4,
			team2_score = $5,
			round = $6,
			event_type = $7,
			status = $8,
			start_time = $9,
			season = $10,
			updated_at = $11
	`

	_, err := s.db.Exec(query, ev.ID, ev.Team1, ev.Team2, ev.Team1Score, ev.Team2Score,
		ev.Round, ev.EventType, ev.Status, ev.StartTime, ev.Season, time.Now())
	return err
}

// GetEvent 按 ID 查询赛事
func (s *EventStore) GetEvent(eventID string) (*database.Event, error) {
	query := `
		SELECT id, team1, team2, team1_score, team2_score, round, event_type, status, start_time, season, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	var ev database.Event
	err := s.db.QueryRow(query, eventID).Scan(
		&ev.ID, &ev.Team1, &ev.Team2, &ev.Team1Score, &ev.Team2Score,
		&ev.Round, &ev.EventType, &ev.Status, &ev.StartTime, &ev.Season,
		&ev.CreatedAt, &ev.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &ev, nil
}

// ListEvents 查询赛事列表，round/status 为空时不过滤
func (s *EventStore) ListEvents(round, status string, season int) ([]database.Event, error) {
	query := `
		SELECT id, team1, team2, team1_score, team2_score, round, event_type, status, start_time, season, created_at, updated_at
		FROM events
		WHERE ($1 = '' OR round = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3 = 0 OR season = $3)
		ORDER BY start_time
	`

	rows, err := s.db.Query(query, round, status, season)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []database.Event
	for rows.Next() {
		var ev database.Event
		if err := rows.Scan(
			&ev.ID, &ev.Team1, &ev.Team2, &ev.Team1Score, &ev.Team2Score,
			&ev.Round, &ev.EventType, &ev.Status, &ev.StartTime, &ev.Season,
			&ev.CreatedAt, &ev.UpdatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}

// ResolveEvent 写入最终比分并把状态推进到 resolved。
// WHERE 条件保证同一赛事只会完结一次，重复调用返回 false。
func (s *EventStore) ResolveEvent(eventID string, team1Score, team2Score int) (bool, error) {
	query := `
		UPDATE events
		SET team1_score = $2, team2_score = $3, status = 'resolved', updated_at = $4
		WHERE id = $1 AND status <> 'resolved'
	`

	result, err := s.db.Exec(query, eventID, team1Score, team2Score, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to resolve event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// UpdateEventStatus 更新赛事状态(scheduled/live)
func (s *EventStore) UpdateEventStatus(eventID, status string) error {
	query := `UPDATE events SET status = $2, updated_at = $3 WHERE id = $1`

	_, err := s.db.Exec(query, eventID, status, time.Now())
	return err
}
