package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

func marshalEvent(eventType string, payload interface{}) ([]byte, error) {
	eventMsg := map[string]interface{}{
		"event_type": eventType,
		"payload":    payload,
	}
	eventBytes, err := json.Marshal(eventMsg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	return eventBytes, nil
}

// AppendEvent writes a pre-marshalled event to the journal. It runs on
// whatever DBTX backs q, so callers can journal inside a transaction.
func (q *Queries) AppendEvent(ctx context.Context, userID int64, eventType string, event []byte) error {
	query := `INSERT INTO event_journal (user_id, event_type, payload) VALUES ($1, $2, $3)`
	_, err := q.db.Exec(ctx, query, userID, eventType, event)
	return err
}

func (s *PostgresStore) publishEvent(userID int64, event []byte) {
	if s.wsHub != nil {
		s.wsHub.PublishEvent(userID, event)
	}
}

// LogEvent appends an account-activity event to the journal and fans it out
// to the user's connected websocket clients.
func (s *PostgresStore) LogEvent(ctx context.Context, userID int64, eventType string, payload interface{}) error {
	eventBytes, err := marshalEvent(eventType, payload)
	if err != nil {
		return err
	}
	if err := s.Queries.AppendEvent(ctx, userID, eventType, eventBytes); err != nil {
		return err
	}
	s.publishEvent(userID, eventBytes)
	return nil
}

type Event struct {
	ID        int64           `json:"id"`
	EventType string          `json:"event_type"`
	EventTime time.Time       `json:"event_time"`
	Payload   json.RawMessage `json:"payload"`
}

func (s *PostgresStore) GetEventsSince(ctx context.Context, userID int64, sinceID int64) ([]Event, error) {
	query := `
		SELECT id, event_type, event_time, payload
		FROM event_journal
		WHERE user_id = $1 AND id > $2
		ORDER BY id ASC
		LIMIT 100
	`
	rows, err := s.pool.Query(ctx, query, userID, sinceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		err := rows.Scan(
			&event.ID,
			&event.EventType,
			&event.EventTime,
			&event.Payload,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if events == nil {
		return []Event{}, nil
	}

	return events, nil
}
