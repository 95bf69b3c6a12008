package database

import "context"

// RecordLogin stores the user's new refresh token and journals the login
// event in a single transaction. A session is never persisted without its
// journal entry, and vice versa.
func (s *PostgresStore) RecordLogin(ctx context.Context, userID int64, refreshToken string, payload interface{}) error {
	eventBytes, err := marshalEvent("user_logged_in", payload)
	if err != nil {
		return err
	}

	err = s.ExecTx(ctx, func(q *Queries) error {
		if err := q.SetRefreshToken(ctx, userID, refreshToken); err != nil {
			return err
		}
		return q.AppendEvent(ctx, userID, "user_logged_in", eventBytes)
	})
	if err != nil {
		return err
	}

	s.publishEvent(userID, eventBytes)
	return nil
}

// RotateSession exchanges the stored refresh token for newToken and journals
// the rotation, both in one transaction. Returns false without journaling
// anything when oldToken no longer matches the slot.
func (s *PostgresStore) RotateSession(ctx context.Context, userID int64, oldToken, newToken string) (bool, error) {
	eventBytes, err := marshalEvent("token_refreshed", nil)
	if err != nil {
		return false, err
	}

	var rotated bool
	err = s.ExecTx(ctx, func(q *Queries) error {
		var err error
		rotated, err = q.RotateRefreshToken(ctx, userID, oldToken, newToken)
		if err != nil || !rotated {
			return err
		}
		return q.AppendEvent(ctx, userID, "token_refreshed", eventBytes)
	})
	if err != nil {
		return false, err
	}

	if rotated {
		s.publishEvent(userID, eventBytes)
	}
	return rotated, nil
}
