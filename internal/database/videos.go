package database

import (
	"context"
	"errors"
	"fmt"

	"vidtube/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jaevor/go-nanoid"
)

var ErrVideoNotFound = errors.New("video not found")

type CreateVideoParams struct {
	OwnerID         int64
	Title           string
	ThumbnailURL    string
	VideoURL        string
	DurationSeconds int64
}

func (q *Queries) CreateVideo(ctx context.Context, arg CreateVideoParams) (*models.Video, error) {
	generateID, err := nanoid.Standard(21)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}

	query := `
		INSERT INTO videos (id, owner_id, title, thumbnail_url, video_url, duration_seconds)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, owner_id, title, thumbnail_url, video_url, duration_seconds, views, created_at
	`

	var video models.Video
	err = q.db.QueryRow(ctx, query,
		generateID(),
		arg.OwnerID,
		arg.Title,
		arg.ThumbnailURL,
		arg.VideoURL,
		arg.DurationSeconds,
	).Scan(
		&video.ID,
		&video.OwnerID,
		&video.Title,
		&video.ThumbnailURL,
		&video.VideoURL,
		&video.DurationSeconds,
		&video.Views,
		&video.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &video, nil
}

// AddToWatchHistory records that the user watched the video. Re-watching
// bumps the entry to the top instead of duplicating it.
func (q *Queries) AddToWatchHistory(ctx context.Context, userID int64, videoID string) error {
	query := `
		INSERT INTO watch_history (user_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = now()
	`
	_, err := q.db.Exec(ctx, query, userID, videoID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrVideoNotFound
		}
		return err
	}
	return nil
}

// CreateSubscription adds a subscriber→channel edge and returns it.
// Subscribing twice keeps the original edge, created_at included.
func (q *Queries) CreateSubscription(ctx context.Context, subscriberID, channelID int64) (*models.Subscription, error) {
	query := `
		INSERT INTO subscriptions (subscriber_id, channel_id)
		VALUES ($1, $2)
		ON CONFLICT (subscriber_id, channel_id) DO UPDATE SET subscriber_id = EXCLUDED.subscriber_id
		RETURNING subscriber_id, channel_id, created_at
	`

	var sub models.Subscription
	err := q.db.QueryRow(ctx, query, subscriberID, channelID).Scan(
		&sub.SubscriberID,
		&sub.ChannelID,
		&sub.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &sub, nil
}
