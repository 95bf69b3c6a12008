package database

import (
	"context"
	"errors"

	"vidtube/internal/models"

	"github.com/jackc/pgx/v5"
)

// GetChannelProfile builds the public channel view for a username: subscriber
// counts plus whether viewerID already subscribes to the channel.
func (q *Queries) GetChannelProfile(ctx context.Context, username string, viewerID int64) (*models.ChannelProfile, error) {
	query := `
		SELECT
			u.full_name,
			u.username,
			u.email,
			u.avatar_url,
			u.cover_image_url,
			(SELECT count(*) FROM subscriptions s WHERE s.channel_id = u.id) AS subscribers_count,
			(SELECT count(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS subscribed_to_count,
			EXISTS (
				SELECT 1 FROM subscriptions s
				WHERE s.channel_id = u.id AND s.subscriber_id = $2
			) AS is_subscribed
		FROM users u
		WHERE u.username = $1
	`

	var profile models.ChannelProfile
	err := q.db.QueryRow(ctx, query, username, viewerID).Scan(
		&profile.FullName,
		&profile.Username,
		&profile.Email,
		&profile.AvatarURL,
		&profile.CoverImageURL,
		&profile.SubscribersCount,
		&profile.SubscribedToCount,
		&profile.IsSubscribed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &profile, nil
}

// GetWatchHistory expands the user's watch history into full video records,
// each carrying a reduced owner projection. Most recently watched first.
func (q *Queries) GetWatchHistory(ctx context.Context, userID int64) ([]models.WatchedVideo, error) {
	query := `
		SELECT
			v.id, v.owner_id, v.title, v.thumbnail_url, v.video_url,
			v.duration_seconds, v.views, v.created_at,
			o.full_name, o.username, o.avatar_url,
			h.watched_at
		FROM watch_history h
		JOIN videos v ON v.id = h.video_id
		JOIN users o ON o.id = v.owner_id
		WHERE h.user_id = $1
		ORDER BY h.watched_at DESC
	`

	rows, err := q.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.WatchedVideo
	for rows.Next() {
		var entry models.WatchedVideo
		err := rows.Scan(
			&entry.ID, &entry.OwnerID, &entry.Title, &entry.ThumbnailURL, &entry.VideoURL,
			&entry.DurationSeconds, &entry.Views, &entry.CreatedAt,
			&entry.Owner.FullName, &entry.Owner.Username, &entry.Owner.AvatarURL,
			&entry.WatchedAt,
		)
		if err != nil {
			return nil, err
		}
		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if history == nil {
		return []models.WatchedVideo{}, nil
	}

	return history, nil
}
