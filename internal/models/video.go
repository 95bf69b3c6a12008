package models

import "time"

type Video struct {
	ID              string    `json:"id"`
	OwnerID         int64     `json:"owner_id"`
	Title           string    `json:"title"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	VideoURL        string    `json:"video_url"`
	DurationSeconds int64     `json:"duration_seconds"`
	Views           int64     `json:"views"`
	CreatedAt       time.Time `json:"created_at"`
}

// VideoOwner is the reduced owner projection returned inside watch history
// entries.
type VideoOwner struct {
	FullName  string `json:"full_name"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

type WatchedVideo struct {
	Video
	Owner     VideoOwner `json:"owner"`
	WatchedAt time.Time  `json:"watched_at"`
}
