package models

import "time"

// Subscription is a directed edge: subscriber follows channel.
type Subscription struct {
	SubscriberID int64     `json:"subscriber_id"`
	ChannelID    int64     `json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChannelProfile is the public aggregate view of a user's channel.
type ChannelProfile struct {
	FullName          string  `json:"full_name"`
	Username          string  `json:"username"`
	Email             string  `json:"email"`
	AvatarURL         string  `json:"avatar_url"`
	CoverImageURL     *string `json:"cover_image_url,omitempty"`
	SubscribersCount  int64   `json:"subscribers_count"`
	SubscribedToCount int64   `json:"subscribed_to_count"`
	IsSubscribed      bool    `json:"is_subscribed"`
}
