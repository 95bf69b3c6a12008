package models

import "time"

type User struct {
	ID            int64     `json:"id" db:"id"`
	Username      string    `json:"username" db:"username"`
	Email         string    `json:"email" db:"email"`
	FullName      string    `json:"full_name" db:"full_name"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	AvatarURL     string    `json:"avatar_url" db:"avatar_url"`
	CoverImageURL *string   `json:"cover_image_url,omitempty" db:"cover_image_url"`
	RefreshToken  *string   `json:"-" db:"refresh_token"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
