package models

import (
	"time"
)

// User represents a Telegram bot user
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	IsBanned  bool      `json:"is_banned"`
	CreatedAt time.Time `json:"created_at"`
}

// RequestLog is an append-only record of a single rate lookup
type RequestLog struct {
	UserID    int64     `json:"user_id"`
	Channel   string    `json:"channel"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats holds aggregate counters for the admin panel
type Stats struct {
	TotalUsers    int `json:"total_users"`
	BannedUsers   int `json:"banned_users"`
	TotalRequests int `json:"total_requests"`
	JoinedToday   int `json:"joined_today"`
}
