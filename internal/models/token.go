package models

import "time"

// Token is an opaque bearer credential bound to a user at login time.
type Token struct {
	ID        int       `json:"-"`
	Value     string    `json:"token"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
