package models

import "time"

// User represents a registered account in the system.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"` // stored lowercased, unique
	Password  string    `json:"pass"`  // plaintext on purpose; handlers must blank it before responding
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is the public projection of a logged-in user. It never carries
// the password and is the only identity shape the post store sees.
type Session struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// SessionFor builds the session projection of a user.
func SessionFor(u User) Session {
	return Session{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}
