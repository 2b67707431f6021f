package models

import "time"

// Event represents a loggable action in the system's activity feed.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "post.create", "system.alert.storage"
	Level     string    `json:"level"` // e.g., "info", "warn", "error"
	Message   string    `json:"message"`
	SubjectID *string   `json:"subjectId,omitempty"` // post or user the event refers to, if any
	CreatedAt time.Time `json:"createdAt"`
}
