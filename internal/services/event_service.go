package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/mini-social-be/internal/models"
	"github.com/isdelr/mini-social-be/internal/storage"
	"github.com/rs/zerolog/log"
)

// maxStoredEvents caps the activity blob so it cannot grow without bound.
const maxStoredEvents = 200

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(eventType, level, message string, subjectID *string)
	GetRecentEvents(limit int) []models.Event
}

// EventService keeps a capped, newest-first activity log in its own blob.
// Event logging is best effort: a failed write is logged and swallowed so it
// never fails the mutation that produced it.
type EventService struct {
	mu    sync.Mutex
	store *storage.Store
}

// NewEventService creates a new EventService.
func NewEventService(store *storage.Store) *EventService {
	return &EventService{store: store}
}

// CreateEvent records a new activity event.
func (s *EventService) CreateEvent(eventType, level, message string, subjectID *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		SubjectID: subjectID,
		CreatedAt: time.Now().UTC(),
	}

	var events []models.Event
	s.store.Load(eventsBlobKey, &events)
	events = append([]models.Event{event}, events...)
	if len(events) > maxStoredEvents {
		events = events[:maxStoredEvents]
	}
	if err := s.store.Save(eventsBlobKey, events); err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to persist event")
	}
}

// GetRecentEvents returns up to limit events, newest first.
func (s *EventService) GetRecentEvents(limit int) []models.Event {
	var events []models.Event
	s.store.Load(eventsBlobKey, &events)
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events
}
