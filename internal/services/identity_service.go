package services

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/mini-social-be/internal/apperrors"
	"github.com/isdelr/mini-social-be/internal/models"
	"github.com/isdelr/mini-social-be/internal/storage"
	"github.com/rs/zerolog/log"
)

// Blob keys for the persisted collections. Kept compatible with the browser
// build of MiniSocial so an exported store stays readable.
const (
	usersBlobKey   = "miniSocial_users"
	sessionBlobKey = "miniSocial_currentUser"
	postsBlobKey   = "miniSocial_posts"
	eventsBlobKey  = "miniSocial_events"
)

// IdentityServiceProvider defines the interface for identity services.
type IdentityServiceProvider interface {
	SignUp(name, email, password, avatar string) (models.Session, error)
	LogIn(email, password string) (models.Session, error)
	LogOut() error
	CurrentSession() *models.Session
	GetUserByID(id string) (models.User, error)
}

// IdentityService holds the registered users and the single current session.
// Every successful mutation persists immediately; reads reload from the
// store so another process writing the same file is picked up (last write
// wins).
type IdentityService struct {
	mu     sync.Mutex
	store  *storage.Store
	events EventServiceProvider
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(store *storage.Store, events EventServiceProvider) *IdentityService {
	return &IdentityService{store: store, events: events}
}

// SignUp registers a new user and logs them straight in.
func (s *IdentityService) SignUp(name, email, password, avatar string) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return models.Session{}, apperrors.ErrMissingFields
	}

	users := s.loadUsers()
	for _, u := range users {
		if u.Email == email {
			return models.Session{}, apperrors.ErrDuplicateEmail
		}
	}

	if avatar == "" {
		avatar = defaultAvatar(name)
	}
	user := models.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Password:  password,
		Avatar:    avatar,
		CreatedAt: time.Now().UTC(),
	}

	users = append(users, user)
	if err := s.store.Save(usersBlobKey, users); err != nil {
		return models.Session{}, err
	}

	session := models.SessionFor(user)
	if err := s.store.Save(sessionBlobKey, session); err != nil {
		return models.Session{}, err
	}

	s.events.CreateEvent("user.signup", "info", fmt.Sprintf("%s joined.", user.Name), &user.ID)
	return session, nil
}

// LogIn establishes a session for the user matching both email and password.
func (s *IdentityService) LogIn(email, password string) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = normalizeEmail(email)
	for _, u := range s.loadUsers() {
		if u.Email == email && u.Password == password {
			session := models.SessionFor(u)
			if err := s.store.Save(sessionBlobKey, session); err != nil {
				return models.Session{}, err
			}
			return session, nil
		}
	}
	log.Warn().Str("email", email).Msg("Failed login attempt")
	return models.Session{}, apperrors.ErrInvalidCredentials
}

// LogOut clears the current session. Logging out twice is fine.
func (s *IdentityService) LogOut() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Delete(sessionBlobKey)
}

// CurrentSession reloads and returns the persisted session, or nil when
// nobody is logged in.
func (s *IdentityService) CurrentSession() *models.Session {
	var session *models.Session
	s.store.Load(sessionBlobKey, &session)
	return session
}

// GetUserByID retrieves a single registered user.
func (s *IdentityService) GetUserByID(id string) (models.User, error) {
	for _, u := range s.loadUsers() {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, apperrors.ErrNotFound
}

// EnsureDemoUser seeds the demo Guest account, but only when the users blob
// is empty.
func (s *IdentityService) EnsureDemoUser() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if users := s.loadUsers(); len(users) > 0 {
		return nil
	}
	guest := models.User{
		ID:        uuid.New().String(),
		Name:      "Guest",
		Email:     "guest@mini.local",
		Password:  "guest",
		Avatar:    defaultAvatar("Guest"),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Save(usersBlobKey, []models.User{guest}); err != nil {
		return err
	}
	log.Info().Str("email", guest.Email).Msg("Seeded demo user")
	return nil
}

func (s *IdentityService) loadUsers() []models.User {
	var users []models.User
	s.store.Load(usersBlobKey, &users)
	return users
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// defaultAvatar is the initials-based fallback image for users without one.
func defaultAvatar(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=0D8ABC&color=fff&size=256"
}
