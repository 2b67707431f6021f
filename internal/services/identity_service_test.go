package services

import (
	"path/filepath"
	"testing"

	"github.com/isdelr/mini-social-be/internal/apperrors"
	"github.com/isdelr/mini-social-be/internal/models"
	"github.com/isdelr/mini-social-be/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "social.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newIdentityService(t *testing.T) (*IdentityService, *storage.Store) {
	t.Helper()
	store := newTestStore(t)
	return NewIdentityService(store, NewEventService(store)), store
}

func TestIdentityService_SignUpThenLogIn(t *testing.T) {
	svc, _ := newIdentityService(t)

	signedUp, err := svc.SignUp("Ana", "Ana@Example.COM", "secret", "")
	require.NoError(t, err)
	assert.NotEmpty(t, signedUp.ID)
	assert.Equal(t, "ana@example.com", signedUp.Email)

	loggedIn, err := svc.LogIn("ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, signedUp.ID, loggedIn.ID)
}

func TestIdentityService_SignUpDuplicateEmail(t *testing.T) {
	svc, store := newIdentityService(t)

	_, err := svc.SignUp("Ana", "ana@example.com", "secret", "")
	require.NoError(t, err)

	_, err = svc.SignUp("Impostor", "ANA@example.com", "other", "")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)

	var users []models.User
	require.True(t, store.Load(usersBlobKey, &users))
	assert.Len(t, users, 1, "no duplicate user may be persisted")
}

func TestIdentityService_SignUpMissingFields(t *testing.T) {
	svc, _ := newIdentityService(t)

	for _, tt := range []struct {
		name, email, password string
	}{
		{"", "ana@example.com", "secret"},
		{"Ana", "", "secret"},
		{"Ana", "ana@example.com", ""},
	} {
		_, err := svc.SignUp(tt.name, tt.email, tt.password, "")
		assert.ErrorIs(t, err, apperrors.ErrMissingFields)
	}
}

func TestIdentityService_SignUpDefaultAvatar(t *testing.T) {
	svc, _ := newIdentityService(t)

	session, err := svc.SignUp("Ana Lee", "ana@example.com", "secret", "")
	require.NoError(t, err)
	assert.Contains(t, session.Avatar, "ui-avatars.com")

	session, err = svc.SignUp("Bob", "bob@example.com", "secret", "data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", session.Avatar)
}

func TestIdentityService_LogInInvalidCredentials(t *testing.T) {
	svc, _ := newIdentityService(t)

	_, err := svc.SignUp("Ana", "ana@example.com", "secret", "")
	require.NoError(t, err)

	_, err = svc.LogIn("ana@example.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.LogIn("nobody@example.com", "secret")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestIdentityService_SessionLifecycle(t *testing.T) {
	svc, store := newIdentityService(t)

	session, err := svc.SignUp("Ana", "ana@example.com", "secret", "")
	require.NoError(t, err)

	// The session survives a restart of the service over the same store.
	other := NewIdentityService(store, NewEventService(store))
	current := other.CurrentSession()
	require.NotNil(t, current)
	assert.Equal(t, session.ID, current.ID)

	require.NoError(t, svc.LogOut())
	assert.Nil(t, svc.CurrentSession())

	// Logging out again is fine.
	require.NoError(t, svc.LogOut())
}

func TestIdentityService_EnsureDemoUser(t *testing.T) {
	svc, store := newIdentityService(t)

	require.NoError(t, svc.EnsureDemoUser())
	_, err := svc.LogIn("guest@mini.local", "guest")
	require.NoError(t, err)

	// A second call must not reseed.
	require.NoError(t, svc.EnsureDemoUser())
	var users []models.User
	require.True(t, store.Load(usersBlobKey, &users))
	assert.Len(t, users, 1)

	// A populated store is left alone even without the guest.
	populated := newTestStore(t)
	populatedSvc := NewIdentityService(populated, NewEventService(populated))
	_, err = populatedSvc.SignUp("Ana", "ana@example.com", "secret", "")
	require.NoError(t, err)
	require.NoError(t, populatedSvc.EnsureDemoUser())
	_, err = populatedSvc.LogIn("guest@mini.local", "guest")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestIdentityService_GetUserByID(t *testing.T) {
	svc, _ := newIdentityService(t)

	session, err := svc.SignUp("Ana", "ana@example.com", "secret", "")
	require.NoError(t, err)

	user, err := svc.GetUserByID(session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)

	_, err = svc.GetUserByID("missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
