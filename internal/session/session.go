package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"vicmar/server/internal/models"
	"vicmar/server/internal/store"
)

const (
	keyPrefix = "session:"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ErrUnauthenticated means the caller has no live session. Callers treat it as
// the logged-out state rather than a failure.
var ErrUnauthenticated = errors.New("not authenticated")

// Key returns the storage key of the session with id.
func Key(id string) string {
	return keyPrefix + id
}

// Manager keeps one user record per session id. Roles are assigned here from
// the configured admin list, never taken from the client.
type Manager struct {
	kv     store.KV
	admins []string
}

func NewManager(kv store.KV, adminEmails []string) *Manager {
	admins := make([]string, 0, len(adminEmails))
	for _, email := range adminEmails {
		if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
			admins = append(admins, email)
		}
	}
	return &Manager{kv: kv, admins: admins}
}

// Me returns the user signed in under sessionID or ErrUnauthenticated.
func (m *Manager) Me(ctx context.Context, sessionID string) (*models.User, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, ErrUnauthenticated
	}

	data, ok, err := m.kv.Get(ctx, Key(sessionID))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read session: %w", store.ErrStorage, err)
	}
	if !ok {
		return nil, ErrUnauthenticated
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		// An unreadable session is as good as none
		return nil, ErrUnauthenticated
	}
	return &user, nil
}

// SignIn starts a new session for user and returns its id.
func (m *Manager) SignIn(ctx context.Context, user models.User) (string, *models.User, error) {
	if user.ID == "" {
		user.ID = store.NewID()
	}
	user.Role = RoleUser
	if slices.Contains(m.admins, strings.ToLower(strings.TrimSpace(user.Email))) {
		user.Role = RoleAdmin
	}

	data, err := json.Marshal(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode session: %w", err)
	}

	sessionID := uuid.NewString()
	if err := m.kv.Put(ctx, Key(sessionID), data); err != nil {
		return "", nil, fmt.Errorf("%w: failed to write session: %w", store.ErrStorage, err)
	}
	return sessionID, &user, nil
}

// Logout ends the session with sessionID. Unknown ids are ignored.
func (m *Manager) Logout(ctx context.Context, sessionID string) error {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil
	}
	if err := m.kv.Delete(ctx, Key(sessionID)); err != nil {
		return fmt.Errorf("%w: failed to clear session: %w", store.ErrStorage, err)
	}
	return nil
}

// IsAdmin reports whether user may manage the catalog and read inquiries.
func IsAdmin(user *models.User) bool {
	return user != nil && user.Role == RoleAdmin
}
