// Package session holds the signed-cookie session for the current
// user. Handlers receive the manager explicitly and pass the derived
// user down; nothing reads session state ambiently.
package session

import (
	"net/http"

	"github.com/gorilla/sessions"

	"tutorhub-service/internal/models"
)

const (
	sessionName = "tutorhub_session"
	keyUserID   = "user_id"
	keyRole     = "role"
)

type User struct {
	ID   string
	Role models.Role
}

type Manager struct {
	store *sessions.CookieStore
}

func NewManager(secret string) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{store: store}
}

// Current returns the logged-in user, if any. A cookie decode error is
// treated as no session.
func (m *Manager) Current(r *http.Request) (User, bool) {
	sess, err := m.store.Get(r, sessionName)
	if err != nil {
		return User{}, false
	}

	id, ok := sess.Values[keyUserID].(string)
	if !ok || id == "" {
		return User{}, false
	}

	role, _ := sess.Values[keyRole].(string)

	return User{ID: id, Role: models.Role(role)}, true
}

func (m *Manager) Set(w http.ResponseWriter, r *http.Request, user User) error {
	sess, _ := m.store.Get(r, sessionName)
	sess.Values[keyUserID] = user.ID
	sess.Values[keyRole] = string(user.Role)

	return sess.Save(r, w)
}

func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, sessionName)
	sess.Options.MaxAge = -1
	sess.Values = make(map[any]any)

	return sess.Save(r, w)
}
