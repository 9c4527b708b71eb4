package session

import (
	"encoding/gob"
	"net/http"

	"oraya/internal/domain"

	"github.com/gorilla/sessions"
)

const (
	cartKey  = "cart"
	adminKey = "admin"
)

func init() {
	// Session values are gob-encoded into the cookie.
	gob.Register(map[string]int{})
}

// Manager hands out per-request session handles backed by an encrypted
// cookie. It is injected where needed, never a process-wide singleton.
type Manager struct {
	store      sessions.Store
	cookieName string
}

// NewManager creates a cookie-backed session manager. secret authenticates
// and encrypts the cookie payload.
func NewManager(secret, cookieName string, secure bool) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{
		store:      store,
		cookieName: cookieName,
	}
}

// Get returns the visitor's session handle, creating a fresh one when the
// request carries no valid cookie.
func (m *Manager) Get(r *http.Request) *Session {
	// A decode error (tampered or stale cookie) yields a fresh session.
	s, _ := m.store.Get(r, m.cookieName)
	return &Session{s: s}
}

// Session is a per-request handle on one visitor's state: their cart mapping
// and admin capability flag. Mutations are buffered until Save.
type Session struct {
	s *sessions.Session
}

// Cart returns the visitor's cart mapping. Absent state yields an empty cart.
func (s *Session) Cart() domain.Cart {
	raw, ok := s.s.Values[cartKey].(map[string]int)
	if !ok {
		return domain.Cart{}
	}
	return domain.Cart(raw)
}

// SetCart replaces the visitor's cart mapping
func (s *Session) SetCart(cart domain.Cart) {
	s.s.Values[cartKey] = map[string]int(cart)
}

// ClearCart empties the visitor's cart
func (s *Session) ClearCart() {
	s.s.Values[cartKey] = map[string]int{}
}

// IsAdmin reports whether this session holds the admin capability flag
func (s *Session) IsAdmin() bool {
	admin, ok := s.s.Values[adminKey].(bool)
	return ok && admin
}

// SetAdmin grants or revokes the admin capability flag
func (s *Session) SetAdmin(admin bool) {
	s.s.Values[adminKey] = admin
}

// Save writes the session back to the response cookie. It is the scoped
// commit point for all session mutations in a request.
func (s *Session) Save(w http.ResponseWriter, r *http.Request) error {
	return s.s.Save(r, w)
}
