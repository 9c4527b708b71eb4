package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"oraya/internal/domain"
)

const testSecret = "test-secret-key-32-bytes-long!!!"

func roundTrip(t *testing.T, mutate func(*Session)) *Session {
	t.Helper()
	m := NewManager(testSecret, "test-session", false)

	// First request: mutate and save.
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	sess := m.Get(req)
	mutate(sess)
	if err := sess.Save(w, req); err != nil {
		t.Fatalf("failed to save session: %v", err)
	}

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie to be set")
	}

	// Second request: carry the cookie back.
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	return m.Get(req2)
}

func TestCartRoundTrip(t *testing.T) {
	sess := roundTrip(t, func(s *Session) {
		s.SetCart(domain.Cart{"p1": 2, "p5": 1})
	})

	cart := sess.Cart()
	if cart["p1"] != 2 || cart["p5"] != 1 {
		t.Errorf("cart did not survive the cookie round trip: %v", cart)
	}
}

func TestEmptySessionHasEmptyCart(t *testing.T) {
	m := NewManager(testSecret, "test-session", false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	sess := m.Get(req)
	if !sess.Cart().IsEmpty() {
		t.Error("fresh session should have an empty cart")
	}
	if sess.IsAdmin() {
		t.Error("fresh session should not be admin")
	}
}

func TestAdminFlagRoundTrip(t *testing.T) {
	sess := roundTrip(t, func(s *Session) {
		s.SetAdmin(true)
	})

	if !sess.IsAdmin() {
		t.Error("admin flag did not survive the cookie round trip")
	}
}

func TestClearCart(t *testing.T) {
	sess := roundTrip(t, func(s *Session) {
		s.SetCart(domain.Cart{"p1": 3})
		s.ClearCart()
	})

	if !sess.Cart().IsEmpty() {
		t.Errorf("expected cleared cart, got %v", sess.Cart())
	}
}

func TestTamperedCookieYieldsFreshSession(t *testing.T) {
	m := NewManager(testSecret, "test-session", false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "test-session", Value: "not-a-valid-session"})

	sess := m.Get(req)
	if !sess.Cart().IsEmpty() || sess.IsAdmin() {
		t.Error("tampered cookie must yield a fresh, unprivileged session")
	}
}
