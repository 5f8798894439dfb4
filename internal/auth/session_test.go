package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"
)

func sessionCookie(t *testing.T, adminID uint) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	CreateSession(w, adminID)
	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie got %d", len(cookies))
	}
	return cookies[0]
}

func TestCreateAndParseSession(t *testing.T) {
	cookie := sessionCookie(t, 42)
	if !cookie.HttpOnly {
		t.Fatalf("expected HttpOnly cookie")
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	id, ok := ParseSession(req)
	if !ok || id != 42 {
		t.Fatalf("expected admin 42, got %d ok=%v", id, ok)
	}
}

func TestParseSessionRejectsTamperedID(t *testing.T) {
	cookie := sessionCookie(t, 1)
	parts := strings.SplitN(cookie.Value, ".", 3)
	if len(parts) != 3 {
		t.Fatalf("unexpected cookie format: %s", cookie.Value)
	}
	// Swap the id but keep the original signature.
	forged := "2." + parts[1] + "." + parts[2]
	if _, ok := parseValue(forged, time.Now()); ok {
		t.Fatalf("expected forged id to be rejected")
	}
}

func TestParseSessionRejectsExtendedExpiry(t *testing.T) {
	cookie := sessionCookie(t, 1)
	parts := strings.SplitN(cookie.Value, ".", 3)
	later := strconv.FormatInt(time.Now().Add(48*time.Hour).Unix(), 10)
	forged := parts[0] + "." + later + "." + parts[2]
	if _, ok := parseValue(forged, time.Now()); ok {
		t.Fatalf("expected extended expiry to be rejected")
	}
}

func TestParseSessionExpired(t *testing.T) {
	cookie := sessionCookie(t, 1)
	// Valid now, invalid once the clock passes the embedded expiry.
	if _, ok := parseValue(cookie.Value, time.Now()); !ok {
		t.Fatalf("expected fresh session to parse")
	}
	if _, ok := parseValue(cookie.Value, time.Now().Add(2*time.Hour)); ok {
		t.Fatalf("expected expired session to be rejected")
	}
}

func TestParseSessionGarbage(t *testing.T) {
	for _, value := range []string{"", "x", "a.b", "a.b.c.d", "1.notanumber.sig"} {
		if _, ok := parseValue(value, time.Now()); ok {
			t.Fatalf("expected %q to be rejected", value)
		}
	}
}

func TestConfigureOverridesSecretAndTTL(t *testing.T) {
	t.Cleanup(func() { Configure("", 0) })

	Configure("first-secret", 120)
	if got := TTL(); got != 2*time.Minute {
		t.Fatalf("expected 2m TTL got %v", got)
	}
	cookie := sessionCookie(t, 7)

	// Rotating the secret invalidates sessions signed under the old one.
	Configure("second-secret", 120)
	if _, ok := parseValue(cookie.Value, time.Now()); ok {
		t.Fatalf("expected session signed with old secret to be rejected")
	}

	// Zero values fall back to the environment defaults.
	Configure("", 0)
	if got := TTL(); got != time.Hour {
		t.Fatalf("expected default TTL got %v", got)
	}
}

func TestMiddlewareAndRequireAuth(t *testing.T) {
	protected := Middleware(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := AdminIDFromContext(r.Context())
		w.Write([]byte(strconv.FormatUint(uint64(id), 10)))
	})))

	// No cookie: 401.
	w := httptest.NewRecorder()
	protected.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}

	// Valid cookie: passes through with the admin id in context.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, 7))
	w2 := httptest.NewRecorder()
	protected.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK || w2.Body.String() != "7" {
		t.Fatalf("expected 200/7 got %d/%s", w2.Code, w2.Body.String())
	}
}

func TestRequireAuthVerifierRejectsDeletedAdmin(t *testing.T) {
	SetAdminVerifier(func(_ context.Context, id uint) bool { return false })
	t.Cleanup(func() { SetAdminVerifier(nil) })

	protected := Middleware(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, 7))
	w := httptest.NewRecorder()
	protected.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted admin got %d", w.Code)
	}
}

func TestClearSession(t *testing.T) {
	w := httptest.NewRecorder()
	ClearSession(w)
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "" || cookies[0].MaxAge != -1 {
		t.Fatalf("expected expired empty cookie, got %+v", cookies)
	}
}
