package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type ctxKey string

const (
	sessionCookieName = "session"
	adminIDCtxKey     = ctxKey("adminID")
)

// AdminVerifier is an optional callback to validate that a session's admin
// still exists. Set it during bootstrap via SetAdminVerifier; if nil, no
// extra verification is performed.
type AdminVerifier func(ctx context.Context, id uint) bool

var (
	verifier AdminVerifier
	secret   string
	ttl      time.Duration
)

// SetAdminVerifier configures the global verifier used by RequireAuth.
func SetAdminVerifier(v AdminVerifier) { verifier = v }

// Configure sets the session secret and lifetime from the application
// config at bootstrap. Unset values fall back to the environment.
func Configure(s string, ttlSeconds int) {
	secret = s
	ttl = 0
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
}

// Secret returns the configured signing secret, SESSION_SECRET, or a
// default dev value, in that order.
func Secret() string {
	if secret != "" {
		return secret
	}
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "devsessionsecret"
}

// TTL returns the configured session lifetime, falling back to
// SESSION_TIMEOUT (seconds) and then one hour.
func TTL() time.Duration {
	if ttl > 0 {
		return ttl
	}
	if v := os.Getenv("SESSION_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Hour
}

func sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CreateSession sets a signed cookie carrying the admin id and an expiry
// timestamp. The expiry is part of the signed payload so it cannot be
// extended client-side.
func CreateSession(w http.ResponseWriter, adminID uint) {
	expires := time.Now().Add(TTL())
	payload := strconv.FormatUint(uint64(adminID), 10) + "." + strconv.FormatInt(expires.Unix(), 10)
	value := payload + "." + sign(payload)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
	})
}

// ClearSession deletes the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// ParseSession validates the cookie signature and expiry and returns the
// admin id.
func ParseSession(r *http.Request) (uint, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return 0, false
	}
	return parseValue(c.Value, time.Now())
}

func parseValue(value string, now time.Time) (uint, bool) {
	parts := strings.Split(value, ".")
	if len(parts) != 3 {
		return 0, false
	}
	idStr, expStr, sig := parts[0], parts[1], parts[2]
	expected := sign(idStr + "." + expStr)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return 0, false
	}
	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil || now.Unix() > exp {
		return 0, false
	}
	id64, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id64), true
}

// WithAdminID stores the admin id in a context.
func WithAdminID(ctx context.Context, adminID uint) context.Context {
	return context.WithValue(ctx, adminIDCtxKey, adminID)
}

// AdminIDFromContext extracts the admin id.
func AdminIDFromContext(ctx context.Context) (uint, bool) {
	v := ctx.Value(adminIDCtxKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// Middleware attaches the admin id to the request context when a valid
// session cookie is present.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := ParseSession(r); ok {
			r = r.WithContext(WithAdminID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests without a valid admin session with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := AdminIDFromContext(r.Context())
		if !ok {
			unauthorized(w)
			return
		}
		if verifier != nil && !verifier(r.Context(), id) {
			// Session refers to a deleted administrator: clear and reject.
			ClearSession(w)
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprint(w, `{"error":"unauthorized"}`)
}
