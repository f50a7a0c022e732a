// internal/app/system/auth/auth.go

// Package auth manages cookie sessions and the per-request current user.
//
// Sessions only store the user's id. On every request LoadSessionUser
// fetches the user record fresh through the configured UserFetcher, so role
// changes and disabled accounts take effect immediately and the principal is
// never cached across requests.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
)

// SessionUser is the request-scoped identity injected into the context.
// IDs are hex strings; the authz layer converts them to ObjectIDs.
type SessionUser struct {
	ID                 string
	Name               string
	Email              string
	Role               string
	OrganizationID     string
	SubOrganizationIDs []string
}

// UserFetcher loads fresh user data for an authenticated session. A nil
// result means the user no longer exists or may not sign in.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *SessionUser
}

type ctxKey string

const (
	currentUserKey ctxKey = "currentUser"
	authFailedKey  ctxKey = "authFailed"
)

// SessionManager owns the cookie store and the session middleware.
type SessionManager struct {
	store   *sessions.CookieStore
	name    string
	log     *zap.Logger
	fetcher UserFetcher
}

// NewSessionManager builds a cookie-backed session manager. The key must be
// at least 32 random characters in production; securecookie derives the
// HMAC from it.
func NewSessionManager(sessionKey, sessionName, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: sessionName, log: logger}, nil
}

// SetUserFetcher wires the per-request user lookup.
func (m *SessionManager) SetUserFetcher(f UserFetcher) { m.fetcher = f }

// SignIn marks the session authenticated for the given user id.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = userID
	return sess.Save(r, w)
}

// SignOut clears the session.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Options.MaxAge = -1
	sess.Values = map[interface{}]interface{}{}
	return sess.Save(r, w)
}

// LoadSessionUser injects the current user into the request context when a
// valid session is present. When the session exists but the user record
// cannot be fetched, the request is marked auth-failed so downstream
// principal resolution reports INTERNAL_ERROR instead of treating the
// request as anonymous.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := m.store.Get(r, m.name)

		isAuth, _ := sess.Values[isAuthKey].(bool)
		if !isAuth {
			next.ServeHTTP(w, r)
			return
		}

		userID, _ := sess.Values[userIDKey].(string)
		if userID == "" || m.fetcher == nil {
			r = withAuthFailed(r)
			next.ServeHTTP(w, r)
			return
		}

		u := m.fetcher.FetchUser(r.Context(), userID)
		if u == nil {
			m.log.Warn("session references unknown user", zap.String("user_id", userID))
			r = withAuthFailed(r)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireSignedIn rejects requests without a current user with a plain 401.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects signed-in users whose role is not in the allowed set.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CurrentUser returns the user injected by LoadSessionUser, if any.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// AuthFailed reports whether an authenticated session was present but the
// user record could not be resolved.
func AuthFailed(r *http.Request) bool {
	failed, _ := r.Context().Value(authFailedKey).(bool)
	return failed
}

// WithTestUser injects a user directly for handler tests, bypassing the
// session middleware.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func withAuthFailed(r *http.Request) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), authFailedKey, true))
}
