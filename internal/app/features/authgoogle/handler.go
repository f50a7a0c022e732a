// internal/app/features/authgoogle/handler.go

// Package authgoogle implements the Google OAuth login flow. Identity is
// handled entirely by Google; this package only matches the returned
// identity against existing user records (by linked auth id, then by
// email) and opens a session. There is no self-registration.
package authgoogle

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	loginstore "github.com/curasoft/famhub/internal/app/store/logins"
	userstore "github.com/curasoft/famhub/internal/app/store/users"
	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/app/system/auth"
	"github.com/curasoft/famhub/internal/app/system/timeouts"
	"github.com/gorilla/securecookie"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const stateCookie = "famhub_oauth_state"

// Handler handles Google OAuth authentication.
type Handler struct {
	Users      *userstore.Store
	Logins     *loginstore.Store
	SessionMgr *auth.SessionManager
	ErrLog     *errorsfeature.ErrorLogger
	Log        *zap.Logger

	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g. "https://famhub.example.org/auth/google/callback"

	sc     *securecookie.SecureCookie
	secure bool
}

// NewHandler creates a Google OAuth handler. sessionKey signs the short-lived
// state cookie that ties the callback to the browser that started the flow.
func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *errorsfeature.ErrorLogger,
	clientID, clientSecret, baseURL string, secure bool, logger *zap.Logger, sessionKey string) *Handler {
	return &Handler{
		Users:        userstore.New(db),
		Logins:       loginstore.New(db),
		SessionMgr:   sessionMgr,
		ErrLog:       errLog,
		Log:          logger,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  strings.TrimRight(baseURL, "/") + "/auth/google/callback",
		sc:           securecookie.New([]byte(sessionKey), nil),
		secure:       secure,
	}
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured reports whether Google OAuth credentials are present.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// ServeLogin handles GET /auth/google: redirects to Google's consent screen
// with a signed single-use state.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		errorsfeature.Render(w, apperrors.NotFound("google login is not configured"))
		return
	}

	state := base64.RawURLEncoding.EncodeToString(securecookie.GenerateRandomKey(32))
	encoded, err := h.sc.Encode(stateCookie, state)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "authgoogle: state encoding failed", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    encoded,
		Path:     "/auth/google",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.oauth2Config().AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// ServeCallback handles GET /auth/google/callback.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth denied",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		errorsfeature.Render(w, apperrors.Forbidden("google login was denied"))
		return
	}

	if err := h.checkState(r); err != nil {
		h.Log.Warn("Google OAuth state check failed", zap.Error(err))
		errorsfeature.Render(w, apperrors.Forbidden("invalid login state"))
		return
	}
	// State is single-use.
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Path: "/auth/google", MaxAge: -1})

	code := r.URL.Query().Get("code")
	if code == "" {
		errorsfeature.Render(w, apperrors.MissingParameter("code is required"))
		return
	}

	token, err := h.oauth2Config().Exchange(r.Context(), code)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "authgoogle: code exchange failed", err)
		return
	}

	info, err := fetchGoogleUserInfo(r.Context(), token)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "authgoogle: userinfo fetch failed", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByAuthID(ctx, info.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "authgoogle: user lookup failed", err)
		return
	}
	if user == nil {
		// First Google login of a provisioned account: match by email and
		// link the Google subject id.
		user, err = h.Users.GetByEmail(ctx, strings.ToLower(info.Email))
		if err != nil {
			h.ErrLog.LogServerError(w, r, "authgoogle: email lookup failed", err)
			return
		}
		if user != nil {
			if err := h.Users.LinkAuthID(ctx, user.ID, info.ID); err != nil {
				h.ErrLog.LogServerError(w, r, "authgoogle: auth id link failed", err)
				return
			}
		}
	}
	if user == nil {
		h.Log.Info("Google login for unknown account", zap.String("email", info.Email))
		errorsfeature.Render(w, apperrors.Forbidden("no account for this google identity"))
		return
	}
	if user.Status != "" && user.Status != "active" {
		errorsfeature.Render(w, apperrors.Forbidden("account is disabled"))
		return
	}

	if err := h.SessionMgr.SignIn(w, r, user.ID.Hex()); err != nil {
		h.ErrLog.LogServerError(w, r, "authgoogle: session sign-in failed", err)
		return
	}
	if err := h.Logins.Record(ctx, user.ID, "google"); err != nil {
		h.Log.Warn("login record failed", zap.Error(err))
	}

	h.Log.Info("google login completed", zap.String("user_id", user.ID.Hex()))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) checkState(r *http.Request) error {
	state := r.URL.Query().Get("state")
	if state == "" {
		return fmt.Errorf("missing state parameter")
	}
	c, err := r.Cookie(stateCookie)
	if err != nil {
		return fmt.Errorf("missing state cookie")
	}
	var stored string
	if err := h.sc.Decode(stateCookie, c.Value, &stored); err != nil {
		return fmt.Errorf("state cookie decode: %w", err)
	}
	if stored != state {
		return fmt.Errorf("state mismatch")
	}
	return nil
}

// googleUserInfo is the subset of Google's userinfo payload we consume.
type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	return &info, nil
}
