// internal/app/features/login/handler.go

// Package login implements the bootstrap local login (POST /login/local).
// It exists for installations where Google OAuth is not configured yet: the
// startup hook provisions an admin account with a bcrypt password hash, and
// this endpoint opens a session for it. Regular users always come in
// through the identity provider.
package login

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	loginstore "github.com/curasoft/famhub/internal/app/store/logins"
	userstore "github.com/curasoft/famhub/internal/app/store/users"
	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/app/system/auth"
	"github.com/curasoft/famhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	Users      *userstore.Store
	Logins     *loginstore.Store
	SessionMgr *auth.SessionManager
	ErrLog     *errorsfeature.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      userstore.New(db),
		Logins:     loginstore.New(db),
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
	}
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeLocal handles POST /login/local. Failures are uniformly FORBIDDEN so
// the endpoint does not reveal which accounts exist.
func (h *Handler) ServeLocal(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		errorsfeature.Render(w, apperrors.MissingParameter("invalid JSON body"))
		return
	}
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if email == "" || payload.Password == "" {
		errorsfeature.Render(w, apperrors.MissingParameter("email and password are required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "login: user lookup failed", err)
		return
	}
	if user == nil || len(user.PassHash) == 0 {
		errorsfeature.Render(w, apperrors.Forbidden("invalid credentials"))
		return
	}
	if user.Status != "" && user.Status != "active" {
		errorsfeature.Render(w, apperrors.Forbidden("invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(payload.Password)); err != nil {
		h.Log.Info("local login rejected", zap.String("email", email))
		errorsfeature.Render(w, apperrors.Forbidden("invalid credentials"))
		return
	}

	if err := h.SessionMgr.SignIn(w, r, user.ID.Hex()); err != nil {
		h.ErrLog.LogServerError(w, r, "login: session sign-in failed", err)
		return
	}
	if err := h.Logins.Record(ctx, user.ID, "local"); err != nil {
		h.Log.Warn("login record failed", zap.Error(err))
	}

	h.Log.Info("local login completed", zap.String("user_id", user.ID.Hex()))
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":    user.ID.Hex(),
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}
