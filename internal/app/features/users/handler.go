// internal/app/features/users/handler.go

// Package users serves the admin-only account management. Accounts are only
// ever created here (or provisioned at startup); the login flows never
// self-register users.
package users

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	"github.com/curasoft/famhub/internal/app/policy/accesspolicy"
	userstore "github.com/curasoft/famhub/internal/app/store/users"
	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/app/system/authz"
	"github.com/curasoft/famhub/internal/app/system/htmlsanitize"
	"github.com/curasoft/famhub/internal/app/system/timeouts"
	"github.com/curasoft/famhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users  *userstore.Store
	ErrLog *errorsfeature.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		ErrLog: errLog,
		Log:    logger,
	}
}

type createPayload struct {
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Role               string   `json:"role"`
	OrganizationID     *string  `json:"organizationId,omitempty"`
	SubOrganizationIDs []string `json:"subOrganizationIds,omitempty"`
}

// Create handles POST /api/users (admin only).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := authz.RequirePrincipal(r)
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}
	if err := accesspolicy.Authorize(p, accesspolicy.ActionCreateUser, accesspolicy.Target{}); err != nil {
		errorsfeature.Render(w, err)
		return
	}

	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		errorsfeature.Render(w, apperrors.MissingParameter("invalid JSON body"))
		return
	}
	payload.Name = strings.TrimSpace(htmlsanitize.Strip(payload.Name))
	if payload.Name == "" {
		errorsfeature.Render(w, apperrors.MissingParameter("name is required"))
		return
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if payload.Email == "" {
		errorsfeature.Render(w, apperrors.MissingParameter("email is required"))
		return
	}
	role := models.NormalizeRole(payload.Role)
	if role == models.RoleNone {
		errorsfeature.Render(w, apperrors.MissingParameter("role is not valid"))
		return
	}

	u := models.User{
		Name:  payload.Name,
		Email: payload.Email,
		Role:  role,
	}
	if payload.OrganizationID != nil && *payload.OrganizationID != "" {
		oid, err := primitive.ObjectIDFromHex(*payload.OrganizationID)
		if err != nil {
			errorsfeature.Render(w, apperrors.MissingParameter("organizationId is not a valid id"))
			return
		}
		u.OrganizationID = &oid
	}
	for _, raw := range payload.SubOrganizationIDs {
		sid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			errorsfeature.Render(w, apperrors.MissingParameter("subOrganizationIds contains an invalid id"))
			return
		}
		u.SubOrganizationIDs = append(u.SubOrganizationIDs, sid)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Users.Create(ctx, u)
	if err == userstore.ErrDuplicateUser {
		errorsfeature.Render(w, apperrors.DataIntegrity(err.Error()))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users: create failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
