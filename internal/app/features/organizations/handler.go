// internal/app/features/organizations/handler.go

// Package organizations serves the organization listing for admin and
// controller grids and the admin-only organization creation.
package organizations

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	"github.com/curasoft/famhub/internal/app/policy/accesspolicy"
	organizationstore "github.com/curasoft/famhub/internal/app/store/organizations"
	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/app/system/authz"
	"github.com/curasoft/famhub/internal/app/system/htmlsanitize"
	"github.com/curasoft/famhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Orgs   *organizationstore.Store
	ErrLog *errorsfeature.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Orgs:   organizationstore.New(db),
		ErrLog: errLog,
		Log:    logger,
	}
}

// List handles GET /api/organizations. Who may see the grid is decided by
// the access policy, not here.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p, err := authz.RequirePrincipal(r)
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}
	if _, err := accesspolicy.Scope(p, accesspolicy.CollectionOrganizations, accesspolicy.ScopeParams{}); err != nil {
		errorsfeature.Render(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	orgs, err := h.Orgs.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "organizations: list failed", err)
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

type createPayload struct {
	Name string `json:"name"`
}

// Create handles POST /api/organizations (admin only).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := authz.RequirePrincipal(r)
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}
	if err := accesspolicy.Authorize(p, accesspolicy.ActionCreateOrganization, accesspolicy.Target{}); err != nil {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := h.Orgs.Create(ctx, payload.Name)
	if err == organizationstore.ErrDuplicateName {
		errorsfeature.Render(w, apperrors.DataIntegrity(err.Error()))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "organizations: create failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, org)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
