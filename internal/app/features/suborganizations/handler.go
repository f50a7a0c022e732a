// internal/app/features/suborganizations/handler.go

// Package suborganizations serves /api/subOrganizations. Listing requires
// an explicit ?organizationId= filter; creation goes through
// accesspolicy.Authorize so the org-ownership rule stays in the policy.
package suborganizations

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	"github.com/curasoft/famhub/internal/app/policy/accesspolicy"
	"github.com/curasoft/famhub/internal/app/store/queries/scopequery"
	suborganizationstore "github.com/curasoft/famhub/internal/app/store/suborganizations"
	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/app/system/authz"
	"github.com/curasoft/famhub/internal/app/system/htmlsanitize"
	"github.com/curasoft/famhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	SubOrgs *suborganizationstore.Store
	ErrLog  *errorsfeature.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		SubOrgs: suborganizationstore.New(db),
		ErrLog:  errLog,
		Log:     logger,
	}
}

// List handles GET /api/subOrganizations?organizationId=…
//
// A missing organizationId answers MISSING_PARAMETER even for admins: an
// unqualified listing across all organizations is a caller error.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p, err := authz.Principal(r)
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}

	params := accesspolicy.ScopeParams{}
	if raw := strings.TrimSpace(r.URL.Query().Get("organizationId")); raw != "" {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			errorsfeature.Render(w, apperrors.MissingParameter("organizationId is not a valid id"))
			return
		}
		params.OrganizationID = &oid
	}

	pred, err := accesspolicy.Scope(p, accesspolicy.CollectionSubOrganizations, params)
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}
	filter, err := scopequery.Filter(pred, scopequery.SubOrganizations)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "suborganizations: scope translation failed", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	subs, err := h.SubOrgs.List(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "suborganizations: list failed", err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

type createPayload struct {
	Name           string `json:"name"`
	OrganizationID string `json:"organizationId"`
}

// Create handles POST /api/subOrganizations.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := authz.RequirePrincipal(r)
	if err != nil {
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
	if payload.OrganizationID == "" {
		errorsfeature.Render(w, apperrors.MissingParameter("organizationId is required"))
		return
	}
	orgID, err := primitive.ObjectIDFromHex(payload.OrganizationID)
	if err != nil {
		errorsfeature.Render(w, apperrors.MissingParameter("organizationId is not a valid id"))
		return
	}

	if err := accesspolicy.Authorize(p, accesspolicy.ActionCreateSubOrganization, accesspolicy.Target{OrganizationID: &orgID}); err != nil {
		errorsfeature.Render(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sub, err := h.SubOrgs.Create(ctx, payload.Name, orgID)
	if err == suborganizationstore.ErrDuplicateName {
		errorsfeature.Render(w, apperrors.DataIntegrity(err.Error()))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "suborganizations: create failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
