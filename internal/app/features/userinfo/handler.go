// internal/app/features/userinfo/handler.go

// Package userinfo serves the current principal to the client
// (GET /api/user/me) and lets them change their own display name
// (POST /api/user/me). Anonymous GETs answer {"authenticated":false}
// rather than an error, so the client can render a login screen.
package userinfo

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	organizationstore "github.com/curasoft/famhub/internal/app/store/organizations"
	suborganizationstore "github.com/curasoft/famhub/internal/app/store/suborganizations"
	userstore "github.com/curasoft/famhub/internal/app/store/users"
	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/app/system/auth"
	"github.com/curasoft/famhub/internal/app/system/authz"
	"github.com/curasoft/famhub/internal/app/system/htmlsanitize"
	"github.com/curasoft/famhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users   *userstore.Store
	Orgs    *organizationstore.Store
	SubOrgs *suborganizationstore.Store
	ErrLog  *errorsfeature.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:   userstore.New(db),
		Orgs:    organizationstore.New(db),
		SubOrgs: suborganizationstore.New(db),
		ErrLog:  errLog,
		Log:     logger,
	}
}

type orgInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type mePayload struct {
	Authenticated    bool      `json:"authenticated"`
	ID               string    `json:"id,omitempty"`
	Name             string    `json:"name,omitempty"`
	Email            string    `json:"email,omitempty"`
	Role             string    `json:"role,omitempty"`
	Organization     *orgInfo  `json:"organization,omitempty"`
	SubOrganizations []orgInfo `json:"subOrganizations,omitempty"`
}

// Me handles GET /api/user/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		if auth.AuthFailed(r) {
			errorsfeature.RenderCode(w, apperrors.CodeInternal, "")
			return
		}
		writeJSON(w, mePayload{Authenticated: false})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	payload := mePayload{
		Authenticated: true,
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
	}

	if u.OrganizationID != "" {
		if oid, err := primitive.ObjectIDFromHex(u.OrganizationID); err == nil {
			org, err := h.Orgs.GetByID(ctx, oid)
			if err == nil {
				payload.Organization = &orgInfo{ID: org.ID.Hex(), Name: org.Name}
			} else if err != mongo.ErrNoDocuments {
				h.ErrLog.LogServerError(w, r, "userinfo: organization lookup failed", err)
				return
			}
		}
	}

	var subIDs []primitive.ObjectID
	for _, hex := range u.SubOrganizationIDs {
		if oid, err := primitive.ObjectIDFromHex(hex); err == nil {
			subIDs = append(subIDs, oid)
		}
	}
	subs, err := h.SubOrgs.GetByIDs(ctx, subIDs)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "userinfo: sub-organization lookup failed", err)
		return
	}
	for _, sub := range subs {
		payload.SubOrganizations = append(payload.SubOrganizations, orgInfo{ID: sub.ID.Hex(), Name: sub.Name})
	}

	writeJSON(w, payload)
}

type updateMePayload struct {
	Name string `json:"name"`
}

// UpdateMe handles POST /api/user/me: the signed-in user changes their own
// display name. The session re-fetches the user on every request, so the
// new name is visible immediately.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	p, err := authz.RequirePrincipal(r)
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}

	var payload updateMePayload
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

	if err := h.Users.UpdateName(ctx, p.ID, payload.Name); err != nil {
		h.ErrLog.LogServerError(w, r, "userinfo: name update failed", err)
		return
	}
	writeJSON(w, updateMePayload{Name: payload.Name})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
