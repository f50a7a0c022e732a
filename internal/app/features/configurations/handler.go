// internal/app/features/configurations/handler.go

// Package configurations serves the admin-managed settings records under
// /api/config. Reading is open to everyone including anonymous visitors
// (the client needs e.g. the login mode before a session exists); writes
// are admin-only via accesspolicy.Authorize.
package configurations

import (
	"context"
	"encoding/json"
	"net/http"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	"github.com/curasoft/famhub/internal/app/policy/accesspolicy"
	configurationstore "github.com/curasoft/famhub/internal/app/store/configurations"
	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/app/system/authz"
	"github.com/curasoft/famhub/internal/app/system/htmlsanitize"
	"github.com/curasoft/famhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Configs *configurationstore.Store
	ErrLog  *errorsfeature.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Configs: configurationstore.New(db),
		ErrLog:  errLog,
		Log:     logger,
	}
}

// List handles GET /api/config. The configuration scope is unrestricted,
// including for anonymous principals; Scope is still consulted so the rule
// lives in one place.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p, err := authz.Principal(r)
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}
	if _, err := accesspolicy.Scope(p, accesspolicy.CollectionConfigurations, accesspolicy.ScopeParams{}); err != nil {
		errorsfeature.Render(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	configs, err := h.Configs.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "configurations: list failed", err)
		return
	}
	writeJSON(w, http.StatusOK, configs)
}

// Get handles GET /api/config/{name}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		errorsfeature.Render(w, apperrors.MissingParameter("name is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cfg, err := h.Configs.GetByName(ctx, name)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "configurations: get failed", err)
		return
	}
	if cfg == nil {
		errorsfeature.Render(w, apperrors.NotFound("configuration not found"))
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

type upsertPayload struct {
	Name  string         `json:"name"`
	Value map[string]any `json:"value"`
}

// Create handles POST /api/config (admin only). The body carries both the
// name and the value document.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload upsertPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		errorsfeature.Render(w, apperrors.MissingParameter("invalid JSON body"))
		return
	}
	h.upsert(w, r, payload.Name, payload.Value)
}

// Upsert handles POST /api/config/{name} (admin only).
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	var payload upsertPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		errorsfeature.Render(w, apperrors.MissingParameter("invalid JSON body"))
		return
	}
	h.upsert(w, r, chi.URLParam(r, "name"), payload.Value)
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request, name string, value map[string]any) {
	p, err := authz.Principal(r)
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}
	if err := accesspolicy.Authorize(p, accesspolicy.ActionUpsertConfiguration, accesspolicy.Target{}); err != nil {
		errorsfeature.Render(w, err)
		return
	}
	if name == "" {
		errorsfeature.Render(w, apperrors.MissingParameter("name is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cfg, err := h.Configs.Upsert(ctx, name, sanitizeValue(value))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "configurations: upsert failed", err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// Delete handles DELETE /api/config/{name} (admin only).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	p, err := authz.Principal(r)
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}
	if err := accesspolicy.Authorize(p, accesspolicy.ActionDeleteConfiguration, accesspolicy.Target{}); err != nil {
		errorsfeature.Render(w, err)
		return
	}

	name := chi.URLParam(r, "name")
	if name == "" {
		errorsfeature.Render(w, apperrors.MissingParameter("name is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	deleted, err := h.Configs.DeleteByName(ctx, name)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "configurations: delete failed", err)
		return
	}
	if !deleted {
		errorsfeature.Render(w, apperrors.NotFound("configuration not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// sanitizeValue strips markup from all string leaves of the value document.
func sanitizeValue(value map[string]any) map[string]any {
	if value == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(value))
	for k, v := range value {
		switch tv := v.(type) {
		case string:
			out[k] = htmlsanitize.Strip(tv)
		case map[string]any:
			out[k] = sanitizeValue(tv)
		default:
			out[k] = v
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
