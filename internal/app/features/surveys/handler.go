// internal/app/features/surveys/handler.go

// Package surveys serves the survey listing and the per-survey response
// endpoints: scoped grids, submission, and the flattened JSON export.
package surveys

import (
	"context"
	"encoding/json"
	"net/http"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	"github.com/curasoft/famhub/internal/app/policy/accesspolicy"
	configurationstore "github.com/curasoft/famhub/internal/app/store/configurations"
	"github.com/curasoft/famhub/internal/app/store/queries/hydrate"
	"github.com/curasoft/famhub/internal/app/store/queries/scopequery"
	responsestore "github.com/curasoft/famhub/internal/app/store/responses"
	surveystore "github.com/curasoft/famhub/internal/app/store/surveys"
	"github.com/curasoft/famhub/internal/app/system/authz"
	"github.com/curasoft/famhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Surveys   *surveystore.Store
	Responses *responsestore.Store
	Configs   *configurationstore.Store
	Hydrator  *hydrate.Hydrator
	ErrLog    *errorsfeature.ErrorLogger
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, hydrator *hydrate.Hydrator, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Surveys:   surveystore.New(db),
		Responses: responsestore.New(db),
		Configs:   configurationstore.New(db),
		Hydrator:  hydrator,
		ErrLog:    errLog,
		Log:       logger,
	}
}

// List handles GET /api/surveys: surveys visible to the principal (global
// ones plus those of the principal's organization).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p, err := authz.Principal(r)
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}

	pred, err := accesspolicy.Scope(p, accesspolicy.CollectionSurveys, accesspolicy.ScopeParams{})
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}
	filter, err := scopequery.Filter(pred, scopequery.Surveys)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "surveys: scope translation failed", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	surveys, err := h.Surveys.List(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "surveys: list failed", err)
		return
	}
	writeJSON(w, http.StatusOK, surveys)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
