// internal/app/features/comingfrom/handler.go

// Package comingfrom serves the "Zugang über" option list that the family
// intake form offers as a picker.
package comingfrom

import (
	"context"
	"encoding/json"
	"net/http"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	comingfromstore "github.com/curasoft/famhub/internal/app/store/comingfrom"
	"github.com/curasoft/famhub/internal/app/system/authz"
	"github.com/curasoft/famhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Options *comingfromstore.Store
	ErrLog  *errorsfeature.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Options: comingfromstore.New(db),
		ErrLog:  errLog,
		Log:     logger,
	}
}

// List handles GET /api/comingFrom. Any signed-in user may read the list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if _, err := authz.RequirePrincipal(r); err != nil {
		errorsfeature.Render(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	opts, err := h.Options.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "comingfrom: list failed", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(opts)
}
