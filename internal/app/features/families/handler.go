// internal/app/features/families/handler.go

// Package families serves the household case records: the scoped grid
// listing, case creation, and the flattened JSON export.
package families

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	"github.com/curasoft/famhub/internal/app/policy/accesspolicy"
	comingfromstore "github.com/curasoft/famhub/internal/app/store/comingfrom"
	familystore "github.com/curasoft/famhub/internal/app/store/families"
	"github.com/curasoft/famhub/internal/app/store/queries/hydrate"
	"github.com/curasoft/famhub/internal/app/store/queries/scopequery"
	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/app/system/authz"
	"github.com/curasoft/famhub/internal/app/system/flatten"
	"github.com/curasoft/famhub/internal/app/system/timeouts"
	"github.com/curasoft/famhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Families   *familystore.Store
	ComingFrom *comingfromstore.Store
	Hydrator   *hydrate.Hydrator
	ErrLog     *errorsfeature.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, hydrator *hydrate.Hydrator, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Families:   familystore.New(db),
		ComingFrom: comingfromstore.New(db),
		Hydrator:   hydrator,
		ErrLog:     errLog,
		Log:        logger,
	}
}

// scopedFamilies computes the principal's family scope and loads the rows.
func (h *Handler) scopedFamilies(ctx context.Context, p accesspolicy.Principal) ([]models.Family, error) {
	pred, err := accesspolicy.Scope(p, accesspolicy.CollectionFamilies, accesspolicy.ScopeParams{})
	if err != nil {
		return nil, err
	}
	var filter bson.M
	filter, err = scopequery.Filter(pred, scopequery.Families)
	if err != nil {
		return nil, err
	}
	return h.Families.List(ctx, filter)
}

// gridRow is one row of the family grid. isClosed and the responsible-party
// columns are derived at read time.
type gridRow struct {
	ID                  string         `json:"id"`
	Number              int            `json:"number"`
	BeginOfCare         time.Time      `json:"beginOfCare"`
	EndOfCare           *time.Time     `json:"endOfCare,omitempty"`
	IsClosed            bool           `json:"isClosed"`
	Location            string         `json:"location,omitempty"`
	ChildrenInHousehold int            `json:"childrenInHousehold"`
	Children            int            `json:"children"`
	Caregivers          int            `json:"caregivers"`
	ComingFrom          string         `json:"comingFrom,omitempty"`
	Responsible         map[string]any `json:"responsible"`
}

// List handles GET /api/families.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p, err := authz.RequirePrincipal(r)
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	families, err := h.scopedFamilies(ctx, p)
	if err != nil {
		if apperrors.CodeOf(err) != apperrors.CodeInternal {
			errorsfeature.Render(w, err)
			return
		}
		h.ErrLog.LogServerError(w, r, "families: list failed", err)
		return
	}

	full, err := h.Hydrator.FullFamilies(ctx, families)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "families: hydration failed", err)
		return
	}

	now := time.Now().UTC()
	rows := make([]gridRow, 0, len(full))
	for _, ff := range full {
		rows = append(rows, gridRow{
			ID:                  ff.ID.Hex(),
			Number:              ff.Number,
			BeginOfCare:         ff.BeginOfCare,
			EndOfCare:           ff.EndOfCare,
			IsClosed:            ff.Closed(now),
			Location:            ff.Location,
			ChildrenInHousehold: ff.ChildrenInHousehold,
			Children:            len(ff.Children),
			Caregivers:          len(ff.Caregivers),
			ComingFrom:          comingFromValue(ff),
			Responsible:         flatten.ResponsibleParty(ff.CreatedBy, false),
		})
	}
	writeJSON(w, http.StatusOK, rows)
}

func comingFromValue(ff models.FullFamily) string {
	if ff.ComingFrom != nil && ff.ComingFrom.Value != "" {
		return ff.ComingFrom.Value
	}
	return ff.ComingFromOtherValue
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
