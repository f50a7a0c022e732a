// internal/app/features/families/export.go
package families

import (
	"net/http"
	"time"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/app/system/authz"
	"github.com/curasoft/famhub/internal/app/system/flatten"
	"github.com/curasoft/famhub/internal/app/system/timeouts"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Export handles GET /api/families/export: every scope-visible family,
// flattened to the German-keyed export record.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	p, err := authz.RequirePrincipal(r)
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}

	exportID := uuid.NewString()
	log := h.Log.With(zap.String("export_id", exportID))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), log, "family export")
	defer cancel()

	families, err := h.scopedFamilies(ctx, p)
	if err != nil {
		if apperrors.CodeOf(err) != apperrors.CodeInternal {
			errorsfeature.Render(w, err)
			return
		}
		h.ErrLog.LogServerError(w, r, "families: export listing failed", err)
		return
	}

	full, err := h.Hydrator.FullFamilies(ctx, families)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "families: export hydration failed", err)
		return
	}

	now := time.Now().UTC()
	records := make([]map[string]any, 0, len(full))
	for _, ff := range full {
		records = append(records, flatten.FlattenFamily(ff, now))
	}

	log.Info("family export served", zap.Int("records", len(records)))
	writeJSON(w, http.StatusOK, records)
}
