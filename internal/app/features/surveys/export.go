// internal/app/features/surveys/export.go
package surveys

import (
	"context"
	"net/http"
	"time"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	"github.com/curasoft/famhub/internal/app/system/authz"
	"github.com/curasoft/famhub/internal/app/system/flatten"
	"github.com/curasoft/famhub/internal/app/system/timeouts"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// exportConfigName is the configuration record consulted for export options.
const exportConfigName = "export_qualified_keys"

// ExportResponses handles GET /api/surveys/{surveyID}/responses/export:
// every scope-visible response of the survey, flattened to the German-keyed
// export records.
func (h *Handler) ExportResponses(w http.ResponseWriter, r *http.Request) {
	p, err := authz.RequirePrincipal(r)
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}

	exportID := uuid.NewString()
	log := h.Log.With(zap.String("export_id", exportID))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), log, "response export")
	defer cancel()

	survey, filter, err := h.loadScopedSurvey(ctx, r, p)
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}

	responses, err := h.Responses.ListBySurvey(ctx, survey.ID, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "surveys: export listing failed", err)
		return
	}

	full, err := h.Hydrator.FullResponses(ctx, survey, responses)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "surveys: export hydration failed", err)
		return
	}

	opts, err := h.exportOptions(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "surveys: export options lookup failed", err)
		return
	}

	now := time.Now().UTC()
	records := make([]map[string]any, 0, len(full))
	for _, fr := range full {
		rec, err := flatten.FlattenResponse(fr, now, opts)
		if err != nil {
			log.Warn("response flattening failed",
				zap.String("response_id", fr.ID.Hex()),
				zap.Error(err))
			errorsfeature.Render(w, err)
			return
		}
		records = append(records, rec)
	}

	log.Info("response export served",
		zap.String("survey_id", survey.ID.Hex()),
		zap.Int("records", len(records)))
	writeJSON(w, http.StatusOK, records)
}

// exportOptions reads the export tuning from the configurations collection.
// Absence of the record means defaults.
func (h *Handler) exportOptions(ctx context.Context) (flatten.Options, error) {
	cfg, err := h.Configs.GetByName(ctx, exportConfigName)
	if err != nil {
		return flatten.Options{}, err
	}
	if cfg == nil {
		return flatten.Options{}, nil
	}
	enabled, _ := cfg.Value["enabled"].(bool)
	return flatten.Options{QualifyDuplicateKeys: enabled}, nil
}
