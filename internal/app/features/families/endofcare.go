// internal/app/features/families/endofcare.go
package families

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	"github.com/curasoft/famhub/internal/app/policy/accesspolicy"
	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/app/system/authz"
	"github.com/curasoft/famhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type endOfCarePayload struct {
	// A null (or absent) endOfCare reopens the case.
	EndOfCare *string `json:"endOfCare"`
}

// SetEndOfCare handles POST /api/families/{familyID}/endOfCare: closing a
// case, or reopening it with a null date. Updates are allowed exactly where
// the principal's record scope grants visibility; anything else is 404.
func (h *Handler) SetEndOfCare(w http.ResponseWriter, r *http.Request) {
	p, err := authz.RequirePrincipal(r)
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "familyID"))
	if err != nil {
		errorsfeature.Render(w, apperrors.NotFound("family not found"))
		return
	}

	var payload endOfCarePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		errorsfeature.Render(w, apperrors.MissingParameter("invalid JSON body"))
		return
	}
	var end *time.Time
	if payload.EndOfCare != nil && strings.TrimSpace(*payload.EndOfCare) != "" {
		t, err := time.Parse(time.RFC3339, *payload.EndOfCare)
		if err != nil {
			errorsfeature.Render(w, apperrors.MissingParameter("endOfCare must be RFC 3339"))
			return
		}
		end = &t
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	f, err := h.Families.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "families: load failed", err)
		return
	}
	if f == nil {
		errorsfeature.Render(w, apperrors.NotFound("family not found"))
		return
	}

	row := accesspolicy.Row{
		OwnerID:               f.CreatedByID,
		OwnerOrganizationID:   f.CreatorOrganizationID,
		SubjectOrganizationID: f.CreatorOrganizationID,
	}
	if err := accesspolicy.AuthorizeRecordUpdate(p, row); err != nil {
		errorsfeature.Render(w, err)
		return
	}

	if err := h.Families.SetEndOfCare(ctx, id, end); err != nil {
		h.ErrLog.LogServerError(w, r, "families: end-of-care update failed", err)
		return
	}
	f.EndOfCare = end
	writeJSON(w, http.StatusOK, f)
}
