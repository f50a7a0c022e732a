// internal/app/features/families/create.go
package families

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/app/system/authz"
	"github.com/curasoft/famhub/internal/app/system/htmlsanitize"
	"github.com/curasoft/famhub/internal/app/system/timeouts"
	"github.com/curasoft/famhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type childPayload struct {
	Name           string  `json:"name,omitempty"`
	DateOfBirth    *string `json:"dateOfBirth,omitempty"` // RFC 3339
	Gender         string  `json:"gender"`
	Disability     string  `json:"disability"`
	IsMultiple     bool    `json:"isMultiple"`
	IsPremature    bool    `json:"isPremature"`
	PsychDiagnosis bool    `json:"psychDiagnosis"`
}

type caregiverPayload struct {
	Name                string  `json:"name,omitempty"`
	DateOfBirth         *string `json:"dateOfBirth,omitempty"`
	Gender              string  `json:"gender"`
	Disability          string  `json:"disability"`
	MigrationBackground bool    `json:"migrationBackground"`
	Education           string  `json:"education"`
	PsychDiagnosis      bool    `json:"psychDiagnosis"`
}

type createPayload struct {
	BeginOfCare                 *string            `json:"beginOfCare"`
	EndOfCare                   *string            `json:"endOfCare,omitempty"`
	ChildrenInHousehold         int                `json:"childrenInHousehold"`
	Location                    string             `json:"location,omitempty"`
	OtherInstalledProfessionals string             `json:"otherInstalledProfessionals,omitempty"`
	ComingFromOptionID          *string            `json:"comingFromOptionId,omitempty"`
	ComingFromOtherValue        string             `json:"comingFromOtherValue,omitempty"`
	Children                    []childPayload     `json:"children"`
	Caregivers                  []caregiverPayload `json:"caregivers"`
}

// Create handles POST /api/families. beginOfCare is required; the creator
// and their organization come from the principal, never from the payload.
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

	if payload.BeginOfCare == nil || strings.TrimSpace(*payload.BeginOfCare) == "" {
		errorsfeature.Render(w, apperrors.MissingParameter("beginOfCare is required"))
		return
	}
	begin, err := time.Parse(time.RFC3339, *payload.BeginOfCare)
	if err != nil {
		errorsfeature.Render(w, apperrors.MissingParameter("beginOfCare must be RFC 3339"))
		return
	}

	f := models.Family{
		CreatedByID:           p.ID,
		CreatorOrganizationID: p.OrganizationID,
		BeginOfCare:           begin,

		ChildrenInHousehold:         payload.ChildrenInHousehold,
		Location:                    htmlsanitize.Strip(payload.Location),
		OtherInstalledProfessionals: htmlsanitize.Strip(payload.OtherInstalledProfessionals),
		ComingFromOtherValue:        htmlsanitize.Strip(payload.ComingFromOtherValue),
	}

	if payload.EndOfCare != nil && strings.TrimSpace(*payload.EndOfCare) != "" {
		end, err := time.Parse(time.RFC3339, *payload.EndOfCare)
		if err != nil {
			errorsfeature.Render(w, apperrors.MissingParameter("endOfCare must be RFC 3339"))
			return
		}
		f.EndOfCare = &end
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if payload.ComingFromOptionID != nil && *payload.ComingFromOptionID != "" {
		oid, err := primitive.ObjectIDFromHex(*payload.ComingFromOptionID)
		if err != nil {
			errorsfeature.Render(w, apperrors.MissingParameter("comingFromOptionId is not a valid id"))
			return
		}
		opt, err := h.ComingFrom.GetByID(ctx, oid)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "families: coming-from lookup failed", err)
			return
		}
		if opt == nil {
			errorsfeature.Render(w, apperrors.NotFound("coming-from option not found"))
			return
		}
		f.ComingFromOptionID = &oid
	}

	for _, cp := range payload.Children {
		c, err := buildChild(cp)
		if err != nil {
			errorsfeature.Render(w, err)
			return
		}
		f.Children = append(f.Children, c)
	}
	for _, cp := range payload.Caregivers {
		c, err := buildCaregiver(cp)
		if err != nil {
			errorsfeature.Render(w, err)
			return
		}
		f.Caregivers = append(f.Caregivers, c)
	}

	created, err := h.Families.Create(ctx, f)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "families: create failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func buildChild(cp childPayload) (models.Child, error) {
	dob, err := parseOptionalDate(cp.DateOfBirth, "child dateOfBirth")
	if err != nil {
		return models.Child{}, err
	}
	return models.Child{
		Name:           htmlsanitize.Strip(cp.Name),
		DateOfBirth:    dob,
		Gender:         parseGender(cp.Gender),
		Disability:     parseDisability(cp.Disability),
		IsMultiple:     cp.IsMultiple,
		IsPremature:    cp.IsPremature,
		PsychDiagnosis: cp.PsychDiagnosis,
	}, nil
}

func buildCaregiver(cp caregiverPayload) (models.Caregiver, error) {
	dob, err := parseOptionalDate(cp.DateOfBirth, "caregiver dateOfBirth")
	if err != nil {
		return models.Caregiver{}, err
	}
	return models.Caregiver{
		Name:                htmlsanitize.Strip(cp.Name),
		DateOfBirth:         dob,
		Gender:              parseGender(cp.Gender),
		Disability:          parseDisability(cp.Disability),
		MigrationBackground: cp.MigrationBackground,
		Education:           parseEducation(cp.Education),
		PsychDiagnosis:      cp.PsychDiagnosis,
	}, nil
}

func parseOptionalDate(raw *string, field string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, apperrors.MissingParameter(field + " must be RFC 3339")
	}
	return &t, nil
}

// Unknown enum inputs deliberately fall back to the "unknown" bucket instead
// of rejecting the submission: field workers often cannot supply them.
func parseGender(raw string) models.Gender {
	switch models.Gender(strings.ToLower(raw)) {
	case models.GenderMale, models.GenderFemale, models.GenderOther:
		return models.Gender(strings.ToLower(raw))
	}
	return models.GenderUnknown
}

func parseDisability(raw string) models.Disability {
	switch models.Disability(strings.ToLower(raw)) {
	case models.DisabilityYes, models.DisabilityNo, models.DisabilityImpending:
		return models.Disability(strings.ToLower(raw))
	}
	return models.DisabilityUnknown
}

func parseEducation(raw string) models.Education {
	switch models.Education(strings.ToLower(raw)) {
	case models.EducationNone, models.EducationLower, models.EducationMiddle,
		models.EducationAbitur, models.EducationVocational,
		models.EducationUniversity, models.EducationOther:
		return models.Education(strings.ToLower(raw))
	}
	return models.EducationUnknown
}
