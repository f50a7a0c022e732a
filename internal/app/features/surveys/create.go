// internal/app/features/surveys/create.go
package surveys

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	"github.com/curasoft/famhub/internal/app/policy/accesspolicy"
	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/app/system/authz"
	"github.com/curasoft/famhub/internal/app/system/htmlsanitize"
	"github.com/curasoft/famhub/internal/app/system/timeouts"
	"github.com/curasoft/famhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type optionPayload struct {
	Value  string `json:"value"`
	IsOpen bool   `json:"isOpen,omitempty"`
}

type questionPayload struct {
	Type          string          `json:"type"`
	QuestionText  string          `json:"questionText"`
	SelectOptions []optionPayload `json:"selectOptions,omitempty"`
}

type createSurveyPayload struct {
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	OrganizationID *string           `json:"organizationId,omitempty"`
	Questions      []questionPayload `json:"questions"`
}

// Create handles POST /api/surveys (admin only). A missing organizationId
// makes the survey global.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := authz.RequirePrincipal(r)
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}
	if err := accesspolicy.Authorize(p, accesspolicy.ActionCreateSurvey, accesspolicy.Target{}); err != nil {
		errorsfeature.Render(w, err)
		return
	}

	var payload createSurveyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		errorsfeature.Render(w, apperrors.MissingParameter("invalid JSON body"))
		return
	}
	payload.Name = strings.TrimSpace(htmlsanitize.Strip(payload.Name))
	if payload.Name == "" {
		errorsfeature.Render(w, apperrors.MissingParameter("name is required"))
		return
	}

	sv := models.Survey{
		Name:        payload.Name,
		Description: htmlsanitize.Strip(payload.Description),
	}
	if payload.OrganizationID != nil && *payload.OrganizationID != "" {
		oid, err := primitive.ObjectIDFromHex(*payload.OrganizationID)
		if err != nil {
			errorsfeature.Render(w, apperrors.MissingParameter("organizationId is not a valid id"))
			return
		}
		sv.OrganizationID = &oid
	}

	for _, qp := range payload.Questions {
		q, err := buildQuestion(qp)
		if err != nil {
			errorsfeature.Render(w, err)
			return
		}
		sv.Questions = append(sv.Questions, q)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Surveys.Create(ctx, sv)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "surveys: create failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// buildQuestion validates one authored question. Options are only allowed
// on select and scale questions, and those require at least one; scale
// indexes are 1-based over the authored option order, so the order in the
// payload is kept as-is.
func buildQuestion(qp questionPayload) (models.Question, error) {
	text := strings.TrimSpace(htmlsanitize.Strip(qp.QuestionText))
	if text == "" {
		return models.Question{}, apperrors.MissingParameter("questionText is required")
	}

	qt := models.QuestionType(strings.ToLower(strings.TrimSpace(qp.Type)))
	switch qt {
	case models.QuestionText, models.QuestionBool, models.QuestionInt,
		models.QuestionNum, models.QuestionSelect, models.QuestionDate,
		models.QuestionScale:
	default:
		return models.Question{}, apperrors.MissingParameter("unsupported question type: " + qp.Type)
	}

	q := models.Question{Type: qt, QuestionText: text}

	withOptions := qt == models.QuestionSelect || qt == models.QuestionScale
	if !withOptions && len(qp.SelectOptions) > 0 {
		return models.Question{}, apperrors.MissingParameter("selectOptions are only valid on select and scale questions")
	}
	if withOptions {
		if len(qp.SelectOptions) == 0 {
			return models.Question{}, apperrors.MissingParameter("select and scale questions need selectOptions")
		}
		for _, op := range qp.SelectOptions {
			value := strings.TrimSpace(htmlsanitize.Strip(op.Value))
			if value == "" {
				return models.Question{}, apperrors.MissingParameter("selectOptions must carry a value")
			}
			if op.IsOpen && qt != models.QuestionSelect {
				return models.Question{}, apperrors.MissingParameter("open options are only valid on select questions")
			}
			q.SelectOptions = append(q.SelectOptions, models.SelectOption{Value: value, IsOpen: op.IsOpen})
		}
	}
	return q, nil
}
