// internal/app/features/surveys/responses.go
package surveys

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	"github.com/curasoft/famhub/internal/app/policy/accesspolicy"
	"github.com/curasoft/famhub/internal/app/store/queries/scopequery"
	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/app/system/authz"
	"github.com/curasoft/famhub/internal/app/system/htmlsanitize"
	"github.com/curasoft/famhub/internal/app/system/timeouts"
	"github.com/curasoft/famhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// loadScopedSurvey resolves {surveyID}, checks survey-level access, and
// computes the response scope filter. Shared by the listing, submission, and
// export handlers.
func (h *Handler) loadScopedSurvey(ctx context.Context, r *http.Request, p accesspolicy.Principal) (*models.Survey, bson.M, error) {
	surveyID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "surveyID"))
	if err != nil {
		return nil, nil, apperrors.NotFound("survey not found")
	}

	survey, err := h.Surveys.GetByID(ctx, surveyID)
	if err != nil {
		return nil, nil, apperrors.Internal("survey lookup failed: " + err.Error())
	}
	if err := accesspolicy.CanAccessSurvey(p, survey); err != nil {
		return nil, nil, err
	}

	pred, err := accesspolicy.Scope(p, accesspolicy.CollectionResponses, accesspolicy.ScopeParams{})
	if err != nil {
		return nil, nil, err
	}
	filter, err := scopequery.Filter(pred, scopequery.Responses)
	if err != nil {
		return nil, nil, apperrors.Internal("scope translation failed: " + err.Error())
	}
	return survey, filter, nil
}

// ListResponses handles GET /api/surveys/{surveyID}/responses.
func (h *Handler) ListResponses(w http.ResponseWriter, r *http.Request) {
	p, err := authz.RequirePrincipal(r)
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	survey, filter, err := h.loadScopedSurvey(ctx, r, p)
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}

	responses, err := h.Responses.ListBySurvey(ctx, survey.ID, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "surveys: response listing failed", err)
		return
	}
	writeJSON(w, http.StatusOK, responses)
}

// answerPayload is one submitted answer. Exactly the slot matching the
// question's type must be populated.
type answerPayload struct {
	QuestionID  string   `json:"questionId"`
	Text        *string  `json:"text,omitempty"`
	Bool        *bool    `json:"bool,omitempty"`
	Int         *int64   `json:"int,omitempty"`
	Num         *float64 `json:"num,omitempty"`
	Date        *string  `json:"date,omitempty"` // RFC 3339
	Select      []string `json:"select,omitempty"`
	OtherValues []struct {
		SelectOptionID string `json:"selectOptionId"`
		Value          string `json:"value"`
	} `json:"otherValues,omitempty"`
}

type createResponsePayload struct {
	Name        string          `json:"name,omitempty"`
	FamilyID    *string         `json:"familyId,omitempty"`
	ChildID     *string         `json:"childId,omitempty"`
	CaregiverID *string         `json:"caregiverId,omitempty"`
	Answers     []answerPayload `json:"answers"`
}

// CreateResponse handles POST /api/surveys/{surveyID}/responses. The author
// is always the principal; an author in the payload would be ignored.
func (h *Handler) CreateResponse(w http.ResponseWriter, r *http.Request) {
	p, err := authz.RequirePrincipal(r)
	if err != nil {
		errorsfeature.Render(w, err)
		return
	}
	if err := accesspolicy.Authorize(p, accesspolicy.ActionCreateResponse, accesspolicy.Target{}); err != nil {
		errorsfeature.Render(w, err)
		return
	}

	var payload createResponsePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		errorsfeature.Render(w, apperrors.MissingParameter("invalid JSON body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	surveyID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "surveyID"))
	if err != nil {
		errorsfeature.Render(w, apperrors.NotFound("survey not found"))
		return
	}
	survey, err := h.Surveys.GetByID(ctx, surveyID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "surveys: survey lookup failed", err)
		return
	}
	if err := accesspolicy.CanAccessSurvey(p, survey); err != nil {
		errorsfeature.Render(w, err)
		return
	}

	answers := make([]models.Answer, 0, len(payload.Answers))
	for _, ap := range payload.Answers {
		a, err := buildAnswer(survey, ap)
		if err != nil {
			errorsfeature.Render(w, err)
			return
		}
		answers = append(answers, a)
	}

	resp := models.Response{
		Name:     htmlsanitize.Strip(payload.Name),
		SurveyID: survey.ID,
		UserID:   p.ID,
		Answers:  answers,

		UserOrganizationID:   p.OrganizationID,
		SurveyOrganizationID: survey.OrganizationID,
	}
	if resp.FamilyID, err = optionalID(payload.FamilyID, "familyId"); err != nil {
		errorsfeature.Render(w, err)
		return
	}
	if resp.ChildID, err = optionalID(payload.ChildID, "childId"); err != nil {
		errorsfeature.Render(w, err)
		return
	}
	if resp.CaregiverID, err = optionalID(payload.CaregiverID, "caregiverId"); err != nil {
		errorsfeature.Render(w, err)
		return
	}

	created, err := h.Responses.Create(ctx, resp)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "surveys: response create failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// buildAnswer validates one submitted answer against its question and builds
// the tagged value via the model constructors.
func buildAnswer(survey *models.Survey, ap answerPayload) (models.Answer, error) {
	qid, err := primitive.ObjectIDFromHex(ap.QuestionID)
	if err != nil {
		return models.Answer{}, apperrors.MissingParameter("questionId is not a valid id")
	}
	q, ok := survey.QuestionByID(qid)
	if !ok {
		return models.Answer{}, apperrors.DataIntegrity("answer references unknown question " + ap.QuestionID)
	}

	var value models.AnswerValue
	switch q.Type {
	case models.QuestionText:
		if ap.Text == nil {
			return models.Answer{}, apperrors.MissingParameter("text answer requires a text value")
		}
		value = models.TextValue(htmlsanitize.Strip(*ap.Text))

	case models.QuestionBool:
		if ap.Bool == nil {
			return models.Answer{}, apperrors.MissingParameter("bool answer requires a bool value")
		}
		value = models.BoolValue(*ap.Bool)

	case models.QuestionInt:
		if ap.Int == nil {
			return models.Answer{}, apperrors.MissingParameter("int answer requires an int value")
		}
		value = models.IntValue(*ap.Int)

	case models.QuestionNum:
		if ap.Num == nil {
			return models.Answer{}, apperrors.MissingParameter("num answer requires a num value")
		}
		value = models.NumValue(*ap.Num)

	case models.QuestionDate:
		if ap.Date == nil {
			return models.Answer{}, apperrors.MissingParameter("date answer requires a date value")
		}
		t, err := time.Parse(time.RFC3339, *ap.Date)
		if err != nil {
			return models.Answer{}, apperrors.MissingParameter("date must be RFC 3339")
		}
		value = models.DateValue(t)

	case models.QuestionSelect, models.QuestionScale:
		ids := make([]primitive.ObjectID, 0, len(ap.Select))
		for _, raw := range ap.Select {
			oid, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				return models.Answer{}, apperrors.MissingParameter("select contains an invalid option id")
			}
			if _, ok := optionByID(q, oid); !ok {
				return models.Answer{}, apperrors.DataIntegrity("selected option does not belong to the question")
			}
			ids = append(ids, oid)
		}
		var others []models.SelectOtherValue
		for _, ov := range ap.OtherValues {
			oid, err := primitive.ObjectIDFromHex(ov.SelectOptionID)
			if err != nil {
				return models.Answer{}, apperrors.MissingParameter("otherValues contains an invalid option id")
			}
			others = append(others, models.SelectOtherValue{
				SelectOptionID: oid,
				Value:          htmlsanitize.Strip(ov.Value),
			})
		}
		value = models.SelectValue(ids, others)

	default:
		return models.Answer{}, apperrors.DataIntegrity("question has unsupported type " + string(q.Type))
	}

	return models.Answer{QuestionID: q.ID, Value: value}, nil
}

func optionByID(q models.Question, id primitive.ObjectID) (models.SelectOption, bool) {
	for _, opt := range q.SelectOptions {
		if opt.ID == id {
			return opt, true
		}
	}
	return models.SelectOption{}, false
}

func optionalID(raw *string, field string) (*primitive.ObjectID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	oid, err := primitive.ObjectIDFromHex(*raw)
	if err != nil {
		return nil, apperrors.MissingParameter(field + " is not a valid id")
	}
	return &oid, nil
}
