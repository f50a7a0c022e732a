package surveys

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/domain/models"
	"github.com/curasoft/famhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler() *Handler {
	return &Handler{
		ErrLog: errorsfeature.NewErrorLogger(zap.NewNop()),
		Log:    zap.NewNop(),
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return body.Error
}

func TestListResponses_AnonymousForbidden(t *testing.T) {
	h := newTestHandler()
	req := testutil.NewRequest(http.MethodGet, "/api/surveys/abc/responses")
	rec := httptest.NewRecorder()

	h.ListResponses(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestListResponses_MalformedSurveyIDIsNotFound(t *testing.T) {
	h := newTestHandler()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/surveys/not-an-id/responses", testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "surveyID", "not-an-id")
	rec := httptest.NewRecorder()

	h.ListResponses(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := decodeError(t, rec); got != string(apperrors.CodeNotFound) {
		t.Errorf("error = %q, want NOT_FOUND", got)
	}
}

func TestCreateResponse_MalformedSurveyIDIsNotFound(t *testing.T) {
	h := newTestHandler()
	org := primitive.NewObjectID()
	body := strings.NewReader(`{"answers":[]}`)
	req := testutil.NewAuthenticatedJSONRequest(http.MethodPost, "/api/surveys/not-an-id/responses", body, testutil.FieldUser(org))
	req = testutil.WithChiURLParam(req, "surveyID", "not-an-id")
	rec := httptest.NewRecorder()

	h.CreateResponse(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCreateResponse_AnonymousForbidden(t *testing.T) {
	h := newTestHandler()
	body := strings.NewReader(`{"answers":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/surveys/abc/responses", body)
	rec := httptest.NewRecorder()

	h.CreateResponse(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func testSurvey() *models.Survey {
	return &models.Survey{
		ID: primitive.NewObjectID(),
		Questions: []models.Question{
			{ID: primitive.NewObjectID(), Type: models.QuestionText, QuestionText: "Freitext"},
			{ID: primitive.NewObjectID(), Type: models.QuestionInt, QuestionText: "Zahl"},
			{
				ID:           primitive.NewObjectID(),
				Type:         models.QuestionSelect,
				QuestionText: "Auswahl",
				SelectOptions: []models.SelectOption{
					{ID: primitive.NewObjectID(), Value: "A"},
					{ID: primitive.NewObjectID(), Value: "Sonstiges", IsOpen: true},
				},
			},
		},
	}
}

func TestBuildAnswer_TypedSlots(t *testing.T) {
	survey := testSurvey()
	text := "hallo"
	a, err := buildAnswer(survey, answerPayload{
		QuestionID: survey.Questions[0].ID.Hex(),
		Text:       &text,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Value.Kind != models.QuestionText || *a.Value.Text != "hallo" {
		t.Errorf("got %+v", a.Value)
	}

	n := int64(5)
	a, err = buildAnswer(survey, answerPayload{
		QuestionID: survey.Questions[1].ID.Hex(),
		Int:        &n,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Value.Kind != models.QuestionInt || *a.Value.Int != 5 {
		t.Errorf("got %+v", a.Value)
	}
}

func TestBuildAnswer_MissingSlot(t *testing.T) {
	survey := testSurvey()
	_, err := buildAnswer(survey, answerPayload{QuestionID: survey.Questions[0].ID.Hex()})
	if apperrors.CodeOf(err) != apperrors.CodeMissingParameter {
		t.Fatalf("expected MISSING_PARAMETER, got %v", err)
	}
}

func TestBuildAnswer_UnknownQuestion(t *testing.T) {
	survey := testSurvey()
	text := "x"
	_, err := buildAnswer(survey, answerPayload{
		QuestionID: primitive.NewObjectID().Hex(),
		Text:       &text,
	})
	if apperrors.CodeOf(err) != apperrors.CodeDataIntegrity {
		t.Fatalf("expected DATA_INTEGRITY, got %v", err)
	}
}

func TestBuildAnswer_ForeignSelectOption(t *testing.T) {
	survey := testSurvey()
	_, err := buildAnswer(survey, answerPayload{
		QuestionID: survey.Questions[2].ID.Hex(),
		Select:     []string{primitive.NewObjectID().Hex()},
	})
	if apperrors.CodeOf(err) != apperrors.CodeDataIntegrity {
		t.Fatalf("expected DATA_INTEGRITY, got %v", err)
	}
}

func TestBuildAnswer_SelectWithOpenOption(t *testing.T) {
	survey := testSurvey()
	q := survey.Questions[2]
	open := q.SelectOptions[1]

	a, err := buildAnswer(survey, answerPayload{
		QuestionID: q.ID.Hex(),
		Select:     []string{open.ID.Hex()},
		OtherValues: []struct {
			SelectOptionID string `json:"selectOptionId"`
			Value          string `json:"value"`
		}{
			{SelectOptionID: open.ID.Hex(), Value: "<i>Pflegedienst</i>"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	other, ok := a.Value.OtherValueFor(open.ID)
	if !ok {
		t.Fatal("override missing from the stored value")
	}
	// Markup is stripped on the way in.
	if other != "Pflegedienst" {
		t.Errorf("override = %q", other)
	}
}
