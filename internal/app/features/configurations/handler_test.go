package configurations

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/testutil"
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

func TestCreate_NonAdminForbidden(t *testing.T) {
	h := newTestHandler()
	for _, user := range []testutil.TestUser{
		testutil.ControllerUser(),
		{ID: testutil.ControllerUser().ID, Role: "user"},
	} {
		body := strings.NewReader(`{"name":"export_qualified_keys","value":{"enabled":true}}`)
		req := testutil.NewAuthenticatedJSONRequest(http.MethodPost, "/api/config", body, user)
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("%s: status = %d, want 403", user.Role, rec.Code)
		}
	}
}

func TestCreate_AnonymousForbidden(t *testing.T) {
	h := newTestHandler()
	body := strings.NewReader(`{"name":"x","value":{}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/config", body)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if got := decodeError(t, rec); got != string(apperrors.CodeForbidden) {
		t.Errorf("error = %q, want FORBIDDEN", got)
	}
}

func TestCreate_InvalidBody(t *testing.T) {
	h := newTestHandler()
	body := strings.NewReader(`{`)
	req := testutil.NewAuthenticatedJSONRequest(http.MethodPost, "/api/config", body, testutil.AdminUser())
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreate_MissingName(t *testing.T) {
	h := newTestHandler()
	body := strings.NewReader(`{"value":{"enabled":true}}`)
	req := testutil.NewAuthenticatedJSONRequest(http.MethodPost, "/api/config", body, testutil.AdminUser())
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeError(t, rec); got != string(apperrors.CodeMissingParameter) {
		t.Errorf("error = %q, want MISSING_PARAMETER", got)
	}
}

func TestDelete_NonAdminForbidden(t *testing.T) {
	h := newTestHandler()
	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/api/config/export_qualified_keys", testutil.ControllerUser())
	req = testutil.WithChiURLParam(req, "name", "export_qualified_keys")
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestGet_MissingName(t *testing.T) {
	h := newTestHandler()
	req := testutil.NewRequest(http.MethodGet, "/api/config/")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSanitizeValue(t *testing.T) {
	in := map[string]any{
		"plain":  "hello",
		"marked": `<script>alert(1)</script>hi`,
		"number": 3.5,
		"nested": map[string]any{"inner": "<b>bold</b>"},
	}
	got := sanitizeValue(in)
	want := map[string]any{
		"plain":  "hello",
		"marked": "hi",
		"number": 3.5,
		"nested": map[string]any{"inner": "bold"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSanitizeValue_NilBecomesEmpty(t *testing.T) {
	got := sanitizeValue(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty map", got)
	}
}
