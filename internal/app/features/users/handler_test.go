package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	"github.com/curasoft/famhub/internal/app/system/apperrors"
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

func postCreate(t *testing.T, h *Handler, body string, user testutil.TestUser) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewAuthenticatedJSONRequest(http.MethodPost, "/api/users", strings.NewReader(body), user)
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	return rec
}

func TestCreate_AnonymousForbidden(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestCreate_NonAdminForbidden(t *testing.T) {
	h := newTestHandler()
	body := `{"name":"Anna","email":"anna@example.org","role":"user"}`
	for _, u := range []testutil.TestUser{
		testutil.ControllerUser(),
		testutil.OrgControllerUser(primitive.NewObjectID()),
		testutil.FieldUser(primitive.NewObjectID()),
	} {
		rec := postCreate(t, h, body, u)
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s: status = %d, want 403", u.Role, rec.Code)
		}
	}
}

func TestCreate_ValidationErrors(t *testing.T) {
	h := newTestHandler()
	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"anna@example.org","role":"user"}`},
		{"missing email", `{"name":"Anna","role":"user"}`},
		{"invalid role", `{"name":"Anna","email":"anna@example.org","role":"boss"}`},
		{"missing role", `{"name":"Anna","email":"anna@example.org"}`},
		{"invalid organization id", `{"name":"Anna","email":"anna@example.org","role":"user","organizationId":"nope"}`},
		{"invalid sub-organization id", `{"name":"Anna","email":"anna@example.org","role":"user","subOrganizationIds":["nope"]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postCreate(t, h, tc.body, testutil.AdminUser())
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if got := decodeError(t, rec); got != string(apperrors.CodeMissingParameter) {
				t.Errorf("error = %q, want MISSING_PARAMETER", got)
			}
		})
	}
}

func TestCreate_AdminCreatesUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	h := NewHandler(db, errorsfeature.NewErrorLogger(zap.NewNop()), zap.NewNop())

	org := primitive.NewObjectID()
	body := `{"name":"<b>Anna</b> Muster","email":"Anna@Example.org","role":"orgcontroller","organizationId":"` + org.Hex() + `"}`
	rec := postCreate(t, h, body, testutil.AdminUser())
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	stored, err := h.Users.GetByEmail(ctx, "anna@example.org")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if stored == nil {
		t.Fatal("user not persisted")
	}
	if stored.Name != "Anna Muster" {
		t.Errorf("name = %q, want markup stripped", stored.Name)
	}
	if stored.Role != "orgcontroller" {
		t.Errorf("role = %q, want orgcontroller", stored.Role)
	}
	if stored.OrganizationID == nil || *stored.OrganizationID != org {
		t.Errorf("organization id not kept: %v", stored.OrganizationID)
	}
}
