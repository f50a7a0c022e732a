package userinfo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	userstore "github.com/curasoft/famhub/internal/app/store/users"
	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/domain/models"
	"github.com/curasoft/famhub/internal/testutil"
	"go.uber.org/zap"
)

func TestUpdateMe_AnonymousForbidden(t *testing.T) {
	h := &Handler{
		ErrLog: errorsfeature.NewErrorLogger(zap.NewNop()),
		Log:    zap.NewNop(),
	}
	req := httptest.NewRequest(http.MethodPost, "/api/user/me", strings.NewReader(`{"name":"Neu"}`))
	rec := httptest.NewRecorder()

	h.UpdateMe(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestUpdateMe_EmptyNameRejected(t *testing.T) {
	h := &Handler{
		ErrLog: errorsfeature.NewErrorLogger(zap.NewNop()),
		Log:    zap.NewNop(),
	}
	// Markup-only input strips down to nothing and counts as missing.
	req := testutil.NewAuthenticatedJSONRequest(http.MethodPost, "/api/user/me",
		strings.NewReader(`{"name":"<b></b>"}`), testutil.AdminUser())
	rec := httptest.NewRecorder()

	h.UpdateMe(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if body.Error != string(apperrors.CodeMissingParameter) {
		t.Errorf("error = %q, want MISSING_PARAMETER", body.Error)
	}
}

func TestUpdateMe_PersistsSanitizedName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fixtures := testutil.NewFixtures(t, db)

	u := fixtures.CreateUser(ctx, "Alt", "alt@example.org", models.RoleUser, nil)

	h := &Handler{
		Users:  userstore.New(db),
		ErrLog: errorsfeature.NewErrorLogger(zap.NewNop()),
		Log:    zap.NewNop(),
	}
	req := testutil.NewAuthenticatedJSONRequest(http.MethodPost, "/api/user/me",
		strings.NewReader(`{"name":"<i>Neuer</i> Name"}`), testutil.ForUser(u))
	rec := httptest.NewRecorder()

	h.UpdateMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	stored, err := h.Users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Name != "Neuer Name" {
		t.Errorf("name = %q, want markup stripped", stored.Name)
	}
	if stored.NameCI != "neuer name" {
		t.Errorf("name_ci = %q, want folded name", stored.NameCI)
	}
}
