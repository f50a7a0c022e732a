package login

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	loginstore "github.com/curasoft/famhub/internal/app/store/logins"
	userstore "github.com/curasoft/famhub/internal/app/store/users"
	"github.com/curasoft/famhub/internal/app/system/auth"
	"github.com/curasoft/famhub/internal/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)

	sessionMgr, err := auth.NewSessionManager(strings.Repeat("k", 32), "famhub_test_session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return &Handler{
		Users:      userstore.New(db),
		Logins:     loginstore.New(db),
		SessionMgr: sessionMgr,
		ErrLog:     errorsfeature.NewErrorLogger(zap.NewNop()),
		Log:        zap.NewNop(),
	}
}

func provisionAdmin(t *testing.T, h *Handler, email, password string) {
	t.Helper()
	ctx := testutil.TestContext(t)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}
	if err := h.Users.UpsertLocalAdmin(ctx, email, hash); err != nil {
		t.Fatalf("provisioning admin: %v", err)
	}
}

func TestServeLocal_Success(t *testing.T) {
	h := newTestHandler(t)
	provisionAdmin(t, h, "admin@example.org", "bootstrap-secret")

	body := strings.NewReader(`{"email":"Admin@Example.org","password":"bootstrap-secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/login/local", body)
	rec := httptest.NewRecorder()

	h.ServeLocal(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Role  string `json:"role"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Role != "admin" || resp.Email != "admin@example.org" {
		t.Errorf("got %+v", resp)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie")
	}
}

func TestServeLocal_WrongPassword(t *testing.T) {
	h := newTestHandler(t)
	provisionAdmin(t, h, "admin@example.org", "bootstrap-secret")

	body := strings.NewReader(`{"email":"admin@example.org","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/login/local", body)
	rec := httptest.NewRecorder()

	h.ServeLocal(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestServeLocal_UnknownAccountSameAnswer(t *testing.T) {
	h := newTestHandler(t)

	body := strings.NewReader(`{"email":"nobody@example.org","password":"whatever"}`)
	req := httptest.NewRequest(http.MethodPost, "/login/local", body)
	rec := httptest.NewRecorder()

	h.ServeLocal(rec, req)

	// Unknown accounts answer exactly like wrong passwords.
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestServeLocal_MissingFields(t *testing.T) {
	h := newTestHandler(t)

	body := strings.NewReader(`{"email":"admin@example.org"}`)
	req := httptest.NewRequest(http.MethodPost, "/login/local", body)
	rec := httptest.NewRecorder()

	h.ServeLocal(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
