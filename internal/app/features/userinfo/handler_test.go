package userinfo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	"github.com/curasoft/famhub/internal/testutil"
	"go.uber.org/zap"
)

func TestMe_Anonymous(t *testing.T) {
	h := &Handler{
		ErrLog: errorsfeature.NewErrorLogger(zap.NewNop()),
		Log:    zap.NewNop(),
	}
	req := testutil.NewRequest(http.MethodGet, "/api/user/me")
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body mePayload
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Authenticated {
		t.Error("anonymous request must report authenticated=false")
	}
	if body.ID != "" || body.Role != "" {
		t.Errorf("anonymous payload must not carry identity fields: %+v", body)
	}
}
