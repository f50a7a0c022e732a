package comingfrom

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	comingfromstore "github.com/curasoft/famhub/internal/app/store/comingfrom"
	"github.com/curasoft/famhub/internal/domain/models"
	"github.com/curasoft/famhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestList_AnonymousForbidden(t *testing.T) {
	h := &Handler{
		ErrLog: errorsfeature.NewErrorLogger(zap.NewNop()),
		Log:    zap.NewNop(),
	}
	req := testutil.NewRequest(http.MethodGet, "/api/comingFrom")
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestList_ReturnsSeededOptions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	store := comingfromstore.New(db)
	if err := store.Seed(ctx, []string{"Jugendamt", "Arzt", "Selbstmelder"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	h := &Handler{
		Options: store,
		ErrLog:  errorsfeature.NewErrorLogger(zap.NewNop()),
		Log:     zap.NewNop(),
	}
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/comingFrom",
		testutil.FieldUser(primitive.NewObjectID()))
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var opts []models.ComingFromOption
	if err := json.NewDecoder(rec.Body).Decode(&opts); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(opts) != 3 {
		t.Fatalf("got %d options, want 3", len(opts))
	}
	// The store sorts by value.
	if opts[0].Value != "Arzt" {
		t.Errorf("first option = %q, want Arzt", opts[0].Value)
	}
}
