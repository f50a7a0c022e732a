package userstore

import (
	"testing"

	"github.com/curasoft/famhub/internal/app/system/indexes"
	"github.com/curasoft/famhub/internal/domain/models"
	"github.com/curasoft/famhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

func TestCreate_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensuring indexes: %v", err)
	}
	store := New(db)

	u, err := store.Create(ctx, models.User{Name: "Anna", Email: "anna@example.org", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if u.Status != "active" {
		t.Errorf("status = %q, want active", u.Status)
	}
	if u.NameCI == "" {
		t.Error("name_ci should be derived on create")
	}

	_, err = store.Create(ctx, models.User{Name: "Other", Email: "anna@example.org", Role: models.RoleUser})
	if err != ErrDuplicateUser {
		t.Fatalf("second create: got %v, want ErrDuplicateUser", err)
	}
}

func TestGetByAuthID_Absent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := New(db)

	u, err := store.GetByAuthID(ctx, "google-sub-does-not-exist")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != nil {
		t.Errorf("got %+v, want nil", u)
	}
}

func TestLinkAuthID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := New(db)

	u, err := store.Create(ctx, models.User{Name: "Anna", Email: "anna@example.org", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.LinkAuthID(ctx, u.ID, "google-sub-123"); err != nil {
		t.Fatalf("linking: %v", err)
	}

	linked, err := store.GetByAuthID(ctx, "google-sub-123")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if linked == nil || linked.ID != u.ID {
		t.Errorf("got %+v, want user %s", linked, u.ID.Hex())
	}
}

func TestUpsertLocalAdmin_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := New(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("bootstrap-secret"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}

	if err := store.UpsertLocalAdmin(ctx, "admin@example.org", hash); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := store.UpsertLocalAdmin(ctx, "admin@example.org", hash); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	admin, err := store.GetByEmail(ctx, "admin@example.org")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if admin == nil {
		t.Fatal("admin not found after upsert")
	}
	if admin.Role != models.RoleAdmin {
		t.Errorf("role = %q, want admin", admin.Role)
	}
	if bcrypt.CompareHashAndPassword(admin.PassHash, []byte("bootstrap-secret")) != nil {
		t.Error("stored hash does not match the password")
	}

	count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": "admin@example.org"})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d admin records, want 1", count)
	}
}
