package familystore

import (
	"testing"
	"time"

	"github.com/curasoft/famhub/internal/domain/models"
	"github.com/curasoft/famhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreate_AssignsSequentialNumbers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := New(db)
	creator := primitive.NewObjectID()

	first, err := store.Create(ctx, models.Family{CreatedByID: creator, BeginOfCare: time.Now().UTC()})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first.Number != 1 {
		t.Errorf("first number = %d, want 1", first.Number)
	}

	second, err := store.Create(ctx, models.Family{CreatedByID: creator, BeginOfCare: time.Now().UTC()})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second.Number != 2 {
		t.Errorf("second number = %d, want 2", second.Number)
	}
}

func TestCreate_AssignsEmbeddedIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := New(db)

	f, err := store.Create(ctx, models.Family{
		CreatedByID: primitive.NewObjectID(),
		BeginOfCare: time.Now().UTC(),
		Children:    []models.Child{{Gender: models.GenderFemale}},
		Caregivers:  []models.Caregiver{{Gender: models.GenderMale}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if f.Children[0].ID.IsZero() {
		t.Error("child id not assigned")
	}
	if f.Caregivers[0].ID.IsZero() {
		t.Error("caregiver id not assigned")
	}
}

func TestList_ScopeFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fixtures := testutil.NewFixtures(t, db)
	store := New(db)

	org := fixtures.CreateOrganization(ctx, "Caritas")
	worker := fixtures.CreateUser(ctx, "Anna", "anna@example.org", models.RoleUser, &org.ID)
	other := fixtures.CreateUser(ctx, "Bernd", "bernd@example.org", models.RoleUser, nil)

	mine := fixtures.CreateFamily(ctx, 1, worker)
	fixtures.CreateFamily(ctx, 2, other)

	families, err := store.List(ctx, bson.M{"created_by_id": worker.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(families) != 1 || families[0].ID != mine.ID {
		t.Errorf("got %d families, want exactly the worker's own", len(families))
	}
}

func TestSetEndOfCare(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := New(db)

	f, err := store.Create(ctx, models.Family{CreatedByID: primitive.NewObjectID(), BeginOfCare: time.Now().UTC()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	end := time.Now().UTC().Truncate(time.Millisecond)
	if err := store.SetEndOfCare(ctx, f.ID, &end); err != nil {
		t.Fatalf("closing: %v", err)
	}
	got, err := store.GetByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.EndOfCare == nil || !got.EndOfCare.Equal(end) {
		t.Errorf("end_of_care = %v, want %v", got.EndOfCare, end)
	}

	if err := store.SetEndOfCare(ctx, f.ID, nil); err != nil {
		t.Fatalf("reopening: %v", err)
	}
	got, err = store.GetByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.EndOfCare != nil {
		t.Errorf("end_of_care = %v, want nil after reopening", got.EndOfCare)
	}
}
