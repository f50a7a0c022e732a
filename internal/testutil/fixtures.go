package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/curasoft/famhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateOrganization creates a test organization with the given name.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("organizations").InsertOne(ctx, org); err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

// CreateSubOrganization creates a test sub-organization under orgID.
func (f *Fixtures) CreateSubOrganization(ctx context.Context, name string, orgID primitive.ObjectID) models.SubOrganization {
	f.t.Helper()

	now := time.Now().UTC()
	sub := models.SubOrganization{
		ID:             primitive.NewObjectID(),
		Name:           name,
		NameCI:         text.Fold(name),
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := f.db.Collection("sub_organizations").InsertOne(ctx, sub); err != nil {
		f.t.Fatalf("failed to create test sub-organization: %v", err)
	}
	return sub
}

// CreateUser creates a test user with the given role. orgID may be nil for
// admins and controllers.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string, role models.Role, orgID *primitive.ObjectID) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:             primitive.NewObjectID(),
		Name:           name,
		NameCI:         text.Fold(name),
		Email:          email,
		Role:           role,
		Status:         "active",
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleAdmin, nil)
}

// CreateSurvey creates a test survey. orgID nil makes it global.
func (f *Fixtures) CreateSurvey(ctx context.Context, name string, orgID *primitive.ObjectID, questions []models.Question) models.Survey {
	f.t.Helper()

	now := time.Now().UTC()
	sv := models.Survey{
		ID:             primitive.NewObjectID(),
		Name:           name,
		NameCI:         text.Fold(name),
		OrganizationID: orgID,
		Questions:      questions,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for i := range sv.Questions {
		if sv.Questions[i].ID.IsZero() {
			sv.Questions[i].ID = primitive.NewObjectID()
		}
	}
	if _, err := f.db.Collection("surveys").InsertOne(ctx, sv); err != nil {
		f.t.Fatalf("failed to create test survey: %v", err)
	}
	return sv
}

// CreateFamily creates a minimal test family owned by the given user.
func (f *Fixtures) CreateFamily(ctx context.Context, number int, creator models.User) models.Family {
	f.t.Helper()

	now := time.Now().UTC()
	fam := models.Family{
		ID:                    primitive.NewObjectID(),
		Number:                number,
		CreatedByID:           creator.ID,
		CreatorOrganizationID: creator.OrganizationID,
		BeginOfCare:           now.AddDate(0, -1, 0),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if _, err := f.db.Collection("families").InsertOne(ctx, fam); err != nil {
		f.t.Fatalf("failed to create test family: %v", err)
	}
	return fam
}

// CreateResponse creates a test response by the given user to the survey.
func (f *Fixtures) CreateResponse(ctx context.Context, survey models.Survey, author models.User, answers []models.Answer) models.Response {
	f.t.Helper()

	now := time.Now().UTC()
	resp := models.Response{
		ID:                   primitive.NewObjectID(),
		SurveyID:             survey.ID,
		UserID:               author.ID,
		UserOrganizationID:   author.OrganizationID,
		SurveyOrganizationID: survey.OrganizationID,
		Answers:              answers,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if _, err := f.db.Collection("responses").InsertOne(ctx, resp); err != nil {
		f.t.Fatalf("failed to create test response: %v", err)
	}
	return resp
}
