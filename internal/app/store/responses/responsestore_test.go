package responsestore

import (
	"testing"

	"github.com/curasoft/famhub/internal/app/policy/accesspolicy"
	"github.com/curasoft/famhub/internal/app/store/queries/scopequery"
	"github.com/curasoft/famhub/internal/domain/models"
	"github.com/curasoft/famhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The orgcontroller scope must select the same rows in Mongo as the
// predicate's in-memory evaluation: own-org and global surveys, but only
// responses authored inside the organization.
func TestListBySurvey_OrgControllerScope(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fixtures := testutil.NewFixtures(t, db)
	store := New(db)

	myOrg := fixtures.CreateOrganization(ctx, "Caritas")
	otherOrg := fixtures.CreateOrganization(ctx, "Diakonie")

	myWorker := fixtures.CreateUser(ctx, "Anna", "anna@example.org", models.RoleUser, &myOrg.ID)
	foreignWorker := fixtures.CreateUser(ctx, "Bernd", "bernd@example.org", models.RoleUser, &otherOrg.ID)

	global := fixtures.CreateSurvey(ctx, "Global", nil, []models.Question{
		{Type: models.QuestionText, QuestionText: "Frage"},
	})

	visible := fixtures.CreateResponse(ctx, global, myWorker, nil)
	fixtures.CreateResponse(ctx, global, foreignWorker, nil)

	controller := accesspolicy.Principal{
		ID:             primitive.NewObjectID(),
		Role:           models.RoleOrgController,
		OrganizationID: &myOrg.ID,
	}
	pred, err := accesspolicy.Scope(controller, accesspolicy.CollectionResponses, accesspolicy.ScopeParams{})
	if err != nil {
		t.Fatalf("scope: %v", err)
	}
	filter, err := scopequery.Filter(pred, scopequery.Responses)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}

	responses, err := store.ListBySurvey(ctx, global.ID, filter)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(responses) != 1 || responses[0].ID != visible.ID {
		t.Fatalf("got %d responses, want only the own-org one", len(responses))
	}
}

func TestListBySurvey_EmptyScopeReturnsAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fixtures := testutil.NewFixtures(t, db)
	store := New(db)

	author := fixtures.CreateUser(ctx, "Anna", "anna@example.org", models.RoleUser, nil)
	survey := fixtures.CreateSurvey(ctx, "S", nil, nil)
	other := fixtures.CreateSurvey(ctx, "T", nil, nil)

	fixtures.CreateResponse(ctx, survey, author, nil)
	fixtures.CreateResponse(ctx, survey, author, nil)
	fixtures.CreateResponse(ctx, other, author, nil)

	responses, err := store.ListBySurvey(ctx, survey.ID, bson.M{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(responses) != 2 {
		t.Errorf("got %d responses, want 2", len(responses))
	}
}

func TestCreate_KeepsDenormalizedOrganizations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := New(db)

	userOrg := primitive.NewObjectID()
	surveyOrg := primitive.NewObjectID()
	created, err := store.Create(ctx, models.Response{
		SurveyID:             primitive.NewObjectID(),
		UserID:               primitive.NewObjectID(),
		UserOrganizationID:   &userOrg,
		SurveyOrganizationID: &surveyOrg,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.UserOrganizationID == nil || *got.UserOrganizationID != userOrg {
		t.Errorf("user_organization_id = %v", got.UserOrganizationID)
	}
	if got.SurveyOrganizationID == nil || *got.SurveyOrganizationID != surveyOrg {
		t.Errorf("survey_organization_id = %v", got.SurveyOrganizationID)
	}
}
