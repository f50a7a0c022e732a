package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/curasoft/famhub/internal/app/system/auth"
	"github.com/curasoft/famhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID                 string
	Name               string
	Email              string
	Role               string
	OrganizationID     string
	SubOrganizationIDs []string
}

// AdminUser returns a TestUser with the admin role.
func AdminUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Admin",
		Email: "admin@test.com",
		Role:  string(models.RoleAdmin),
	}
}

// ControllerUser returns a TestUser with the controller role.
func ControllerUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Controller",
		Email: "controller@test.com",
		Role:  string(models.RoleController),
	}
}

// OrgControllerUser returns a TestUser with the orgcontroller role bound to
// the given organization.
func OrgControllerUser(orgID primitive.ObjectID) TestUser {
	return TestUser{
		ID:             primitive.NewObjectID().Hex(),
		Name:           "Test OrgController",
		Email:          "orgcontroller@test.com",
		Role:           string(models.RoleOrgController),
		OrganizationID: orgID.Hex(),
	}
}

// FieldUser returns a TestUser with the user role bound to the organization.
func FieldUser(orgID primitive.ObjectID) TestUser {
	return TestUser{
		ID:             primitive.NewObjectID().Hex(),
		Name:           "Test User",
		Email:          "user@test.com",
		Role:           string(models.RoleUser),
		OrganizationID: orgID.Hex(),
	}
}

// ForUser builds a TestUser mirroring a stored user fixture, so handler
// tests and database fixtures agree on the identity.
func ForUser(u models.User) TestUser {
	tu := TestUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
	if u.OrganizationID != nil {
		tu.OrganizationID = u.OrganizationID.Hex()
	}
	for _, sid := range u.SubOrganizationIDs {
		tu.SubOrganizationIDs = append(tu.SubOrganizationIDs, sid.Hex())
	}
	return tu
}

// WithUser adds a user to the request context for testing authenticated
// handlers, bypassing the session middleware.
func WithUser(r *http.Request, user TestUser) *http.Request {
	sessionUser := &auth.SessionUser{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		Role:               user.Role,
		OrganizationID:     user.OrganizationID,
		SubOrganizationIDs: user.SubOrganizationIDs,
	}
	return auth.WithTestUser(r, sessionUser)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	return WithUser(httptest.NewRequest(method, target, nil), user)
}

// NewAuthenticatedJSONRequest creates a request with a body and a user in
// context, with the JSON content type set.
func NewAuthenticatedJSONRequest(method, target string, body io.Reader, user TestUser) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return WithUser(req, user)
}
