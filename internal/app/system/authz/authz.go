// internal/app/system/authz/authz.go

// Package authz bridges the session layer and the access policy: it turns
// the request's session user into an accesspolicy.Principal. All actual
// role rules live in accesspolicy; handlers should not branch on roles here.
package authz

import (
	"net/http"

	"github.com/curasoft/famhub/internal/app/policy/accesspolicy"
	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/app/system/auth"
	"github.com/curasoft/famhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Principal resolves the request's principal.
//
// A valid session whose user record cannot be loaded is fatal for the
// request (INTERNAL_ERROR); it is never downgraded to anonymous. A request
// without any session yields the anonymous principal; callers that require
// authentication check Authenticated() or rely on Authorize.
func Principal(r *http.Request) (accesspolicy.Principal, error) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		if auth.AuthFailed(r) {
			return accesspolicy.Principal{}, apperrors.Internal("session user could not be resolved")
		}
		return accesspolicy.Anonymous(), nil
	}

	id, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		// Malformed id in a live session indicates corruption; fail closed.
		return accesspolicy.Principal{}, apperrors.Internal("malformed user id in session")
	}

	p := accesspolicy.Principal{
		ID:   id,
		Role: models.NormalizeRole(u.Role),
	}
	if u.OrganizationID != "" {
		if oid, err := primitive.ObjectIDFromHex(u.OrganizationID); err == nil {
			p.OrganizationID = &oid
		}
	}
	for _, hex := range u.SubOrganizationIDs {
		if oid, err := primitive.ObjectIDFromHex(hex); err == nil {
			p.SubOrganizationIDs = append(p.SubOrganizationIDs, oid)
		}
	}
	return p, nil
}

// RequirePrincipal resolves the principal and rejects anonymous requests
// with FORBIDDEN.
func RequirePrincipal(r *http.Request) (accesspolicy.Principal, error) {
	p, err := Principal(r)
	if err != nil {
		return accesspolicy.Principal{}, err
	}
	if !p.Authenticated() {
		return accesspolicy.Principal{}, apperrors.Forbidden("sign in required")
	}
	return p, nil
}
