// internal/app/policy/accesspolicy/accesspolicy.go

// Package accesspolicy centralizes every role-based visibility and write
// rule of the service in one place. Resource handlers never branch on roles
// themselves: they ask Scope for a read predicate and Authorize for a write
// decision, and translate the outcome uniformly.
//
// Visibility rules:
//   - admin, controller: unrestricted reads of families and responses
//   - orgcontroller: rows whose subject organization matches their own (or
//     is globally unscoped) AND whose creating user belongs to their
//     organization
//   - user: only rows they created themselves
//   - none (anonymous): configuration listing only
package accesspolicy

import (
	"github.com/curasoft/famhub/internal/app/system/apperrors"
	"github.com/curasoft/famhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Principal is the authenticated actor of one request: role plus
// organizational scope. It is derived fresh per request from the session and
// the stored user record, and is immutable for the request's duration.
type Principal struct {
	ID                 primitive.ObjectID
	Role               models.Role
	OrganizationID     *primitive.ObjectID
	SubOrganizationIDs []primitive.ObjectID
}

// Anonymous is the principal of a request without a session. It only ever
// reaches the configuration listing.
func Anonymous() Principal { return Principal{Role: models.RoleNone} }

// Authenticated reports whether the principal carries a real user identity.
func (p Principal) Authenticated() bool {
	return p.Role != models.RoleNone && p.ID != primitive.NilObjectID
}

func (p Principal) sameOrg(orgID *primitive.ObjectID) bool {
	return p.OrganizationID != nil && orgID != nil && *p.OrganizationID == *orgID
}

// Collection names a scoped resource collection.
type Collection string

const (
	CollectionFamilies         Collection = "families"
	CollectionResponses        Collection = "responses"
	CollectionSurveys          Collection = "surveys"
	CollectionOrganizations    Collection = "organizations"
	CollectionSubOrganizations Collection = "sub_organizations"
	CollectionConfigurations   Collection = "configurations"
)

// ScopeParams carries request parameters some scopes depend on.
type ScopeParams struct {
	// OrganizationID is the explicit ?organizationId= filter. Required for
	// the sub-organization listing.
	OrganizationID *primitive.ObjectID
}

// Scope computes the read predicate restricting which rows of the collection
// the principal may see. It is a pure function: no I/O, no side effects.
func Scope(p Principal, c Collection, params ScopeParams) (Predicate, error) {
	switch c {
	case CollectionFamilies, CollectionResponses:
		return recordScope(p)

	case CollectionSurveys:
		// Surveys themselves are visible when globally unscoped or owned by
		// the principal's organization; admins and controllers see all.
		switch p.Role {
		case models.RoleAdmin, models.RoleController:
			return All{}, nil
		case models.RoleOrgController, models.RoleUser:
			or := Or{FieldNil{FieldSubjectOrganizationID}}
			if p.OrganizationID != nil {
				or = append(or, FieldEq{FieldSubjectOrganizationID, *p.OrganizationID})
			}
			return or, nil
		default:
			return nil, apperrors.Forbidden("sign in to list surveys")
		}

	case CollectionOrganizations:
		// The organization grid is a controller-level view; there is no
		// row filtering below that.
		switch p.Role {
		case models.RoleAdmin, models.RoleController:
			return All{}, nil
		}
		return nil, apperrors.Forbidden("organization listing requires a controller role")

	case CollectionSubOrganizations:
		// No role-based row filtering, but the organization filter is
		// mandatory: an unqualified listing is a caller error.
		if params.OrganizationID == nil {
			return nil, apperrors.MissingParameter("organizationId is required")
		}
		if !p.Authenticated() {
			return nil, apperrors.Forbidden("sign in to list sub-organizations")
		}
		return FieldEq{FieldOrganizationID, *params.OrganizationID}, nil

	case CollectionConfigurations:
		// Readable by everyone, including anonymous principals.
		return All{}, nil
	}
	return nil, apperrors.Internal("unknown collection " + string(c))
}

func recordScope(p Principal) (Predicate, error) {
	switch p.Role {
	case models.RoleAdmin, models.RoleController:
		return All{}, nil

	case models.RoleOrgController:
		if p.OrganizationID == nil {
			// An orgcontroller without an organization only sees rows they
			// created themselves.
			return FieldEq{FieldOwnerID, p.ID}, nil
		}
		org := *p.OrganizationID
		return And{
			Or{
				FieldEq{FieldSubjectOrganizationID, org},
				FieldNil{FieldSubjectOrganizationID},
			},
			FieldEq{FieldOwnerOrganizationID, org},
		}, nil

	case models.RoleUser:
		return FieldEq{FieldOwnerID, p.ID}, nil
	}
	return nil, apperrors.Forbidden("sign in to list records")
}

// Action names a write/delete operation subject to authorization.
type Action string

const (
	ActionCreateOrganization    Action = "create_organization"
	ActionCreateSubOrganization Action = "create_sub_organization"
	ActionCreateSurvey          Action = "create_survey"
	ActionCreateUser            Action = "create_user"
	ActionUpsertConfiguration   Action = "upsert_configuration"
	ActionDeleteConfiguration   Action = "delete_configuration"
	ActionCreateResponse        Action = "create_response"
)

// Target carries the attributes of the record a write is aimed at.
type Target struct {
	OrganizationID *primitive.ObjectID
}

// Authorize decides whether the principal may perform the action. A nil
// return means allowed; otherwise the error carries the FORBIDDEN code.
func Authorize(p Principal, a Action, t Target) error {
	switch a {
	case ActionCreateSubOrganization:
		if p.Role == models.RoleAdmin {
			return nil
		}
		if p.Role == models.RoleController || p.Role == models.RoleOrgController {
			if p.sameOrg(t.OrganizationID) {
				return nil
			}
			return apperrors.Forbidden("sub-organization must belong to your organization")
		}
		return apperrors.Forbidden("not allowed to create sub-organizations")

	case ActionCreateOrganization:
		if p.Role == models.RoleAdmin {
			return nil
		}
		return apperrors.Forbidden("organization management requires admin")

	case ActionCreateSurvey:
		if p.Role == models.RoleAdmin {
			return nil
		}
		return apperrors.Forbidden("survey authoring requires admin")

	case ActionCreateUser:
		if p.Role == models.RoleAdmin {
			return nil
		}
		return apperrors.Forbidden("user management requires admin")

	case ActionUpsertConfiguration, ActionDeleteConfiguration:
		if p.Role == models.RoleAdmin {
			return nil
		}
		return apperrors.Forbidden("configuration management requires admin")

	case ActionCreateResponse:
		if p.Authenticated() {
			return nil
		}
		return apperrors.Forbidden("sign in to submit responses")
	}
	return apperrors.Internal("unknown action " + string(a))
}

// AuthorizeRecordUpdate checks whether the principal may modify the record
// behind the row: updates are allowed exactly where the record scope grants
// visibility. Rows outside the scope answer NOT_FOUND so their existence is
// not revealed.
func AuthorizeRecordUpdate(p Principal, row Row) error {
	pred, err := recordScope(p)
	if err != nil {
		return err
	}
	if !pred.Matches(row) {
		return apperrors.NotFound("record not found")
	}
	return nil
}

// CanAccessSurvey checks whether the principal may touch the given survey at
// all, before any row filtering. A nil survey short-circuits with NOT_FOUND.
// Users and orgcontrollers may not reach into another organization's survey.
func CanAccessSurvey(p Principal, survey *models.Survey) error {
	if survey == nil {
		return apperrors.NotFound("survey not found")
	}
	if p.Role == models.RoleUser || p.Role == models.RoleOrgController {
		if survey.OrganizationID != nil && !p.sameOrg(survey.OrganizationID) {
			return apperrors.Forbidden("survey belongs to another organization")
		}
	}
	return nil
}
