// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents every account in the system: field users, organization
// controllers, controllers, and admins.
//
// NOTE:
//   - AuthID is the identifier assigned by the external identity provider.
//     Sessions carry the user's ObjectID; AuthID is only consulted when the
//     provider calls back after login.
//   - SubOrganizationIDs lists the sub-organizations the user works in; a
//     user belongs to at most one organization but any number of its
//     sub-organizations.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthID   string             `bson:"auth_id,omitempty" json:"-"`
	Name     string             `bson:"name" json:"name"`
	NameCI   string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email    string             `bson:"email" json:"email"`
	Role     Role               `bson:"role" json:"role"`
	Status   string             `bson:"status,omitempty" json:"status,omitempty"`
	PassHash []byte             `bson:"pass_hash,omitempty" json:"-"` // bootstrap login only

	OrganizationID     *primitive.ObjectID  `bson:"organization_id,omitempty" json:"organization_id,omitempty"`
	SubOrganizationIDs []primitive.ObjectID `bson:"sub_organization_ids,omitempty" json:"sub_organization_ids,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// FullUser is a user hydrated with their organization and sub-organizations,
// as needed by the flattened exports ("verantwortlich" block).
type FullUser struct {
	User
	Organization     *Organization     `bson:"-" json:"organization,omitempty"`
	SubOrganizations []SubOrganization `bson:"-" json:"sub_organizations,omitempty"`
}
