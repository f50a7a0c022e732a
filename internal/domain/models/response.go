// internal/domain/models/response.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Response is one filled-in survey submission. Answers are embedded in
// submission order.
//
// UserOrganizationID and SurveyOrganizationID are denormalized copies of the
// author's and the survey's organization at creation time. The visibility
// scope for orgcontrollers filters on exactly these two fields, so keeping
// them on the document avoids a join on every list query.
type Response struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty"`
	SurveyID primitive.ObjectID `bson:"survey_id" json:"survey_id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`

	UserOrganizationID   *primitive.ObjectID `bson:"user_organization_id,omitempty" json:"user_organization_id,omitempty"`
	SurveyOrganizationID *primitive.ObjectID `bson:"survey_organization_id,omitempty" json:"survey_organization_id,omitempty"`

	// Optional subject links: a response may be about a family as a whole or
	// about one child/caregiver of it.
	FamilyID    *primitive.ObjectID `bson:"family_id,omitempty" json:"family_id,omitempty"`
	ChildID     *primitive.ObjectID `bson:"child_id,omitempty" json:"child_id,omitempty"`
	CaregiverID *primitive.ObjectID `bson:"caregiver_id,omitempty" json:"caregiver_id,omitempty"`

	Answers []Answer `bson:"answers" json:"answers"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// FullResponse is a response hydrated with its survey (for question lookup)
// its author and the family it concerns, as consumed by the flattener.
type FullResponse struct {
	Response
	Survey *Survey     `bson:"-" json:"survey,omitempty"`
	User   *FullUser   `bson:"-" json:"user,omitempty"`
	Family *FullFamily `bson:"-" json:"family,omitempty"`
}
