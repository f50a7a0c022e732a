// internal/domain/models/family.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender of a child or caregiver.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

// Disability status of a child or caregiver. "impending" mirrors the German
// care term "von Behinderung bedroht".
type Disability string

const (
	DisabilityYes       Disability = "yes"
	DisabilityNo        Disability = "no"
	DisabilityImpending Disability = "impending"
	DisabilityUnknown   Disability = "unknown"
)

// Education is the highest school/vocational degree of a caregiver.
type Education string

const (
	EducationNone       Education = "none"
	EducationLower      Education = "lower"      // Hauptschulabschluss
	EducationMiddle     Education = "middle"     // Realschulabschluss
	EducationAbitur     Education = "abitur"
	EducationVocational Education = "vocational" // Berufsausbildung
	EducationUniversity Education = "university"
	EducationOther      Education = "other"
	EducationUnknown    Education = "unknown"
)

// Child of a family under care. DateOfBirth may be unknown; ages are always
// derived at read time, never stored.
type Child struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Name           string             `bson:"name,omitempty" json:"name,omitempty"`
	DateOfBirth    *time.Time         `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`
	Gender         Gender             `bson:"gender" json:"gender"`
	Disability     Disability         `bson:"disability" json:"disability"`
	IsMultiple     bool               `bson:"is_multiple" json:"is_multiple"` // twin/triplet…
	IsPremature    bool               `bson:"is_premature" json:"is_premature"`
	PsychDiagnosis bool               `bson:"psych_diagnosis" json:"psych_diagnosis"`
}

// Caregiver is an adult attachment figure of the family.
type Caregiver struct {
	ID                  primitive.ObjectID `bson:"_id" json:"id"`
	Name                string             `bson:"name,omitempty" json:"name,omitempty"`
	DateOfBirth         *time.Time         `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`
	Gender              Gender             `bson:"gender" json:"gender"`
	Disability          Disability         `bson:"disability" json:"disability"`
	MigrationBackground bool               `bson:"migration_background" json:"migration_background"`
	Education           Education          `bson:"education" json:"education"`
	PsychDiagnosis      bool               `bson:"psych_diagnosis" json:"psych_diagnosis"`
}

// ComingFromOption is an admin-managed entry of the "Zugang über" list:
// how a family found its way into care.
type ComingFromOption struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Value string             `bson:"value" json:"value"`
}

// Family is a household case record. Children and caregivers are embedded.
//
// CreatorOrganizationID is the denormalized organization of the creating
// user; the orgcontroller visibility scope filters on it (same reasoning as
// on Response).
type Family struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Number int                `bson:"number" json:"number"`

	CreatedByID           primitive.ObjectID  `bson:"created_by_id" json:"created_by_id"`
	CreatorOrganizationID *primitive.ObjectID `bson:"creator_organization_id,omitempty" json:"creator_organization_id,omitempty"`

	BeginOfCare time.Time  `bson:"begin_of_care" json:"begin_of_care"`
	EndOfCare   *time.Time `bson:"end_of_care,omitempty" json:"end_of_care,omitempty"`

	ChildrenInHousehold         int    `bson:"children_in_household" json:"children_in_household"`
	Location                    string `bson:"location,omitempty" json:"location,omitempty"`
	OtherInstalledProfessionals string `bson:"other_installed_professionals,omitempty" json:"other_installed_professionals,omitempty"`

	ComingFromOptionID   *primitive.ObjectID `bson:"coming_from_option_id,omitempty" json:"coming_from_option_id,omitempty"`
	ComingFromOtherValue string              `bson:"coming_from_other_value,omitempty" json:"coming_from_other_value,omitempty"`

	Children   []Child     `bson:"children" json:"children"`
	Caregivers []Caregiver `bson:"caregivers" json:"caregivers"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Closed reports whether the care interval has ended as of now. Derived on
// read so a passing end date needs no write.
func (f *Family) Closed(now time.Time) bool {
	return f.EndOfCare != nil && f.EndOfCare.Before(now)
}

// FullFamily is a family hydrated with its creator (incl. organization and
// sub-organizations) and the resolved coming-from option.
type FullFamily struct {
	Family
	CreatedBy  *FullUser         `bson:"-" json:"created_by,omitempty"`
	ComingFrom *ComingFromOption `bson:"-" json:"coming_from,omitempty"`
}
