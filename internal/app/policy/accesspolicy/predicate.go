// internal/app/policy/accesspolicy/predicate.go
package accesspolicy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field names an abstract row attribute a predicate can constrain. The store
// layer maps these to its concrete document fields per collection
// (store/queries/scopequery); tests evaluate them in memory via Matches.
type Field string

const (
	// FieldOwnerID is the id of the user who created the row.
	FieldOwnerID Field = "owner_id"
	// FieldOwnerOrganizationID is the organization of the creating user.
	FieldOwnerOrganizationID Field = "owner_organization_id"
	// FieldSubjectOrganizationID is the organization the row itself is scoped
	// to (a response's survey organization, a family's care organization).
	// Nil means globally visible.
	FieldSubjectOrganizationID Field = "subject_organization_id"
	// FieldOrganizationID is the parent organization of a sub-organization.
	FieldOrganizationID Field = "organization_id"
)

// Row is the in-memory view of one record for predicate evaluation.
type Row struct {
	OwnerID               primitive.ObjectID
	OwnerOrganizationID   *primitive.ObjectID
	SubjectOrganizationID *primitive.ObjectID
	OrganizationID        *primitive.ObjectID
}

func (r Row) value(f Field) *primitive.ObjectID {
	switch f {
	case FieldOwnerID:
		if r.OwnerID == primitive.NilObjectID {
			return nil
		}
		id := r.OwnerID
		return &id
	case FieldOwnerOrganizationID:
		return r.OwnerOrganizationID
	case FieldSubjectOrganizationID:
		return r.SubjectOrganizationID
	case FieldOrganizationID:
		return r.OrganizationID
	}
	return nil
}

// Predicate is an abstract read restriction: a conjunction/disjunction of
// field equalities. It has no side effects and no storage dependency.
type Predicate interface {
	// Matches evaluates the predicate against an in-memory row.
	Matches(Row) bool
}

// All matches every row (no restriction).
type All struct{}

func (All) Matches(Row) bool { return true }

// FieldEq matches rows whose field equals ID. A row with the field absent
// never matches.
type FieldEq struct {
	Field Field
	ID    primitive.ObjectID
}

func (p FieldEq) Matches(r Row) bool {
	v := r.value(p.Field)
	return v != nil && *v == p.ID
}

// FieldNil matches rows whose field is absent (globally scoped rows).
type FieldNil struct {
	Field Field
}

func (p FieldNil) Matches(r Row) bool { return r.value(p.Field) == nil }

// And matches rows satisfying every sub-predicate.
type And []Predicate

func (ps And) Matches(r Row) bool {
	for _, p := range ps {
		if !p.Matches(r) {
			return false
		}
	}
	return true
}

// Or matches rows satisfying at least one sub-predicate.
type Or []Predicate

func (ps Or) Matches(r Row) bool {
	for _, p := range ps {
		if p.Matches(r) {
			return true
		}
	}
	return false
}
