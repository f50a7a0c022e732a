// internal/app/store/queries/scopequery/scopequery.go

// Package scopequery translates accesspolicy predicates into Mongo filters.
// The policy layer speaks in abstract fields (owner, owner organization,
// subject organization); each collection maps those onto its own document
// fields here, so the visibility rules stay storage-agnostic.
package scopequery

import (
	"fmt"

	"github.com/curasoft/famhub/internal/app/policy/accesspolicy"
	"go.mongodb.org/mongo-driver/bson"
)

// FieldMap binds abstract predicate fields to BSON document paths for one
// collection. Fields absent from the map are rejected at translation time.
type FieldMap map[accesspolicy.Field]string

// Per-collection field maps. Responses and families carry denormalized
// organization ids precisely so these filters need no joins.
var (
	Responses = FieldMap{
		accesspolicy.FieldOwnerID:               "user_id",
		accesspolicy.FieldOwnerOrganizationID:   "user_organization_id",
		accesspolicy.FieldSubjectOrganizationID: "survey_organization_id",
	}

	Families = FieldMap{
		accesspolicy.FieldOwnerID:               "created_by_id",
		accesspolicy.FieldOwnerOrganizationID:   "creator_organization_id",
		accesspolicy.FieldSubjectOrganizationID: "creator_organization_id",
	}

	Surveys = FieldMap{
		accesspolicy.FieldSubjectOrganizationID: "organization_id",
	}

	SubOrganizations = FieldMap{
		accesspolicy.FieldOrganizationID: "organization_id",
	}
)

// Filter translates a predicate into a bson.M filter using the collection's
// field map. An All predicate yields the empty filter.
func Filter(p accesspolicy.Predicate, fields FieldMap) (bson.M, error) {
	switch pred := p.(type) {
	case accesspolicy.All:
		return bson.M{}, nil

	case accesspolicy.FieldEq:
		path, ok := fields[pred.Field]
		if !ok {
			return nil, fmt.Errorf("scopequery: field %q not mapped for this collection", pred.Field)
		}
		return bson.M{path: pred.ID}, nil

	case accesspolicy.FieldNil:
		path, ok := fields[pred.Field]
		if !ok {
			return nil, fmt.Errorf("scopequery: field %q not mapped for this collection", pred.Field)
		}
		return bson.M{path: nil}, nil

	case accesspolicy.And:
		clauses, err := filters(pred, fields)
		if err != nil {
			return nil, err
		}
		switch len(clauses) {
		case 0:
			return bson.M{}, nil
		case 1:
			return clauses[0], nil
		}
		return bson.M{"$and": clauses}, nil

	case accesspolicy.Or:
		clauses, err := filters(pred, fields)
		if err != nil {
			return nil, err
		}
		switch len(clauses) {
		case 0:
			// An empty disjunction matches nothing.
			return bson.M{"_id": bson.M{"$exists": false}}, nil
		case 1:
			return clauses[0], nil
		}
		return bson.M{"$or": clauses}, nil
	}

	return nil, fmt.Errorf("scopequery: unsupported predicate %T", p)
}

func filters(ps []accesspolicy.Predicate, fields FieldMap) ([]bson.M, error) {
	out := make([]bson.M, 0, len(ps))
	for _, p := range ps {
		f, err := Filter(p, fields)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
