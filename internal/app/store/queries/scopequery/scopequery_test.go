package scopequery

import (
	"reflect"
	"testing"

	"github.com/curasoft/famhub/internal/app/policy/accesspolicy"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFilter_All(t *testing.T) {
	got, err := Filter(accesspolicy.All{}, Responses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, bson.M{}) {
		t.Errorf("got %v, want empty filter", got)
	}
}

func TestFilter_FieldEqMapsPerCollection(t *testing.T) {
	id := primitive.NewObjectID()

	cases := []struct {
		name   string
		fields FieldMap
		field  accesspolicy.Field
		want   bson.M
	}{
		{"responses owner", Responses, accesspolicy.FieldOwnerID, bson.M{"user_id": id}},
		{"responses owner org", Responses, accesspolicy.FieldOwnerOrganizationID, bson.M{"user_organization_id": id}},
		{"responses subject org", Responses, accesspolicy.FieldSubjectOrganizationID, bson.M{"survey_organization_id": id}},
		{"families owner", Families, accesspolicy.FieldOwnerID, bson.M{"created_by_id": id}},
		{"families owner org", Families, accesspolicy.FieldOwnerOrganizationID, bson.M{"creator_organization_id": id}},
		{"surveys subject org", Surveys, accesspolicy.FieldSubjectOrganizationID, bson.M{"organization_id": id}},
		{"suborgs parent org", SubOrganizations, accesspolicy.FieldOrganizationID, bson.M{"organization_id": id}},
	}
	for _, tc := range cases {
		got, err := Filter(accesspolicy.FieldEq{Field: tc.field, ID: id}, tc.fields)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFilter_FieldNil(t *testing.T) {
	got, err := Filter(accesspolicy.FieldNil{Field: accesspolicy.FieldSubjectOrganizationID}, Surveys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, bson.M{"organization_id": nil}) {
		t.Errorf("got %v", got)
	}
}

func TestFilter_UnmappedFieldFails(t *testing.T) {
	_, err := Filter(accesspolicy.FieldEq{Field: accesspolicy.FieldOwnerID, ID: primitive.NewObjectID()}, Surveys)
	if err == nil {
		t.Fatal("expected an error for a field the collection does not map")
	}
}

func TestFilter_OrgControllerScopeShape(t *testing.T) {
	org := primitive.NewObjectID()
	pred := accesspolicy.And{
		accesspolicy.Or{
			accesspolicy.FieldEq{Field: accesspolicy.FieldSubjectOrganizationID, ID: org},
			accesspolicy.FieldNil{Field: accesspolicy.FieldSubjectOrganizationID},
		},
		accesspolicy.FieldEq{Field: accesspolicy.FieldOwnerOrganizationID, ID: org},
	}

	got, err := Filter(pred, Responses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := bson.M{"$and": []bson.M{
		{"$or": []bson.M{
			{"survey_organization_id": org},
			{"survey_organization_id": nil},
		}},
		{"user_organization_id": org},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFilter_SingleClauseCombinatorsUnwrap(t *testing.T) {
	id := primitive.NewObjectID()
	inner := accesspolicy.FieldEq{Field: accesspolicy.FieldOwnerID, ID: id}
	want := bson.M{"user_id": id}

	for _, pred := range []accesspolicy.Predicate{
		accesspolicy.And{inner},
		accesspolicy.Or{inner},
	} {
		got, err := Filter(pred, Responses)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%T: got %v, want %v", pred, got, want)
		}
	}
}

func TestFilter_EmptyCombinators(t *testing.T) {
	got, err := Filter(accesspolicy.And{}, Responses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, bson.M{}) {
		t.Errorf("empty And: got %v, want empty filter", got)
	}

	// An empty Or must match nothing, never everything.
	got, err = Filter(accesspolicy.Or{}, Responses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, bson.M{"_id": bson.M{"$exists": false}}) {
		t.Errorf("empty Or: got %v", got)
	}
}
