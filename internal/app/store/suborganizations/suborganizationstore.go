// internal/app/store/suborganizations/suborganizationstore.go
package suborganizationstore

import (
	"context"
	"errors"
	"time"

	"github.com/curasoft/famhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

// ErrDuplicateName means the organization already has a sub-organization
// with this (folded) name; uniqueness is per parent organization.
var ErrDuplicateName = errors.New("a sub-organization with this name already exists in the organization")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("sub_organizations")}
}

func (s *Store) Create(ctx context.Context, name string, organizationID primitive.ObjectID) (models.SubOrganization, error) {
	now := time.Now().UTC()
	sub := models.SubOrganization{
		ID:             primitive.NewObjectID(),
		Name:           name,
		NameCI:         text.Fold(name),
		OrganizationID: organizationID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		if wafflemongo.IsDup(err) {
			return models.SubOrganization{}, ErrDuplicateName
		}
		return models.SubOrganization{}, err
	}
	return sub, nil
}

// List returns the sub-organizations matching the scope filter, sorted by
// folded name. The filter comes from scopequery; an empty filter lists all.
func (s *Store) List(ctx context.Context, filter bson.M) ([]models.SubOrganization, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var subs []models.SubOrganization
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.SubOrganization, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var subs []models.SubOrganization
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
