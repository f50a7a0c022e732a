// internal/app/store/families/familystore.go
package familystore

import (
	"context"
	"time"

	"github.com/curasoft/famhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("families")}
}

// Create inserts a family, assigning the next sequential family number.
// The number is informational (case file label), not an identifier; a rare
// race producing a duplicate is acceptable and resolvable by admins.
func (s *Store) Create(ctx context.Context, f models.Family) (models.Family, error) {
	next, err := s.nextNumber(ctx)
	if err != nil {
		return models.Family{}, err
	}
	now := time.Now().UTC()
	f.ID = primitive.NewObjectID()
	f.Number = next
	for i := range f.Children {
		if f.Children[i].ID.IsZero() {
			f.Children[i].ID = primitive.NewObjectID()
		}
	}
	for i := range f.Caregivers {
		if f.Caregivers[i].ID.IsZero() {
			f.Caregivers[i].ID = primitive.NewObjectID()
		}
	}
	f.CreatedAt = now
	f.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return models.Family{}, err
	}
	return f, nil
}

func (s *Store) nextNumber(ctx context.Context) (int, error) {
	var top struct {
		Number int `bson:"number"`
	}
	err := s.c.FindOne(ctx, bson.M{},
		options.FindOne().
			SetSort(bson.D{{Key: "number", Value: -1}}).
			SetProjection(bson.M{"number": 1}),
	).Decode(&top)
	if err == mongo.ErrNoDocuments {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return top.Number + 1, nil
}

// List returns families matching the scope filter, by family number.
func (s *Store) List(ctx context.Context, scope bson.M) ([]models.Family, error) {
	cur, err := s.c.Find(ctx, scope, options.Find().SetSort(bson.D{{Key: "number", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var families []models.Family
	if err := cur.All(ctx, &families); err != nil {
		return nil, err
	}
	return families, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Family, error) {
	var f models.Family
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetByIDs loads several families at once for response hydration.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Family, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var families []models.Family
	if err := cur.All(ctx, &families); err != nil {
		return nil, err
	}
	return families, nil
}

// SetEndOfCare closes (or reopens, with nil) a family's care interval.
func (s *Store) SetEndOfCare(ctx context.Context, id primitive.ObjectID, end *time.Time) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"end_of_care": end,
		"updated_at":  time.Now().UTC(),
	}})
	return err
}
