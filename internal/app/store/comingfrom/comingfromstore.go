// internal/app/store/comingfrom/comingfromstore.go
package comingfromstore

import (
	"context"

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
	return &Store{c: db.Collection("coming_from_options")}
}

func (s *Store) List(ctx context.Context) ([]models.ComingFromOption, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "value", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var opts []models.ComingFromOption
	if err := cur.All(ctx, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ComingFromOption, error) {
	var opt models.ComingFromOption
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&opt)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &opt, nil
}

func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.ComingFromOption, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var opts []models.ComingFromOption
	if err := cur.All(ctx, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// Seed inserts the given option values when the collection is empty.
func (s *Store) Seed(ctx context.Context, values []string) error {
	n, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil || n > 0 {
		return err
	}
	docs := make([]any, 0, len(values))
	for _, v := range values {
		docs = append(docs, models.ComingFromOption{ID: primitive.NewObjectID(), Value: v})
	}
	if len(docs) == 0 {
		return nil
	}
	_, err = s.c.InsertMany(ctx, docs)
	return err
}
