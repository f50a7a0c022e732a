// internal/app/store/configurations/configurationstore.go
package configurationstore

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
	return &Store{c: db.Collection("configurations")}
}

func (s *Store) List(ctx context.Context) ([]models.Configuration, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var configs []models.Configuration
	if err := cur.All(ctx, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// GetByName returns (nil, nil) when no configuration with this name exists.
func (s *Store) GetByName(ctx context.Context, name string) (*models.Configuration, error) {
	var cfg models.Configuration
	err := s.c.FindOne(ctx, bson.M{"name": name}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Upsert creates or replaces the value of a named configuration.
func (s *Store) Upsert(ctx context.Context, name string, value map[string]any) (models.Configuration, error) {
	now := time.Now().UTC()
	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"name": name},
		bson.M{
			"$set": bson.M{
				"value":      value,
				"updated_at": now,
			},
			"$setOnInsert": bson.M{
				"_id":        primitive.NewObjectID(),
				"name":       name,
				"created_at": now,
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	var cfg models.Configuration
	if err := res.Decode(&cfg); err != nil {
		return models.Configuration{}, err
	}
	return cfg, nil
}

// DeleteByName removes a configuration. Reports whether anything was deleted.
func (s *Store) DeleteByName(ctx context.Context, name string) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
