// internal/app/store/surveys/surveystore.go
package surveystore

import (
	"context"
	"time"

	"github.com/curasoft/famhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("surveys")}
}

// Create inserts a survey with its embedded questions. Question and option
// ids are assigned here when absent so authoring payloads can omit them.
func (s *Store) Create(ctx context.Context, sv models.Survey) (models.Survey, error) {
	now := time.Now().UTC()
	sv.ID = primitive.NewObjectID()
	sv.NameCI = text.Fold(sv.Name)
	sv.CreatedAt = now
	sv.UpdatedAt = now
	for i := range sv.Questions {
		if sv.Questions[i].ID.IsZero() {
			sv.Questions[i].ID = primitive.NewObjectID()
		}
		for j := range sv.Questions[i].SelectOptions {
			if sv.Questions[i].SelectOptions[j].ID.IsZero() {
				sv.Questions[i].SelectOptions[j].ID = primitive.NewObjectID()
			}
		}
	}
	if _, err := s.c.InsertOne(ctx, sv); err != nil {
		return models.Survey{}, err
	}
	return sv, nil
}

// List returns surveys matching the scope filter, sorted by folded name.
func (s *Store) List(ctx context.Context, filter bson.M) ([]models.Survey, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var surveys []models.Survey
	if err := cur.All(ctx, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

// GetByID returns (nil, nil) when the survey does not exist so callers can
// answer NOT_FOUND without inspecting driver sentinels.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Survey, error) {
	var sv models.Survey
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sv)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sv, nil
}
