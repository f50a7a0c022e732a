// internal/app/store/responses/responsestore.go
package responsestore

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
	return &Store{c: db.Collection("responses")}
}

// Create inserts a response. The caller is responsible for having set the
// denormalized organization ids (user_organization_id from the author,
// survey_organization_id from the survey) before insert.
func (s *Store) Create(ctx context.Context, r models.Response) (models.Response, error) {
	now := time.Now().UTC()
	r.ID = primitive.NewObjectID()
	r.CreatedAt = now
	r.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Response{}, err
	}
	return r, nil
}

// ListBySurvey returns the survey's responses that also satisfy the scope
// filter, oldest first.
func (s *Store) ListBySurvey(ctx context.Context, surveyID primitive.ObjectID, scope bson.M) ([]models.Response, error) {
	filter := bson.M{"survey_id": surveyID}
	if len(scope) > 0 {
		filter = bson.M{"$and": bson.A{filter, scope}}
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var responses []models.Response
	if err := cur.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Response, error) {
	var r models.Response
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
