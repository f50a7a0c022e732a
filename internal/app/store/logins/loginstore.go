// internal/app/store/logins/loginstore.go
package loginstore

import (
	"context"
	"time"

	"github.com/curasoft/famhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store appends login audit records. Failures are logged by callers but
// never block a login.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("logins")}
}

func (s *Store) Record(ctx context.Context, userID primitive.ObjectID, method string) error {
	rec := models.LoginRecord{
		ID:       primitive.NewObjectID(),
		UserID:   userID,
		Method:   method,
		LoggedAt: time.Now().UTC(),
	}
	_, err := s.c.InsertOne(ctx, rec)
	return err
}
