// internal/domain/models/configuration.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Configuration is a named, admin-managed settings record. The value is a
// free-form document; the server treats it as opaque.
type Configuration struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Name      string             `bson:"name" json:"name"` // unique
	Value     map[string]any     `bson:"value" json:"value"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// LoginRecord is one audit entry of a completed login.
type LoginRecord struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	Method   string             `bson:"method" json:"method"` // "google" | "local"
	LoggedAt time.Time          `bson:"logged_at" json:"logged_at"`
}
