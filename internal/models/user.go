package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User lives in the "user" collection.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Plan         string             `bson:"plan" json:"plan"` // "free", "pro" or "business"
	IsActive     bool               `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}
