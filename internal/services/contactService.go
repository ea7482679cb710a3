package services

import (
	"context"

	"github.com/pastelhq/landing-api/internal/db"
	"github.com/pastelhq/landing-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

type ContactService struct {
	store db.Store
}

func NewContactService(store db.Store) *ContactService {
	return &ContactService{store: store}
}

// Submit stores a contact-form message with status "new" and returns its id.
func (s *ContactService) Submit(ctx context.Context, name, email, message string) (string, error) {
	msg := models.ContactMessage{
		Name:    name,
		Email:   email,
		Message: message,
		Status:  "new",
	}
	return s.store.CreateDocument(ctx, "contactmessage", bson.M{
		"name":    msg.Name,
		"email":   msg.Email,
		"message": msg.Message,
		"status":  msg.Status,
	})
}
