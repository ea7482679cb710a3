package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/pastelhq/landing-api/internal/db"
	"github.com/pastelhq/landing-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password so a
	// caller cannot tell registered addresses apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// HashPassword returns the hex SHA-256 digest of a password. The digest is
// deterministic: the same input always produces the same output.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

type AuthService struct {
	store db.Store
}

func NewAuthService(store db.Store) *AuthService {
	return &AuthService{store: store}
}

// Register creates a new user on the free plan. The email must not already
// be registered.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	_, err := s.store.FindOne(ctx, "user", bson.M{"email": email})
	if err == nil {
		return models.User{}, ErrDuplicateEmail
	}
	if !errors.Is(err, db.ErrNoDocument) {
		return models.User{}, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: HashPassword(password),
		Plan:         "free",
		IsActive:     true,
	}
	id, err := s.store.CreateDocument(ctx, "user", bson.M{
		"name":          user.Name,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"plan":          user.Plan,
		"is_active":     user.IsActive,
	})
	if err != nil {
		// A concurrent registration can slip past the FindOne check; the
		// unique email index reports it as a duplicate key on insert.
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		user.ID = oid
	}
	return user, nil
}

// Login authenticates a user by email and password digest.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	doc, err := s.store.FindOne(ctx, "user", bson.M{"email": email})
	if errors.Is(err, db.ErrNoDocument) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	if err := decode(doc, &user); err != nil {
		return models.User{}, err
	}
	if user.PasswordHash != HashPassword(password) {
		return models.User{}, ErrInvalidCredentials
	}
	if user.Plan == "" {
		user.Plan = "free"
	}
	return user, nil
}

// decode converts a raw store document into a typed model.
func decode(doc bson.M, out interface{}) error {
	data, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(data, out)
}
