package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrUnavailable is returned for writes when there is no live database connection.
	ErrUnavailable = errors.New("database not available")
	// ErrNoDocument is returned when a lookup matches no document.
	ErrNoDocument = errors.New("document not found")
)

// Store is the document-store surface the services depend on.
type Store interface {
	// CreateDocument inserts a new document into a collection, stamping
	// creation metadata, and returns the generated id.
	CreateDocument(ctx context.Context, collection string, fields bson.M) (string, error)
	// GetDocuments returns up to limit documents matching the filter in the
	// store's natural order. An empty filter matches everything.
	GetDocuments(ctx context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error)
	// FindOne returns the first document matching an equality filter.
	FindOne(ctx context.Context, collection string, filter bson.M) (bson.M, error)
	// Count returns the number of documents matching the filter.
	Count(ctx context.Context, collection string, filter bson.M) (int64, error)
}
