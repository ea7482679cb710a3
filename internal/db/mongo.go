package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is the MongoDB-backed Store. A handle without a live connection runs
// in degraded mode: reads come back empty and writes fail with ErrUnavailable.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect initializes the database connection. An unreachable or unconfigured
// database is not fatal; the returned handle degrades instead.
func Connect(uri, dbName string) *Mongo {
	if uri == "" {
		log.Println("DATABASE_URL not set, running without a database")
		return &Mongo{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Printf("MongoDB connection failed: %v", err)
		return &Mongo{}
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Printf("MongoDB ping failed: %v", err)
		return &Mongo{}
	}

	m := &Mongo{client: client, db: client.Database(dbName)}
	if err := m.ensureIndexes(ctx); err != nil {
		log.Printf("Warning: failed to create indexes: %v", err)
	}

	fmt.Println("✅ Connected to MongoDB")
	return m
}

// ensureIndexes creates the unique indexes backing the email and slug
// invariants. The slug index also keeps blog seeding idempotent when
// concurrent cold-start requests race the empty-collection check.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	if _, err := m.db.Collection("user").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	}); err != nil {
		return err
	}
	_, err := m.db.Collection("blogpost").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: unique,
	})
	return err
}

// Available reports whether there is a live database connection.
func (m *Mongo) Available() bool {
	return m.db != nil
}

// Name returns the database name, or an empty string in degraded mode.
func (m *Mongo) Name() string {
	if m.db == nil {
		return ""
	}
	return m.db.Name()
}

// CollectionNames lists the collections in the database.
func (m *Mongo) CollectionNames(ctx context.Context) ([]string, error) {
	if m.db == nil {
		return nil, ErrUnavailable
	}
	return m.db.ListCollectionNames(ctx, bson.M{})
}

// Disconnect closes the underlying client connection.
func (m *Mongo) Disconnect(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}

// CreateDocument inserts a document with created_at/updated_at stamps and
// returns its hex ObjectID.
func (m *Mongo) CreateDocument(ctx context.Context, collection string, fields bson.M) (string, error) {
	if m.db == nil {
		return "", ErrUnavailable
	}

	doc := bson.M{}
	for k, v := range fields {
		doc[k] = v
	}
	now := time.Now().UTC()
	if _, ok := doc["created_at"]; !ok {
		doc["created_at"] = now
	}
	doc["updated_at"] = now

	res, err := m.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		return id.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

// GetDocuments returns up to limit matching documents in natural order. In
// degraded mode it returns an empty result rather than an error.
func (m *Mongo) GetDocuments(ctx context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error) {
	if m.db == nil {
		return nil, nil
	}

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := m.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// FindOne returns the first document matching the filter.
func (m *Mongo) FindOne(ctx context.Context, collection string, filter bson.M) (bson.M, error) {
	if m.db == nil {
		return nil, ErrNoDocument
	}

	var doc bson.M
	err := m.db.Collection(collection).FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Count returns the number of matching documents, 0 in degraded mode.
func (m *Mongo) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	if m.db == nil {
		return 0, nil
	}
	return m.db.Collection(collection).CountDocuments(ctx, filter)
}
