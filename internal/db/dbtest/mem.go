// Package dbtest provides an in-memory document store for tests.
package dbtest

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/pastelhq/landing-api/internal/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mem is an in-memory db.Store keeping documents in insertion order.
type Mem struct {
	mu    sync.Mutex
	colls map[string][]bson.M
}

var _ db.Store = (*Mem)(nil)

func NewMem() *Mem {
	return &Mem{colls: make(map[string][]bson.M)}
}

func (m *Mem) CreateDocument(_ context.Context, collection string, fields bson.M) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc := copyDoc(fields)
	id := primitive.NewObjectID()
	doc["_id"] = id
	now := time.Now().UTC()
	if _, ok := doc["created_at"]; !ok {
		doc["created_at"] = now
	}
	doc["updated_at"] = now

	m.colls[collection] = append(m.colls[collection], doc)
	return id.Hex(), nil
}

func (m *Mem) GetDocuments(_ context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []bson.M
	for _, doc := range m.colls[collection] {
		if !matches(doc, filter) {
			continue
		}
		out = append(out, copyDoc(doc))
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (m *Mem) FindOne(_ context.Context, collection string, filter bson.M) (bson.M, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, doc := range m.colls[collection] {
		if matches(doc, filter) {
			return copyDoc(doc), nil
		}
	}
	return nil, db.ErrNoDocument
}

func (m *Mem) Count(_ context.Context, collection string, filter bson.M) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, doc := range m.colls[collection] {
		if matches(doc, filter) {
			n++
		}
	}
	return n, nil
}

// Available, Name and CollectionNames let Mem stand in for the diagnostic
// endpoint's store as well.

func (m *Mem) Available() bool { return true }

func (m *Mem) Name() string { return "mem" }

func (m *Mem) CollectionNames(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.colls))
	for name := range m.colls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// matches checks every filter key for equality against the document.
func matches(doc, filter bson.M) bool {
	for k, want := range filter {
		if !reflect.DeepEqual(doc[k], want) {
			return false
		}
	}
	return true
}

func copyDoc(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
