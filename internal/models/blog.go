package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogPost lives in the "blogpost" collection. Slug is the public lookup key.
type BlogPost struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Excerpt     string             `bson:"excerpt,omitempty" json:"excerpt"`
	Content     string             `bson:"content" json:"content"`
	Author      string             `bson:"author" json:"author"`
	Tags        []string           `bson:"tags" json:"tags"`
	PublishedAt *time.Time         `bson:"published_at,omitempty" json:"published_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at,omitempty" json:"-"`
}

// BlogPostListItem is the list view of a post; the content body is omitted.
type BlogPostListItem struct {
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Author      string     `json:"author"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Tags        []string   `json:"tags"`
}
