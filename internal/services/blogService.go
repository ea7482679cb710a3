package services

import (
	"context"
	"errors"
	"time"

	"github.com/pastelhq/landing-api/internal/db"
	"github.com/pastelhq/landing-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrPostNotFound = errors.New("post not found")

// DefaultBlogLimit caps the list view when the caller gives no limit.
const DefaultBlogLimit = 6

type BlogService struct {
	store db.Store
}

func NewBlogService(store db.Store) *BlogService {
	return &BlogService{store: store}
}

// samplePosts are the posts seeded into an empty blog collection.
func samplePosts(now time.Time) []bson.M {
	return []bson.M{
		{
			"title":        "Designing With Pastels: A Gentle UI Aesthetic",
			"slug":         "designing-with-pastels",
			"excerpt":      "How soft color palettes can increase trust and readability in fintech apps.",
			"content":      "<p>Pastels bring calm to complex financial interfaces...</p>",
			"author":       "Team",
			"tags":         []string{"design", "ux"},
			"published_at": now,
		},
		{
			"title":        "Pricing Psychology for SaaS",
			"slug":         "pricing-psychology-saas",
			"excerpt":      "Anchoring, decoys and how to present value tiers.",
			"content":      "<p>Great pricing pages tell a story of value...</p>",
			"author":       "Team",
			"tags":         []string{"growth", "pricing"},
			"published_at": now,
		},
		{
			"title":        "Frictionless Onboarding",
			"slug":         "frictionless-onboarding",
			"excerpt":      "Best practices for sign-up and authentication flows.",
			"content":      "<p>Every extra field reduces conversions...</p>",
			"author":       "Team",
			"tags":         []string{"product", "auth"},
			"published_at": now,
		},
	}
}

// EnsureSamplePosts seeds the blog collection when it has no posts yet. It is
// safe to call repeatedly and under concurrent cold starts: the unique slug
// index turns a losing race into a duplicate-key error, which is ignored.
// Without a database this is a no-op.
func (s *BlogService) EnsureSamplePosts(ctx context.Context) error {
	count, err := s.store.Count(ctx, "blogpost", bson.M{})
	if err != nil || count > 0 {
		return err
	}

	for _, post := range samplePosts(time.Now().UTC()) {
		if _, err := s.store.CreateDocument(ctx, "blogpost", post); err != nil {
			if errors.Is(err, db.ErrUnavailable) {
				return nil
			}
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return err
		}
	}
	return nil
}

// List returns up to limit posts in the store's natural order, seeding the
// collection first if it is empty.
func (s *BlogService) List(ctx context.Context, limit int64) ([]models.BlogPostListItem, error) {
	if limit <= 0 {
		limit = DefaultBlogLimit
	}
	if err := s.EnsureSamplePosts(ctx); err != nil {
		return nil, err
	}

	docs, err := s.store.GetDocuments(ctx, "blogpost", bson.M{}, limit)
	if err != nil {
		return nil, err
	}

	items := make([]models.BlogPostListItem, 0, len(docs))
	for _, doc := range docs {
		var post models.BlogPost
		if err := decode(doc, &post); err != nil {
			return nil, err
		}
		applyPostDefaults(&post)
		items = append(items, models.BlogPostListItem{
			Title:       post.Title,
			Slug:        post.Slug,
			Excerpt:     post.Excerpt,
			Author:      post.Author,
			PublishedAt: post.PublishedAt,
			Tags:        post.Tags,
		})
	}
	return items, nil
}

// GetBySlug returns the full post, including the content body.
func (s *BlogService) GetBySlug(ctx context.Context, slug string) (models.BlogPost, error) {
	doc, err := s.store.FindOne(ctx, "blogpost", bson.M{"slug": slug})
	if errors.Is(err, db.ErrNoDocument) {
		return models.BlogPost{}, ErrPostNotFound
	}
	if err != nil {
		return models.BlogPost{}, err
	}

	var post models.BlogPost
	if err := decode(doc, &post); err != nil {
		return models.BlogPost{}, err
	}
	applyPostDefaults(&post)
	return post, nil
}

func applyPostDefaults(post *models.BlogPost) {
	if post.Author == "" {
		post.Author = "Team"
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
}
