package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pastelhq/landing-api/internal/db"
	"github.com/pastelhq/landing-api/internal/db/dbtest"
	"github.com/pastelhq/landing-api/internal/handlers"
	"github.com/pastelhq/landing-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// newTestApp wires the full route table onto a store, mirroring cmd/main.go.
func newTestApp(store db.Store, status handlers.StatusStore, databaseURL string) *fiber.App {
	app := fiber.New()

	system := handlers.NewSystemHandler(status, databaseURL)
	auth := handlers.NewAuthHandler(services.NewAuthService(store))
	blog := handlers.NewBlogHandler(services.NewBlogService(store))
	contact := handlers.NewContactHandler(services.NewContactService(store))

	app.Get("/", system.Root)
	app.Get("/test", system.Test)

	api := app.Group("/api")
	api.Get("/pricing", handlers.PricingHandler)
	api.Get("/blog", blog.List)
	api.Get("/blog/:slug", blog.GetBySlug)
	api.Post("/contact", contact.Submit)

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", auth.Register)
	authRoutes.Post("/login", auth.Login)

	return app
}

func newMemApp() (*fiber.App, *dbtest.Mem) {
	store := dbtest.NewMem()
	return newTestApp(store, store, "mongodb://localhost:27017"), store
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestRootMessage(t *testing.T) {
	app, _ := newMemApp()

	resp := getJSON(t, app, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "SaaS Landing API running", body["message"])
}

func TestPricingCatalog(t *testing.T) {
	app, _ := newMemApp()

	resp := getJSON(t, app, "/api/pricing")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Plans []struct {
			Name      string   `json:"name"`
			Price     int      `json:"price"`
			Period    string   `json:"period"`
			Features  []string `json:"features"`
			CTA       string   `json:"cta"`
			Highlight bool     `json:"highlight"`
		} `json:"plans"`
	}
	decodeBody(t, resp, &body)

	require.Len(t, body.Plans, 3)
	assert.Equal(t, "Free", body.Plans[0].Name)
	assert.Equal(t, "Pro", body.Plans[1].Name)
	assert.Equal(t, "Business", body.Plans[2].Name)
	assert.False(t, body.Plans[0].Highlight)
	assert.True(t, body.Plans[1].Highlight)
	assert.False(t, body.Plans[2].Highlight)
	assert.Equal(t, 19, body.Plans[1].Price)
	assert.NotEmpty(t, body.Plans[2].Features)
}

func TestRegisterThenDuplicate(t *testing.T) {
	app, _ := newMemApp()

	payload := map[string]string{"name": "Ada", "email": "ada@example.com", "password": "password123"}

	resp := postJSON(t, app, "/api/auth/register", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "Ada", body["name"])
	assert.Equal(t, "free", body["plan"])

	resp = postJSON(t, app, "/api/auth/register", payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var dup map[string]string
	decodeBody(t, resp, &dup)
	assert.Equal(t, "Email already registered", dup["error"])
}

func TestLoginErrorShapeIsUniform(t *testing.T) {
	app, _ := newMemApp()

	resp := postJSON(t, app, "/api/auth/register",
		map[string]string{"name": "Ada", "email": "ada@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	wrongPassword := postJSON(t, app, "/api/auth/login",
		map[string]string{"email": "ada@example.com", "password": "nope"})
	unknownEmail := postJSON(t, app, "/api/auth/login",
		map[string]string{"email": "nobody@example.com", "password": "password123"})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.StatusCode)

	wrongBody, _ := io.ReadAll(wrongPassword.Body)
	unknownBody, _ := io.ReadAll(unknownEmail.Body)
	wrongPassword.Body.Close()
	unknownEmail.Body.Close()
	assert.JSONEq(t, string(wrongBody), string(unknownBody))
}

func TestLoginReturnsRegisteredProfile(t *testing.T) {
	app, _ := newMemApp()

	resp := postJSON(t, app, "/api/auth/register",
		map[string]string{"name": "Ada", "email": "ada@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var registered map[string]interface{}
	decodeBody(t, resp, &registered)

	resp = postJSON(t, app, "/api/auth/login",
		map[string]string{"email": "ada@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var loggedIn map[string]interface{}
	decodeBody(t, resp, &loggedIn)

	assert.Equal(t, registered, loggedIn)
}

func TestBlogListSeedsAndOmitsContent(t *testing.T) {
	app, store := newMemApp()

	resp := getJSON(t, app, "/api/blog")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"content"`)

	var body struct {
		Posts []struct {
			Title  string   `json:"title"`
			Slug   string   `json:"slug"`
			Author string   `json:"author"`
			Tags   []string `json:"tags"`
		} `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Len(t, body.Posts, 3)

	// Listing again must not duplicate the seeds.
	resp = getJSON(t, app, "/api/blog")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	count, err := store.Count(context.Background(), "blogpost", bson.M{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestBlogListLimitQuery(t *testing.T) {
	app, _ := newMemApp()

	resp := getJSON(t, app, "/api/blog?limit=1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Posts []json.RawMessage `json:"posts"`
	}
	decodeBody(t, resp, &body)
	assert.Len(t, body.Posts, 1)
}

func TestBlogGetBySlug(t *testing.T) {
	app, _ := newMemApp()

	// Seed via the list endpoint first.
	resp := getJSON(t, app, "/api/blog")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = getJSON(t, app, "/api/blog/designing-with-pastels")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var post map[string]interface{}
	decodeBody(t, resp, &post)
	assert.Contains(t, post["content"], "Pastels bring calm")
	assert.Equal(t, "Team", post["author"])

	resp = getJSON(t, app, "/api/blog/no-such-post")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var missing map[string]string
	decodeBody(t, resp, &missing)
	assert.Equal(t, "Post not found", missing["error"])
}

func TestContactSubmission(t *testing.T) {
	app, store := newMemApp()

	resp := postJSON(t, app, "/api/contact",
		map[string]string{"name": "Ada", "email": "ada@example.com", "message": "Hello"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "received", body["status"])

	doc, err := store.FindOne(context.Background(), "contactmessage", bson.M{"email": "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "new", doc["status"])
}

func TestInvalidBodyRejected(t *testing.T) {
	app, _ := newMemApp()

	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDiagnosticWithStore(t *testing.T) {
	app, _ := newMemApp()

	resp := getJSON(t, app, "/test")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "✅ Running", body["backend"])
	assert.Equal(t, "✅ Connected & Working", body["database"])
	assert.Equal(t, "✅ Set", body["database_url"])
	assert.Equal(t, "Connected", body["connection_status"])
}

func TestDiagnosticWithoutDatabase(t *testing.T) {
	degraded := &db.Mongo{}
	app := newTestApp(degraded, degraded, "")

	resp := getJSON(t, app, "/test")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "✅ Running", body["backend"])
	assert.Equal(t, "❌ Not Available", body["database"])
	assert.Equal(t, "❌ Not Set", body["database_url"])
	assert.Equal(t, "Not Connected", body["connection_status"])
}

// brokenStatusStore reports a live connection whose introspection fails.
type brokenStatusStore struct {
	*dbtest.Mem
	err error
}

func (s *brokenStatusStore) CollectionNames(context.Context) ([]string, error) {
	return nil, s.err
}

func TestDiagnosticTruncatesStorageErrors(t *testing.T) {
	store := dbtest.NewMem()
	status := &brokenStatusStore{Mem: store, err: errors.New(strings.Repeat("x", 200))}
	app := newTestApp(store, status, "mongodb://localhost:27017")

	resp := getJSON(t, app, "/test")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "⚠️ Connected but Error: "+strings.Repeat("x", 80), body["database"])
	assert.Equal(t, "Connected", body["connection_status"])
}

func TestWritesFailWithoutDatabase(t *testing.T) {
	degraded := &db.Mongo{}
	app := newTestApp(degraded, degraded, "")

	resp := postJSON(t, app, "/api/auth/register",
		map[string]string{"name": "Ada", "email": "ada@example.com", "password": "password123"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp = postJSON(t, app, "/api/contact",
		map[string]string{"name": "Ada", "email": "ada@example.com", "message": "Hello"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	// Reads degrade to empty rather than failing.
	resp = getJSON(t, app, "/api/blog")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
