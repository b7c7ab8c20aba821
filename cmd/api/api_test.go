package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	api "coffeemap-backend/cmd/api"
	authdomain "coffeemap-backend/internal/auth/domain"
	authRepoPkg "coffeemap-backend/internal/auth/repository"
	authUsecase "coffeemap-backend/internal/auth/usecase"
	shopdomain "coffeemap-backend/internal/coffeeshop/domain"
	shopRepoPkg "coffeemap-backend/internal/coffeeshop/repository"
	shopUsecase "coffeemap-backend/internal/coffeeshop/usecase"
	"coffeemap-backend/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repositories backing the full HTTP surface. They keep the same
// contracts as the mongo implementations: nil on not-found, duplicate-key
// write errors on unique email violations, newest-first owner listings.

type memUserRepo struct {
	users []*authdomain.User
}

func dupKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func (r *memUserRepo) Create(_ context.Context, user *authdomain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return dupKeyErr()
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	copied := *user
	r.users = append(r.users, &copied)
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*authdomain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*authdomain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmailExcluding(_ context.Context, email string, id primitive.ObjectID) (*authdomain.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.ID != id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, id primitive.ObjectID, update authdomain.UserUpdate) (*authdomain.User, error) {
	for _, u := range r.users {
		if u.ID != id {
			continue
		}
		if update.Email != nil {
			for _, other := range r.users {
				if other.ID != id && other.Email == *update.Email {
					return nil, dupKeyErr()
				}
			}
			u.Email = *update.Email
		}
		if update.Name != nil {
			u.Name = *update.Name
		}
		if update.Password != nil {
			u.Password = *update.Password
		}
		u.UpdatedAt = time.Now()
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

type memShopRepo struct {
	shops []*shopdomain.CoffeeShop
	now   time.Time
}

func (r *memShopRepo) Create(_ context.Context, shop *shopdomain.CoffeeShop) error {
	r.now = r.now.Add(time.Second)
	shop.ID = primitive.NewObjectID()
	shop.CreatedAt = r.now
	shop.UpdatedAt = r.now
	copied := *shop
	r.shops = append(r.shops, &copied)
	return nil
}

func (r *memShopRepo) FindByOwner(_ context.Context, owner primitive.ObjectID) ([]*shopdomain.CoffeeShop, error) {
	out := make([]*shopdomain.CoffeeShop, 0)
	for _, s := range r.shops {
		if s.Owner == owner {
			copied := *s
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memShopRepo) FindByID(_ context.Context, id primitive.ObjectID) (*shopdomain.CoffeeShop, error) {
	for _, s := range r.shops {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memShopRepo) DeleteOwned(_ context.Context, id, owner primitive.ObjectID) (bool, error) {
	for i, s := range r.shops {
		if s.ID == id && s.Owner == owner {
			r.shops = append(r.shops[:i], r.shops[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

var (
	_ authRepoPkg.UserRepository       = (*memUserRepo)(nil)
	_ shopRepoPkg.CoffeeShopRepository = (*memShopRepo)(nil)
)

func newTestServer(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	authUc := authUsecase.NewAuthUsecase(&memUserRepo{}, cfg)
	shopUc := shopUsecase.NewCoffeeShopUsecase(&memShopRepo{})

	r := gin.New()
	r.Use(api.ErrorFormatter(cfg.AppEnv))
	api.SetupRoutes(r, authUc, shopUc)
	return r
}

func defaultConfig() *config.Config {
	return &config.Config{
		AppEnv:    "test",
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func errMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, w)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "body has no error object: %s", w.Body.String())
	msg, _ := errObj["message"].(string)
	return msg
}

func signup(t *testing.T, r *gin.Engine, email, name, password string) (userID, token string) {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/signup", "", gin.H{
		"email":    email,
		"name":     name,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	user := body["user"].(map[string]any)
	return user["id"].(string), body["token"].(string)
}

func TestSignupReturnsUserAndToken(t *testing.T) {
	r := newTestServer(defaultConfig())

	w := doJSON(r, http.MethodPost, "/signup", "", gin.H{
		"email":    "alice@example.com",
		"name":     "Alice",
		"password": "longenough1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, "Alice", user["name"])
	assert.NotEmpty(t, body["token"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, w.Body.String(), "longenough1")
}

func TestSignupValidation(t *testing.T) {
	r := newTestServer(defaultConfig())

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing email", gin.H{"name": "Alice", "password": "longenough1"}},
		{"bad email format", gin.H{"email": "not-an-email", "name": "Alice", "password": "longenough1"}},
		{"short password", gin.H{"email": "alice@example.com", "name": "Alice", "password": "short"}},
		{"short name", gin.H{"email": "alice@example.com", "name": "A", "password": "longenough1"}},
		{"whitespace-padded short name", gin.H{"email": "alice@example.com", "name": "  A ", "password": "longenough1"}},
		{"whitespace-only name", gin.H{"email": "alice@example.com", "name": "   ", "password": "longenough1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/signup", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Invalid input data", errMessage(t, w))
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	r := newTestServer(defaultConfig())
	signup(t, r, "alice@example.com", "Alice", "longenough1")

	w := doJSON(r, http.MethodPost, "/signup", "", gin.H{
		"email":    "Alice@Example.com",
		"name":     "Other Alice",
		"password": "longenough1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already registered", errMessage(t, w))
}

func TestSigninFlows(t *testing.T) {
	r := newTestServer(defaultConfig())
	signup(t, r, "alice@example.com", "Alice", "longenough1")

	w := doJSON(r, http.MethodPost, "/signin", "", gin.H{"email": "alice@example.com", "password": "longenough1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["token"])

	w = doJSON(r, http.MethodPost, "/signin", "", gin.H{"email": "alice@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email and password are required", errMessage(t, w))

	wrong := doJSON(r, http.MethodPost, "/signin", "", gin.H{"email": "alice@example.com", "password": "wrongpassword"})
	unknown := doJSON(r, http.MethodPost, "/signin", "", gin.H{"email": "nobody@example.com", "password": "longenough1"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, errMessage(t, wrong), errMessage(t, unknown))
}

func TestMe(t *testing.T) {
	r := newTestServer(defaultConfig())
	userID, token := signup(t, r, "alice@example.com", "Alice", "longenough1")

	w := doJSON(r, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, userID, user["id"])
	assert.Equal(t, "alice@example.com", user["email"])

	w = doJSON(r, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authorization required", errMessage(t, w))

	w = doJSON(r, http.MethodGet, "/users/me", "garbage.token.here", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", errMessage(t, w))
}

func TestExpiredTokenIsRejectedDespiteValidSignature(t *testing.T) {
	cfg := defaultConfig()
	cfg.JWTExpiry = -time.Minute
	r := newTestServer(cfg)
	_, token := signup(t, r, "alice@example.com", "Alice", "longenough1")

	w := doJSON(r, http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token expired", errMessage(t, w))
}

func TestUpdateProfile(t *testing.T) {
	r := newTestServer(defaultConfig())
	_, token := signup(t, r, "alice@example.com", "Alice", "longenough1")
	signup(t, r, "bob@example.com", "Bob", "longenough1")

	w := doJSON(r, http.MethodPatch, "/users/me", token, gin.H{"name": "Alicia"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alicia", decode(t, w)["user"].(map[string]any)["name"])

	w = doJSON(r, http.MethodPatch, "/users/me", token, gin.H{"email": "bob@example.com"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already taken", errMessage(t, w))

	w = doJSON(r, http.MethodPatch, "/users/me", token, gin.H{"password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCoffeeShopLifecycle(t *testing.T) {
	r := newTestServer(defaultConfig())
	aliceID, aliceToken := signup(t, r, "alice@example.com", "Alice", "longenough1")
	_, bobToken := signup(t, r, "bob@example.com", "Bob", "longenough1")

	// Alice starts with no shops.
	w := doJSON(r, http.MethodGet, "/coffee-shops", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	// Create two shops; client-supplied owner is ignored.
	w = doJSON(r, http.MethodPost, "/coffee-shops", aliceToken, gin.H{
		"name":  "First",
		"lat":   40.7128,
		"lon":   -74.006,
		"owner": primitive.NewObjectID().Hex(),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode(t, w)
	assert.Equal(t, aliceID, first["owner"])

	w = doJSON(r, http.MethodPost, "/coffee-shops", aliceToken, gin.H{
		"name":     "Second",
		"lat":      51.5074,
		"lon":      -0.1278,
		"address":  "London",
		"distance": 120.5,
		"tags":     gin.H{"wifi": "yes"},
		"osmId":    "node/42",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	second := decode(t, w)

	// Newest first, and only the caller's records.
	w = doJSON(r, http.MethodGet, "/coffee-shops", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0]["name"])
	assert.Equal(t, "First", list[1]["name"])

	w = doJSON(r, http.MethodGet, "/coffee-shops", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	// Bob cannot delete Alice's record; probing a dead id differs.
	shopID := second["id"].(string)
	w = doJSON(r, http.MethodDelete, "/coffee-shops/"+shopID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You don't have permission to delete this coffee shop", errMessage(t, w))

	w = doJSON(r, http.MethodDelete, "/coffee-shops/"+primitive.NewObjectID().Hex(), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Coffee shop not found", errMessage(t, w))

	// Owner delete succeeds and the record disappears from the list.
	w = doJSON(r, http.MethodDelete, "/coffee-shops/"+shopID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Coffee shop deleted successfully", decode(t, w)["message"])

	w = doJSON(r, http.MethodGet, "/coffee-shops", aliceToken, nil)
	var after []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &after))
	require.Len(t, after, 1)
	assert.Equal(t, "First", after[0]["name"])
}

func TestCreateCoffeeShopValidation(t *testing.T) {
	r := newTestServer(defaultConfig())
	_, token := signup(t, r, "alice@example.com", "Alice", "longenough1")

	w := doJSON(r, http.MethodPost, "/coffee-shops", token, gin.H{"lat": 1.0, "lon": 2.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name, latitude, and longitude are required", errMessage(t, w))

	w = doJSON(r, http.MethodPost, "/coffee-shops", token, gin.H{"name": "X", "lon": 2.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/coffee-shops", token, gin.H{"name": "X", "lat": "not-a-number", "lon": 2.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid data format", errMessage(t, w))
}

func TestDeleteCoffeeShopInvalidID(t *testing.T) {
	r := newTestServer(defaultConfig())
	_, token := signup(t, r, "alice@example.com", "Alice", "longenough1")

	for _, id := range []string{"nope", "123abc", fmt.Sprintf("%025x", 1)} {
		w := doJSON(r, http.MethodDelete, "/coffee-shops/"+id, token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, id)
		assert.Equal(t, "Invalid coffee shop ID format", errMessage(t, w))
	}
}

func newBoomRouter(appEnv string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(api.ErrorFormatter(appEnv))
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("connection reset by peer"))
	})
	return r
}

func TestUnclassifiedErrorRendersOpaque500(t *testing.T) {
	r := newBoomRouter("development")

	w := doJSON(r, http.MethodGet, "/boom", "", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "An error has occurred on the server", errMessage(t, w))
	assert.NotContains(t, w.Body.String(), "connection reset by peer")

	// Outside production the stack rides alongside the message.
	errObj := decode(t, w)["error"].(map[string]any)
	stack, _ := errObj["stack"].(string)
	assert.NotEmpty(t, stack)
}

func TestProductionOmitsStack(t *testing.T) {
	r := newBoomRouter("production")

	w := doJSON(r, http.MethodGet, "/boom", "", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "An error has occurred on the server", errMessage(t, w))
	assert.NotContains(t, w.Body.String(), "stack")
}

func TestUnknownRouteIs404(t *testing.T) {
	r := newTestServer(defaultConfig())

	w := doJSON(r, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "The requested resource was not found", errMessage(t, w))
}

func TestHealth(t *testing.T) {
	r := newTestServer(defaultConfig())

	w := doJSON(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
