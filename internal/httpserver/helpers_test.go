package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nkhangg/gostore/internal/models"
	"github.com/nkhangg/gostore/internal/repo"
	"github.com/nkhangg/gostore/internal/service"
)

type fakePublisher struct {
	events []map[string]any
}

func (f *fakePublisher) PublishEvent(_ context.Context, topic, key string, event map[string]any) error {
	copied := map[string]any{"topic": topic, "key": key}
	for k, v := range event {
		copied[k] = v
	}
	f.events = append(f.events, copied)
	return nil
}

type fakeIndexer struct {
	indexed []uint
	deleted []uint
}

func (f *fakeIndexer) IndexProduct(_ context.Context, product models.Product) error {
	f.indexed = append(f.indexed, product.ID)
	return nil
}

func (f *fakeIndexer) DeleteProduct(_ context.Context, id uint) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	Repo     *repo.GormRepo
	Producer *fakePublisher
	Indexer  *fakeIndexer
	Searcher *fakeSearcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	r := repo.NewGormRepo(db)
	producer := &fakePublisher{}
	indexer := &fakeIndexer{}
	searcher := &fakeSearcher{}
	jwtSecret := []byte("test-jwt-secret")

	deps := Deps{
		AuthHandler: &AuthHandler{
			Svc:      service.NewAuthService(r, jwtSecret),
			Producer: producer,
		},
		ProductHandler: &ProductHandler{
			Svc:      service.NewCatalogService(r),
			Producer: producer,
			Index:    indexer,
		},
		CartHandler: &CartHandler{Svc: service.NewCartService(r)},
		OrderHandler: &OrderHandler{
			Svc:      service.NewOrderService(r),
			Producer: producer,
		},
		SearchHandler: &SearchHandler{Index: searcher},
		JWTSecret:     jwtSecret,
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	Register(e, &deps)

	return &testEnv{T: t, E: e, Repo: r, Producer: producer, Indexer: indexer, Searcher: searcher}
}

func (env *testEnv) doJSON(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) register(email, password string) *httptest.ResponseRecorder {
	return env.doJSON(http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": password,
	}, "")
}

func (env *testEnv) login(email, password string) string {
	env.T.Helper()

	rec := env.doJSON(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(env.T, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(env.T, resp.Token)
	return resp.Token
}

func (env *testEnv) registerAndLogin(email string) string {
	env.T.Helper()

	rec := env.register(email, "password")
	require.Equal(env.T, http.StatusCreated, rec.Code)
	return env.login(email, "password")
}

func (env *testEnv) seedProduct(name string, price float64) *models.Product {
	env.T.Helper()

	product := &models.Product{
		Name:        name,
		Description: name + " description",
		Price:       price,
	}
	require.NoError(env.T, env.Repo.DB.Create(product).Error)
	return product
}
