package authController

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/storage/inmemory"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/usecases/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoPassword = "demo-password"

type sessionEnvelope struct {
	Success bool           `json:"success"`
	Error   string         `json:"error"`
	Data    domain.Session `json:"data"`
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := auth.New(inmemory.NewUserRepo(), inmemory.NewCache(), auth.Config{
		Secret:       "test-secret",
		DemoPassword: demoPassword,
	}, log)
	_, err := service.SeedDemoUsers(context.Background())
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	New(service, log).RegisterRoutes(router)
	return router
}

func call(t *testing.T, router *gin.Engine, method, path, body, token string) (*httptest.ResponseRecorder, sessionEnvelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env sessionEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestRegisterAndMe(t *testing.T) {
	router := newRouter(t)

	rec, env := call(t, router, http.MethodPost, "/api/auth/register",
		`{"name":"Мария","email":"Maria@Example.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, env.Data.Token)
	assert.Equal(t, "maria@example.com", env.Data.User.Email)
	assert.NotContains(t, rec.Body.String(), "password")

	rec, _ = call(t, router, http.MethodPost, "/api/auth/register",
		`{"name":"Мария","email":"maria@example.com","password":"secret123"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+env.Data.Token)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		Data domain.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "Мария", me.Data.Name)
	assert.Equal(t, domain.SubscriptionFree, me.Data.SubscriptionStatus)
}

func TestRegisterValidation(t *testing.T) {
	router := newRouter(t)

	rec, env := call(t, router, http.MethodPost, "/api/auth/register",
		`{"name":"Мария","email":"not-an-email","password":"secret123"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)

	rec, _ = call(t, router, http.MethodPost, "/api/auth/register", `{"name":`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginDemoUser(t *testing.T) {
	router := newRouter(t)

	rec, env := call(t, router, http.MethodPost, "/api/auth/login",
		`{"email":"alex.novikov@example.com","password":"`+demoPassword+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Александр Новиков", env.Data.User.Name)
	assert.Equal(t, domain.SubscriptionPremium, env.Data.User.SubscriptionStatus)

	rec, _ = call(t, router, http.MethodPost, "/api/auth/login",
		`{"email":"alex.novikov@example.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSocialLogin(t *testing.T) {
	router := newRouter(t)

	rec, env := call(t, router, http.MethodPost, "/api/auth/social/vk", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Пользователь VK", env.Data.User.Name)
	assert.Equal(t, "user@vk.com", env.Data.User.Email)

	rec, _ = call(t, router, http.MethodPost, "/api/auth/social/facebook", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMagicLink(t *testing.T) {
	router := newRouter(t)

	rec, env := call(t, router, http.MethodPost, "/api/auth/magic-link", `{"email":"anna@example.com"}`, "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.True(t, env.Success)

	rec, _ = call(t, router, http.MethodPost, "/api/auth/magic-link", `{"email":""}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	router := newRouter(t)

	_, env := call(t, router, http.MethodPost, "/api/auth/login",
		`{"email":"anna.zvezdnaya@example.com","password":"`+demoPassword+`"}`, "")
	token := env.Data.Token
	require.NotEmpty(t, token)

	rec, _ := call(t, router, http.MethodPost, "/api/auth/logout", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = call(t, router, http.MethodGet, "/api/auth/me", "", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = call(t, router, http.MethodPost, "/api/auth/logout", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
