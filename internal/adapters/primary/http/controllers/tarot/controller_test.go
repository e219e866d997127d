package tarotController

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/storage/inmemory"
	tarotStore "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/tarot"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/pkg/random"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/usecases/tarot"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool                `json:"success"`
	Error   string              `json:"error"`
	Data    domain.TarotSession `json:"data"`
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := tarot.New(tarotStore.NewEmbeddedStore(), inmemory.NewCache(), random.New(), tarot.Config{}, log)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	New(service, nil, log).RegisterRoutes(router)
	return router
}

func call(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestSpreads(t *testing.T) {
	router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tarot/spreads", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []domain.SpreadLayout `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 3)
	assert.Equal(t, "three-card", body.Data[0].ID)
}

func TestSessionLifecycle(t *testing.T) {
	router := newRouter(t)

	rec, created := call(t, router, http.MethodPost, "/api/tarot/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.TarotStateEmpty, created.Data.State)
	base := "/api/tarot/sessions/" + created.Data.ID.String()

	rec, env := call(t, router, http.MethodPost, base+"/draw", `{"spreadId":"three-card"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)

	rec, env = call(t, router, http.MethodPost, base+"/shuffle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.TarotStateReady, env.Data.State)

	rec, _ = call(t, router, http.MethodPost, base+"/draw", `{"spreadId":"tower-of-babel"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = call(t, router, http.MethodPost, base+"/draw", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = call(t, router, http.MethodPost, base+"/draw", `{"spreadId":"three-card"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.TarotStateLaidOut, env.Data.State)
	require.Len(t, env.Data.Cards, 3)
	for _, card := range env.Data.Cards {
		assert.Empty(t, card.Card.FullInterpretation)
		assert.NotEmpty(t, card.Card.ShortMeaning)
	}

	rec, env = call(t, router, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.Data.Cards, 3)

	rec, env = call(t, router, http.MethodDelete, base, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.TarotStateEmpty, env.Data.State)
	assert.Empty(t, env.Data.Cards)
}

func TestSessionErrors(t *testing.T) {
	router := newRouter(t)

	rec, _ := call(t, router, http.MethodGet, "/api/tarot/sessions/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := call(t, router, http.MethodPost, "/api/tarot/sessions/"+uuid.NewString()+"/shuffle", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, env.Error)
}
