package alerter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAlerter struct {
	messages []string
	err      error
}

func (r *recordingAlerter) SendAlert(ctx context.Context, message string) error {
	r.messages = append(r.messages, message)
	return r.err
}

func post(controller *Controller, token, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller.RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/alert", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(tokenHeader, token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAlertForwarded(t *testing.T) {
	alerter := &recordingAlerter{}
	rec := post(New(alerter, "s3cret", testLogger()), "s3cret", `{"message":"disk 95%","source":"uptime","severity":"critical"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"delivered":true}`, rec.Body.String())
	require.Len(t, alerter.messages, 1)
	assert.Contains(t, alerter.messages[0], "[CRITICAL]")
	assert.Contains(t, alerter.messages[0], "Источник: uptime")
	assert.Contains(t, alerter.messages[0], "disk 95%")
}

func TestAlertRejected(t *testing.T) {
	alerter := &recordingAlerter{}

	assert.Equal(t, http.StatusUnauthorized, post(New(alerter, "s3cret", testLogger()), "wrong", `{"message":"x"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, post(New(alerter, "", testLogger()), "", `{"message":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(New(alerter, "s3cret", testLogger()), "s3cret", `{"message":"  "}`).Code)
	assert.Empty(t, alerter.messages)
}

func TestAlertDeliveryFailure(t *testing.T) {
	alerter := &recordingAlerter{err: errors.New("telegram is down")}
	rec := post(New(alerter, "s3cret", testLogger()), "s3cret", `{"message":"x"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":false,"delivered":false}`, rec.Body.String())

	rec = post(New(nil, "s3cret", testLogger()), "s3cret", `{"message":"x"}`)
	assert.JSONEq(t, `{"success":true,"delivered":false}`, rec.Body.String())
}
