package alerter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientDisabled(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.Nil(t, NewClient(nil, log))
	assert.Nil(t, NewClient(&Config{BotToken: "token"}, log))

	var client *Client
	require.Error(t, client.SendAlert(context.Background(), "x"))
}

func TestSendAlert(t *testing.T) {
	var body map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	}))
	defer server.Close()

	client := NewClient(&Config{
		BotToken:    "token",
		ChatID:      -42,
		APIBaseURL:  server.URL,
		Environment: "stage",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NotNil(t, client)

	require.NoError(t, client.SendAlert(context.Background(), "job failed"))
	assert.Equal(t, "[stage] job failed", body["text"])
	assert.EqualValues(t, -42, body["chat_id"])
	assert.NotContains(t, body, "message_thread_id")
}

func TestSendAlertAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer server.Close()

	threadID := int64(7)
	client := NewClient(&Config{
		BotToken:        "token",
		ChatID:          1,
		MessageThreadID: &threadID,
		APIBaseURL:      server.URL,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := client.SendAlert(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}
