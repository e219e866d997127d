package alerter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	telegramAPIBaseURL = "https://api.telegram.org/bot"
	apiTimeout         = 10 * time.Second
)

// Client отправляет алерты в Telegram группу (или топик форума) через Bot API
type Client struct {
	httpClient      *http.Client
	endpoint        string
	chatID          int64
	messageThreadID *int64
	prefix          string
	log             *slog.Logger
}

// NewClient создаёт клиент алертов. nil, если алерты не настроены
func NewClient(cfg *Config, log *slog.Logger) *Client {
	if !cfg.Enabled() {
		return nil
	}

	baseURL := telegramAPIBaseURL + cfg.BotToken
	if cfg.APIBaseURL != "" {
		baseURL = cfg.APIBaseURL
	}
	return &Client{
		httpClient:      &http.Client{Timeout: apiTimeout},
		endpoint:        baseURL + "/sendMessage",
		chatID:          cfg.ChatID,
		messageThreadID: cfg.MessageThreadID,
		prefix:          cfg.messagePrefix(),
		log:             log,
	}
}

type sendMessageRequest struct {
	ChatID          int64  `json:"chat_id"`
	Text            string `json:"text"`
	MessageThreadID *int64 `json:"message_thread_id,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
}

// SendAlert отправляет алерт с префиксом окружения
func (c *Client) SendAlert(ctx context.Context, message string) error {
	if c == nil || c.httpClient == nil {
		return fmt.Errorf("alerter client is not initialized")
	}

	if err := c.sendMessage(ctx, sendMessageRequest{
		ChatID:          c.chatID,
		Text:            c.prefix + message,
		MessageThreadID: c.messageThreadID,
	}); err != nil {
		c.log.Warn("failed to send alert",
			"error", err,
			"chat_id", c.chatID,
			"message_thread_id", c.messageThreadID,
		)
		return fmt.Errorf("failed to send alert: %w", err)
	}

	c.log.Debug("alert sent successfully",
		"chat_id", c.chatID,
		"message_thread_id", c.messageThreadID,
	)
	return nil
}

func (c *Client) sendMessage(ctx context.Context, req sendMessageRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request to telegram: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("failed to unmarshal response (status %d): %w", resp.StatusCode, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram API error: %s (code: %d)", apiResp.Description, apiResp.ErrorCode)
	}
	return nil
}
