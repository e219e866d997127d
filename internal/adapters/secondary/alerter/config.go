package alerter

import "fmt"

// Config алерты в Telegram-группу. Без BOT_TOKEN и CHAT_ID алерты только логируются
type Config struct {
	BotToken        string `envconfig:"BOT_TOKEN"`
	ChatID          int64  `envconfig:"CHAT_ID"`
	MessageThreadID *int64 `envconfig:"MESSAGE_THREAD_ID"`
	APIBaseURL      string `envconfig:"API_BASE_URL"`
	Environment     string `envconfig:"ENVIRONMENT"` // prod, stage; попадает в начало алерта
}

// Enabled true, если алерты настроены
func (c *Config) Enabled() bool {
	return c != nil && c.BotToken != "" && c.ChatID != 0
}

func (c *Config) messagePrefix() string {
	if c.Environment == "" {
		return ""
	}
	return fmt.Sprintf("[%s] ", c.Environment)
}
