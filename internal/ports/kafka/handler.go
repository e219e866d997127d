package kafka

import "context"

// MessageHandler обработчик сообщений топика
type MessageHandler interface {
	HandleMessage(ctx context.Context, key string, value []byte) error
}
