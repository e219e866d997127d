package alerter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	messages []string
	err      error
}

func (f *fakeSender) SendAlert(ctx context.Context, message string) error {
	f.messages = append(f.messages, message)
	return f.err
}

func TestSendAlertWithoutSender(t *testing.T) {
	s := New(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, s.SendAlert(context.Background(), "hello"))
}

func TestSendAlertDelegates(t *testing.T) {
	sender := &fakeSender{}
	s := New(sender, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, s.SendAlert(context.Background(), "hello"))
	assert.Equal(t, []string{"hello"}, sender.messages)

	sender.err = errors.New("telegram is down")
	require.Error(t, s.SendAlert(context.Background(), "again"))
}
