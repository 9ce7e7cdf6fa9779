package sms

import (
	"context"
	"errors"
	"log/slog"
)

var (
	// ErrMissingCredentials is returned when provider credentials are empty.
	ErrMissingCredentials = errors.New("sms: missing provider credentials")
	// ErrEmptyRecipient is returned when the destination number is empty.
	ErrEmptyRecipient = errors.New("sms: recipient is required")
)

// SMS sends a text message and returns the provider message ID.
type SMS interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// Log writes messages to the default logger instead of sending them. Bodies
// carry verification codes, so they are masked unless debug is set.
type Log struct {
	debug bool
}

// NewLog returns a Log sender.
func NewLog(debug bool) *Log {
	return &Log{debug: debug}
}

// Send logs the message. The returned ID is always "log".
func (l *Log) Send(ctx context.Context, to, body string) (string, error) {
	if to == "" {
		return "", ErrEmptyRecipient
	}

	value := "******"
	if l.debug {
		value = body
	}

	slog.InfoContext(ctx, "sms not sent, log driver", "to", to, "body", value, "body_length", len(body))
	return "log", nil
}
