package otp

import "context"

// Sender delivers a freshly issued code to its subject.
//
// Send is called after the entry is stored and outside any store lock.
// Timeouts are the implementation's concern.
type Sender interface {
	Send(ctx context.Context, d Delivery) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, d Delivery) error

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, d Delivery) error {
	return f(ctx, d)
}
