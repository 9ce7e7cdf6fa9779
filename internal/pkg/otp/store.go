package otp

import (
	"context"
	"time"
)

// UpdateFunc receives the current entry, or nil when absent, and returns the
// entry to store. Returning a nil entry deletes it. Returning an error leaves
// the store unchanged and is passed back to the caller of Update.
//
// An UpdateFunc may be called more than once per Update and must not block.
type UpdateFunc[P any] func(cur *Entry[P]) (*Entry[P], error)

// Store holds entries keyed by subject.
//
// Update must serialize read-check-write cycles for the same subject.
type Store[P any] interface {
	Get(ctx context.Context, subject string) (*Entry[P], error)
	Update(ctx context.Context, subject string, fn UpdateFunc[P]) error
	Delete(ctx context.Context, subject string) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
