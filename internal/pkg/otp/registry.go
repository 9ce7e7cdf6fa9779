package otp

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/shandysiswandi/backlink/internal/pkg/clock"
)

const (
	// DefaultTTL is how long an issued code stays valid.
	DefaultTTL = 10 * time.Minute
	// DefaultMaxAttempts is how many wrong codes an entry tolerates.
	DefaultMaxAttempts = 3
)

// Config configures a Registry. Store and Sender are required.
type Config[P any] struct {
	Store  Store[P]
	Sender Sender
	Clock  clock.Clocker
	Codes  CodeGenerator

	// TTL defaults to DefaultTTL.
	TTL time.Duration
	// MaxAttempts defaults to DefaultMaxAttempts.
	MaxAttempts int
	// ResendCooldown is the minimum time between issuing and resending a
	// code. Zero disables the check.
	ResendCooldown time.Duration
	// MaxResends caps resends per Request. Zero means unlimited.
	MaxResends int
}

// Registry issues and verifies one-time codes. It is safe for concurrent use.
type Registry[P any] struct {
	store          Store[P]
	sender         Sender
	clock          clock.Clocker
	codes          CodeGenerator
	ttl            time.Duration
	maxAttempts    int
	resendCooldown time.Duration
	maxResends     int
}

// NewRegistry returns a Registry, applying defaults for unset options.
func NewRegistry[P any](cfg Config[P]) *Registry[P] {
	r := &Registry[P]{
		store:          cfg.Store,
		sender:         cfg.Sender,
		clock:          cfg.Clock,
		codes:          cfg.Codes,
		ttl:            cfg.TTL,
		maxAttempts:    cfg.MaxAttempts,
		resendCooldown: max(cfg.ResendCooldown, 0),
		maxResends:     max(cfg.MaxResends, 0),
	}

	if r.clock == nil {
		r.clock = clock.New()
	}
	if r.codes == nil {
		r.codes = NewRandomCode()
	}
	if r.ttl <= 0 {
		r.ttl = DefaultTTL
	}
	if r.maxAttempts <= 0 {
		r.maxAttempts = DefaultMaxAttempts
	}

	return r
}

// TTL returns the validity window of issued codes.
func (r *Registry[P]) TTL() time.Duration {
	return r.ttl
}

// Request issues a fresh code for subject, replacing any pending entry, and
// sends it. The entry is stored before sending; if sending fails the entry is
// kept, the returned Result is still valid and the error is a *DeliveryError.
func (r *Registry[P]) Request(ctx context.Context, subject string, payload P) (Result, error) {
	if subject == "" {
		return Result{}, ErrSubjectRequired
	}

	code, err := r.codes.Generate()
	if err != nil {
		return Result{}, fmt.Errorf("otp: generate code: %w", err)
	}

	now := r.clock.Now()
	entry := &Entry[P]{
		Subject:     subject,
		Code:        code,
		IssuedAt:    now,
		ExpiresAt:   now.Add(r.ttl),
		MaxAttempts: r.maxAttempts,
		Payload:     payload,
	}

	if err := r.store.Update(ctx, subject, func(*Entry[P]) (*Entry[P], error) {
		return entry, nil
	}); err != nil {
		return Result{}, fmt.Errorf("otp: store entry: %w", err)
	}

	return r.deliver(ctx, entry)
}

// Resend issues a new code for a subject with a pending entry, expired or
// not, keeping its payload and resetting its attempts.
func (r *Registry[P]) Resend(ctx context.Context, subject string) (Result, error) {
	if subject == "" {
		return Result{}, ErrSubjectRequired
	}

	code, err := r.codes.Generate()
	if err != nil {
		return Result{}, fmt.Errorf("otp: generate code: %w", err)
	}

	now := r.clock.Now()
	var issued *Entry[P]
	err = r.store.Update(ctx, subject, func(cur *Entry[P]) (*Entry[P], error) {
		issued = nil
		if cur == nil {
			return nil, ErrNoPendingVerification
		}
		if r.resendCooldown > 0 {
			if wait := cur.IssuedAt.Add(r.resendCooldown).Sub(now); wait > 0 {
				return nil, &ResendTooSoonError{RetryAfter: wait}
			}
		}
		if r.maxResends > 0 && cur.Resends >= r.maxResends {
			return nil, ErrResendLimitReached
		}

		issued = &Entry[P]{
			Subject:     subject,
			Code:        code,
			IssuedAt:    now,
			ExpiresAt:   now.Add(r.ttl),
			MaxAttempts: r.maxAttempts,
			Resends:     cur.Resends + 1,
			Payload:     cur.Payload,
		}
		return issued, nil
	})
	if err != nil {
		return Result{}, r.wrapStoreErr(err)
	}

	return r.deliver(ctx, issued)
}

// Verify checks code against the pending entry for subject and returns the
// payload on a match. Expired, exhausted and matched entries are removed; a
// wrong code only counts an attempt.
func (r *Registry[P]) Verify(ctx context.Context, subject, code string) (P, error) {
	var payload P
	if subject == "" {
		return payload, ErrSubjectRequired
	}

	now := r.clock.Now()
	var outcome error
	err := r.store.Update(ctx, subject, func(cur *Entry[P]) (*Entry[P], error) {
		switch {
		case cur == nil:
			outcome = ErrNoPendingVerification
			return nil, nil
		case cur.Expired(now):
			outcome = ErrExpired
			return nil, nil
		case cur.Exhausted():
			outcome = ErrTooManyAttempts
			return nil, nil
		case subtle.ConstantTimeCompare([]byte(cur.Code), []byte(code)) != 1:
			cur.Attempts++
			outcome = &InvalidCodeError{AttemptsRemaining: cur.MaxAttempts - cur.Attempts}
			return cur, nil
		default:
			outcome = nil
			payload = cur.Payload
			return nil, nil
		}
	})
	if err != nil {
		var zero P
		return zero, fmt.Errorf("otp: update entry: %w", err)
	}
	if outcome != nil {
		var zero P
		return zero, outcome
	}

	return payload, nil
}

// Sweep removes every expired entry and returns how many were removed.
func (r *Registry[P]) Sweep(ctx context.Context) (int, error) {
	return r.store.DeleteExpired(ctx, r.clock.Now())
}

func (r *Registry[P]) deliver(ctx context.Context, e *Entry[P]) (Result, error) {
	res := Result{
		Subject:   e.Subject,
		IssuedAt:  e.IssuedAt,
		ExpiresAt: e.ExpiresAt,
		Resends:   e.Resends,
	}

	if err := r.sender.Send(ctx, Delivery{
		Subject:   e.Subject,
		Code:      e.Code,
		IssuedAt:  e.IssuedAt,
		ExpiresAt: e.ExpiresAt,
	}); err != nil {
		return res, &DeliveryError{Subject: e.Subject, Err: err}
	}

	return res, nil
}

func (r *Registry[P]) wrapStoreErr(err error) error {
	if errors.Is(err, ErrNoPendingVerification) ||
		errors.Is(err, ErrResendLimitReached) ||
		errors.Is(err, ErrResendTooSoon) {
		return err
	}
	return fmt.Errorf("otp: update entry: %w", err)
}
