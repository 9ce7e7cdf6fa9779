package otp

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoPendingVerification means no code was issued for the subject, or it
	// was already consumed or invalidated.
	ErrNoPendingVerification = errors.New("otp: no pending verification")
	// ErrExpired means the code was issued but its TTL has passed.
	ErrExpired = errors.New("otp: code expired")
	// ErrTooManyAttempts means the wrong-code limit was reached.
	ErrTooManyAttempts = errors.New("otp: too many attempts")
	// ErrInvalidCode is matched by *InvalidCodeError.
	ErrInvalidCode = errors.New("otp: invalid code")
	// ErrDeliveryFailed is matched by *DeliveryError.
	ErrDeliveryFailed = errors.New("otp: delivery failed")
	// ErrResendTooSoon is matched by *ResendTooSoonError.
	ErrResendTooSoon = errors.New("otp: resend requested too soon")
	// ErrResendLimitReached means the subject used all resends for this code.
	ErrResendLimitReached = errors.New("otp: resend limit reached")
	// ErrSubjectRequired is returned for an empty subject.
	ErrSubjectRequired = errors.New("otp: subject is required")
	// ErrEntryNotFound is returned by a Store when no entry exists.
	ErrEntryNotFound = errors.New("otp: entry not found")
)

// InvalidCodeError reports a wrong code and how many attempts are left.
type InvalidCodeError struct {
	AttemptsRemaining int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("otp: invalid code, %d attempts remaining", e.AttemptsRemaining)
}

// Is matches ErrInvalidCode.
func (e *InvalidCodeError) Is(target error) bool {
	return target == ErrInvalidCode
}

// DeliveryError reports that the code was stored but the Sender failed.
type DeliveryError struct {
	Subject string
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("otp: delivery to %s failed: %v", e.Subject, e.Err)
}

// Is matches ErrDeliveryFailed.
func (e *DeliveryError) Is(target error) bool {
	return target == ErrDeliveryFailed
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// ResendTooSoonError reports the wait before another resend is accepted.
type ResendTooSoonError struct {
	RetryAfter time.Duration
}

func (e *ResendTooSoonError) Error() string {
	return fmt.Sprintf("otp: resend requested too soon, retry after %s", e.RetryAfter)
}

// Is matches ErrResendTooSoon.
func (e *ResendTooSoonError) Is(target error) bool {
	return target == ErrResendTooSoon
}
