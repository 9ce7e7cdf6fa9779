package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"

	"github.com/shandysiswandi/backlink/internal/account/entity"
	"github.com/shandysiswandi/backlink/internal/pkg/clock"
	"github.com/shandysiswandi/backlink/internal/pkg/goerror"
	"github.com/shandysiswandi/backlink/internal/pkg/hash"
	"github.com/shandysiswandi/backlink/internal/pkg/instrument"
	"github.com/shandysiswandi/backlink/internal/pkg/jwt"
	"github.com/shandysiswandi/backlink/internal/pkg/otp"
	"github.com/shandysiswandi/backlink/internal/pkg/uid"
	"github.com/shandysiswandi/backlink/internal/pkg/validator"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*entity.User, error)

	CreateUser(ctx context.Context, user entity.User) error
}

type registry interface {
	Request(ctx context.Context, subject string, payload entity.PendingRegistration) (otp.Result, error)
	Resend(ctx context.Context, subject string) (otp.Result, error)
	Verify(ctx context.Context, subject, code string) (entity.PendingRegistration, error)
}

type Usecase struct {
	repoDB    repoDB
	registry  registry
	validator validator.Validator
	bcrypt    hash.Hash
	uid       uid.NumberID
	clock     clock.Clocker
	jwt       jwt.JWT
	ins       instrument.Instrumentation
	outcomes  metric.Int64Counter
}

type Dependency struct {
	RepoDB     repoDB
	Registry   registry
	Validator  validator.Validator
	Bcrypt     hash.Hash
	UID        uid.NumberID
	Clock      clock.Clocker
	JWT        jwt.JWT
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	outcomes, err := dep.Instrument.Meter("account.usecase").Int64Counter("account.otp.outcomes",
		metric.WithDescription("Number of OTP operations by outcome"),
	)
	if err != nil {
		slog.Error("failed to create otp outcome counter", "error", err)
	}

	return &Usecase{
		repoDB:    dep.RepoDB,
		registry:  dep.Registry,
		validator: dep.Validator,
		bcrypt:    dep.Bcrypt,
		uid:       dep.UID,
		clock:     dep.Clock,
		jwt:       dep.JWT,
		ins:       dep.Instrument,
		outcomes:  outcomes,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.usecase").Start(ctx, name)
}

func (s *Usecase) recordOutcome(ctx context.Context, op, outcome string) {
	if s.outcomes == nil {
		return
	}

	s.outcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("outcome", outcome),
	))
}

// mapOTPError converts registry errors into business errors and records the
// outcome of op.
func (s *Usecase) mapOTPError(ctx context.Context, op, phone string, err error) error {
	var (
		invalid  *otp.InvalidCodeError
		tooSoon  *otp.ResendTooSoonError
		delivery *otp.DeliveryError
	)

	switch {
	case errors.As(err, &invalid):
		s.recordOutcome(ctx, op, "invalid_code")
		return goerror.NewBusiness("Invalid verification code", goerror.CodeBadRequest,
			"attempts_remaining", invalid.AttemptsRemaining)

	case errors.Is(err, otp.ErrExpired):
		s.recordOutcome(ctx, op, "expired")
		return goerror.NewBusiness("Verification code expired. Please register again.", goerror.CodeBadRequest)

	case errors.Is(err, otp.ErrTooManyAttempts):
		s.recordOutcome(ctx, op, "too_many_attempts")
		return goerror.NewBusiness("Too many failed attempts. Please register again.", goerror.CodeBadRequest)

	case errors.Is(err, otp.ErrNoPendingVerification):
		s.recordOutcome(ctx, op, "no_pending")
		return goerror.NewBusiness("No pending verification for this phone number. Please register again.", goerror.CodeBadRequest)

	case errors.As(err, &tooSoon):
		s.recordOutcome(ctx, op, "resend_too_soon")
		seconds := int(math.Ceil(tooSoon.RetryAfter.Seconds()))
		return goerror.NewBusiness("Please wait before requesting another code", goerror.CodeTooManyRequest,
			"retry_after_seconds", seconds)

	case errors.Is(err, otp.ErrResendLimitReached):
		s.recordOutcome(ctx, op, "resend_limit_reached")
		return goerror.NewBusiness("Resend limit reached. Please register again later.", goerror.CodeTooManyRequest)

	case errors.As(err, &delivery):
		s.recordOutcome(ctx, op, "delivery_failed")
		slog.ErrorContext(ctx, "failed to deliver verification code", "phone", phone, "error", delivery.Err)
		return goerror.NewBusiness("Failed to send verification code. Please request a resend.", goerror.CodeInternal)

	default:
		s.recordOutcome(ctx, op, "error")
		slog.ErrorContext(ctx, "failed to process verification", "op", op, "phone", phone, "error", err)
		return goerror.NewServer(err)
	}
}

// normalizePhone strips the separators people commonly type in phone numbers.
func normalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.', '\t':
			return -1
		default:
			return r
		}
	}, strings.TrimSpace(phone))
}
