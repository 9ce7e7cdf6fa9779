package usecase

import (
	"context"

	"github.com/shandysiswandi/backlink/internal/pkg/clock"
	"github.com/shandysiswandi/backlink/internal/pkg/idempotency"
	"github.com/shandysiswandi/backlink/internal/pkg/instrument"
	"github.com/shandysiswandi/backlink/internal/pkg/sms"
	"github.com/shandysiswandi/backlink/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type Usecase struct {
	appName   string
	sms       sms.SMS
	idemp     idempotency.Idempotency
	clock     clock.Clocker
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	AppName string
	SMS     sms.SMS
	// Idempotency suppresses duplicate sends on redelivery. Nil sends every time.
	Idempotency idempotency.Idempotency
	Clock       clock.Clocker
	Validator   validator.Validator
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		appName:   dep.AppName,
		sms:       dep.SMS,
		idemp:     dep.Idempotency,
		clock:     dep.Clock,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}
