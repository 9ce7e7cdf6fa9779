package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/backlink/internal/account/entity"
	"github.com/shandysiswandi/backlink/internal/account/inbound"
	"github.com/shandysiswandi/backlink/internal/account/outbound/db"
	"github.com/shandysiswandi/backlink/internal/account/outbound/sender"
	"github.com/shandysiswandi/backlink/internal/account/usecase"
	"github.com/shandysiswandi/backlink/internal/pkg/clock"
	"github.com/shandysiswandi/backlink/internal/pkg/config"
	"github.com/shandysiswandi/backlink/internal/pkg/goroutine"
	"github.com/shandysiswandi/backlink/internal/pkg/hash"
	"github.com/shandysiswandi/backlink/internal/pkg/instrument"
	"github.com/shandysiswandi/backlink/internal/pkg/jwt"
	"github.com/shandysiswandi/backlink/internal/pkg/messaging"
	"github.com/shandysiswandi/backlink/internal/pkg/otp"
	"github.com/shandysiswandi/backlink/internal/pkg/router"
	"github.com/shandysiswandi/backlink/internal/pkg/sms"
	"github.com/shandysiswandi/backlink/internal/pkg/uid"
	"github.com/shandysiswandi/backlink/internal/pkg/validator"
)

var (
	ErrUnknownSMSDriver = errors.New("account: unknown sms driver")
	ErrUnknownOTPStore  = errors.New("account: unknown otp store")
)

type Dependency struct {
	Ctx        context.Context            `validate:"required"`
	DBConn     *pgxpool.Pool              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
	SMS        sms.SMS                    `validate:"required"`

	// CacheConn backs the redis OTP store.
	CacheConn redis.UniversalClient
	// Messaging carries codes to the notification module for the broker driver.
	Messaging messaging.Messaging
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	store, err := newStore(dep)
	if err != nil {
		return err
	}

	otpSender, err := newSender(dep)
	if err != nil {
		return err
	}

	reg := otp.NewRegistry(otp.Config[entity.PendingRegistration]{
		Store:          store,
		Sender:         otpSender,
		Clock:          dep.Clock,
		Codes:          otp.NewRandomCode(),
		TTL:            dep.Config.GetMinute("otp.ttl_minutes"),
		MaxAttempts:    dep.Config.GetInt("otp.max_attempts"),
		ResendCooldown: dep.Config.GetSecond("otp.resend_cooldown_seconds"),
		MaxResends:     dep.Config.GetInt("otp.max_resends"),
	})

	dep.Goroutine.Every(dep.Ctx, "otp_sweep", dep.Config.GetSecond("otp.sweep_interval_seconds"), func(ctx context.Context) error {
		n, err := reg.Sweep(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			slog.DebugContext(ctx, "expired verifications removed", "count", n)
		}
		return nil
	})

	uc := usecase.New(usecase.Dependency{
		RepoDB:     db.NewDB(dep.DBConn, dep.Instrument),
		Registry:   reg,
		Validator:  dep.Validator,
		Bcrypt:     dep.Bcrypt,
		UID:        dep.UID,
		Clock:      dep.Clock,
		JWT:        dep.JWT,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

func newStore(dep Dependency) (otp.Store[entity.PendingRegistration], error) {
	switch driver := dep.Config.GetString("otp.store"); driver {
	case "", "memory":
		return otp.NewMemoryStore[entity.PendingRegistration](dep.Config.GetInt("otp.memory_shards")), nil
	case "redis":
		if dep.CacheConn == nil {
			return nil, fmt.Errorf("%w: redis store requires a redis connection", ErrUnknownOTPStore)
		}
		opts := []otp.RedisOption{otp.WithRedisClock(dep.Clock)}
		if prefix := dep.Config.GetString("otp.redis_prefix"); prefix != "" {
			opts = append(opts, otp.WithRedisPrefix(prefix))
		}
		return otp.NewRedisStore[entity.PendingRegistration](dep.CacheConn, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOTPStore, driver)
	}
}

func newSender(dep Dependency) (otp.Sender, error) {
	switch driver := dep.Config.GetString("modules.account.sms_driver"); driver {
	case "", "log":
		return sender.NewLog(dep.Config.GetBool("app.debug")), nil
	case "twilio":
		return sender.NewSMS(dep.SMS, dep.Config.GetString("app.name"), dep.Instrument), nil
	case "broker":
		if dep.Messaging == nil {
			return nil, fmt.Errorf("%w: broker driver requires messaging", ErrUnknownSMSDriver)
		}
		return sender.NewBroker(dep.Messaging, dep.Instrument), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSMSDriver, driver)
	}
}
