package sender

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/backlink/internal/pkg/otp"
)

// Log writes verification codes to the application log. The code itself is
// only printed when debug is enabled.
type Log struct {
	debug bool
}

func NewLog(debug bool) *Log {
	return &Log{debug: debug}
}

func (l *Log) Send(ctx context.Context, d otp.Delivery) error {
	value := "******"
	if l.debug {
		value = d.Code
	}

	slog.InfoContext(ctx, "verification code issued",
		"phone", d.Subject,
		"verification_code", value,
		"expires_at", d.ExpiresAt,
	)
	return nil
}
