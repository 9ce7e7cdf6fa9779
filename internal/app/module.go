package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/backlink/internal/account"
	"github.com/shandysiswandi/backlink/internal/notification"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.account.enabled") {
		dep := account.Dependency{
			Ctx:        a.ctx,
			DBConn:     a.dbConn,
			Goroutine:  a.goroutine,
			Router:     a.router,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			Bcrypt:     a.bcrypt,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
			SMS:        a.sms,
		}
		if a.cacheConn != nil {
			dep.CacheConn = a.cacheConn
		}
		if a.messaging != nil {
			dep.Messaging = a.messaging
		}

		if err := account.New(dep); err != nil {
			slog.Error("failed to init module account", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if a.messaging == nil {
			slog.Error("failed to init module notification", "error", "messaging is disabled")
			os.Exit(1)
		}

		dep := notification.Dependency{
			Ctx:         a.ctx,
			Messaging:   a.messaging,
			Config:      a.config,
			Instrument:  a.ins,
			UUID:        a.uuid,
			Clock:       a.clock,
			Goroutine:   a.goroutine,
			Validator:   a.validator,
			SMS:         a.sms,
			Idempotency: a.idemp,
		}

		if err := notification.New(dep); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
