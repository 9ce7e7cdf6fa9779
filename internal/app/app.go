package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/backlink/internal/pkg/clock"
	"github.com/shandysiswandi/backlink/internal/pkg/config"
	"github.com/shandysiswandi/backlink/internal/pkg/goroutine"
	"github.com/shandysiswandi/backlink/internal/pkg/hash"
	"github.com/shandysiswandi/backlink/internal/pkg/idempotency"
	"github.com/shandysiswandi/backlink/internal/pkg/instrument"
	"github.com/shandysiswandi/backlink/internal/pkg/jwt"
	"github.com/shandysiswandi/backlink/internal/pkg/messaging"
	"github.com/shandysiswandi/backlink/internal/pkg/router"
	"github.com/shandysiswandi/backlink/internal/pkg/sms"
	"github.com/shandysiswandi/backlink/internal/pkg/uid"
	"github.com/shandysiswandi/backlink/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client // nil when redis is disabled
	idemp     idempotency.Idempotency
	messaging messaging.Messaging // nil when the broker is disabled
	sms       sms.SMS

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMessaging()
	app.initSMS()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
