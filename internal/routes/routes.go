package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/openbook-ledger/openbook/internal/account"
	"github.com/openbook-ledger/openbook/internal/config"
	"github.com/openbook-ledger/openbook/internal/events"
	"github.com/openbook-ledger/openbook/internal/ledger"
	"github.com/openbook-ledger/openbook/internal/middleware"
)

// Deps aggregates shared dependencies required to wire routes. DB, Cache and
// Publisher may be nil: without a database the in-memory reference stores are
// used, without a cache idempotency is disabled, and without a publisher
// events are dropped.
type Deps struct {
	Cfg       config.Config
	DB        *pgxpool.Pool
	Cache     *redis.Client
	Publisher events.Publisher
	Logger    *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	var accountRepo account.Repository
	var transactionRepo ledger.Repository
	if d.DB != nil {
		accountRepo = account.NewPostgresRepository(d.DB)
		transactionRepo = ledger.NewPostgresRepository(d.DB)
	} else {
		accountRepo = account.NewMemoryRepository()
		transactionRepo = ledger.NewMemoryRepository()
	}

	publisher := d.Publisher
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}

	accountSvc := account.NewService(accountRepo)
	ledgerSvc := ledger.NewService(accountRepo, transactionRepo, d.Cfg.BalanceTolerance, publisher, d.Logger)

	RegisterAccountRoutes(app, account.NewHandler(accountSvc))
	RegisterTransactionRoutes(app, ledger.NewHandler(ledgerSvc))

	return nil
}
