package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"go.uber.org/zap"

	"notifyservice/internal/app/config"
	httpapi "notifyservice/internal/app/http"
	"notifyservice/internal/app/http/handler"
	"notifyservice/internal/domain"
	"notifyservice/internal/domain/billing"
	"notifyservice/internal/domain/catalog"
	"notifyservice/internal/domain/correlation"
	"notifyservice/internal/domain/customer"
	"notifyservice/internal/domain/event"
	"notifyservice/internal/domain/notification"
	"notifyservice/internal/domain/order"
	"notifyservice/internal/domain/ordering"
	"notifyservice/internal/domain/pricing"
	"notifyservice/internal/infrastructure/async"
	"notifyservice/internal/infrastructure/channels"
	"notifyservice/internal/infrastructure/db/pg"
	"notifyservice/internal/infrastructure/inmem"
	"notifyservice/internal/infrastructure/logging"
	"notifyservice/internal/infrastructure/memstore"
	"notifyservice/internal/infrastructure/templates"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	var (
		uow          domain.UnitOfWork
		customerRepo customer.Repository
		orderRepo    order.Repository
		catalogRepo  catalog.Repository
	)

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("db open error", zap.Error(err))
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			log.Fatal("db ping error", zap.Error(err))
		}

		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatal("goose dialect error", zap.Error(err))
		}
		if err := goose.Up(db, cfg.MigrationsDir); err != nil {
			log.Fatal("goose up error", zap.Error(err))
		}

		uow = pg.NewTxManager(db)
		customerRepo = pg.NewCustomerRepository(db)
		orderRepo = pg.NewOrderRepository(db)
		catalogRepo = pg.NewCatalogRepository(db)

		log.Info("using postgres store")
	} else {
		var store *memstore.Store
		if cfg.FixturesDir != "" {
			store = memstore.New()
			if err := store.LoadDir(cfg.FixturesDir); err != nil {
				log.Fatal("fixture load error", zap.Error(err))
			}
			log.Info("using in-memory store", zap.String("fixtures", cfg.FixturesDir))
		} else {
			store = memstore.SeedDemo()
			log.Info("using in-memory store with demo data")
		}

		uow = store
		customerRepo = store.Customers()
		orderRepo = store.Orders()
		catalogRepo = store.Catalog()
	}

	syncBus := inmem.New(cfg.EventLogSize, log)

	var bus event.Bus = syncBus
	if cfg.AsyncDispatch {
		asyncBus := async.NewBus(ctx, syncBus, async.DefaultTaskTimeout, log)
		defer asyncBus.Close()
		bus = asyncBus
	}

	tracker := correlation.NewTracker(log)
	hub := channels.NewHub(log)
	renderer := templates.New()

	notifySvc := notification.NewService(customerRepo, orderRepo, catalogRepo, hub, renderer, tracker, log)
	if err := notifySvc.Start(bus); err != nil {
		log.Fatal("notification service start error", zap.Error(err))
	}
	defer notifySvc.Stop()

	auditSub := syncBus.SubscribeAll(func(_ context.Context, e event.Event) error {
		log.Info("event published",
			zap.String("kind", string(e.Kind())),
			zap.String("event_id", e.EventID()),
		)
		return nil
	})
	defer auditSub.Cancel()

	orderingSvc := ordering.NewService(uow, orderRepo, bus)
	pricingSvc := pricing.NewService(uow, catalogRepo, bus)
	billingSvc := billing.NewService(uow, orderRepo, bus)

	h := handler.New(orderingSvc, pricingSvc, billingSvc, hub, syncBus, tracker, log)
	router := httpapi.NewRouter(h, log)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}
