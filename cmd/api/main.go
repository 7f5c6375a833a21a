package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"biteaffair/internal/auth"
	"biteaffair/internal/checkout"
	"biteaffair/internal/config"
	"biteaffair/internal/db"
	"biteaffair/internal/logging"
	"biteaffair/internal/menu"
	"biteaffair/internal/otp"
	"biteaffair/internal/router"
	"biteaffair/internal/storage"
	"biteaffair/internal/storefront"
	"biteaffair/internal/validation"
	"biteaffair/internal/whatsapp"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const catalogRefreshInterval = 10 * time.Minute

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// ───────────────────────── CONFIG ─────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("❌ config load failed: ", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ ", err)
	}

	logging.Setup(cfg.Logging)
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── SNAPSHOT STORAGE ─────────────────────────
	var (
		repo     storefront.Repository
		otpStore otp.Store
	)

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pgDB, err := db.ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			log.Fatal("❌ postgres init failed: ", err)
		}
		defer pgDB.Close()

		repo = storefront.NewPostgresRepository(pgDB)
		otpStore = otp.NewMemoryStore()

	case config.DriverRedis:
		rdb := db.NewRedisClient(cfg.Redis)
		if err := db.PingRedis(ctx, rdb); err != nil {
			log.Fatal("❌ redis init failed: ", err)
		}
		defer rdb.Close()

		repo = storefront.NewRedisRepository(rdb, cfg.Storage.Prefix, cfg.Session.TTL)
		otpStore = otp.NewRedisStore(rdb, cfg.Storage.Prefix)

	default:
		repo = storefront.NewInMemoryRepository()
		otpStore = otp.NewMemoryStore()
	}

	// ───────────────────────── CATALOG ─────────────────────────
	var catalogRepo menu.Repository = menu.NewEmbeddedRepository()
	if cfg.Catalog.Source == config.CatalogR2 {
		r2Client, err := storage.NewR2Client(ctx, cfg.R2)
		if err != nil {
			log.Fatal("❌ R2 init failed: ", err)
		}
		catalogRepo = menu.NewBucketRepository(r2Client, cfg.Catalog.Prefix)
	}
	catalog := menu.NewService(catalogRepo)

	// ───────────────────────── SERVICES ─────────────────────────
	tokens, err := auth.NewSessionTokens(cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
		log.Fatal("❌ ", err)
	}

	store := storefront.NewStore(repo, catalog, cfg.Reconcile.EditWindow)

	var sender otp.Sender = otp.NewGatewaySender(cfg.OTP.Gateway)
	otpService := otp.NewService(otpStore, sender, cfg.OTP.Config)
	notifier := whatsapp.NewNotifier(cfg.WhatsApp)
	checkoutService := checkout.NewService(store, otpService, notifier, cfg.Checkout)

	// ───────────────────────── HANDLERS ─────────────────────────
	validate := validation.New()
	storefrontHandler := storefront.NewHandler(store, validate)

	r := router.NewRouter(tokens, router.Handlers{
		Menu:       menu.NewHandler(catalog, storefrontHandler.GuestCounter()),
		Storefront: storefrontHandler,
		Checkout:   checkout.NewHandler(checkoutService, validate),
	}, router.Options{
		ServiceName: cfg.App.Name,
		CORSOrigins: cfg.App.CORSOrigins,
		Metrics:     cfg.Metrics.Enabled,
	})

	// ───────────────────────── BACKGROUND ─────────────────────────
	go sweepSessions(ctx, store, cfg.Session.MaxIdle)
	if cfg.Catalog.Source == config.CatalogR2 {
		go refreshCatalog(ctx, catalog)
	}

	// ───────────────────────── START ─────────────────────────
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(log.Fields{
			"addr":     srv.Addr,
			"storage":  cfg.Storage.Driver,
			"catalog":  cfg.Catalog.Source,
			"otp_test": cfg.OTP.TestMode,
		}).Info("🚀 storefront API starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

// --------------------------------------------------
func sweepSessions(ctx context.Context, store *storefront.Store, maxIdle time.Duration) {
	ticker := time.NewTicker(maxIdle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Sweep(maxIdle); n > 0 {
				log.WithField("sessions", n).Debug("idle sessions swept")
			}
		}
	}
}

func refreshCatalog(ctx context.Context, catalog *menu.Service) {
	ticker := time.NewTicker(catalogRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			catalog.Refresh()
		}
	}
}
