package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"miigate/internal/auth"
	"miigate/internal/mii/cache"
	"miigate/internal/mii/handler"
	miimetrics "miigate/internal/mii/metrics"
	"miigate/internal/mii/renderer"
	"miigate/internal/mii/resolver"
	"miigate/internal/mii/service"
	"miigate/internal/mii/store"
	"miigate/internal/platform/config"
	"miigate/internal/platform/database"
	"miigate/internal/platform/health"
	"miigate/internal/platform/logger"
	"miigate/internal/platform/middleware"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Resolution and rendering logic lives in internal/mii.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		os.Stderr.WriteString("invalid configuration: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New()

	log.Info("initializing miigate",
		"addr", cfg.Addr,
		"metrics_addr", cfg.MetricsAddr,
		"legacy_gallery", cfg.LegacyGalleryBaseURL,
		"account_lookup", cfg.AccountLookupBaseURL,
		"modern_renderer", cfg.ModernRendererBaseURL,
	)

	pool, err := database.New(database.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    database.DefaultConfig().MaxOpenConns,
		MaxIdleConns:    database.DefaultConfig().MaxIdleConns,
		ConnMaxLifetime: database.DefaultConfig().ConnMaxLifetime,
	})
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}

	var records store.Store
	if pool != nil {
		records = store.NewPostgres(pool.DB())
		defer pool.Close()
	} else {
		log.Warn("no DATABASE_URL configured, using in-memory record store")
		records = store.NewInMemory()
	}

	previews, err := cache.NewMiis(cfg.MiiCacheDir)
	if err != nil {
		log.Error("preview cache init failed", "error", err)
		os.Exit(1)
	}

	cmocClient := upstreamCMOC(cfg)
	accountsClient := upstreamAccounts(cfg)
	studioClient := upstreamStudio(cfg)
	rendererClient := upstreamRenderer(cfg)

	res := resolver.New(cmocClient, accountsClient)
	dispatcher := renderer.NewDispatcher(studioClient, cmocClient, rendererClient)

	svc := service.New(
		res,
		records,
		dispatcher,
		cmocClient,
		cmocClient,
		previews,
		log,
		service.WithMetrics(miimetrics.New()),
	)

	sessions := auth.NewSessionService(cfg.JWTSigningKey)

	h := handler.New(svc, log)
	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	probes := health.New()
	if pool != nil {
		probes.RegisterCheck("database", pool.DB().Ping)
	}
	probes.Register(router)
	router.Route("/api", func(r chi.Router) {
		h.RegisterPublic(r)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(sessions, log))
			h.Register(r)
		})
	})

	apiServer := &http.Server{Addr: cfg.Addr, Handler: router}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		log.Info("starting metrics server", "addr", cfg.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		err := apiServer.Shutdown(shutdownCtx)
		if merr := metricsServer.Shutdown(shutdownCtx); err == nil {
			err = merr
		}
		return err
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
