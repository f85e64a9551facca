package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"investeasy/internal/api"
	"investeasy/internal/clock"
	"investeasy/internal/config"
	"investeasy/internal/data"
	"investeasy/internal/database"
	"investeasy/internal/identity"
	"investeasy/internal/simulation"
	"investeasy/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", os.Getenv("INVESTEASY_CONFIG"), "path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.SetGlobalLogger(log)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("API server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(database.Config{Path: cfg.Database.Path, Name: "users"})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	log.Info().Str("path", db.Path()).Msg("Database ready")

	clk := clock.Real{}
	signer, err := identity.NewTokenSigner(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, clk)
	if err != nil {
		return err
	}
	accounts := identity.NewService(
		identity.NewStore(db.Conn()),
		identity.NewBcryptHasher(cfg.Auth.BcryptCost),
		signer,
		clk,
		identity.ServiceConfig{RecoveryTTL: cfg.Auth.RecoveryTTL},
		log,
	)

	bcb := data.NewBCBClient(cfg.Rates.BaseURL, cfg.Rates.Timeout, log)
	fetcher := data.NewFetcher(bcb, data.NewRateCache(clk), data.FetcherConfig{
		MaxAge:  cfg.Rates.CacheTTL,
		Timeout: cfg.Rates.Timeout,
	}, log)
	engine := simulation.New(fetcher, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Deps{
		Indicators:  fetcher,
		Simulator:   engine,
		Accounts:    accounts,
		CORSOrigins: cfg.Server.CORSOrigins,
		Log:         log,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Server.Env).Msg("Starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
