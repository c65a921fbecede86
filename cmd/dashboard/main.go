package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jrsteele09/boutik-admin/auth"
	"github.com/jrsteele09/boutik-admin/client"
	"github.com/jrsteele09/boutik-admin/credentials"
	credrepofake "github.com/jrsteele09/boutik-admin/credentials/repofake"
	"github.com/jrsteele09/boutik-admin/credentials/sqlitestore"
	"github.com/jrsteele09/boutik-admin/guard"
	"github.com/jrsteele09/boutik-admin/internal/config"
	"github.com/jrsteele09/boutik-admin/navigation"
	"github.com/jrsteele09/boutik-admin/resources"
	"github.com/jrsteele09/boutik-admin/session"
	"github.com/jrsteele09/boutik-admin/tui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "boutik.toml", "path to the TOML configuration file")
	metricsAddr := flag.String("metrics-addr", "", "serve client metrics on this address (disabled when empty)")
	flag.Parse()

	if err := run(*configPath, *metricsAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Error running dashboard: %s\n", err)
		os.Exit(1)
	}
}

func run(configPath, metricsAddr string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logFile, err := setupLogging(c)
	if err != nil {
		return err
	}
	defer logFile.Close()

	repo, closeRepo, err := openCredentialStore(c)
	if err != nil {
		return err
	}
	defer closeRepo()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	if metricsAddr != "" {
		go serveMetrics(ctx, metricsAddr, registry)
	}

	sess := session.New()
	router := tui.NewRouter(navigation.Location{Path: c.GetDashboardHome()})
	apiClient := client.New(c, credentials.New(repo), sess, router, client.WithMetrics(client.NewMetrics(registry)))

	log.Info().Str("api", c.GetAPIBaseURL()).Msg("dashboard starting")
	return tui.Run(ctx, tui.Deps{
		Config:  c,
		Session: sess,
		Auth:    auth.NewService(apiClient, sess, router, c),
		Owners:  resources.NewOwners(apiClient),
		POS:     resources.NewPointsOfSale(apiClient),
		Router:  router,
		Guard:   guard.New(guard.DefaultTable(), c, router),
	})
}

// setupLogging sends the global logger to the configured file since the terminal
// belongs to the UI
func setupLogging(c config.EnvConfig) (*os.File, error) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	path := c.GetLogFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("[Dashboard setupLogging] %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("[Dashboard setupLogging] %s: %w", path, err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

// openCredentialStore opens the SQLite store, or an in-memory one when no path is configured
func openCredentialStore(c config.CredentialsConfig) (credentials.Repo, func(), error) {
	path := c.GetCredentialStorePath()
	if path == "" {
		log.Warn().Msg("no credential store configured, tokens will not survive a restart")
		return credrepofake.NewFakeCredentialsRepo(), func() {}, nil
	}
	store, err := sqlitestore.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := store.Close(); err != nil {
			log.Err(err).Msg("closing credential store")
		}
	}, nil
}

func serveMetrics(ctx context.Context, addr string, registry *prometheus.Registry) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Err(err).Str("addr", addr).Msg("metrics server stopped")
	}
}
